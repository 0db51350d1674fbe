package handlers

import (
	"errors"

	"staffhub/internal/core/domain"
	"staffhub/internal/core/services"
	"staffhub/internal/pkg/pagination"
	"staffhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RatingHandler handles customer rating endpoints
type RatingHandler struct {
	ratingService *services.RatingService
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(ratingService *services.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// Submit records a customer rating for an employee
// @Summary Submit rating
// @Description Record a 1-5 star rating; location, when sent, is checked against the shop geofence
// @Tags Ratings
// @Accept json
// @Produce json
// @Param employeeId path int true "Employee user ID"
// @Param body body services.SubmitRatingInput true "Rating payload"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /ratings/submit/{employeeId} [post]
func (h *RatingHandler) Submit(c *fiber.Ctx) error {
	employeeID, err := parseIDParam(c, "employeeId")
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	var input services.SubmitRatingInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.ratingService.Submit(c.Context(), employeeID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRatingOutOfRange):
			return response.BadRequest(c, "Rating must be between 1 and 5")
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, "Invalid rating data")
		case errors.Is(err, domain.ErrEmployeeNotFound):
			return response.NotFound(c, "Employee not found")
		default:
			return response.InternalServerError(c, "Failed to submit rating")
		}
	}

	return response.Created(c, "Rating submitted successfully", fiber.Map{
		"rating":   result.Rating,
		"in_range": result.InRange,
	})
}

// ListByEmployee returns the rating history for one employee
// @Summary List ratings of an employee
// @Tags Ratings
// @Produce json
// @Param employeeId path int true "Employee user ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /ratings/employee/{employeeId} [get]
func (h *RatingHandler) ListByEmployee(c *fiber.Ctx) error {
	employeeID, err := parseIDParam(c, "employeeId")
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	ratings, err := h.ratingService.ListByEmployee(c.Context(), employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to list ratings")
	}

	return response.Success(c, "Ratings retrieved successfully", ratings)
}

// List returns all ratings, newest first
// @Summary List all ratings
// @Tags Ratings
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /ratings/all-ratings [get]
func (h *RatingHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	ratings, total, err := h.ratingService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list ratings")
	}

	return response.Success(c, "Ratings retrieved successfully",
		pagination.NewResponse(ratings, params, total))
}

// Edit updates a rating's stars or feedback and refreshes the average
// @Summary Edit rating
// @Tags Ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rating ID"
// @Param body body services.EditRatingInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /ratings/update-rating/{id} [put]
func (h *RatingHandler) Edit(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid rating ID")
	}

	var input services.EditRatingInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	rating, err := h.ratingService.Edit(c.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRatingNotFound):
			return response.NotFound(c, "Rating not found")
		case errors.Is(err, domain.ErrRatingOutOfRange):
			return response.BadRequest(c, "Rating must be between 1 and 5")
		default:
			return response.InternalServerError(c, "Failed to update rating")
		}
	}

	return response.Success(c, "Rating updated successfully", rating)
}

// Delete removes a rating and rolls it out of the employee's average
// @Summary Delete rating
// @Tags Ratings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rating ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /ratings/delete-rating/{id} [delete]
func (h *RatingHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid rating ID")
	}

	if err := h.ratingService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrRatingNotFound) {
			return response.NotFound(c, "Rating not found")
		}
		return response.InternalServerError(c, "Failed to delete rating")
	}

	return response.Success(c, "Rating deleted successfully", nil)
}
