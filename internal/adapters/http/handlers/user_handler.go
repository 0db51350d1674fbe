package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"staffhub/internal/config"
	"staffhub/internal/core/domain"
	"staffhub/internal/core/services"
	"staffhub/internal/pkg/pagination"
	"staffhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles employee management endpoints
type UserHandler struct {
	userService *services.UserService
	cfg         *config.Config
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		userService: userService,
		cfg:         cfg,
	}
}

// List returns a paginated employee list
// @Summary List employees
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	out, err := h.userService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list employees")
	}

	return response.Success(c, "Employees retrieved successfully",
		pagination.NewResponse(out.Users, params, out.Total))
}

// Get returns a single employee
// @Summary Get employee by ID
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get user")
	}

	return response.Success(c, "User retrieved successfully", user)
}

// Profile returns the authenticated employee's own record
// @Summary Get own profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /users/profile [get]
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.userService.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get profile")
	}

	return response.Success(c, "Profile retrieved successfully", user)
}

// Update applies a partial update; unknown fields are left as-is
// @Summary Update employee
// @Tags Users
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var input services.UpdateUserInput
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		parsed, perr := h.parseUpdateForm(c)
		if perr != nil {
			return response.BadRequest(c, perr.Error())
		}
		input = *parsed
	} else if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.Update(c.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrDuplicateEmail):
			return response.Conflict(c, "Email already exists")
		case errors.Is(err, domain.ErrInvalidRole):
			return response.BadRequest(c, "Invalid role ID")
		default:
			return response.InternalServerError(c, "Failed to update user")
		}
	}

	return response.Success(c, "User updated successfully", user)
}

// Delete soft-deletes an employee
// @Summary Delete employee
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.userService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to delete user")
	}

	return response.Success(c, "User deleted successfully", nil)
}

// GenerateQRCode creates (or refreshes) the employee's profile QR code
// @Summary Generate profile QR code
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id}/qr [get]
func (h *UserHandler) GenerateQRCode(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	result, err := h.userService.GenerateQRCode(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to generate QR code")
	}

	return response.Success(c, "QR code generated successfully", result)
}

// parseUpdateForm reads a partial multipart update. Only fields present in
// the form are set; everything else stays nil so the service leaves it alone.
func (h *UserHandler) parseUpdateForm(c *fiber.Ctx) (*services.UpdateUserInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.New("invalid multipart form")
	}

	field := func(key string) *string {
		if vals, ok := form.Value[key]; ok && len(vals) > 0 {
			v := vals[0]
			return &v
		}
		return nil
	}

	input := &services.UpdateUserInput{
		EmployeeName: field("employee_name"),
		Email:        field("email"),
		Department:   field("department"),
		Designation:  field("designation"),
		ContactNo:    field("contact_no"),
		BloodGroup:   field("blood_group"),
	}

	if v := field("joining_date"); v != nil {
		t, err := time.Parse("2006-01-02", *v)
		if err != nil {
			return nil, errors.New("joining_date must be YYYY-MM-DD")
		}
		input.JoiningDate = &t
	}
	if v := field("role_id"); v != nil {
		id, err := strconv.ParseUint(*v, 10, 32)
		if err != nil {
			return nil, errors.New("role_id must be a number")
		}
		roleID := uint(id)
		input.RoleID = &roleID
	}
	if v := field("is_active"); v != nil {
		active, err := strconv.ParseBool(*v)
		if err != nil {
			return nil, errors.New("is_active must be a boolean")
		}
		input.IsActive = &active
	}

	if file, err := c.FormFile("employee_photo"); err == nil && file != nil {
		path, err := savePhoto(c, file, h.cfg)
		if err != nil {
			return nil, err
		}
		input.PhotoPath = &path
	}

	return input, nil
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
