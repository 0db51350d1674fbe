package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/adapters/persistence/repositories"
	"staffhub/internal/config"
	"staffhub/internal/core/domain"
	"staffhub/internal/pkg/geo"
	"staffhub/internal/pkg/validator"

	"gorm.io/gorm"
)

// RatingService handles customer rating submissions and the per-employee
// rating aggregates.
type RatingService struct {
	ratingRepo repositories.RatingRepository
	userRepo   repositories.UserRepository
	shop       geo.Point
	radius     float64
}

// NewRatingService creates a new rating service
func NewRatingService(
	ratingRepo repositories.RatingRepository,
	userRepo repositories.UserRepository,
	cfg *config.Config,
) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		userRepo:   userRepo,
		shop: geo.Point{
			Latitude:  cfg.Geofence.ShopLatitude,
			Longitude: cfg.Geofence.ShopLongitude,
		},
		radius: cfg.Geofence.RadiusMeters,
	}
}

// SubmitRatingInput represents a customer rating submission
type SubmitRatingInput struct {
	CustomerName  string   `json:"customer_name" validate:"required,max=100"`
	CustomerEmail string   `json:"customer_email" validate:"required,email"`
	CustomerPhone string   `json:"customer_phone" validate:"required"`
	Rating        int      `json:"rating" validate:"required"`
	Feedback      string   `json:"feedback"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

// SubmitResult carries the stored rating and the geofence verdict
type SubmitResult struct {
	Rating  *models.RatingResponse `json:"rating"`
	InRange bool                   `json:"in_range"`
}

// EditRatingInput represents an admin rating edit
type EditRatingInput struct {
	Rating   *int    `json:"rating"`
	Feedback *string `json:"feedback"`
}

// Submit validates and persists a rating, then folds it into the employee's
// (sum, count) aggregates with a single atomic UPDATE.
func (s *RatingService) Submit(ctx context.Context, employeeID uint, input *SubmitRatingInput) (*SubmitResult, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, domain.ErrRatingOutOfRange
	}
	if err := validator.ValidateStruct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	employee, err := s.userRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}

	// Geofence verdict only when the customer shared a location
	inRange := false
	if input.Latitude != nil && input.Longitude != nil {
		customer := geo.Point{Latitude: *input.Latitude, Longitude: *input.Longitude}
		inRange, err = geo.WithinRadius(s.shop, customer, s.radius)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, geo.ErrInvalidCoordinates)
		}
	}

	rating := &models.Rating{
		EmployeeID:    employee.ID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		Rating:        input.Rating,
		Feedback:      input.Feedback,
		InRange:       inRange,
	}

	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}

	if err := s.userRepo.ApplyRatingDelta(ctx, employee.ID, int64(input.Rating), 1); err != nil {
		return nil, err
	}

	log.Printf("✅ Rating %d submitted for employee %s (in range: %t)", input.Rating, employee.EmployeeID, inRange)

	return &SubmitResult{Rating: rating.ToResponse(), InRange: inRange}, nil
}

// Edit updates a rating's value and feedback, adjusting the employee
// aggregates by the value delta.
func (s *RatingService) Edit(ctx context.Context, ratingID uint, input *EditRatingInput) (*models.RatingResponse, error) {
	rating, err := s.ratingRepo.GetByID(ctx, ratingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRatingNotFound
		}
		return nil, err
	}

	delta := 0
	if input.Rating != nil {
		if *input.Rating < 1 || *input.Rating > 5 {
			return nil, domain.ErrRatingOutOfRange
		}
		delta = *input.Rating - rating.Rating
		rating.Rating = *input.Rating
	}
	if input.Feedback != nil {
		rating.Feedback = *input.Feedback
	}

	if err := s.ratingRepo.Update(ctx, rating); err != nil {
		return nil, err
	}

	if delta != 0 {
		if err := s.userRepo.ApplyRatingDelta(ctx, rating.EmployeeID, int64(delta), 0); err != nil {
			return nil, err
		}
	}

	return rating.ToResponse(), nil
}

// Delete removes a rating and backs it out of the employee aggregates
func (s *RatingService) Delete(ctx context.Context, ratingID uint) error {
	rating, err := s.ratingRepo.GetByID(ctx, ratingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRatingNotFound
		}
		return err
	}

	if err := s.ratingRepo.Delete(ctx, rating.ID); err != nil {
		return err
	}

	return s.userRepo.ApplyRatingDelta(ctx, rating.EmployeeID, -int64(rating.Rating), -1)
}

// ListByEmployee lists an employee's ratings, newest first
func (s *RatingService) ListByEmployee(ctx context.Context, employeeID uint) ([]*models.RatingResponse, error) {
	if _, err := s.userRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}

	ratings, err := s.ratingRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.RatingResponse, len(ratings))
	for i, r := range ratings {
		responses[i] = r.ToResponse()
	}
	return responses, nil
}

// List lists all ratings with pagination, newest first
func (s *RatingService) List(ctx context.Context, offset, limit int) ([]*models.RatingResponse, int64, error) {
	ratings, total, err := s.ratingRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.RatingResponse, len(ratings))
	for i, r := range ratings {
		responses[i] = r.ToResponse()
	}
	return responses, total, nil
}
