package repositories

import (
	"context"

	"staffhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ratingRepository implements RatingRepository interface
type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Create creates a new rating
func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

// GetByID gets a rating by ID
func (r *ratingRepository) GetByID(ctx context.Context, id uint) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// Update updates a rating
func (r *ratingRepository) Update(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Save(rating).Error
}

// Delete deletes a rating
func (r *ratingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Rating{}, id).Error
}

// ListByEmployee lists ratings for an employee, newest first
func (r *ratingRepository) ListByEmployee(ctx context.Context, employeeID uint) ([]*models.Rating, error) {
	var ratings []*models.Rating
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// List lists all ratings with pagination, newest first
func (r *ratingRepository) List(ctx context.Context, offset, limit int) ([]*models.Rating, int64, error) {
	var ratings []*models.Rating
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Rating{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Employee").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&ratings).Error
	if err != nil {
		return nil, 0, err
	}

	return ratings, total, nil
}
