package services

import (
	"context"
	"errors"
	"testing"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/adapters/persistence/repositories"
	"staffhub/internal/core/domain"

	"gorm.io/gorm"
)

func newRatingService(t *testing.T, db *gorm.DB) *RatingService {
	t.Helper()

	return NewRatingService(
		repositories.NewRatingRepository(db),
		repositories.NewUserRepository(db),
		testConfig(),
	)
}

func seedEmployee(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	role := seedRole(t, db, "employee")
	user := &models.User{
		EmployeeID:   "EMP001",
		EmployeeName: "Test Employee",
		Email:        "emp001@staffhub.local",
		Department:   "Sales",
		Designation:  "Associate",
		ContactNo:    "9876543210",
		RoleID:       role.ID,
		Password:     "irrelevant-hash",
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed employee: %v", err)
	}
	return user
}

func ratingInput(stars int) *SubmitRatingInput {
	return &SubmitRatingInput{
		CustomerName:  "A Customer",
		CustomerEmail: "customer@example.com",
		CustomerPhone: "9000000000",
		Rating:        stars,
		Feedback:      "good service",
	}
}

func loadAverage(t *testing.T, db *gorm.DB, id uint) float64 {
	t.Helper()

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		t.Fatalf("failed to load employee: %v", err)
	}
	return user.AverageRating
}

func TestSubmitRejectsOutOfRange(t *testing.T) {
	db := setupTestDB(t)
	emp := seedEmployee(t, db)
	svc := newRatingService(t, db)
	ctx := context.Background()

	for _, stars := range []int{0, 6, -1} {
		if _, err := svc.Submit(ctx, emp.ID, ratingInput(stars)); !errors.Is(err, domain.ErrRatingOutOfRange) {
			t.Errorf("stars=%d: expected ErrRatingOutOfRange, got %v", stars, err)
		}
	}

	for _, stars := range []int{1, 5} {
		if _, err := svc.Submit(ctx, emp.ID, ratingInput(stars)); err != nil {
			t.Errorf("stars=%d: expected success, got %v", stars, err)
		}
	}
}

func TestSubmitUnknownEmployee(t *testing.T) {
	db := setupTestDB(t)
	seedEmployee(t, db)
	svc := newRatingService(t, db)

	if _, err := svc.Submit(context.Background(), 9999, ratingInput(4)); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestAverageRoundsToOneDecimal(t *testing.T) {
	db := setupTestDB(t)
	emp := seedEmployee(t, db)
	svc := newRatingService(t, db)
	ctx := context.Background()

	for _, stars := range []int{3, 5} {
		if _, err := svc.Submit(ctx, emp.ID, ratingInput(stars)); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	if avg := loadAverage(t, db, emp.ID); avg != 4.0 {
		t.Errorf("expected average 4.0 for [3,5], got %v", avg)
	}
}

func TestAverageRoundsHalfUpish(t *testing.T) {
	db := setupTestDB(t)
	emp := seedEmployee(t, db)
	svc := newRatingService(t, db)
	ctx := context.Background()

	for _, stars := range []int{1, 2, 2} {
		if _, err := svc.Submit(ctx, emp.ID, ratingInput(stars)); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	// 5/3 = 1.666... rounds to 1.7
	if avg := loadAverage(t, db, emp.ID); avg != 1.7 {
		t.Errorf("expected average 1.7 for [1,2,2], got %v", avg)
	}
}

func TestSubmitGeofence(t *testing.T) {
	db := setupTestDB(t)
	emp := seedEmployee(t, db)
	svc := newRatingService(t, db)
	ctx := context.Background()

	// ~5m from the shop
	nearLat := 12.9716 + 5.0/111320.0
	nearLng := 77.5946
	input := ratingInput(5)
	input.Latitude = &nearLat
	input.Longitude = &nearLng

	result, err := svc.Submit(ctx, emp.ID, input)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if !result.InRange {
		t.Error("expected a nearby customer to be in range")
	}

	// ~500m away
	farLat := 12.9716 + 500.0/111320.0
	input = ratingInput(4)
	input.Latitude = &farLat
	input.Longitude = &nearLng

	result, err = svc.Submit(ctx, emp.ID, input)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if result.InRange {
		t.Error("expected a far customer to be out of range")
	}

	// No coordinates at all is accepted, not range-checked
	result, err = svc.Submit(ctx, emp.ID, ratingInput(3))
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if result.InRange {
		t.Error("expected in_range=false when no location was sent")
	}
}

func TestEditAdjustsAverage(t *testing.T) {
	db := setupTestDB(t)
	emp := seedEmployee(t, db)
	svc := newRatingService(t, db)
	ctx := context.Background()

	first, err := svc.Submit(ctx, emp.ID, ratingInput(2))
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := svc.Submit(ctx, emp.ID, ratingInput(4)); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if avg := loadAverage(t, db, emp.ID); avg != 3.0 {
		t.Fatalf("expected average 3.0, got %v", avg)
	}

	newStars := 5
	if _, err := svc.Edit(ctx, first.Rating.ID, &EditRatingInput{Rating: &newStars}); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	// (5+4)/2 = 4.5
	if avg := loadAverage(t, db, emp.ID); avg != 4.5 {
		t.Errorf("expected average 4.5 after edit, got %v", avg)
	}

	bad := 9
	if _, err := svc.Edit(ctx, first.Rating.ID, &EditRatingInput{Rating: &bad}); !errors.Is(err, domain.ErrRatingOutOfRange) {
		t.Errorf("expected ErrRatingOutOfRange, got %v", err)
	}
}

func TestDeleteRollsBackAverage(t *testing.T) {
	db := setupTestDB(t)
	emp := seedEmployee(t, db)
	svc := newRatingService(t, db)
	ctx := context.Background()

	first, err := svc.Submit(ctx, emp.ID, ratingInput(1))
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := svc.Submit(ctx, emp.ID, ratingInput(5)); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if err := svc.Delete(ctx, first.Rating.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if avg := loadAverage(t, db, emp.ID); avg != 5.0 {
		t.Errorf("expected average 5.0 after delete, got %v", avg)
	}

	if err := svc.Delete(ctx, first.Rating.ID); !errors.Is(err, domain.ErrRatingNotFound) {
		t.Errorf("expected ErrRatingNotFound on double delete, got %v", err)
	}

	// Last rating gone, average back to zero
	if _, err := svc.Submit(ctx, emp.ID, ratingInput(5)); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	ratings, err := svc.ListByEmployee(ctx, emp.ID)
	if err != nil {
		t.Fatalf("ListByEmployee failed: %v", err)
	}
	for _, r := range ratings {
		if err := svc.Delete(ctx, r.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
	}
	if avg := loadAverage(t, db, emp.ID); avg != 0 {
		t.Errorf("expected average 0 with no ratings, got %v", avg)
	}
}

func TestListByEmployeeNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	emp := seedEmployee(t, db)
	svc := newRatingService(t, db)
	ctx := context.Background()

	for _, stars := range []int{1, 3, 5} {
		if _, err := svc.Submit(ctx, emp.ID, ratingInput(stars)); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	ratings, err := svc.ListByEmployee(ctx, emp.ID)
	if err != nil {
		t.Fatalf("ListByEmployee failed: %v", err)
	}
	if len(ratings) != 3 {
		t.Fatalf("expected 3 ratings, got %d", len(ratings))
	}

	if _, err := svc.ListByEmployee(ctx, 9999); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}
