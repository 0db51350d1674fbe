package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/adapters/persistence/repositories"
	"staffhub/internal/config"
	"staffhub/internal/core/domain"

	"gorm.io/gorm"
)

func newUserService(t *testing.T, db *gorm.DB, cfg *config.Config) *UserService {
	t.Helper()

	if cfg == nil {
		cfg = testConfig()
	}
	return NewUserService(
		repositories.NewUserRepository(db),
		repositories.NewRoleRepository(db),
		cfg,
	)
}

func TestUserUpdatePartial(t *testing.T) {
	db := setupTestDB(t)
	emp := seedEmployee(t, db)
	svc := newUserService(t, db, nil)
	ctx := context.Background()

	dept := "Support"
	updated, err := svc.Update(ctx, emp.ID, &UpdateUserInput{Department: &dept})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Department != "Support" {
		t.Errorf("expected department Support, got %s", updated.Department)
	}
	// Untouched fields survive
	if updated.EmployeeName != emp.EmployeeName {
		t.Errorf("employee name should be unchanged, got %s", updated.EmployeeName)
	}
}

func TestUserUpdateRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	emp := seedEmployee(t, db)
	other := &models.User{
		EmployeeID:   "EMP002",
		EmployeeName: "Other Employee",
		Email:        "emp002@staffhub.local",
		Department:   "Sales",
		Designation:  "Associate",
		ContactNo:    "9111111111",
		RoleID:       emp.RoleID,
		Password:     "irrelevant-hash",
		IsActive:     true,
	}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("failed to seed second employee: %v", err)
	}
	svc := newUserService(t, db, nil)

	taken := "emp001@staffhub.local"
	if _, err := svc.Update(context.Background(), other.ID, &UpdateUserInput{Email: &taken}); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserUpdateRejectsUnknownRole(t *testing.T) {
	db := setupTestDB(t)
	emp := seedEmployee(t, db)
	svc := newUserService(t, db, nil)

	badRole := emp.RoleID + 99
	if _, err := svc.Update(context.Background(), emp.ID, &UpdateUserInput{RoleID: &badRole}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserDeleteIsSoft(t *testing.T) {
	db := setupTestDB(t)
	emp := seedEmployee(t, db)
	svc := newUserService(t, db, nil)
	ctx := context.Background()

	if err := svc.Delete(ctx, emp.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := svc.GetByID(ctx, emp.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("deleted user should not be found, got %v", err)
	}

	// Row still exists under soft delete
	var count int64
	if err := db.Unscoped().Model(&models.User{}).Where("id = ?", emp.ID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected soft-deleted row to remain, count=%d", count)
	}

	if err := svc.Delete(ctx, emp.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound on double delete, got %v", err)
	}
}

func TestUserList(t *testing.T) {
	db := setupTestDB(t)
	seedEmployee(t, db)
	svc := newUserService(t, db, nil)

	out, err := svc.List(context.Background(), 0, 20)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if out.Total != 1 || len(out.Users) != 1 {
		t.Errorf("expected 1 user, got total=%d len=%d", out.Total, len(out.Users))
	}
}

func TestGenerateQRCode(t *testing.T) {
	db := setupTestDB(t)
	emp := seedEmployee(t, db)

	cfg := testConfig()
	cfg.Upload.Dir = t.TempDir()
	svc := newUserService(t, db, cfg)

	result, err := svc.GenerateQRCode(context.Background(), emp.ID)
	if err != nil {
		t.Fatalf("GenerateQRCode failed: %v", err)
	}

	if !strings.HasSuffix(result.ProfileURL, fmt.Sprintf("/profile/%d", emp.ID)) {
		t.Errorf("unexpected profile URL: %s", result.ProfileURL)
	}
	info, err := os.Stat(result.QRCodePath)
	if err != nil {
		t.Fatalf("QR code file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("QR code file is empty")
	}

	if _, err := svc.GenerateQRCode(context.Background(), 9999); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
