package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/adapters/persistence/repositories"
	"staffhub/internal/config"
	"staffhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupUserHandlerTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cfg := &config.Config{
		AppMode:        "dev",
		ProfileBaseURL: "https://staffhub.local/profile",
		Upload: config.UploadConfig{
			Dir:          t.TempDir(),
			MaxSizeBytes: 5 * 1024 * 1024,
		},
	}

	userRepo := repositories.NewUserRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	userService := services.NewUserService(userRepo, roleRepo, cfg)
	handler := NewUserHandler(userService, cfg)

	app := fiber.New()
	app.Put("/users/:id", handler.Update)

	return app, db
}

func seedEmployee(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	role := &models.Role{Name: "employee"}
	if err := db.Create(role).Error; err != nil {
		t.Fatalf("failed to seed role: %v", err)
	}

	user := &models.User{
		EmployeeID:   "EMP001",
		EmployeeName: "Original Name",
		Email:        "original@example.com",
		Department:   "Engineering",
		Designation:  "Developer",
		ContactNo:    "9876543210",
		JoiningDate:  time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
		RoleID:       role.ID,
		Password:     "irrelevant-hash",
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func TestUpdateUserMultipartFormFields(t *testing.T) {
	app, db := setupUserHandlerTest(t)
	user := seedEmployee(t, db)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("employee_name", "Renamed Employee"); err != nil {
		t.Fatalf("failed to write form field: %v", err)
	}
	if err := form.WriteField("department", "Support"); err != nil {
		t.Fatalf("failed to write form field: %v", err)
	}
	if err := form.WriteField("is_active", "false"); err != nil {
		t.Fatalf("failed to write form field: %v", err)
	}
	if err := form.Close(); err != nil {
		t.Fatalf("failed to close form: %v", err)
	}

	req := httptest.NewRequest(fiber.MethodPut, fmt.Sprintf("/users/%d", user.ID), &body)
	req.Header.Set(fiber.HeaderContentType, form.FormDataContentType())

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var updated models.User
	if err := db.First(&updated, user.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if updated.EmployeeName != "Renamed Employee" {
		t.Errorf("expected employee name to be updated, got %q", updated.EmployeeName)
	}
	if updated.Department != "Support" {
		t.Errorf("expected department to be updated, got %q", updated.Department)
	}
	if updated.IsActive {
		t.Error("expected user to be deactivated")
	}
	if updated.Email != "original@example.com" {
		t.Errorf("expected untouched email to survive, got %q", updated.Email)
	}
}

func TestUpdateUserMultipartRejectsBadValues(t *testing.T) {
	app, db := setupUserHandlerTest(t)
	user := seedEmployee(t, db)

	cases := []struct {
		name  string
		field string
		value string
	}{
		{"bad joining date", "joining_date", "15-01-2023"},
		{"bad role id", "role_id", "not-a-number"},
		{"bad active flag", "is_active", "maybe"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body bytes.Buffer
			form := multipart.NewWriter(&body)
			if err := form.WriteField(tc.field, tc.value); err != nil {
				t.Fatalf("failed to write form field: %v", err)
			}
			if err := form.Close(); err != nil {
				t.Fatalf("failed to close form: %v", err)
			}

			req := httptest.NewRequest(fiber.MethodPut, fmt.Sprintf("/users/%d", user.ID), &body)
			req.Header.Set(fiber.HeaderContentType, form.FormDataContentType())

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Errorf("expected status 400, got %d", resp.StatusCode)
			}
		})
	}
}
