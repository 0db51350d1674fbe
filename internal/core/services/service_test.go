package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/adapters/persistence/repositories"
	"staffhub/internal/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testMailer records outgoing mail instead of sending it
type testMailer struct {
	lastOTP          string
	lastOTPEmail     string
	passwordChangeTo string
}

func (m *testMailer) SendOTP(ctx context.Context, email, code string) error {
	m.lastOTPEmail = email
	m.lastOTP = code
	return nil
}

func (m *testMailer) NotifyPasswordChanged(ctx context.Context, email, name string) error {
	m.passwordChangeTo = email
	return nil
}

func setupTestDB(t *testing.T) *gorm.DB {
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

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		AppMode:        "dev",
		ProfileBaseURL: "https://staffhub.local/profile",
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		Geofence: config.GeofenceConfig{
			ShopLatitude:  12.9716,
			ShopLongitude: 77.5946,
			RadiusMeters:  10,
		},
		Upload: config.UploadConfig{
			Dir:          "uploads",
			MaxSizeBytes: 5 * 1024 * 1024,
		},
	}
}

func seedRole(t *testing.T, db *gorm.DB, name string) *models.Role {
	t.Helper()

	role := &models.Role{Name: name}
	if err := db.Create(role).Error; err != nil {
		t.Fatalf("failed to seed role %q: %v", name, err)
	}
	return role
}

func newAuthService(t *testing.T, db *gorm.DB) (*AuthService, *testMailer) {
	t.Helper()

	mailer := &testMailer{}
	svc := NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRoleRepository(db),
		repositories.NewRefreshTokenRepository(db),
		repositories.NewOTPRepository(db),
		mailer,
		testConfig(),
	)
	return svc, mailer
}

func signupInput(employeeID, email string, roleID uint) *SignupInput {
	return &SignupInput{
		EmployeeID:   employeeID,
		EmployeeName: "Test Employee",
		Email:        email,
		Department:   "Engineering",
		Designation:  "Developer",
		ContactNo:    "9876543210",
		BloodGroup:   "O+",
		JoiningDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		RoleID:       roleID,
		Password:     "password123",
	}
}
