package repositories

import (
	"context"
	"time"

	"staffhub/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id uint, hashedPassword string) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ApplyRatingDelta(ctx context.Context, id uint, sumDelta, countDelta int64) error
}

// RoleRepository defines role repository interface
type RoleRepository interface {
	Create(ctx context.Context, role *models.Role) error
	GetByID(ctx context.Context, id uint) (*models.Role, error)
	GetByName(ctx context.Context, name string) (*models.Role, error)
	List(ctx context.Context) ([]*models.Role, error)
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// OTPRepository defines password reset OTP repository interface
type OTPRepository interface {
	Replace(ctx context.Context, otp *models.PasswordOTP) error
	GetByEmail(ctx context.Context, email string) (*models.PasswordOTP, error)
	IncrementAttempts(ctx context.Context, id uint) error
	DeleteByEmail(ctx context.Context, email string) error
	DeleteExpired(ctx context.Context, before time.Time) error
}

// RatingRepository defines rating repository interface
type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	GetByID(ctx context.Context, id uint) (*models.Rating, error)
	Update(ctx context.Context, rating *models.Rating) error
	Delete(ctx context.Context, id uint) error
	ListByEmployee(ctx context.Context, employeeID uint) ([]*models.Rating, error)
	List(ctx context.Context, offset, limit int) ([]*models.Rating, int64, error)
}
