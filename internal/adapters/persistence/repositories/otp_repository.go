package repositories

import (
	"context"
	"time"

	"staffhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// otpRepository implements OTPRepository interface
type otpRepository struct {
	db *gorm.DB
}

// NewOTPRepository creates a new OTP repository
func NewOTPRepository(db *gorm.DB) OTPRepository {
	return &otpRepository{db: db}
}

// Replace stores a new OTP for an email, removing any previously issued
// codes so only the most recent one can verify.
func (r *otpRepository) Replace(ctx context.Context, otp *models.PasswordOTP) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", otp.Email).Delete(&models.PasswordOTP{}).Error; err != nil {
			return err
		}
		return tx.Create(otp).Error
	})
}

// GetByEmail gets the live OTP record for an email. Replace keeps at most
// one row per email, so no ordering is needed.
func (r *otpRepository) GetByEmail(ctx context.Context, email string) (*models.PasswordOTP, error) {
	var otp models.PasswordOTP
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&otp).Error
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

// IncrementAttempts bumps the failed-verify counter
func (r *otpRepository) IncrementAttempts(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.PasswordOTP{}).
		Where("id = ?", id).
		Update("attempts", gorm.Expr("attempts + 1")).Error
}

// DeleteByEmail removes all OTPs for an email (consume on successful reset)
func (r *otpRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Where("email = ?", email).Delete(&models.PasswordOTP{}).Error
}

// DeleteExpired deletes expired OTPs (cleanup job)
func (r *otpRepository) DeleteExpired(ctx context.Context, before time.Time) error {
	return r.db.WithContext(ctx).Where("expires_at < ?", before).Delete(&models.PasswordOTP{}).Error
}
