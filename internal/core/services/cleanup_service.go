package services

import (
	"context"
	"log"
	"time"

	"staffhub/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CleanupService sweeps expired OTPs and refresh tokens in the background.
// Expiry is still enforced at the point of use; the sweep only keeps the
// tables from growing without bound.
type CleanupService struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	otpRepo          repositories.OTPRepository
	cron             *cron.Cron
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(
	refreshTokenRepo repositories.RefreshTokenRepository,
	otpRepo repositories.OTPRepository,
) *CleanupService {
	return &CleanupService{
		refreshTokenRepo: refreshTokenRepo,
		otpRepo:          otpRepo,
		cron:             cron.New(),
	}
}

// Start schedules the hourly sweep
func (s *CleanupService) Start() {
	s.cron.AddFunc("@hourly", s.sweep)
	s.cron.Start()
	log.Println("🚀 CleanupService started (hourly sweep)")
}

// Stop stops the scheduler
func (s *CleanupService) Stop() {
	s.cron.Stop()
	log.Println("🛑 CleanupService stopped")
}

func (s *CleanupService) sweep() {
	ctx := context.Background()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Expired refresh token sweep failed: %v", err)
	}
	if err := s.otpRepo.DeleteExpired(ctx, time.Now()); err != nil {
		log.Printf("❌ Expired OTP sweep failed: %v", err)
	}
}
