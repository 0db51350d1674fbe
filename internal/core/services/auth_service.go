package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/adapters/persistence/repositories"
	"staffhub/internal/config"
	"staffhub/internal/core/domain"
	"staffhub/internal/pkg/jwt"
	"staffhub/internal/pkg/password"
	"staffhub/internal/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	otpTTL         = 5 * time.Minute
	otpMaxAttempts = 5
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo         repositories.UserRepository
	roleRepo         repositories.RoleRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	otpRepo          repositories.OTPRepository
	mailer           Mailer
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	otpRepo repositories.OTPRepository,
	mailer Mailer,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		roleRepo:         roleRepo,
		refreshTokenRepo: refreshTokenRepo,
		otpRepo:          otpRepo,
		mailer:           mailer,
		cfg:              cfg,
	}
}

// SignupInput represents signup input
type SignupInput struct {
	EmployeeID   string    `json:"employee_id" validate:"required,max=20"`
	EmployeeName string    `json:"employee_name" validate:"required,max=100"`
	Email        string    `json:"email" validate:"required,email"`
	Department   string    `json:"department" validate:"required"`
	Designation  string    `json:"designation" validate:"required"`
	ContactNo    string    `json:"contact_no" validate:"required"`
	BloodGroup   string    `json:"blood_group"`
	JoiningDate  time.Time `json:"joining_date" validate:"required"`
	RoleID       uint      `json:"role_id" validate:"required"`
	Password     string    `json:"password" validate:"required,min=8"`
	PhotoPath    string    `json:"-"`
}

// LoginInput represents login input
type LoginInput struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"-"`
}

// Signup registers a new employee. All uniqueness checks run before any write.
func (s *AuthService) Signup(ctx context.Context, input *SignupInput) (*models.UserResponse, error) {
	if err := validator.ValidateStruct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// 1. Role must exist
	exists, err := s.roleRepo.Exists(ctx, input.RoleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrInvalidRole
	}

	// 2. Employee ID must be unique
	exists, err = s.userRepo.ExistsByEmployeeID(ctx, input.EmployeeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmployeeID
	}

	// 3. Email must be unique
	exists, err = s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	// 4. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 5. Create user
	user := &models.User{
		EmployeeID:   input.EmployeeID,
		EmployeeName: input.EmployeeName,
		Email:        input.Email,
		Department:   input.Department,
		Designation:  input.Designation,
		ContactNo:    input.ContactNo,
		BloodGroup:   input.BloodGroup,
		JoiningDate:  input.JoiningDate,
		PhotoPath:    input.PhotoPath,
		RoleID:       input.RoleID,
		Password:     hashedPassword,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Employee registered: %s (%s)", user.EmployeeName, user.EmployeeID)

	created, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return user.ToResponse(), nil
	}
	return created.ToResponse(), nil
}

// Login authenticates an employee by employee ID and password.
// Unknown employee ID and wrong password both return ErrInvalidCredentials
// so the response cannot be used for account enumeration.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmployeeID(ctx, input.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ Employee logged in: %s", user.EmployeeID)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// RefreshToken rotates the refresh token and issues a new token pair.
// The presented token must match a stored, unrevoked hash: a token that was
// rotated out no longer authenticates even while its signature is valid.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	tokenHash := password.HashToken(refreshToken)

	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}

	if storedToken.IsExpired() {
		return nil, domain.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	// Rotation: revoke the presented token before issuing a replacement
	if err := s.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for employee: %s", user.EmployeeID)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Logout revokes the presented refresh token. Idempotent: revoking a token
// that is unknown or already revoked is not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	tokenHash := password.HashToken(refreshToken)
	if err := s.refreshTokenRepo.RevokeByTokenHash(ctx, tokenHash); err != nil {
		return err
	}

	log.Printf("✅ Employee logged out")
	return nil
}

// LogoutAll revokes all refresh tokens for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}

	log.Printf("✅ All sessions revoked for user ID: %d", userID)
	return nil
}

// ForgotPassword issues a 6-digit OTP for the account email and dispatches
// it via the mailer. Any previously issued OTP for the email is replaced.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}

	otp := &models.PasswordOTP{
		Email:     user.Email,
		Code:      code,
		ExpiresAt: time.Now().Add(otpTTL),
	}
	if err := s.otpRepo.Replace(ctx, otp); err != nil {
		return err
	}

	if err := s.mailer.SendOTP(ctx, user.Email, code); err != nil {
		return err
	}

	log.Printf("✅ Password reset OTP issued for %s", user.Email)
	return nil
}

// VerifyOTP checks that a matching, unexpired OTP exists for the email
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) error {
	_, err := s.lookupOTP(ctx, email, code)
	return err
}

// ResetPassword re-validates the (email, code) pair, persists the new
// password and consumes the OTP.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if !password.ValidatePassword(newPassword) {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}

	if _, err := s.lookupOTP(ctx, email, code); err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	hashedPassword, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return err
	}

	if err := s.otpRepo.DeleteByEmail(ctx, email); err != nil {
		return err
	}

	// Revoke open sessions so a stolen refresh token dies with the old password
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, user.ID); err != nil {
		return err
	}

	if err := s.mailer.NotifyPasswordChanged(ctx, user.Email, user.EmployeeName); err != nil {
		log.Printf("⚠️ Password-changed mail to %s failed: %v", user.Email, err)
	}

	log.Printf("✅ Password reset for %s", user.Email)
	return nil
}

// lookupOTP finds a live OTP, enforcing expiry and the attempt budget.
// A wrong code burns an attempt; the fifth miss dead-ends the OTP.
func (s *AuthService) lookupOTP(ctx context.Context, email, code string) (*models.PasswordOTP, error) {
	otp, err := s.otpRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidOrExpiredOTP
		}
		return nil, err
	}

	if otp.IsExpired() || otp.Attempts >= otpMaxAttempts {
		return nil, domain.ErrInvalidOrExpiredOTP
	}

	if subtle.ConstantTimeCompare([]byte(otp.Code), []byte(code)) != 1 {
		if err := s.otpRepo.IncrementAttempts(ctx, otp.ID); err != nil {
			return nil, err
		}
		return nil, domain.ErrInvalidOrExpiredOTP
	}

	return otp, nil
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(user *models.User) (*TokenPair, error) {
	role := ""
	if user.Role != nil {
		role = user.Role.Name
	}

	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.EmployeeID,
		user.EmployeeName,
		role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.New().String()

	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID,
		tokenID,
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a refresh token hash in the database
func (s *AuthService) storeRefreshToken(ctx context.Context, userID uint, refreshToken string) error {
	token := &models.RefreshToken{
		UserID:    userID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}

	return s.refreshTokenRepo.Create(ctx, token)
}

// generateOTP returns a 6-digit code uniform in [100000, 999999]
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
