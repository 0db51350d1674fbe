package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"staffhub/internal/config"
	"staffhub/internal/core/domain"
	"staffhub/internal/core/services"
	"staffhub/internal/pkg/response"
	"staffhub/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	EmployeeID string `json:"employee_id"`
	Password   string `json:"password"`
}

// ForgotPasswordRequest represents forgot-password request body
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest represents verify-otp request body
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResetPasswordRequest represents reset-password request body
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

// Signup handles employee registration (multipart, optional photo)
// @Summary Register new employee
// @Description Register a new employee with an existing role and optional photo
// @Tags Auth
// @Accept mpfd
// @Produce json
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	input, err := h.parseSignupForm(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, err := h.authService.Signup(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, "Invalid signup data")
		case errors.Is(err, domain.ErrInvalidRole):
			return response.BadRequest(c, "Invalid role ID")
		case errors.Is(err, domain.ErrDuplicateEmployeeID):
			return response.Conflict(c, "Employee ID already exists")
		case errors.Is(err, domain.ErrDuplicateEmail):
			return response.Conflict(c, "Email already exists")
		default:
			return response.InternalServerError(c, "Failed to register employee")
		}
	}

	return response.Created(c, "Employee registered successfully", fiber.Map{
		"user": user,
	})
}

// Login handles employee login
// @Summary Login
// @Description Authenticate by employee ID and password; sets the refresh cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.EmployeeID == "" {
		return response.BadRequest(c, "Employee ID is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	input := &services.LoginInput{
		EmployeeID: strings.TrimSpace(req.EmployeeID),
		Password:   req.Password,
	}

	result, err := h.authService.Login(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid employee ID or password")
		case errors.Is(err, domain.ErrUserInactive):
			return response.Forbidden(c, "Account is inactive")
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	h.setRefreshCookie(c, result.RefreshToken)

	return response.Success(c, "Login successful", fiber.Map{
		"access_token": result.AccessToken,
		"user":         result.User,
	})
}

// RefreshToken handles token rotation
// @Summary Refresh access token
// @Description Rotate the refresh token (http-only cookie) and issue a new pair
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		return response.Unauthorized(c, "Refresh token missing")
	}

	result, err := h.authService.RefreshToken(c.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenExpired):
			h.clearRefreshCookie(c)
			return response.Unauthorized(c, "Refresh token expired, please login again")
		case errors.Is(err, domain.ErrTokenInvalid):
			h.clearRefreshCookie(c)
			return response.Unauthorized(c, "Invalid refresh token")
		case errors.Is(err, domain.ErrUserInactive):
			h.clearRefreshCookie(c)
			return response.Forbidden(c, "Account is inactive")
		default:
			return response.InternalServerError(c, "Failed to refresh token")
		}
	}

	h.setRefreshCookie(c, result.RefreshToken)

	return response.Success(c, "Token refreshed successfully", fiber.Map{
		"access_token": result.AccessToken,
		"user":         result.User,
	})
}

// Logout handles logout; calling it without a session is not an error
// @Summary Logout
// @Description Revoke the current refresh token and clear the cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if refreshToken := c.Cookies("refresh_token"); refreshToken != "" {
		_ = h.authService.Logout(c.Context(), refreshToken)
	}

	h.clearRefreshCookie(c)

	return response.Success(c, "Logged out successfully", nil)
}

// LogoutAll revokes every session of the authenticated user
// @Summary Logout from all devices
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.authService.LogoutAll(c.Context(), userID); err != nil {
		return response.InternalServerError(c, "Failed to logout from all devices")
	}

	h.clearRefreshCookie(c)

	return response.Success(c, "Logged out from all devices", nil)
}

// ForgotPassword issues a password reset OTP
// @Summary Request password reset OTP
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body ForgotPasswordRequest true "Account email"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if !validator.IsValidEmail(req.Email) {
		return response.BadRequest(c, "A valid email is required")
	}

	if err := h.authService.ForgotPassword(c.Context(), strings.TrimSpace(req.Email)); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to send OTP")
	}

	return response.Success(c, "OTP sent to your email", nil)
}

// VerifyOTP checks a password reset OTP
// @Summary Verify password reset OTP
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body VerifyOTPRequest true "Email and OTP"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.OTP == "" {
		return response.BadRequest(c, "Email and OTP are required")
	}

	if err := h.authService.VerifyOTP(c.Context(), strings.TrimSpace(req.Email), req.OTP); err != nil {
		if errors.Is(err, domain.ErrInvalidOrExpiredOTP) {
			return response.BadRequest(c, "Invalid or expired OTP")
		}
		return response.InternalServerError(c, "Failed to verify OTP")
	}

	return response.Success(c, "OTP verified. Proceed to reset password.", nil)
}

// ResetPassword sets a new password after OTP verification
// @Summary Reset password with OTP
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body ResetPasswordRequest true "Email, OTP and new password"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.OTP == "" || req.NewPassword == "" {
		return response.BadRequest(c, "Email, OTP and new password are required")
	}

	err := h.authService.ResetPassword(c.Context(), strings.TrimSpace(req.Email), req.OTP, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidOrExpiredOTP):
			return response.BadRequest(c, "Invalid or expired OTP")
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, "Password must be at least 8 characters")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to reset password")
		}
	}

	return response.Success(c, "Password reset successful", nil)
}

// parseSignupForm reads the multipart signup form, including the optional photo
func (h *AuthHandler) parseSignupForm(c *fiber.Ctx) (*services.SignupInput, error) {
	roleID, err := strconv.ParseUint(c.FormValue("role_id"), 10, 32)
	if err != nil {
		return nil, errors.New("role_id must be a number")
	}

	joiningDate, err := time.Parse("2006-01-02", c.FormValue("joining_date"))
	if err != nil {
		return nil, errors.New("joining_date must be YYYY-MM-DD")
	}

	input := &services.SignupInput{
		EmployeeID:   strings.TrimSpace(c.FormValue("employee_id")),
		EmployeeName: strings.TrimSpace(c.FormValue("employee_name")),
		Email:        strings.TrimSpace(c.FormValue("email")),
		Department:   strings.TrimSpace(c.FormValue("department")),
		Designation:  strings.TrimSpace(c.FormValue("designation")),
		ContactNo:    strings.TrimSpace(c.FormValue("contact_no")),
		BloodGroup:   strings.TrimSpace(c.FormValue("blood_group")),
		JoiningDate:  joiningDate,
		RoleID:       uint(roleID),
		Password:     c.FormValue("password"),
	}

	file, err := c.FormFile("employee_photo")
	if err == nil && file != nil {
		path, err := savePhoto(c, file, h.cfg)
		if err != nil {
			return nil, err
		}
		input.PhotoPath = path
	}

	return input, nil
}

// setRefreshCookie sets the http-only refresh token cookie.
// The access token travels only in the response body / Authorization header.
func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.RefreshTokenDays * 24 * 60 * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// clearRefreshCookie clears the refresh token cookie
func (h *AuthHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
