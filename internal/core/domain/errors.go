package domain

import "errors"

// Common domain errors
var (
	ErrValidation = errors.New("validation failed")
)

// Auth errors
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserInactive        = errors.New("user account is inactive")
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenInvalid        = errors.New("token invalid")
	ErrInvalidOrExpiredOTP = errors.New("invalid or expired OTP")
)

// User errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidRole         = errors.New("invalid role ID")
	ErrDuplicateEmployeeID = errors.New("employee ID already exists")
	ErrDuplicateEmail      = errors.New("email already exists")
)

// Role errors
var (
	ErrRoleNotFound = errors.New("role not found")
	ErrRoleExists   = errors.New("role already exists")
)

// Rating errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrRatingNotFound   = errors.New("rating not found")
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
)
