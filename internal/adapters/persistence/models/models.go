package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & Directory Tables
// ============================================================

// Role represents roles table
type Role struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"uniqueIndex;size:50;not null" json:"name"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Role) TableName() string {
	return "roles"
}

// User represents users (employees) table
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	EmployeeID    string         `gorm:"uniqueIndex;size:20;not null" json:"employee_id"`
	EmployeeName  string         `gorm:"size:100;not null" json:"employee_name"`
	Email         string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Department    string         `gorm:"size:100;not null" json:"department"`
	Designation   string         `gorm:"size:100;not null" json:"designation"`
	ContactNo     string         `gorm:"size:20;not null" json:"contact_no"`
	BloodGroup    string         `gorm:"size:10" json:"blood_group"`
	JoiningDate   time.Time      `gorm:"type:date" json:"joining_date"`
	PhotoPath     string         `gorm:"size:255" json:"photo_path"`
	RoleID        uint           `gorm:"not null;index" json:"role_id"`
	Password      string         `gorm:"size:255;not null" json:"-"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	RatingSum     int64          `gorm:"not null;default:0" json:"-"`
	RatingCount   int64          `gorm:"not null;default:0" json:"-"`
	AverageRating float64        `gorm:"not null;default:0" json:"average_rating"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Role *Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID            uint      `json:"id"`
	EmployeeID    string    `json:"employee_id"`
	EmployeeName  string    `json:"employee_name"`
	Email         string    `json:"email"`
	Department    string    `json:"department"`
	Designation   string    `json:"designation"`
	ContactNo     string    `json:"contact_no"`
	BloodGroup    string    `json:"blood_group"`
	JoiningDate   time.Time `json:"joining_date"`
	PhotoPath     string    `json:"photo_path,omitempty"`
	Role          string    `json:"role,omitempty"`
	IsActive      bool      `json:"is_active"`
	AverageRating float64   `json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	resp := &UserResponse{
		ID:            u.ID,
		EmployeeID:    u.EmployeeID,
		EmployeeName:  u.EmployeeName,
		Email:         u.Email,
		Department:    u.Department,
		Designation:   u.Designation,
		ContactNo:     u.ContactNo,
		BloodGroup:    u.BloodGroup,
		JoiningDate:   u.JoiningDate,
		PhotoPath:     u.PhotoPath,
		IsActive:      u.IsActive,
		AverageRating: u.AverageRating,
		CreatedAt:     u.CreatedAt,
	}
	if u.Role != nil {
		resp.Role = u.Role.Name
	}
	return resp
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Password Reset OTP
// ============================================================

// PasswordOTP represents password_otps table.
// Only the most recently issued code per email is kept; rows are
// deleted on successful reset and swept after expiry.
type PasswordOTP struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:100;not null;index" json:"email"`
	Code      string    `gorm:"size:6;not null" json:"-"`
	Attempts  int       `gorm:"not null;default:0" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PasswordOTP) TableName() string {
	return "password_otps"
}

func (o *PasswordOTP) IsExpired() bool {
	return time.Now().After(o.ExpiresAt)
}

// ============================================================
// Customer Ratings
// ============================================================

// Rating represents ratings table
type Rating struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	EmployeeID    uint      `gorm:"not null;index" json:"employee_id"`
	CustomerName  string    `gorm:"size:100;not null" json:"customer_name"`
	CustomerEmail string    `gorm:"size:100;not null" json:"customer_email"`
	CustomerPhone string    `gorm:"size:20;not null" json:"customer_phone"`
	Rating        int       `gorm:"not null" json:"rating"`
	Feedback      string    `gorm:"type:text" json:"feedback,omitempty"`
	InRange       bool      `gorm:"not null;default:false" json:"in_range"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	Employee *User `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

func (Rating) TableName() string {
	return "ratings"
}

// RatingResponse DTO
type RatingResponse struct {
	ID            uint      `json:"id"`
	EmployeeID    uint      `json:"employee_id"`
	EmployeeName  string    `json:"employee_name,omitempty"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	Rating        int       `json:"rating"`
	Feedback      string    `json:"feedback,omitempty"`
	InRange       bool      `json:"in_range"`
	CreatedAt     time.Time `json:"created_at"`
}

func (r *Rating) ToResponse() *RatingResponse {
	resp := &RatingResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Rating:        r.Rating,
		Feedback:      r.Feedback,
		InRange:       r.InRange,
		CreatedAt:     r.CreatedAt,
	}
	if r.Employee != nil {
		resp.EmployeeName = r.Employee.EmployeeName
	}
	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Role{},
		&User{},
		&RefreshToken{},
		&PasswordOTP{},
		&Rating{},
	)
}
