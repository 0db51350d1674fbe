package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/adapters/persistence/repositories"
	"staffhub/internal/config"
	"staffhub/internal/core/domain"

	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

// UserService handles employee directory management
type UserService struct {
	userRepo repositories.UserRepository
	roleRepo repositories.RoleRepository
	cfg      *config.Config
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	cfg *config.Config,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		cfg:      cfg,
	}
}

// ListUsersOutput represents list users output
type ListUsersOutput struct {
	Users []*models.UserResponse `json:"users"`
	Total int64                  `json:"total"`
}

// UpdateUserInput represents an admin update; nil fields are left unchanged
type UpdateUserInput struct {
	EmployeeName *string    `json:"employee_name"`
	Email        *string    `json:"email"`
	Department   *string    `json:"department"`
	Designation  *string    `json:"designation"`
	ContactNo    *string    `json:"contact_no"`
	BloodGroup   *string    `json:"blood_group"`
	JoiningDate  *time.Time `json:"joining_date"`
	RoleID       *uint      `json:"role_id"`
	IsActive     *bool      `json:"is_active"`
	PhotoPath    *string    `json:"-"`
}

// QRCodeResult carries the generated QR file path and the encoded URL
type QRCodeResult struct {
	QRCodePath string `json:"qr_code_path"`
	ProfileURL string `json:"profile_url"`
}

// List lists users with pagination
func (s *UserService) List(ctx context.Context, offset, limit int) (*ListUsersOutput, error) {
	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}

	return &ListUsersOutput{Users: responses, Total: total}, nil
}

// GetByID gets a user by ID
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// Update applies a partial update to a user
func (s *UserService) Update(ctx context.Context, id uint, input *UpdateUserInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateEmail
		}
		user.Email = *input.Email
	}
	if input.RoleID != nil && *input.RoleID != user.RoleID {
		exists, err := s.roleRepo.Exists(ctx, *input.RoleID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.ErrInvalidRole
		}
		user.RoleID = *input.RoleID
		user.Role = nil
	}
	if input.EmployeeName != nil {
		user.EmployeeName = *input.EmployeeName
	}
	if input.Department != nil {
		user.Department = *input.Department
	}
	if input.Designation != nil {
		user.Designation = *input.Designation
	}
	if input.ContactNo != nil {
		user.ContactNo = *input.ContactNo
	}
	if input.BloodGroup != nil {
		user.BloodGroup = *input.BloodGroup
	}
	if input.JoiningDate != nil {
		user.JoiningDate = *input.JoiningDate
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.PhotoPath != nil {
		user.PhotoPath = *input.PhotoPath
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	updated, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return user.ToResponse(), nil
	}
	return updated.ToResponse(), nil
}

// Delete soft deletes a user
func (s *UserService) Delete(ctx context.Context, id uint) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

// GenerateQRCode renders a PNG linking to the employee's public profile
// and stores it under the upload directory.
func (s *UserService) GenerateQRCode(ctx context.Context, id uint) (*QRCodeResult, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	profileURL := fmt.Sprintf("%s/%d", strings.TrimRight(s.cfg.ProfileBaseURL, "/"), user.ID)

	dirName := strings.ReplaceAll(user.EmployeeName, " ", "_")
	qrDir := filepath.Join(s.cfg.Upload.Dir, "qr", dirName)
	if err := os.MkdirAll(qrDir, 0o755); err != nil {
		return nil, err
	}

	qrPath := filepath.Join(qrDir, fmt.Sprintf("%d.png", user.ID))
	if err := qrcode.WriteFile(profileURL, qrcode.Medium, 256, qrPath); err != nil {
		return nil, err
	}

	return &QRCodeResult{QRCodePath: qrPath, ProfileURL: profileURL}, nil
}
