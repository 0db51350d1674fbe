package services

import (
	"context"
	"errors"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/adapters/persistence/repositories"
	"staffhub/internal/core/domain"

	"gorm.io/gorm"
)

// RoleService handles role management business logic
type RoleService struct {
	roleRepo repositories.RoleRepository
}

// NewRoleService creates a new role service
func NewRoleService(roleRepo repositories.RoleRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo}
}

// Create creates a role with a unique name
func (s *RoleService) Create(ctx context.Context, name string) (*models.Role, error) {
	if name == "" {
		return nil, domain.ErrValidation
	}

	_, err := s.roleRepo.GetByName(ctx, name)
	if err == nil {
		return nil, domain.ErrRoleExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := &models.Role{Name: name}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// GetByID gets a role by ID
func (s *RoleService) GetByID(ctx context.Context, id uint) (*models.Role, error) {
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, err
	}
	return role, nil
}

// List lists all roles
func (s *RoleService) List(ctx context.Context) ([]*models.Role, error) {
	return s.roleRepo.List(ctx)
}

// Update renames a role
func (s *RoleService) Update(ctx context.Context, id uint, name string) (*models.Role, error) {
	if name == "" {
		return nil, domain.ErrValidation
	}

	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, err
	}

	role.Name = name
	if err := s.roleRepo.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Delete removes a role
func (s *RoleService) Delete(ctx context.Context, id uint) error {
	if _, err := s.roleRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRoleNotFound
		}
		return err
	}
	return s.roleRepo.Delete(ctx, id)
}
