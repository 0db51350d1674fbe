package handlers

import (
	"errors"
	"strings"

	"staffhub/internal/core/domain"
	"staffhub/internal/core/services"
	"staffhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RoleHandler handles role management endpoints
type RoleHandler struct {
	roleService *services.RoleService
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleService *services.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// RoleRequest represents create/update role request body
type RoleRequest struct {
	RoleName string `json:"role_name"`
}

// Create adds a new role
// @Summary Create role
// @Tags Roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RoleRequest true "Role name"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /roles [post]
func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var req RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	name := strings.TrimSpace(req.RoleName)
	if name == "" {
		return response.BadRequest(c, "Role name is required")
	}

	role, err := h.roleService.Create(c.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrRoleExists) {
			return response.Conflict(c, "Role already exists")
		}
		return response.InternalServerError(c, "Failed to create role")
	}

	return response.Created(c, "Role created successfully", role)
}

// List returns all roles
// @Summary List roles
// @Tags Roles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /roles [get]
func (h *RoleHandler) List(c *fiber.Ctx) error {
	roles, err := h.roleService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list roles")
	}

	return response.Success(c, "Roles retrieved successfully", roles)
}

// Get returns a single role
// @Summary Get role by ID
// @Tags Roles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Role ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /roles/{id} [get]
func (h *RoleHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid role ID")
	}

	role, err := h.roleService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return response.NotFound(c, "Role not found")
		}
		return response.InternalServerError(c, "Failed to get role")
	}

	return response.Success(c, "Role retrieved successfully", role)
}

// Update renames a role
// @Summary Update role
// @Tags Roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Role ID"
// @Param body body RoleRequest true "New role name"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /roles/{id} [put]
func (h *RoleHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid role ID")
	}

	var req RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	name := strings.TrimSpace(req.RoleName)
	if name == "" {
		return response.BadRequest(c, "Role name is required")
	}

	role, err := h.roleService.Update(c.Context(), id, name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoleNotFound):
			return response.NotFound(c, "Role not found")
		case errors.Is(err, domain.ErrRoleExists):
			return response.Conflict(c, "Role already exists")
		default:
			return response.InternalServerError(c, "Failed to update role")
		}
	}

	return response.Success(c, "Role updated successfully", role)
}

// Delete removes a role
// @Summary Delete role
// @Tags Roles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Role ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /roles/{id} [delete]
func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid role ID")
	}

	if err := h.roleService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return response.NotFound(c, "Role not found")
		}
		return response.InternalServerError(c, "Failed to delete role")
	}

	return response.Success(c, "Role deleted successfully", nil)
}
