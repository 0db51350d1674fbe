package middleware

import (
	"errors"
	"strings"

	"staffhub/internal/config"
	"staffhub/internal/pkg/jwt"
	"staffhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates the bearer access token and loads the caller's
// identity into the request context. Access tokens travel only in the
// Authorization header; the refresh token cookie is never accepted here.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("employeeID", claims.EmployeeID)
		c.Locals("employeeName", claims.EmployeeName)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// RoleMiddleware restricts access to the given roles
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware("admin")
}

// AdminOrSubadmin allows admin and subadmin roles
func AdminOrSubadmin() fiber.Handler {
	return RoleMiddleware("admin", "subadmin")
}
