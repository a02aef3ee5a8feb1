package middleware

import (
	"log/slog"

	"corvus/internal/config"
	"corvus/internal/dto"
	"corvus/internal/models"
	"corvus/internal/services"
	"github.com/gofiber/fiber/v2"
)

const userLocalKey = "current_user"

// LoadSession resolves the session cookie into a user when valid and stores
// it in Locals. It never rejects the request; handlers that can serve
// anonymous callers (me, logout, GraphQL) use this.
func LoadSession(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(config.SessionCookieName)
		if token != "" {
			user, err := auth.ValidateSession(token)
			if err != nil {
				slog.Error("session validation failed", "error", err, "path", c.Path())
			} else if user != nil {
				c.Locals(userLocalKey, user)
			}
		}
		return c.Next()
	}
}

// RequireSession rejects requests without a valid session. Missing, invalid
// and expired cookies all produce the same 401.
func RequireSession(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(config.SessionCookieName)
		if token != "" {
			user, err := auth.ValidateSession(token)
			if err != nil {
				slog.Error("session validation failed", "error", err, "path", c.Path())
			} else if user != nil {
				c.Locals(userLocalKey, user)
				return c.Next()
			}
		}
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
}

// CurrentUser returns the authenticated user placed in Locals, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals(userLocalKey).(*models.User); ok {
		return user
	}
	return nil
}
