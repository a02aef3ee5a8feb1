package handlers

import (
	"errors"
	"log/slog"
	"time"

	"corvus/internal/config"
	"corvus/internal/database"
	"corvus/internal/dto"
	"corvus/internal/middleware"
	"corvus/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

// Register handles POST /api/auth/register - creates a user and opens a session.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Email, password and name are required",
		})
	}

	user, token, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: "Email already registered",
			})
		}
		slog.Error("registration failed", "error", err, "path", c.Path())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to register",
		})
	}

	middleware.SetSessionCookie(c, h.cfg, token)
	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{
		Success: true,
		User:    dto.NewUserResponse(user),
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Email and password are required",
		})
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid email or password",
			})
		}
		slog.Error("login failed", "error", err, "path", c.Path())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to login",
		})
	}

	middleware.SetSessionCookie(c, h.cfg, token)
	return c.JSON(dto.AuthResponse{
		Success: true,
		User:    dto.NewUserResponse(user),
	})
}

// Logout handles GET /api/auth/logout - clears the cookie even when session
// deletion fails, then redirects to the dashboard root.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(config.SessionCookieName); token != "" {
		if err := h.authService.DeleteSession(token); err != nil {
			slog.Error("session deletion failed", "error", err, "path", c.Path())
		}
	}
	middleware.ClearSessionCookie(c, h.cfg)
	return c.Redirect("/", fiber.StatusFound)
}

// Me handles GET /api/auth/me - returns the current user or null.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.JSON(dto.MeResponse{User: nil})
	}
	resp := dto.NewUserResponse(user)
	return c.JSON(dto.MeResponse{User: &resp})
}

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check handles GET /api/health.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}
