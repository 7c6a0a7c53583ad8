package http

import (
	"errors"

	"github.com/Ricky0403/SoftwareProject/internal/shared/httpserver"
	"github.com/Ricky0403/SoftwareProject/internal/shared/logger"
	"github.com/Ricky0403/SoftwareProject/internal/user/application"
	"github.com/Ricky0403/SoftwareProject/internal/user/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// UserHandler exposes the account endpoints: registration, session
// login/logout and the profile view.
type UserHandler struct {
	service application.UserService
	server  *httpserver.Server
}

func NewUserHandler(service application.UserService, server *httpserver.Server) *UserHandler {
	return &UserHandler{service: service, server: server}
}

func (h *UserHandler) RegisterRoutes(app *fiber.App) {
	auth := app.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Get("/logout", h.Logout)

	users := app.Group("/users", h.server.RequireAuth())
	users.Get("/me", h.Me)
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	profile, err := h.service.Register(c.Context(), application.RegisterDTO{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Phone:    req.Phone,
		City:     req.City,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken), errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			log.Error("Registration failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server error during registration"})
		}
	}
	return c.JSON(fiber.Map{"success": true, "user": profile})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	profile, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUserNotActive):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			log.Error("Login failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server error during login"})
		}
	}

	if err := h.server.SetSessionUser(c, profile.ID.String()); err != nil {
		log.Error("Failed to save session", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server error during login"})
	}
	return c.JSON(fiber.Map{"success": true, "user": profile})
}

func (h *UserHandler) Logout(c *fiber.Ctx) error {
	if err := h.server.ClearSession(c); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error during logout"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Locals("user_id").(string))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
	}
	profile, err := h.service.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server error"})
	}
	return c.JSON(fiber.Map{"success": true, "user": profile})
}
