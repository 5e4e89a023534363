package handlers

import (
	"deenha/internal/middleware"
	"deenha/internal/models"
	"deenha/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
		logger:      logger,
	}
}

// RegisterRoutes registers the authentication routes. loginLimit guards
// the login endpoint.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, loginLimit fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", loginLimit, h.HandleLogin)
	authRoutes.Post("/logout", middleware.AuthRequired(h.authService), h.HandleLogout)
	authRoutes.Get("/me", middleware.AuthRequired(h.authService), h.HandleMe)
}

// RegisterAdminRoutes registers user management routes behind guard.
func (h *AuthHandler) RegisterAdminRoutes(router fiber.Router, guard fiber.Handler) {
	router.Put("/users/:id/role", guard, h.HandleAssignRole)
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleRegister creates an account without a role.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondError(c, h.logger, "Validation failed", err)
	}

	user := models.User{Email: req.Email, Password: req.Password}
	if err := h.authService.RegisterUser(c.UserContext(), &user); err != nil {
		return respondError(c, h.logger, "Registration failed", err)
	}

	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondError(c, h.logger, "Validation failed", err)
	}

	token, user, err := h.authService.LoginUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		h.logger.Info("login rejected", zap.String("email", req.Email), zap.Error(err))
		return respondError(c, h.logger, "Authentication failed", err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// HandleLogout revokes the bearer token.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	token, _ := middleware.BearerToken(c)
	if err := h.authService.Logout(c.UserContext(), token); err != nil {
		return respondError(c, h.logger, "Logout failed", err)
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// HandleMe returns the signed-in user.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	user, err := h.authService.GetUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, h.logger, "Could not load user", err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// AssignRoleRequest is the body of PUT /admin/users/:id/role.
type AssignRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin employee"`
}

func (h *AuthHandler) HandleAssignRole(c *fiber.Ctx) error {
	var req AssignRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondError(c, h.logger, "Validation failed", err)
	}

	userID := c.Params("id")
	if err := h.authService.AssignRole(c.UserContext(), userID, req.Role); err != nil {
		return respondError(c, h.logger, "Could not assign role", err)
	}
	return c.JSON(fiber.Map{
		"message": "Role assigned",
		"user_id": userID,
		"role":    req.Role,
	})
}
