package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/kit-service/internal/api/dto"
	"github.com/spec-kit/kit-service/internal/service"
	apperrors "github.com/spec-kit/kit-service/pkg/util"
)

// AdminHandler exposes operator login.
type AdminHandler struct {
	auth *service.AdminAuthService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AdminAuthService) *AdminHandler {
	return &AdminHandler{auth: authService}
}

// Login handles POST /auth/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AuthResponse{Token: token, ExpiresAt: exp}})
}
