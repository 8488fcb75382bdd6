package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ferreteria/inventario-api/internal/application/auth"
	"github.com/ferreteria/inventario-api/internal/application/dto"
	"github.com/ferreteria/inventario-api/internal/domain"
)

// AuthHandler login del operador del mostrador.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Login del operador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.Fault
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fault{
			Code: "VALIDATION", Message: "cuerpo inválido",
		})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fault{
				Code: "UNAUTHORIZED", Message: "credenciales inválidas",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fault{
			Code: "INTERNAL", Message: "error al iniciar sesión",
		})
	}
	return c.JSON(out)
}
