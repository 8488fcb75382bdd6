package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ferreteria/inventario-api/internal/application/dto"
	pkgjwt "github.com/ferreteria/inventario-api/pkg/jwt"
)

const (
	localsSubject = "auth_subject"
	localsRole    = "auth_role"
)

// AuthMiddleware valida el Bearer token y carga sujeto y rol en locals.
// Las mutaciones del catálogo pasan por aquí; las consultas son públicas.
func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fault{
				Code: "UNAUTHORIZED", Message: "token requerido",
			})
		}
		subject, role, err := pkgjwt.Parse(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fault{
				Code: "UNAUTHORIZED", Message: "token inválido o expirado",
			})
		}
		c.Locals(localsSubject, subject)
		c.Locals(localsRole, role)
		return c.Next()
	}
}

// GetSubject devuelve el sujeto autenticado, o vacío si no hay token.
func GetSubject(c *fiber.Ctx) string {
	if s, ok := c.Locals(localsSubject).(string); ok {
		return s
	}
	return ""
}
