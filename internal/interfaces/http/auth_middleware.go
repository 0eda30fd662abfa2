package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockvoz-api/internal/application/dto"
	"github.com/jhoicas/stockvoz-api/pkg/jwt"
)

// Locals keys para OwnerKey y Actor en Fiber.
const (
	LocalOwnerKey = "owner_key"
	LocalActor    = "actor"
)

// AuthMiddleware valida el Bearer Token JWT y extrae OwnerKey y Actor a
// c.Locals. El tenant nunca viaja en el body ni en la URL: solo en el token.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		ownerKey, actor, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalOwnerKey, ownerKey)
		c.Locals(LocalActor, actor)
		return c.Next()
	}
}

// GetOwnerKey devuelve el tenant del contexto (después del middleware de auth).
func GetOwnerKey(c *fiber.Ctx) string {
	v := c.Locals(LocalOwnerKey)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetActor devuelve el actor del contexto (después del middleware de auth).
func GetActor(c *fiber.Ctx) string {
	v := c.Locals(LocalActor)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
