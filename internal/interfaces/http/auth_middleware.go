package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Garantias-api/internal/application/dto"
	"github.com/jhoicas/Garantias-api/internal/domain/policy"
)

// Locals keys para la identidad autenticada en Fiber.
const (
	LocalUsername = "username"
	LocalRole     = "role"
)

// Identifier resuelve el token a la identidad vigente (username + rol de la BD).
type Identifier interface {
	Identify(ctx context.Context, raw string) (policy.Actor, error)
}

// AuthMiddleware valida el token y deja username y rol en c.Locals.
// Acepta "Authorization: Bearer <token>" y el header heredado "token".
func AuthMiddleware(id Identifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		actor, err := id.Identify(c.UserContext(), raw)
		if err != nil {
			return writeError(c, err)
		}
		c.Locals(LocalUsername, actor.Username)
		c.Locals(LocalRole, actor.Role)
		return c.Next()
	}
}

// RequireRole restringe la ruta a los roles indicados. Va después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "identidad sin rol"})
		}
		if !allowed[role] {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta ruta"})
		}
		return c.Next()
	}
}

// GetUsername devuelve el username del contexto (después del middleware de auth).
func GetUsername(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUsername).(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

func actorFrom(c *fiber.Ctx) policy.Actor {
	return policy.Actor{Username: GetUsername(c), Role: GetRole(c)}
}
