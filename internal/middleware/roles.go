package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/notedeck/notedeck/internal/dto"
)

// RequireRoles allows the request through when the token carries at least one
// of the given role labels. Must run after JWTProtected.
func RequireRoles(allowed ...string) fiber.Handler {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		for _, role := range CurrentRoles(c) {
			if _, ok := allowedSet[role]; ok {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.MessageResponse{Message: "Forbidden"})
	}
}
