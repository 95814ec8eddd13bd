package middleware

import (
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/notedeck/notedeck/internal/config"
	"github.com/notedeck/notedeck/internal/dto"
)

// JWTProtected guards a route group with the HS256 access token. A missing or
// malformed header is 401; a token that fails verification is 403.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{Message: "Unauthorized"})
			}
			return c.Status(fiber.StatusForbidden).JSON(dto.MessageResponse{Message: "Forbidden"})
		},
	})
}
