package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/notedeck/notedeck/internal/config"
	"github.com/notedeck/notedeck/internal/dto"
	"github.com/notedeck/notedeck/internal/services"
)

const refreshCookie = "jwt"

// AuthHandler issues access tokens and manages the httpOnly refresh cookie.
type AuthHandler struct {
	auth *services.AuthService
	cfg  *config.Config
}

func NewAuthHandler(auth *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{auth: auth, cfg: cfg}
}

// Login handles POST /auth.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "Invalid request body"})
	}

	pair, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFieldsRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "All fields are required"})
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{Message: "Unauthorized"})
		}
		return err
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	return c.JSON(dto.LoginResponse{AccessToken: pair.AccessToken})
}

// Refresh handles GET /auth/refresh. The refresh token rotates: the cookie is
// replaced along with the access token.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	raw := c.Cookies(refreshCookie)
	if raw == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{Message: "Unauthorized"})
	}

	pair, err := h.auth.Refresh(raw)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return c.Status(fiber.StatusForbidden).JSON(dto.MessageResponse{Message: "Forbidden"})
		}
		return err
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	return c.JSON(dto.LoginResponse{AccessToken: pair.AccessToken})
}

// Logout handles POST /auth/logout. Without a cookie there is nothing to do.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	raw := c.Cookies(refreshCookie)
	if raw == "" {
		return c.SendStatus(fiber.StatusNoContent)
	}

	if err := h.auth.Logout(raw); err != nil {
		return err
	}

	h.clearRefreshCookie(c)
	return c.JSON(dto.MessageResponse{Message: "Cookie cleared"})
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookie,
		Value:    token,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
		Expires:  time.Now().Add(h.cfg.JWTRefreshExpiry),
	})
}

func (h *AuthHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookie,
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
		Expires:  time.Now().Add(-time.Hour),
	})
}
