package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// CurrentUsername extracts the username from the UserInfo claim of the
// verified token in context. Empty when unauthenticated.
func CurrentUsername(c *fiber.Ctx) string {
	info := userInfo(c)
	username, _ := info["username"].(string)
	return username
}

// CurrentRoles extracts the role labels from the UserInfo claim.
func CurrentRoles(c *fiber.Ctx) []string {
	info := userInfo(c)
	raw, ok := info["roles"].([]interface{})
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}

func userInfo(c *fiber.Ctx) map[string]interface{} {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	info, _ := claims["UserInfo"].(map[string]interface{})
	return info
}
