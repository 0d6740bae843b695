package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"walle.finance/internal/auth"
)

// JWTAuth rejects requests without a valid bearer token and stores the
// verified identity claims in Locals for downstream handlers.
func JWTAuth(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "MISSING_TOKEN", "Missing Authorization header.")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "Invalid or expired token.")
		}

		c.Locals("id", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("username", claims.Username)
		c.Locals("full_name", claims.FullName)

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"code":    code,
		"message": message,
		"data":    nil,
	})
}
