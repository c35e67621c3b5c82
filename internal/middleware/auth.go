package middleware

import (
	"devconnector/internal/service"

	"github.com/gofiber/fiber/v3"
)

// UserIDKey is the Locals key the auth middleware stores the caller's user
// id under.
const UserIDKey = "userID"

// RequireAuth verifies the x-auth-token header and makes the embedded user
// id available to downstream handlers.
func RequireAuth(jwtService *service.JWTService) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := c.Get("x-auth-token")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"msg": "No token, authorization denied",
			})
		}

		userID, err := jwtService.Verify(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"msg": "Token is not valid",
			})
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// UserID returns the authenticated user id set by RequireAuth.
func UserID(c fiber.Ctx) string {
	if id, ok := c.Locals(UserIDKey).(string); ok {
		return id
	}
	return ""
}
