package middleware

import (
	"strings"

	"go-pos-api/internal/repository"
	"go-pos-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the bearer token and sets the operator's identity in
// context. The engine trusts only this server-attached identity, never a
// user id from the request body.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"message": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"message": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"message": "Invalid or expired token"})
		}

		// The token may outlive the account; check the user still exists
		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"message": "User not found"})
		}
		if !user.IsActive {
			return c.Status(401).JSON(fiber.Map{"message": "User account is inactive"})
		}

		c.Locals("user_id", user.ID.String())
		c.Locals("username", user.Username)
		c.Locals("user_role", user.Role)

		return c.Next()
	}
}

// RequireRole allows only the listed roles past this point
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"message": "Forbidden"})
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"message": "Forbidden: requires one of " + strings.Join(roles, ", ") + " roles",
		})
	}
}
