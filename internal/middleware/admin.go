package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/linkdeck/linkdeck-backend/internal/auth"
	"github.com/linkdeck/linkdeck-backend/internal/dto"
)

// AdminRequired rejects any session whose user lacks the admin flag.
// Must run after LoadCurrentUser.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Not authenticated",
			})
		}
		if !user.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}
		return c.Next()
	}
}
