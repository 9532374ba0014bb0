package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/linkdeck/linkdeck-backend/internal/auth"
	"github.com/linkdeck/linkdeck-backend/internal/config"
	"github.com/linkdeck/linkdeck-backend/internal/dto"
	"github.com/linkdeck/linkdeck-backend/internal/models"
	"gorm.io/gorm"
)

// SessionProtected verifies the session JWT carried in the httpOnly cookie.
func SessionProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.SessionSecret)},
		TokenLookup: "cookie:" + cfg.CookieName,
		ContextKey:  "session",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Not authenticated",
			})
		},
	})
}

// LoadCurrentUser resolves the session subject to a user record and stores it
// in context locals. Sessions referencing a missing user are rejected.
func LoadCurrentUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Not authenticated",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Not authenticated",
			})
		}

		c.Locals("currentUser", &user)
		return c.Next()
	}
}
