package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/linkdeck/linkdeck-backend/internal/models"
)

// UserIDFromToken extracts the user UUID from the verified JWT in context.
func UserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("session").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

// CurrentUser returns the user record loaded by the session middleware.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals("currentUser").(*models.User)
	if !ok || user == nil {
		return nil, errors.New("no user in context")
	}
	return user, nil
}
