package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/linkdeck/linkdeck-backend/internal/config"
	"github.com/linkdeck/linkdeck-backend/internal/models"
)

// IssueSessionToken mints the HS256 session JWT set after a successful login.
func IssueSessionToken(cfg *config.Config, user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(cfg.SessionExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SessionSecret))
}

// SetSessionCookie attaches the session token as an httpOnly cookie.
func SetSessionCookie(c *fiber.Ctx, cfg *config.Config, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(cfg.SessionExpiry),
		HTTPOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(c *fiber.Ctx, cfg *config.Config) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
