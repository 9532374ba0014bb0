package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/linkdeck/linkdeck-backend/internal/auth"
	"github.com/linkdeck/linkdeck-backend/internal/config"
	"github.com/linkdeck/linkdeck-backend/internal/dto"
	"github.com/linkdeck/linkdeck-backend/internal/services"
)

const stateCookieName = "oauth_state"

type AuthHandler struct {
	cfg         *config.Config
	google      *auth.GoogleClient
	authService *services.AuthService
}

func NewAuthHandler(cfg *config.Config, google *auth.GoogleClient, authService *services.AuthService) *AuthHandler {
	return &AuthHandler{cfg: cfg, google: google, authService: authService}
}

// GoogleLogin redirects to the Google consent screen with a fresh state
// nonce pinned in a short-lived cookie.
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	state := uuid.New().String()
	c.Cookie(&fiber.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect(h.google.AuthCodeURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback finishes the OAuth flow. An allow-list rejection routes to
// the access-denied page; every other failure falls back to the app root
// without a session.
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	state := c.Query("state")
	if state == "" || state != c.Cookies(stateCookieName) {
		slog.Warn("oauth state mismatch")
		return c.Redirect(h.rootURL(), fiber.StatusTemporaryRedirect)
	}
	c.ClearCookie(stateCookieName)

	code := c.Query("code")
	if code == "" {
		return c.Redirect(h.rootURL(), fiber.StatusTemporaryRedirect)
	}

	profile, err := h.google.FetchProfile(c.Context(), code)
	if err != nil {
		slog.Error("google profile fetch failed", "error", err)
		return c.Redirect(h.rootURL(), fiber.StatusTemporaryRedirect)
	}

	user, err := h.authService.ResolveProfile(profile)
	if err != nil {
		if errors.Is(err, services.ErrNotAllowed) {
			return c.Redirect(h.accessDeniedURL(), fiber.StatusTemporaryRedirect)
		}
		slog.Error("login failed", "error", err)
		return c.Redirect(h.rootURL(), fiber.StatusTemporaryRedirect)
	}

	token, err := auth.IssueSessionToken(h.cfg, user)
	if err != nil {
		slog.Error("session token issue failed", "error", err, "user_id", user.ID.String())
		return fiber.NewError(fiber.StatusInternalServerError, "Login failed")
	}
	auth.SetSessionCookie(c, h.cfg, token)

	return c.Redirect(h.rootURL(), fiber.StatusTemporaryRedirect)
}

// Me returns the authenticated identity.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Not authenticated",
		})
	}
	return c.JSON(dto.MeResponse{
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Picture: user.Picture,
		IsAdmin: user.IsAdmin,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	auth.ClearSessionCookie(c, h.cfg)
	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}

// rootURL is where successful and generically-failed logins land. The SPA is
// served from this process in production; in development it runs separately.
func (h *AuthHandler) rootURL() string {
	if !h.cfg.IsProduction() && h.cfg.FrontendURL != "" {
		return h.cfg.FrontendURL
	}
	return "/"
}

func (h *AuthHandler) accessDeniedURL() string {
	if !h.cfg.IsProduction() && h.cfg.FrontendURL != "" {
		return h.cfg.FrontendURL + "/access-denied"
	}
	return "/access-denied"
}
