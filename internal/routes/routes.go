package routes

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/linkdeck/linkdeck-backend/internal/config"
	"github.com/linkdeck/linkdeck-backend/internal/handlers"
	"github.com/linkdeck/linkdeck-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	groupHandler *handlers.GroupHandler,
	bookmarkHandler *handlers.BookmarkHandler,
	allowedEmailHandler *handlers.AllowedEmailHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// OAuth flow is public; login attempts get a stricter limit
	authGroup := api.Group("/auth")
	authGroup.Use(limiter.New(limiter.Config{
		Max:               20,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	authGroup.Get("/google", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)

	// Everything below requires a session cookie
	session := []fiber.Handler{
		middleware.SessionProtected(cfg),
		middleware.LoadCurrentUser(db),
	}

	api.Get("/auth/me", append(session, authHandler.Me)...)
	api.Post("/auth/logout", append(session, authHandler.Logout)...)

	groups := api.Group("/groups", session...)
	groups.Get("/", groupHandler.List)
	groups.Post("/", groupHandler.Create)
	groups.Put("/:id", groupHandler.Rename)
	groups.Delete("/:id", groupHandler.Delete)
	groups.Post("/:id/restore", groupHandler.Restore)

	bookmarks := api.Group("/bookmarks", session...)
	bookmarks.Get("/", bookmarkHandler.List)
	bookmarks.Post("/", bookmarkHandler.Create)
	bookmarks.Post("/reorder", bookmarkHandler.Reorder)
	bookmarks.Put("/:id", bookmarkHandler.Update)
	bookmarks.Delete("/:id", bookmarkHandler.Delete)
	bookmarks.Post("/:id/restore", bookmarkHandler.Restore)
	bookmarks.Patch("/:id/move", bookmarkHandler.Move)

	// Allow-list management, admins only
	admin := api.Group("/allowed-emails", append(session, middleware.AdminRequired())...)
	admin.Get("/", allowedEmailHandler.List)
	admin.Post("/", allowedEmailHandler.Add)
	admin.Delete("/:id", allowedEmailHandler.Remove)

	// Unknown API paths are 404, not the SPA shell
	api.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	})

	// Everything else serves the client application shell
	app.Static("/", cfg.ClientDir)
	app.Get("/*", func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api") {
			return c.Next()
		}
		return c.SendFile(filepath.Join(cfg.ClientDir, "index.html"))
	})
}
