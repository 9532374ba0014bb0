package handlers

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/linkdeck/linkdeck-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.AllowedEmail{},
		&models.Group{},
		&models.Bookmark{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := models.User{
		GoogleID: uuid.New().String(),
		Email:    email,
		Name:     "Test User",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return &user
}

func createTestGroup(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) *models.Group {
	t.Helper()

	group := models.Group{
		Name:   name,
		UserID: userID,
	}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("create test group: %v", err)
	}
	return &group
}

// withUser injects the session user the way LoadCurrentUser does.
func withUser(user *models.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("currentUser", user)
		return c.Next()
	}
}
