package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/linkdeck/linkdeck-backend/internal/database"
	"github.com/linkdeck/linkdeck-backend/internal/dto"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := database.Ping(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.HealthResponse{
			Status:    "error",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Database:  "disconnected",
		})
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Database:  "connected",
	})
}
