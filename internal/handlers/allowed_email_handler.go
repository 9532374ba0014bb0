package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/linkdeck/linkdeck-backend/internal/dto"
	"github.com/linkdeck/linkdeck-backend/internal/services"
)

// AllowedEmailHandler serves the admin-only allow-list endpoints. The admin
// gate itself lives in middleware.
type AllowedEmailHandler struct {
	service *services.AllowListService
}

func NewAllowedEmailHandler(service *services.AllowListService) *AllowedEmailHandler {
	return &AllowedEmailHandler{service: service}
}

func (h *AllowedEmailHandler) List(c *fiber.Ctx) error {
	emails, err := h.service.List()
	if err != nil {
		return err
	}
	return c.JSON(emails)
}

func (h *AllowedEmailHandler) Add(c *fiber.Ctx) error {
	var req dto.AddAllowedEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	allowed, err := h.service.Add(req.Email)
	if err != nil {
		if errors.Is(err, services.ErrEmailRequired) {
			return badRequest(c, "Email is required")
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(allowed)
}

func (h *AllowedEmailHandler) Remove(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c, "Allowed email not found")
	}

	if err := h.service.Remove(id); err != nil {
		if errors.Is(err, services.ErrEmailNotFound) {
			return notFound(c, "Allowed email not found")
		}
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Email removed from allowed list"})
}
