package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/linkdeck/linkdeck-backend/internal/auth"
	"github.com/linkdeck/linkdeck-backend/internal/dto"
	"github.com/linkdeck/linkdeck-backend/internal/services"
)

type GroupHandler struct {
	service *services.GroupService
}

func NewGroupHandler(service *services.GroupService) *GroupHandler {
	return &GroupHandler{service: service}
}

func (h *GroupHandler) List(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	groups, err := h.service.List(user.ID)
	if err != nil {
		return err
	}
	return c.JSON(groups)
}

func (h *GroupHandler) Create(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	group, err := h.service.Create(user.ID, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrNameRequired) {
			return badRequest(c, "Group name is required")
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

func (h *GroupHandler) Rename(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c, "Group not found")
	}

	var req dto.RenameGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	group, err := h.service.Rename(user.ID, groupID, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrGroupNotFound) {
			return notFound(c, "Group not found")
		}
		return err
	}
	return c.JSON(group)
}

func (h *GroupHandler) Delete(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c, "Group not found")
	}

	// The client passes its current selection; uuid.Nil when absent never
	// matches a real group id.
	selectedID := uuid.Nil
	if raw := c.Query("selectedGroupId"); raw != "" {
		selectedID, err = uuid.Parse(raw)
		if err != nil {
			slog.Debug("ignoring malformed selectedGroupId", "value", raw)
			selectedID = uuid.Nil
		}
	}

	if err := h.service.SoftDelete(user.ID, groupID, selectedID); err != nil {
		switch {
		case errors.Is(err, services.ErrGroupSelected):
			return badRequest(c, "Cannot delete the currently selected group")
		case errors.Is(err, services.ErrGroupNotFound):
			return notFound(c, "Group not found")
		}
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Group deleted successfully"})
}

func (h *GroupHandler) Restore(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c, "Deleted group not found")
	}

	group, err := h.service.Restore(user.ID, groupID)
	if err != nil {
		if errors.Is(err, services.ErrGroupNotFound) {
			return notFound(c, "Deleted group not found")
		}
		return err
	}
	return c.JSON(group)
}
