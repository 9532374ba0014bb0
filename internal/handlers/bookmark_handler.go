package handlers

import (
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/linkdeck/linkdeck-backend/internal/auth"
	"github.com/linkdeck/linkdeck-backend/internal/dto"
	"github.com/linkdeck/linkdeck-backend/internal/models"
	"github.com/linkdeck/linkdeck-backend/internal/services"
	"github.com/linkdeck/linkdeck-backend/internal/storage"
)

type BookmarkHandler struct {
	service  *services.BookmarkService
	uploader storage.Uploader
}

func NewBookmarkHandler(service *services.BookmarkService, uploader storage.Uploader) *BookmarkHandler {
	return &BookmarkHandler{service: service, uploader: uploader}
}

func (h *BookmarkHandler) List(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	var groupID *uuid.UUID
	if raw := c.Query("groupId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return badRequest(c, "Invalid groupId")
		}
		groupID = &id
	}

	bookmarks, err := h.service.List(user.ID, groupID)
	if err != nil {
		return err
	}
	return c.JSON(bookmarks)
}

// Create handles the multipart add-bookmark form. An attached image is
// validated and uploaded before any record is written.
func (h *BookmarkHandler) Create(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	url := c.FormValue("url")
	name := c.FormValue("name")
	groupID, groupErr := uuid.Parse(c.FormValue("groupId"))
	if url == "" || name == "" || groupErr != nil {
		return badRequest(c, "URL, name, and groupId are required")
	}

	imageURL, err := h.ingestImage(c, user)
	if err != nil {
		return h.imageError(c, err)
	}

	bookmark, err := h.service.Create(user.ID, url, name, groupID, imageURL)
	if err != nil {
		if errors.Is(err, services.ErrFieldsRequired) {
			return badRequest(c, "URL, name, and groupId are required")
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(bookmark)
}

func (h *BookmarkHandler) Update(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	bookmarkID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c, "Bookmark not found")
	}

	// Resolve ownership before touching storage so a miss cannot orphan an
	// uploaded object.
	if _, err := h.service.Get(user.ID, bookmarkID); err != nil {
		if errors.Is(err, services.ErrBookmarkNotFound) {
			return notFound(c, "Bookmark not found")
		}
		return err
	}

	url := c.FormValue("url")
	name := c.FormValue("name")

	imageURL, err := h.ingestImage(c, user)
	if err != nil {
		return h.imageError(c, err)
	}

	bookmark, err := h.service.Update(user.ID, bookmarkID, url, name, imageURL, imageURL != "")
	if err != nil {
		if errors.Is(err, services.ErrBookmarkNotFound) {
			return notFound(c, "Bookmark not found")
		}
		return err
	}
	return c.JSON(bookmark)
}

func (h *BookmarkHandler) Delete(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	bookmarkID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c, "Bookmark not found")
	}

	if err := h.service.SoftDelete(user.ID, bookmarkID); err != nil {
		if errors.Is(err, services.ErrBookmarkNotFound) {
			return notFound(c, "Bookmark not found")
		}
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Bookmark deleted successfully"})
}

func (h *BookmarkHandler) Restore(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	bookmarkID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c, "Deleted bookmark not found")
	}

	bookmark, err := h.service.Restore(user.ID, bookmarkID)
	if err != nil {
		if errors.Is(err, services.ErrBookmarkNotFound) {
			return notFound(c, "Deleted bookmark not found")
		}
		return err
	}
	return c.JSON(bookmark)
}

func (h *BookmarkHandler) Move(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	bookmarkID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c, "Bookmark not found")
	}

	var req dto.MoveBookmarkRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	destGroupID, err := uuid.Parse(req.GroupID)
	if err != nil {
		return badRequest(c, "groupId is required")
	}

	bookmark, err := h.service.Move(user.ID, bookmarkID, destGroupID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGroupIDRequired):
			return badRequest(c, "groupId is required")
		case errors.Is(err, services.ErrBookmarkNotFound):
			return notFound(c, "Bookmark not found")
		case errors.Is(err, services.ErrGroupNotFound):
			return notFound(c, "Target group not found")
		}
		return err
	}
	return c.JSON(bookmark)
}

func (h *BookmarkHandler) Reorder(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.ReorderBookmarksRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.BookmarkIDs == nil {
		return badRequest(c, "bookmarkIds must be an array")
	}

	if err := h.service.Reorder(user.ID, req.BookmarkIDs); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Bookmarks reordered successfully"})
}

// ingestImage validates and uploads the optional "image" form file, returning
// the stored URL or "" when no file was attached.
func (h *BookmarkHandler) ingestImage(c *fiber.Ctx, user *models.User) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil || fh == nil {
		return "", nil
	}
	if err := storage.ValidateImage(fh); err != nil {
		return "", err
	}

	file, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	return h.uploader.Upload(
		c.Context(),
		file,
		fh.Header.Get("Content-Type"),
		fh.Filename,
		user.Email,
	)
}

func (h *BookmarkHandler) imageError(c *fiber.Ctx, err error) error {
	if errors.Is(err, storage.ErrInvalidImageType) || errors.Is(err, storage.ErrImageTooLarge) {
		return badRequest(c, err.Error())
	}
	return err
}
