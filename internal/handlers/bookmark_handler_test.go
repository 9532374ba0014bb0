package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/linkdeck/linkdeck-backend/internal/models"
	"github.com/linkdeck/linkdeck-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUploader struct {
	calls int
}

func (r *recordingUploader) Upload(_ context.Context, _ io.Reader, _, originalName, _ string) (string, error) {
	r.calls++
	return "https://cdn.test/" + originalName, nil
}

func multipartBody(t *testing.T, fields map[string]string, imageName, imageType string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if imageName != "" {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, imageName))
		hdr.Set("Content-Type", imageType)
		part, err := w.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func newBookmarkTestApp(user *models.User, h *BookmarkHandler) *fiber.App {
	app := fiber.New()
	app.Put("/api/bookmarks/:id", withUser(user), h.Update)
	return app
}

func TestBookmarkUpdate_UnknownIDDoesNotUpload(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	uploader := &recordingUploader{}
	h := NewBookmarkHandler(services.NewBookmarkService(db), uploader)
	app := newBookmarkTestApp(user, h)

	body, contentType := multipartBody(t,
		map[string]string{"url": "https://a.com", "name": "A"},
		"pic.png", "image/png")
	req := httptest.NewRequest(fiber.MethodPut, "/api/bookmarks/"+uuid.New().String(), body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Zero(t, uploader.calls, "nothing should reach storage when the bookmark is missing")
}

func TestBookmarkUpdate_ForeignBookmarkDoesNotUpload(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	group := createTestGroup(t, db, owner.ID, "main")

	svc := services.NewBookmarkService(db)
	bookmark, err := svc.Create(owner.ID, "https://a.com", "A", group.ID, "")
	require.NoError(t, err)

	uploader := &recordingUploader{}
	app := newBookmarkTestApp(other, NewBookmarkHandler(svc, uploader))

	body, contentType := multipartBody(t,
		map[string]string{"url": "https://b.com", "name": "B"},
		"pic.png", "image/png")
	req := httptest.NewRequest(fiber.MethodPut, "/api/bookmarks/"+bookmark.ID.String(), body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Zero(t, uploader.calls)
}

func TestBookmarkUpdate_ReplacesImageOnOwnedBookmark(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	group := createTestGroup(t, db, user.ID, "main")

	svc := services.NewBookmarkService(db)
	bookmark, err := svc.Create(user.ID, "https://a.com", "A", group.ID, "https://cdn.test/old.png")
	require.NoError(t, err)

	uploader := &recordingUploader{}
	app := newBookmarkTestApp(user, NewBookmarkHandler(svc, uploader))

	body, contentType := multipartBody(t,
		map[string]string{"url": "https://a.com", "name": "A renamed"},
		"new.png", "image/png")
	req := httptest.NewRequest(fiber.MethodPut, "/api/bookmarks/"+bookmark.ID.String(), body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, uploader.calls)

	var stored models.Bookmark
	require.NoError(t, db.First(&stored, "id = ?", bookmark.ID).Error)
	assert.Equal(t, "A renamed", stored.Name)
	assert.Equal(t, "https://cdn.test/new.png", stored.Image)
}
