package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/linkdeck/linkdeck-backend/internal/models"
	"github.com/linkdeck/linkdeck-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGroupTestApp(user *models.User, h *GroupHandler) *fiber.App {
	app := fiber.New()
	app.Delete("/api/groups/:id", withUser(user), h.Delete)
	return app
}

func TestGroupDelete_MalformedSelectionIsIgnored(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	svc := services.NewGroupService(db)

	group, err := svc.Create(user.ID, "work")
	require.NoError(t, err)

	app := newGroupTestApp(user, NewGroupHandler(svc))
	req := httptest.NewRequest(fiber.MethodDelete,
		"/api/groups/"+group.ID.String()+"?selectedGroupId=not-a-uuid", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	groups, err := svc.List(user.ID)
	require.NoError(t, err)
	assert.Empty(t, groups, "the group should be soft-deleted despite the junk selection value")
}

func TestGroupDelete_SelectedGroupRejected(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	svc := services.NewGroupService(db)

	group, err := svc.Create(user.ID, "work")
	require.NoError(t, err)

	app := newGroupTestApp(user, NewGroupHandler(svc))
	req := httptest.NewRequest(fiber.MethodDelete,
		"/api/groups/"+group.ID.String()+"?selectedGroupId="+group.ID.String(), nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	groups, err := svc.List(user.ID)
	require.NoError(t, err)
	assert.Len(t, groups, 1, "the selected group must survive")
}
