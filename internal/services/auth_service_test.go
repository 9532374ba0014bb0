package services

import (
	"testing"

	"github.com/linkdeck/linkdeck-backend/internal/config"
	"github.com/linkdeck/linkdeck-backend/internal/dto"
	"github.com/linkdeck/linkdeck-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProfile_NotAllowed(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, &config.Config{})

	_, err := svc.ResolveProfile(&dto.GoogleProfile{
		ID:    "google-1",
		Email: "stranger@example.com",
	})
	assert.ErrorIs(t, err, ErrNotAllowed)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Zero(t, count, "no user should be created for a denied email")
}

func TestResolveProfile_FirstLoginCreatesUserAndDefaultGroup(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, &config.Config{})

	require.NoError(t, db.Create(&models.AllowedEmail{Email: "alice@example.com"}).Error)

	user, err := svc.ResolveProfile(&dto.GoogleProfile{
		ID:      "google-alice",
		Email:   "alice@example.com",
		Name:    "Alice",
		Picture: "https://example.com/alice.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice", user.Name)
	assert.False(t, user.IsAdmin)

	var groups []models.Group
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&groups).Error)
	require.Len(t, groups, 1)
	assert.Equal(t, DefaultGroupName, groups[0].Name)
	assert.False(t, groups[0].Deleted)
}

func TestResolveProfile_SecondLoginFindsExistingUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, &config.Config{})

	require.NoError(t, db.Create(&models.AllowedEmail{Email: "alice@example.com"}).Error)

	profile := &dto.GoogleProfile{ID: "google-alice", Email: "alice@example.com", Name: "Alice"}

	first, err := svc.ResolveProfile(profile)
	require.NoError(t, err)
	second, err := svc.ResolveProfile(profile)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	var userCount, groupCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Group{}).Count(&groupCount)
	assert.EqualValues(t, 1, userCount)
	assert.EqualValues(t, 1, groupCount, "default group must not be duplicated")
}

func TestResolveProfile_AdminEmailGetsAdminFlag(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, &config.Config{AdminEmails: "root@example.com, other@example.com"})

	require.NoError(t, db.Create(&models.AllowedEmail{Email: "root@example.com"}).Error)

	user, err := svc.ResolveProfile(&dto.GoogleProfile{ID: "google-root", Email: "root@example.com"})
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
}
