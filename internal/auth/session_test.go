package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/linkdeck/linkdeck-backend/internal/config"
	"github.com/linkdeck/linkdeck-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueSessionToken(t *testing.T) {
	cfg := &config.Config{
		SessionSecret: "test-secret",
		SessionExpiry: time.Hour,
	}
	user := &models.User{
		ID:    uuid.New(),
		Email: "alice@example.com",
	}

	signed, err := IssueSessionToken(cfg, user)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.SessionSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, user.Email, claims["email"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, time.Minute)
}

func TestIssueSessionToken_RejectsWrongSecret(t *testing.T) {
	cfg := &config.Config{SessionSecret: "test-secret", SessionExpiry: time.Hour}
	user := &models.User{ID: uuid.New(), Email: "alice@example.com"}

	signed, err := IssueSessionToken(cfg, user)
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}
