package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/linkdeck/linkdeck-backend/internal/config"
	"github.com/linkdeck/linkdeck-backend/internal/dto"
	"github.com/linkdeck/linkdeck-backend/internal/models"
	"gorm.io/gorm"
)

// ErrNotAllowed means the email is absent from the allow list. Callers route
// this to the access-denied page, distinct from any other login failure.
var ErrNotAllowed = errors.New("email not on allow list")

// DefaultGroupName is the group every new user starts with.
const DefaultGroupName = "main"

type AuthService struct {
	db          *gorm.DB
	adminEmails []string
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:          db,
		adminEmails: parseCSV(cfg.AdminEmails),
	}
}

// ResolveProfile maps an identity-provider profile to a local user. The email
// must be allow-listed; on first sign-in the user is created together with
// their default group in one transaction.
func (s *AuthService) ResolveProfile(profile *dto.GoogleProfile) (*models.User, error) {
	var allowed models.AllowedEmail
	if err := s.db.Where("email = ?", profile.Email).First(&allowed).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAllowed
		}
		return nil, fmt.Errorf("allow-list lookup failed: %w", err)
	}

	var user models.User
	err := s.db.Where("google_id = ?", profile.ID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	user = models.User{
		GoogleID: profile.ID,
		Email:    profile.Email,
		Name:     profile.Name,
		Picture:  profile.Picture,
		IsAdmin:  contains(s.adminEmails, profile.Email),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Group{
			Name:   DefaultGroupName,
			UserID: user.ID,
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
