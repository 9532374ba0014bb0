package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/linkdeck/linkdeck-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrEmailRequired = errors.New("email is required")
	ErrEmailNotFound = errors.New("allowed email not found")
)

// AllowListService manages the admin-maintained email allow list.
type AllowListService struct {
	db *gorm.DB
}

func NewAllowListService(db *gorm.DB) *AllowListService {
	return &AllowListService{db: db}
}

func (s *AllowListService) List() ([]models.AllowedEmail, error) {
	emails := make([]models.AllowedEmail, 0)
	if err := s.db.Order("created_at asc").Find(&emails).Error; err != nil {
		return nil, fmt.Errorf("list allowed emails: %w", err)
	}
	return emails, nil
}

func (s *AllowListService) Add(email string) (*models.AllowedEmail, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}

	allowed := models.AllowedEmail{Email: email}
	if err := s.db.Create(&allowed).Error; err != nil {
		return nil, fmt.Errorf("add allowed email: %w", err)
	}
	return &allowed, nil
}

func (s *AllowListService) Remove(id uuid.UUID) error {
	result := s.db.Delete(&models.AllowedEmail{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("remove allowed email: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEmailNotFound
	}
	return nil
}
