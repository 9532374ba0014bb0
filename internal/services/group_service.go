package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/linkdeck/linkdeck-backend/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrGroupNotFound covers both missing and not-owned groups so the API
	// never leaks whether a foreign id exists.
	ErrGroupNotFound = errors.New("group not found")
	// ErrGroupSelected rejects deleting the group the client currently has
	// focused. Selection is client state, passed explicitly per request.
	ErrGroupSelected = errors.New("cannot delete the currently selected group")
	ErrNameRequired  = errors.New("group name is required")
)

type GroupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

// List returns the user's non-deleted groups, oldest first.
func (s *GroupService) List(userID uuid.UUID) ([]models.Group, error) {
	groups := make([]models.Group, 0)
	err := s.db.
		Where("user_id = ? AND deleted = ?", userID, false).
		Order("created_at asc").
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

func (s *GroupService) Create(userID uuid.UUID, name string) (*models.Group, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	group := models.Group{
		Name:   name,
		UserID: userID,
	}
	if err := s.db.Create(&group).Error; err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return &group, nil
}

func (s *GroupService) Rename(userID, groupID uuid.UUID, name string) (*models.Group, error) {
	group, err := s.findOwned(userID, groupID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(group).Update("name", name).Error; err != nil {
		return nil, fmt.Errorf("rename group: %w", err)
	}
	return group, nil
}

// SoftDelete marks the group deleted. The caller supplies the id of the group
// currently selected client-side; deleting that one is rejected so the user
// is never left looking at a deleted group.
func (s *GroupService) SoftDelete(userID, groupID, selectedGroupID uuid.UUID) error {
	if groupID == selectedGroupID {
		return ErrGroupSelected
	}

	group, err := s.findOwned(userID, groupID)
	if err != nil {
		return err
	}

	if err := s.db.Model(group).Update("deleted", true).Error; err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}

// Restore undoes a soft delete. Only currently-deleted groups qualify.
func (s *GroupService) Restore(userID, groupID uuid.UUID) (*models.Group, error) {
	var group models.Group
	err := s.db.
		Where("id = ? AND user_id = ? AND deleted = ?", groupID, userID, true).
		First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("find deleted group: %w", err)
	}

	if err := s.db.Model(&group).Update("deleted", false).Error; err != nil {
		return nil, fmt.Errorf("restore group: %w", err)
	}
	return &group, nil
}

func (s *GroupService) findOwned(userID, groupID uuid.UUID) (*models.Group, error) {
	var group models.Group
	err := s.db.Where("id = ? AND user_id = ?", groupID, userID).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("find group: %w", err)
	}
	return &group, nil
}
