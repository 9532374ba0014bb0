package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/linkdeck/linkdeck-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrBookmarkNotFound = errors.New("bookmark not found")
	ErrFieldsRequired   = errors.New("url, name, and groupId are required")
	ErrGroupIDRequired  = errors.New("groupId is required")
)

type BookmarkService struct {
	db *gorm.DB
}

func NewBookmarkService(db *gorm.DB) *BookmarkService {
	return &BookmarkService{db: db}
}

// List returns the user's non-deleted bookmarks ordered by position,
// optionally filtered to one group.
func (s *BookmarkService) List(userID uuid.UUID, groupID *uuid.UUID) ([]models.Bookmark, error) {
	query := s.db.Where("user_id = ? AND deleted = ?", userID, false)
	if groupID != nil {
		query = query.Where("group_id = ?", *groupID)
	}

	bookmarks := make([]models.Bookmark, 0)
	if err := query.Order("position asc").Find(&bookmarks).Error; err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return bookmarks, nil
}

// Create appends a bookmark to the end of its group. The new position is one
// past the group's maximum, counting soft-deleted rows so a restored bookmark
// never collides with a later creation.
func (s *BookmarkService) Create(userID uuid.UUID, url, name string, groupID uuid.UUID, imageURL string) (*models.Bookmark, error) {
	if url == "" || name == "" || groupID == uuid.Nil {
		return nil, ErrFieldsRequired
	}

	maxPos, err := s.maxPosition(groupID, false)
	if err != nil {
		return nil, err
	}

	bookmark := models.Bookmark{
		URL:      url,
		Name:     name,
		Image:    imageURL,
		UserID:   userID,
		GroupID:  groupID,
		Position: maxPos + 1,
	}
	if err := s.db.Create(&bookmark).Error; err != nil {
		return nil, fmt.Errorf("create bookmark: %w", err)
	}
	return &bookmark, nil
}

// Get returns an owned bookmark, deleted or not.
func (s *BookmarkService) Get(userID, bookmarkID uuid.UUID) (*models.Bookmark, error) {
	return s.findOwned(userID, bookmarkID)
}

// Update rewrites url and name, and replaces the stored image URL when a new
// upload came with the request. The previous stored object is intentionally
// left in place.
func (s *BookmarkService) Update(userID, bookmarkID uuid.UUID, url, name, imageURL string, hasImage bool) (*models.Bookmark, error) {
	bookmark, err := s.findOwned(userID, bookmarkID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"url":  url,
		"name": name,
	}
	if hasImage {
		updates["image"] = imageURL
	}

	if err := s.db.Model(bookmark).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update bookmark: %w", err)
	}
	return bookmark, nil
}

func (s *BookmarkService) SoftDelete(userID, bookmarkID uuid.UUID) error {
	bookmark, err := s.findOwned(userID, bookmarkID)
	if err != nil {
		return err
	}

	if err := s.db.Model(bookmark).Update("deleted", true).Error; err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	return nil
}

// Restore undoes a soft delete. Group and position are untouched, so the
// bookmark reappears exactly where it was.
func (s *BookmarkService) Restore(userID, bookmarkID uuid.UUID) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	err := s.db.
		Where("id = ? AND user_id = ? AND deleted = ?", bookmarkID, userID, true).
		First(&bookmark).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookmarkNotFound
		}
		return nil, fmt.Errorf("find deleted bookmark: %w", err)
	}

	if err := s.db.Model(&bookmark).Update("deleted", false).Error; err != nil {
		return nil, fmt.Errorf("restore bookmark: %w", err)
	}
	return &bookmark, nil
}

// Move re-points the bookmark at another owned, non-deleted group and appends
// it to that group's end. The destination maximum ignores soft-deleted rows.
func (s *BookmarkService) Move(userID, bookmarkID, destGroupID uuid.UUID) (*models.Bookmark, error) {
	if destGroupID == uuid.Nil {
		return nil, ErrGroupIDRequired
	}

	bookmark, err := s.findOwned(userID, bookmarkID)
	if err != nil {
		return nil, err
	}

	var group models.Group
	err = s.db.
		Where("id = ? AND user_id = ? AND deleted = ?", destGroupID, userID, false).
		First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("find target group: %w", err)
	}

	maxPos, err := s.maxPosition(destGroupID, true)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"group_id": destGroupID,
		"position": maxPos + 1,
	}
	if err := s.db.Model(bookmark).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("move bookmark: %w", err)
	}
	return bookmark, nil
}

// Reorder assigns each bookmark the position of its index in the supplied
// list. Updates are issued one row at a time with no transaction: ids the
// caller does not own match zero rows and are silently skipped, and a partial
// failure leaves the remaining rows untouched. Callers reconcile by
// re-fetching the list.
func (s *BookmarkService) Reorder(userID uuid.UUID, bookmarkIDs []string) error {
	for idx, raw := range bookmarkIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		err = s.db.Model(&models.Bookmark{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("position", idx).Error
		if err != nil {
			slog.Error("reorder update failed", "bookmark_id", raw, "error", err)
		}
	}
	return nil
}

// maxPosition returns the highest position in a group, -1 when empty.
// Soft-deleted rows count unless excludeDeleted is set; create keeps counting
// them so restore-after-create cannot produce a duplicate tail position.
func (s *BookmarkService) maxPosition(groupID uuid.UUID, excludeDeleted bool) (int, error) {
	query := s.db.Model(&models.Bookmark{}).Where("group_id = ?", groupID)
	if excludeDeleted {
		query = query.Where("deleted = ?", false)
	}

	var maxPos int
	err := query.Select("COALESCE(MAX(position), -1)").Scan(&maxPos).Error
	if err != nil {
		return 0, fmt.Errorf("max position: %w", err)
	}
	return maxPos, nil
}

func (s *BookmarkService) findOwned(userID, bookmarkID uuid.UUID) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	err := s.db.Where("id = ? AND user_id = ?", bookmarkID, userID).First(&bookmark).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookmarkNotFound
		}
		return nil, fmt.Errorf("find bookmark: %w", err)
	}
	return &bookmark, nil
}
