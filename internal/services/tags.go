package services

import (
	"context"
	"errors"
	"strings"

	"github.com/promptvault-dev/promptvault/internal/models"
	"gorm.io/gorm"
)

// TagService owns tag normalization: every path that attaches or renames a
// tag goes through it, so trimming behaves identically everywhere. Matching
// is exact and case-sensitive.
type TagService struct {
	db *gorm.DB
}

func NewTagService(database *gorm.DB) *TagService {
	return &TagService{db: database}
}

type TagWithUsage struct {
	Tag        models.Tag
	UsageCount int64
}

// Resolve returns the canonical tag for name, creating it if absent. It runs
// on the caller's transaction so tag creation commits or rolls back with the
// prompt write that needed it.
func (s *TagService) Resolve(tx *gorm.DB, name string) (models.Tag, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return models.Tag{}, ErrInvalidInput
	}

	var tag models.Tag

	err := tx.Where("name = ?", name).First(&tag).Error

	if err == nil {
		return tag, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Tag{}, err
	}

	tag = models.Tag{Name: name}

	if err := tx.Create(&tag).Error; err != nil {
		return models.Tag{}, err
	}

	return tag, nil
}

func (s *TagService) List(ctx context.Context) ([]TagWithUsage, error) {
	var tags []models.Tag

	if err := s.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}

	result := make([]TagWithUsage, 0, len(tags))

	for _, tag := range tags {
		count, err := s.usageCount(ctx, tag.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, TagWithUsage{Tag: tag, UsageCount: count})
	}

	return result, nil
}

func (s *TagService) Get(ctx context.Context, tagID uint) (TagWithUsage, error) {
	var tag models.Tag

	if err := s.db.WithContext(ctx).First(&tag, tagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TagWithUsage{}, ErrNotFound
		}
		return TagWithUsage{}, err
	}

	count, err := s.usageCount(ctx, tag.ID)
	if err != nil {
		return TagWithUsage{}, err
	}

	return TagWithUsage{Tag: tag, UsageCount: count}, nil
}

// Rename changes a tag's name, refusing names held by any other tag. The
// collision check excludes the tag being renamed so renaming to the current
// name is a no-op rather than a conflict.
func (s *TagService) Rename(ctx context.Context, tagID uint, newName string) (TagWithUsage, error) {
	newName = strings.TrimSpace(newName)

	if newName == "" {
		return TagWithUsage{}, ErrInvalidInput
	}

	var existing models.Tag

	err := s.db.WithContext(ctx).Where("name = ? AND id != ?", newName, tagID).First(&existing).Error

	if err == nil {
		return TagWithUsage{}, ErrTagNameTaken
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return TagWithUsage{}, err
	}

	var tag models.Tag

	if err := s.db.WithContext(ctx).First(&tag, tagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TagWithUsage{}, ErrNotFound
		}
		return TagWithUsage{}, err
	}

	tag.Name = newName

	if err := s.db.WithContext(ctx).Save(&tag).Error; err != nil {
		return TagWithUsage{}, err
	}

	count, err := s.usageCount(ctx, tag.ID)
	if err != nil {
		return TagWithUsage{}, err
	}

	return TagWithUsage{Tag: tag, UsageCount: count}, nil
}

// Delete removes an unused tag. Tags still attached to prompts are refused,
// never cascaded; the usage count rides on the error so callers can surface
// "N prompts use this tag".
func (s *TagService) Delete(ctx context.Context, tagID uint) error {
	var tag models.Tag

	if err := s.db.WithContext(ctx).First(&tag, tagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	count, err := s.usageCount(ctx, tag.ID)
	if err != nil {
		return err
	}

	if count > 0 {
		return &TagInUseError{UsageCount: count}
	}

	return s.db.WithContext(ctx).Unscoped().Delete(&tag).Error
}

func (s *TagService) usageCount(ctx context.Context, tagID uint) (int64, error) {
	var count int64

	err := s.db.WithContext(ctx).Model(&models.PromptTag{}).Where("tag_id = ?", tagID).Count(&count).Error

	return count, err
}
