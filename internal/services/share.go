package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/promptvault-dev/promptvault/internal/models"
	"gorm.io/gorm"
)

// ShareService governs prompt visibility and the public share link. Public
// access hangs entirely on the is_publicly_shared flag plus an unguessable
// token; disabling the share kills previously issued links immediately
// because every public fetch re-checks the flag.
type ShareService struct {
	db *gorm.DB
}

func NewShareService(database *gorm.DB) *ShareService {
	return &ShareService{db: database}
}

func (s *ShareService) SetVisibility(ctx context.Context, userID uint, promptID uint, visibility string) (models.Prompt, error) {
	if visibility != models.VisibilityPrivate && visibility != models.VisibilityTeam {
		return models.Prompt{}, ErrInvalidInput
	}

	var prompt models.Prompt

	if err := findOwnedPrompt(s.db.WithContext(ctx), userID, promptID, &prompt); err != nil {
		return models.Prompt{}, err
	}

	prompt.Visibility = visibility

	if err := s.db.WithContext(ctx).Save(&prompt).Error; err != nil {
		return models.Prompt{}, err
	}

	return prompt, nil
}

// EnablePublicShare turns on public sharing and issues a fresh token. Calling
// it while sharing is already enabled rotates the token, invalidating the old
// link.
func (s *ShareService) EnablePublicShare(ctx context.Context, userID uint, promptID uint) (models.Prompt, error) {
	var prompt models.Prompt

	if err := findOwnedPrompt(s.db.WithContext(ctx), userID, promptID, &prompt); err != nil {
		return models.Prompt{}, err
	}

	shareID := uuid.NewString()
	prompt.IsPubliclyShared = true
	prompt.PublicShareID = &shareID

	if err := s.db.WithContext(ctx).Save(&prompt).Error; err != nil {
		return models.Prompt{}, err
	}

	return prompt, nil
}

func (s *ShareService) DisablePublicShare(ctx context.Context, userID uint, promptID uint) error {
	var prompt models.Prompt

	if err := findOwnedPrompt(s.db.WithContext(ctx), userID, promptID, &prompt); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).
		Model(&prompt).
		Updates(map[string]interface{}{
			"is_publicly_shared": false,
			"public_share_id":    nil,
		}).Error

	return err
}

// GetPublicByShareID resolves a share token for an unauthenticated caller.
// The live flag is re-checked on every call, never cached, so revocation
// takes effect immediately.
func (s *ShareService) GetPublicByShareID(ctx context.Context, shareID string) (models.Prompt, error) {
	var prompt models.Prompt

	err := s.db.WithContext(ctx).
		Where("public_share_id = ? AND is_publicly_shared = ?", shareID, true).
		First(&prompt).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Prompt{}, ErrNotFound
	}

	if err != nil {
		return models.Prompt{}, err
	}

	return prompt, nil
}
