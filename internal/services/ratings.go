package services

import (
	"context"

	"github.com/promptvault-dev/promptvault/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatingService enforces one rating per (user, prompt). The write is a single
// atomic upsert on the composite unique index; there is no delete-then-insert
// path for concurrent calls to race through.
type RatingService struct {
	db *gorm.DB
}

func NewRatingService(database *gorm.DB) *RatingService {
	return &RatingService{db: database}
}

// Rate records value for the caller's own prompt. Ratings are personal
// quality notes, so only the prompt's owner may rate it; an unowned prompt is
// indistinguishable from a missing one.
func (s *RatingService) Rate(ctx context.Context, userID uint, promptID uint, value int) (models.Rating, error) {
	if value < 1 || value > 5 {
		return models.Rating{}, ErrInvalidInput
	}

	var prompt models.Prompt

	if err := findOwnedPrompt(s.db.WithContext(ctx), userID, promptID, &prompt); err != nil {
		return models.Rating{}, err
	}

	rating := models.Rating{
		PromptID: promptID,
		UserID:   userID,
		Value:    value,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "prompt_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rating).Error

	if err != nil {
		return models.Rating{}, err
	}

	// Re-read so the caller sees the surviving row, not the candidate that
	// may have merged into an existing one.
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND prompt_id = ?", userID, promptID).
		First(&rating).Error

	if err != nil {
		return models.Rating{}, err
	}

	return rating, nil
}

// AverageRating is the arithmetic mean of the given ratings, 0 when there are
// none.
func AverageRating(ratings []models.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}

	sum := 0

	for _, rating := range ratings {
		sum += rating.Value
	}

	return float64(sum) / float64(len(ratings))
}
