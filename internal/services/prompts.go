package services

import (
	"context"
	"errors"
	"strings"

	"github.com/promptvault-dev/promptvault/internal/models"
	"gorm.io/gorm"
)

const teamFeedLimit = 100

// PromptService owns the prompt aggregate: the prompt row, its append-only
// version history, its tag set and its ratings. Every multi-row write runs in
// a single transaction; a prompt without its first version must never be
// observable.
type PromptService struct {
	db     *gorm.DB
	tags   *TagService
	search *SearchService
}

func NewPromptService(database *gorm.DB) *PromptService {
	return &PromptService{
		db:     database,
		tags:   NewTagService(database),
		search: NewSearchService(database),
	}
}

type CreatePromptInput struct {
	Title      string
	Body       string
	Variables  string
	Notes      string
	ModelHints string
	Tags       []string
}

// UpdatePromptInput distinguishes absent fields from zero values: nil means
// "leave unchanged", a pointer to the empty string still counts as present.
type UpdatePromptInput struct {
	Title      *string
	Body       *string
	Variables  *string
	Notes      *string
	ModelHints *string
	Visibility *string
	Tags       *[]string
}

// PromptView is a prompt annotated with everything list and detail responses
// need. Versions is populated only by Get; Owner only by TeamFeed.
type PromptView struct {
	Prompt       models.Prompt
	Tags         []models.Tag
	Ratings      []models.Rating
	Versions     []models.PromptVersion
	AvgRating    float64
	VersionCount int64
	Owner        *models.User
}

func (s *PromptService) Create(ctx context.Context, userID uint, input CreatePromptInput) (models.Prompt, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Body) == "" {
		return models.Prompt{}, ErrInvalidInput
	}

	prompt := models.Prompt{
		Title:      input.Title,
		Body:       input.Body,
		Variables:  input.Variables,
		Notes:      input.Notes,
		ModelHints: input.ModelHints,
		Visibility: models.VisibilityPrivate,
		UserID:     userID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&prompt).Error; err != nil {
			return err
		}

		version := models.PromptVersion{
			PromptID: prompt.ID,
			Title:    prompt.Title,
			Body:     prompt.Body,
			Notes:    prompt.Notes,
		}

		if err := tx.Create(&version).Error; err != nil {
			return err
		}

		if err := s.replaceTags(tx, prompt.ID, input.Tags); err != nil {
			return err
		}

		s.search.Sync(tx, &prompt)

		return nil
	})

	if err != nil {
		return models.Prompt{}, err
	}

	return prompt, nil
}

func (s *PromptService) Update(ctx context.Context, userID uint, promptID uint, input UpdatePromptInput) (models.Prompt, error) {
	if input.Visibility != nil && *input.Visibility != models.VisibilityPrivate && *input.Visibility != models.VisibilityTeam {
		return models.Prompt{}, ErrInvalidInput
	}

	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return models.Prompt{}, ErrInvalidInput
	}

	if input.Body != nil && strings.TrimSpace(*input.Body) == "" {
		return models.Prompt{}, ErrInvalidInput
	}

	var prompt models.Prompt

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findOwnedPrompt(tx, userID, promptID, &prompt); err != nil {
			return err
		}

		if input.Title != nil {
			prompt.Title = *input.Title
		}
		if input.Body != nil {
			prompt.Body = *input.Body
		}
		if input.Variables != nil {
			prompt.Variables = *input.Variables
		}
		if input.Notes != nil {
			prompt.Notes = *input.Notes
		}
		if input.ModelHints != nil {
			prompt.ModelHints = *input.ModelHints
		}
		if input.Visibility != nil {
			prompt.Visibility = *input.Visibility
		}

		if err := tx.Save(&prompt).Error; err != nil {
			return err
		}

		// A version is appended whenever the payload carried title, body or
		// notes, even if the submitted value matches the stored one.
		if input.Title != nil || input.Body != nil || input.Notes != nil {
			version := models.PromptVersion{
				PromptID: prompt.ID,
				Title:    prompt.Title,
				Body:     prompt.Body,
				Notes:    prompt.Notes,
			}

			if err := tx.Create(&version).Error; err != nil {
				return err
			}
		}

		if input.Tags != nil {
			if err := tx.Where("prompt_id = ?", prompt.ID).Delete(&models.PromptTag{}).Error; err != nil {
				return err
			}

			if err := s.replaceTags(tx, prompt.ID, *input.Tags); err != nil {
				return err
			}
		}

		if input.Title != nil || input.Body != nil || input.Tags != nil {
			s.search.Sync(tx, &prompt)
		}

		return nil
	})

	if err != nil {
		return models.Prompt{}, err
	}

	return prompt, nil
}

// Delete removes a prompt and all of its dependent rows. Versions, tag links
// and ratings are cascaded in the same transaction so no orphans survive.
func (s *PromptService) Delete(ctx context.Context, userID uint, promptID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prompt models.Prompt

		if err := findOwnedPrompt(tx, userID, promptID, &prompt); err != nil {
			return err
		}

		if err := tx.Where("prompt_id = ?", prompt.ID).Delete(&models.PromptTag{}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("prompt_id = ?", prompt.ID).Delete(&models.PromptVersion{}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("prompt_id = ?", prompt.ID).Delete(&models.Rating{}).Error; err != nil {
			return err
		}

		s.search.Remove(tx, prompt.ID)

		return tx.Unscoped().Delete(&prompt).Error
	})
}

func (s *PromptService) List(ctx context.Context, userID uint) ([]PromptView, error) {
	var prompts []models.Prompt

	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&prompts).Error

	if err != nil {
		return nil, err
	}

	return s.annotate(ctx, prompts, false)
}

func (s *PromptService) Get(ctx context.Context, userID uint, promptID uint) (PromptView, error) {
	var prompt models.Prompt

	if err := findOwnedPrompt(s.db.WithContext(ctx), userID, promptID, &prompt); err != nil {
		return PromptView{}, err
	}

	views, err := s.annotate(ctx, []models.Prompt{prompt}, true)
	if err != nil {
		return PromptView{}, err
	}

	return views[0], nil
}

// Export returns every prompt the caller owns with full version history,
// tags and ratings, for the JSON export download.
func (s *PromptService) Export(ctx context.Context, userID uint) ([]PromptView, error) {
	var prompts []models.Prompt

	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&prompts).Error

	if err != nil {
		return nil, err
	}

	return s.annotate(ctx, prompts, true)
}

// TeamFeed lists TEAM-visible prompts owned by members of the caller's team.
// A caller without a team gets an empty feed, not an error.
func (s *PromptService) TeamFeed(ctx context.Context, userID uint) ([]PromptView, error) {
	var user models.User

	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if user.TeamID == nil {
		return []PromptView{}, nil
	}

	var prompts []models.Prompt

	err := s.db.WithContext(ctx).
		Preload("User").
		Where("visibility = ?", models.VisibilityTeam).
		Where("user_id IN (?)", s.db.Model(&models.User{}).Select("id").Where("team_id = ?", *user.TeamID)).
		Order("updated_at DESC").
		Limit(teamFeedLimit).
		Find(&prompts).Error

	if err != nil {
		return nil, err
	}

	views, err := s.annotate(ctx, prompts, false)
	if err != nil {
		return nil, err
	}

	for i := range views {
		owner := views[i].Prompt.User
		views[i].Owner = &owner
	}

	return views, nil
}

// replaceTags resolves each name and links it to the prompt. Names are
// deduplicated after trimming so a repeated name cannot trip the composite
// unique index; blank names are skipped.
func (s *PromptService) replaceTags(tx *gorm.DB, promptID uint, names []string) error {
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)

		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		tag, err := s.tags.Resolve(tx, name)
		if err != nil {
			return err
		}

		link := models.PromptTag{PromptID: promptID, TagID: tag.ID}

		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}

	return nil
}

func (s *PromptService) annotate(ctx context.Context, prompts []models.Prompt, withVersions bool) ([]PromptView, error) {
	views := make([]PromptView, 0, len(prompts))

	for _, prompt := range prompts {
		view := PromptView{Prompt: prompt}

		err := s.db.WithContext(ctx).
			Joins("JOIN prompt_tags ON prompt_tags.tag_id = tags.id").
			Where("prompt_tags.prompt_id = ?", prompt.ID).
			Order("tags.name ASC").
			Find(&view.Tags).Error

		if err != nil {
			return nil, err
		}

		err = s.db.WithContext(ctx).
			Where("prompt_id = ?", prompt.ID).
			Find(&view.Ratings).Error

		if err != nil {
			return nil, err
		}

		view.AvgRating = AverageRating(view.Ratings)

		err = s.db.WithContext(ctx).
			Model(&models.PromptVersion{}).
			Where("prompt_id = ?", prompt.ID).
			Count(&view.VersionCount).Error

		if err != nil {
			return nil, err
		}

		if withVersions {
			err = s.db.WithContext(ctx).
				Where("prompt_id = ?", prompt.ID).
				Order("created_at DESC, id DESC").
				Find(&view.Versions).Error

			if err != nil {
				return nil, err
			}
		}

		views = append(views, view)
	}

	return views, nil
}

// findOwnedPrompt loads a prompt by id scoped to its owner. A prompt that
// exists but belongs to someone else is reported as ErrNotFound, the same as
// one that does not exist.
func findOwnedPrompt(tx *gorm.DB, userID uint, promptID uint, out *models.Prompt) error {
	err := tx.Where("id = ? AND user_id = ?", promptID, userID).First(out).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	return err
}
