package services

import (
	"context"
	"strings"

	"github.com/promptvault-dev/promptvault/internal/models"
	"gorm.io/gorm"
)

const searchResultLimit = 50

// SearchService keeps the prompt_search FTS5 table in step with prompt writes
// and answers queries against it. The index is best-effort: when it is
// missing or rejects a query, Search silently falls back to a substring scan,
// and both paths return the same shape so callers cannot tell which served
// them. The index is never trusted for access control; every result set is
// re-scoped to the caller's own prompts.
type SearchService struct {
	db *gorm.DB
}

func NewSearchService(database *gorm.DB) *SearchService {
	return &SearchService{db: database}
}

// Sync refreshes the index row for a prompt on the caller's transaction, so
// the mirror commits atomically with the write that changed the prompt. Index
// errors are swallowed: the index is best-effort and queries degrade to the
// substring fallback.
func (s *SearchService) Sync(tx *gorm.DB, prompt *models.Prompt) {
	if err := tx.Exec("DELETE FROM prompt_search WHERE pid = ?", prompt.ID).Error; err != nil {
		return
	}
	tx.Exec("INSERT INTO prompt_search (pid, title, body) VALUES (?, ?, ?)", prompt.ID, prompt.Title, prompt.Body)
}

// Remove drops a deleted prompt's index row.
func (s *SearchService) Remove(tx *gorm.DB, promptID uint) {
	tx.Exec("DELETE FROM prompt_search WHERE pid = ?", promptID)
}

type SearchResult struct {
	Prompt models.Prompt
	Tags   []models.Tag
}

func (s *SearchService) Search(ctx context.Context, userID uint, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)

	if query == "" {
		return []SearchResult{}, nil
	}

	var ids []uint

	err := s.db.WithContext(ctx).
		Raw("SELECT pid FROM prompt_search WHERE prompt_search MATCH ? LIMIT ?", query, searchResultLimit).
		Scan(&ids).Error

	if err != nil {
		return s.substringSearch(ctx, userID, query)
	}

	if len(ids) == 0 {
		return []SearchResult{}, nil
	}

	var prompts []models.Prompt

	err = s.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Find(&prompts).Error

	if err != nil {
		return nil, err
	}

	return s.attachTags(ctx, prompts)
}

func (s *SearchService) substringSearch(ctx context.Context, userID uint, query string) ([]SearchResult, error) {
	like := "%" + query + "%"

	var prompts []models.Prompt

	err := s.db.WithContext(ctx).
		Distinct("prompts.*").
		Joins("LEFT JOIN prompt_tags ON prompt_tags.prompt_id = prompts.id").
		Joins("LEFT JOIN tags ON tags.id = prompt_tags.tag_id").
		Where("prompts.user_id = ?", userID).
		Where("prompts.title LIKE ? OR prompts.body LIKE ? OR tags.name LIKE ?", like, like, like).
		Limit(searchResultLimit).
		Find(&prompts).Error

	if err != nil {
		return nil, err
	}

	return s.attachTags(ctx, prompts)
}

func (s *SearchService) attachTags(ctx context.Context, prompts []models.Prompt) ([]SearchResult, error) {
	results := make([]SearchResult, 0, len(prompts))

	for _, prompt := range prompts {
		var tags []models.Tag

		err := s.db.WithContext(ctx).
			Joins("JOIN prompt_tags ON prompt_tags.tag_id = tags.id").
			Where("prompt_tags.prompt_id = ?", prompt.ID).
			Order("tags.name ASC").
			Find(&tags).Error

		if err != nil {
			return nil, err
		}

		results = append(results, SearchResult{Prompt: prompt, Tags: tags})
	}

	return results, nil
}
