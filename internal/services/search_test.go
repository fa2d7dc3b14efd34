package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchEmptyQueryReturnsNothing(t *testing.T) {
	database := setupTestDB(t)
	userID := registerTestUser(t, database, "owner@example.com")
	prompts := NewPromptService(database)
	search := NewSearchService(database)

	_, err := prompts.Create(t.Context(), userID, CreatePromptInput{Title: "A", Body: "B"})
	require.NoError(t, err)

	for _, q := range []string{"", "   ", "\t"} {
		results, err := search.Search(t.Context(), userID, q)
		require.NoError(t, err)
		require.Empty(t, results)
	}
}

func TestSearchFindsOwnPromptsByTitleAndBody(t *testing.T) {
	database := setupTestDB(t)
	userID := registerTestUser(t, database, "owner@example.com")
	prompts := NewPromptService(database)
	search := NewSearchService(database)

	_, err := prompts.Create(t.Context(), userID, CreatePromptInput{
		Title: "Email drafting helper",
		Body:  "Write a polite reply to the following email.",
		Tags:  []string{"email"},
	})
	require.NoError(t, err)
	_, err = prompts.Create(t.Context(), userID, CreatePromptInput{
		Title: "SQL tuner",
		Body:  "Optimize the following query.",
	})
	require.NoError(t, err)

	results, err := search.Search(t.Context(), userID, "polite")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Email drafting helper", results[0].Prompt.Title)
	require.Equal(t, []string{"email"}, tagNames(results[0].Tags))
}

func TestSearchIndexFollowsUpdatesAndDeletes(t *testing.T) {
	database := setupTestDB(t)
	userID := registerTestUser(t, database, "owner@example.com")
	prompts := NewPromptService(database)
	search := NewSearchService(database)

	prompt, err := prompts.Create(t.Context(), userID, CreatePromptInput{Title: "Original", Body: "alpha"})
	require.NoError(t, err)

	_, err = prompts.Update(t.Context(), userID, prompt.ID, UpdatePromptInput{Body: strPtr("bravo")})
	require.NoError(t, err)

	results, err := search.Search(t.Context(), userID, "alpha")
	require.NoError(t, err)
	require.Empty(t, results)

	results, err = search.Search(t.Context(), userID, "bravo")
	require.NoError(t, err)
	require.Len(t, results, 1)

	require.NoError(t, prompts.Delete(t.Context(), userID, prompt.ID))

	results, err = search.Search(t.Context(), userID, "bravo")
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestSearchNeverLeaksOtherUsersPrompts(t *testing.T) {
	database := setupTestDB(t)
	aliceID := registerTestUser(t, database, "alice@example.com")
	bobID := registerTestUser(t, database, "bob@example.com")
	prompts := NewPromptService(database)
	search := NewSearchService(database)

	_, err := prompts.Create(t.Context(), aliceID, CreatePromptInput{Title: "shibboleth", Body: "alice's"})
	require.NoError(t, err)
	_, err = prompts.Create(t.Context(), bobID, CreatePromptInput{Title: "shibboleth", Body: "bob's"})
	require.NoError(t, err)

	// The index itself is not access-scoped; results must still be filtered
	// down to the caller's own prompts.
	results, err := search.Search(t.Context(), bobID, "shibboleth")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, bobID, results[0].Prompt.UserID)
}

func TestSearchFallsBackWhenIndexIsMissing(t *testing.T) {
	database := setupTestDB(t)
	userID := registerTestUser(t, database, "owner@example.com")
	prompts := NewPromptService(database)
	search := NewSearchService(database)

	require.NoError(t, database.Exec("DROP TABLE prompt_search").Error)

	_, err := prompts.Create(t.Context(), userID, CreatePromptInput{
		Title: "Fallback target",
		Body:  "needle in a haystack",
		Tags:  []string{"special-tag"},
	})
	require.NoError(t, err)

	// With the index gone, the substring path serves the query in the same
	// shape, without surfacing an error.
	results, err := search.Search(t.Context(), userID, "needle")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Fallback target", results[0].Prompt.Title)

	// The fallback also matches tag names.
	results, err = search.Search(t.Context(), userID, "special-tag")
	require.NoError(t, err)
	require.Len(t, results, 1)
}
