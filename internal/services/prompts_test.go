package services

import (
	"testing"

	"github.com/promptvault-dev/promptvault/internal/models"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreatePromptWritesInitialVersion(t *testing.T) {
	database := setupTestDB(t)
	userID := registerTestUser(t, database, "owner@example.com")
	prompts := NewPromptService(database)

	prompt, err := prompts.Create(t.Context(), userID, CreatePromptInput{
		Title: "Summarizer",
		Body:  "Summarize the following text.",
		Tags:  []string{"writing", "summaries"},
	})
	require.NoError(t, err)
	require.Equal(t, models.VisibilityPrivate, prompt.Visibility)
	require.False(t, prompt.IsPubliclyShared)

	view, err := prompts.Get(t.Context(), userID, prompt.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, view.VersionCount)
	require.Len(t, view.Versions, 1)
	require.Equal(t, "Summarizer", view.Versions[0].Title)
	require.Equal(t, []string{"summaries", "writing"}, tagNames(view.Tags))
}

func TestCreatePromptRequiresTitleAndBody(t *testing.T) {
	database := setupTestDB(t)
	userID := registerTestUser(t, database, "owner@example.com")
	prompts := NewPromptService(database)

	_, err := prompts.Create(t.Context(), userID, CreatePromptInput{Title: "  ", Body: "x"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = prompts.Create(t.Context(), userID, CreatePromptInput{Title: "x", Body: ""})
	require.ErrorIs(t, err, ErrInvalidInput)

	var count int64
	require.NoError(t, database.Model(&models.Prompt{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestUpdateAppendsVersionOnlyForContentFields(t *testing.T) {
	database := setupTestDB(t)
	userID := registerTestUser(t, database, "owner@example.com")
	prompts := NewPromptService(database)

	prompt, err := prompts.Create(t.Context(), userID, CreatePromptInput{Title: "A", Body: "B"})
	require.NoError(t, err)

	// Content updates append, one version per call, even when the value is
	// unchanged.
	_, err = prompts.Update(t.Context(), userID, prompt.ID, UpdatePromptInput{Body: strPtr("B2")})
	require.NoError(t, err)
	_, err = prompts.Update(t.Context(), userID, prompt.ID, UpdatePromptInput{Body: strPtr("B2")})
	require.NoError(t, err)
	_, err = prompts.Update(t.Context(), userID, prompt.ID, UpdatePromptInput{Notes: strPtr("note")})
	require.NoError(t, err)

	view, err := prompts.Get(t.Context(), userID, prompt.ID)
	require.NoError(t, err)
	require.EqualValues(t, 4, view.VersionCount)

	// Non-content updates leave the history alone.
	_, err = prompts.Update(t.Context(), userID, prompt.ID, UpdatePromptInput{Variables: strPtr("{{input}}")})
	require.NoError(t, err)
	_, err = prompts.Update(t.Context(), userID, prompt.ID, UpdatePromptInput{ModelHints: strPtr("gpt-4")})
	require.NoError(t, err)

	view, err = prompts.Get(t.Context(), userID, prompt.ID)
	require.NoError(t, err)
	require.EqualValues(t, 4, view.VersionCount)

	// The newest version carries the post-update values with stored
	// fallbacks for fields the update omitted.
	require.Equal(t, "A", view.Versions[0].Title)
	require.Equal(t, "B2", view.Versions[0].Body)
	require.Equal(t, "note", view.Versions[0].Notes)
}

func TestUpdateTagReplaceIsIdempotent(t *testing.T) {
	database := setupTestDB(t)
	userID := registerTestUser(t, database, "owner@example.com")
	prompts := NewPromptService(database)

	prompt, err := prompts.Create(t.Context(), userID, CreatePromptInput{
		Title: "A", Body: "B", Tags: []string{"one", "two"},
	})
	require.NoError(t, err)

	tagSet := []string{"two", "three"}

	for i := 0; i < 2; i++ {
		_, err = prompts.Update(t.Context(), userID, prompt.ID, UpdatePromptInput{Tags: &tagSet})
		require.NoError(t, err)
	}

	view, err := prompts.Get(t.Context(), userID, prompt.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"three", "two"}, tagNames(view.Tags))

	// No duplicate tag rows for names that already resolved.
	var tagCount int64
	require.NoError(t, database.Model(&models.Tag{}).Count(&tagCount).Error)
	require.EqualValues(t, 3, tagCount)
}

func TestUpdateDeduplicatesSubmittedTagNames(t *testing.T) {
	database := setupTestDB(t)
	userID := registerTestUser(t, database, "owner@example.com")
	prompts := NewPromptService(database)

	prompt, err := prompts.Create(t.Context(), userID, CreatePromptInput{
		Title: "A", Body: "B", Tags: []string{"go", " go ", "go", ""},
	})
	require.NoError(t, err)

	view, err := prompts.Get(t.Context(), userID, prompt.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"go"}, tagNames(view.Tags))
}

func TestOwnershipIsolation(t *testing.T) {
	database := setupTestDB(t)
	adminID := registerTestUser(t, database, "admin@example.com")
	ownerID := registerTestUser(t, database, "owner@example.com")
	prompts := NewPromptService(database)

	prompt, err := prompts.Create(t.Context(), ownerID, CreatePromptInput{Title: "A", Body: "B"})
	require.NoError(t, err)

	// The first registered user is an admin; admins get no bypass for
	// prompts either.
	_, err = prompts.Get(t.Context(), adminID, prompt.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = prompts.Update(t.Context(), adminID, prompt.ID, UpdatePromptInput{Body: strPtr("stolen")})
	require.ErrorIs(t, err, ErrNotFound)

	err = prompts.Delete(t.Context(), adminID, prompt.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// The owner still sees it untouched.
	view, err := prompts.Get(t.Context(), ownerID, prompt.ID)
	require.NoError(t, err)
	require.Equal(t, "B", view.Prompt.Body)
}

func TestDeletePromptCascadesDependents(t *testing.T) {
	database := setupTestDB(t)
	userID := registerTestUser(t, database, "owner@example.com")
	prompts := NewPromptService(database)
	ratings := NewRatingService(database)

	prompt, err := prompts.Create(t.Context(), userID, CreatePromptInput{
		Title: "A", Body: "B", Tags: []string{"keep-me"},
	})
	require.NoError(t, err)

	_, err = ratings.Rate(t.Context(), userID, prompt.ID, 5)
	require.NoError(t, err)

	require.NoError(t, prompts.Delete(t.Context(), userID, prompt.ID))

	for model, table := range map[interface{}]string{
		&models.PromptVersion{}: "prompt versions",
		&models.PromptTag{}:     "prompt tags",
		&models.Rating{}:        "ratings",
	} {
		var count int64
		require.NoError(t, database.Model(model).Where("prompt_id = ?", prompt.ID).Count(&count).Error)
		require.Zerof(t, count, "expected no %s to survive deletion", table)
	}

	// The tag itself survives; only the link is removed.
	var tagCount int64
	require.NoError(t, database.Model(&models.Tag{}).Where("name = ?", "keep-me").Count(&tagCount).Error)
	require.EqualValues(t, 1, tagCount)

	// Deleting again reports not found.
	require.ErrorIs(t, prompts.Delete(t.Context(), userID, prompt.ID), ErrNotFound)
}

func TestTeamFeed(t *testing.T) {
	database := setupTestDB(t)
	users := NewUserService(database)
	prompts := NewPromptService(database)

	aliceID := registerTestUser(t, database, "alice@example.com")
	bobID := registerTestUser(t, database, "bob@example.com")
	soloID := registerTestUser(t, database, "solo@example.com")

	team, err := users.CreateTeam(t.Context(), "Platform")
	require.NoError(t, err)

	for _, id := range []uint{aliceID, bobID} {
		_, err = users.UpdateProfile(t.Context(), id, ProfileUpdate{TeamID: &team.ID, SetTeam: true})
		require.NoError(t, err)
	}

	shared, err := prompts.Create(t.Context(), bobID, CreatePromptInput{Title: "Shared", Body: "B"})
	require.NoError(t, err)
	_, err = prompts.Update(t.Context(), bobID, shared.ID, UpdatePromptInput{Visibility: strPtr(models.VisibilityTeam)})
	require.NoError(t, err)

	_, err = prompts.Create(t.Context(), bobID, CreatePromptInput{Title: "Hidden", Body: "B"})
	require.NoError(t, err)

	feed, err := prompts.TeamFeed(t.Context(), aliceID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	require.Equal(t, "Shared", feed[0].Prompt.Title)
	require.NotNil(t, feed[0].Owner)
	require.Equal(t, bobID, feed[0].Owner.ID)

	// No team is a valid state, not an error: the feed is just empty.
	feed, err = prompts.TeamFeed(t.Context(), soloID)
	require.NoError(t, err)
	require.Empty(t, feed)
}

func tagNames(tags []models.Tag) []string {
	names := make([]string, 0, len(tags))

	for _, tag := range tags {
		names = append(names, tag.Name)
	}

	return names
}
