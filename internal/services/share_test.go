package services

import (
	"testing"

	"github.com/promptvault-dev/promptvault/internal/models"
	"github.com/stretchr/testify/require"
)

func TestPublicShareLifecycle(t *testing.T) {
	database := setupTestDB(t)
	userID := registerTestUser(t, database, "owner@example.com")
	prompts := NewPromptService(database)
	shares := NewShareService(database)

	prompt, err := prompts.Create(t.Context(), userID, CreatePromptInput{Title: "A", Body: "B"})
	require.NoError(t, err)

	// Nothing is public before sharing is enabled.
	_, err = shares.GetPublicByShareID(t.Context(), "anything")
	require.ErrorIs(t, err, ErrNotFound)

	shared, err := shares.EnablePublicShare(t.Context(), userID, prompt.ID)
	require.NoError(t, err)
	require.True(t, shared.IsPubliclyShared)
	require.NotNil(t, shared.PublicShareID)
	firstToken := *shared.PublicShareID
	require.GreaterOrEqual(t, len(firstToken), 32)

	public, err := shares.GetPublicByShareID(t.Context(), firstToken)
	require.NoError(t, err)
	require.Equal(t, "A", public.Title)
	require.Equal(t, "B", public.Body)

	// Re-enabling rotates the token and kills the old link.
	shared, err = shares.EnablePublicShare(t.Context(), userID, prompt.ID)
	require.NoError(t, err)
	secondToken := *shared.PublicShareID
	require.NotEqual(t, firstToken, secondToken)

	_, err = shares.GetPublicByShareID(t.Context(), firstToken)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = shares.GetPublicByShareID(t.Context(), secondToken)
	require.NoError(t, err)
}

func TestDisablePublicShareKillsLinkImmediately(t *testing.T) {
	database := setupTestDB(t)
	userID := registerTestUser(t, database, "owner@example.com")
	prompts := NewPromptService(database)
	shares := NewShareService(database)

	prompt, err := prompts.Create(t.Context(), userID, CreatePromptInput{Title: "A", Body: "B"})
	require.NoError(t, err)

	shared, err := shares.EnablePublicShare(t.Context(), userID, prompt.ID)
	require.NoError(t, err)
	token := *shared.PublicShareID

	require.NoError(t, shares.DisablePublicShare(t.Context(), userID, prompt.ID))

	_, err = shares.GetPublicByShareID(t.Context(), token)
	require.ErrorIs(t, err, ErrNotFound)

	// The prompt itself is untouched and still owner-fetchable.
	view, err := prompts.Get(t.Context(), userID, prompt.ID)
	require.NoError(t, err)
	require.False(t, view.Prompt.IsPubliclyShared)
	require.Nil(t, view.Prompt.PublicShareID)
}

func TestSetVisibility(t *testing.T) {
	database := setupTestDB(t)
	ownerID := registerTestUser(t, database, "owner@example.com")
	otherID := registerTestUser(t, database, "other@example.com")
	prompts := NewPromptService(database)
	shares := NewShareService(database)

	prompt, err := prompts.Create(t.Context(), ownerID, CreatePromptInput{Title: "A", Body: "B"})
	require.NoError(t, err)

	updated, err := shares.SetVisibility(t.Context(), ownerID, prompt.ID, models.VisibilityTeam)
	require.NoError(t, err)
	require.Equal(t, models.VisibilityTeam, updated.Visibility)

	// Any state is reachable from any other.
	updated, err = shares.SetVisibility(t.Context(), ownerID, prompt.ID, models.VisibilityPrivate)
	require.NoError(t, err)
	require.Equal(t, models.VisibilityPrivate, updated.Visibility)

	_, err = shares.SetVisibility(t.Context(), ownerID, prompt.ID, "PUBLIC")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = shares.SetVisibility(t.Context(), otherID, prompt.ID, models.VisibilityTeam)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestShareOperationsAreOwnerOnly(t *testing.T) {
	database := setupTestDB(t)
	ownerID := registerTestUser(t, database, "owner@example.com")
	otherID := registerTestUser(t, database, "other@example.com")
	prompts := NewPromptService(database)
	shares := NewShareService(database)

	prompt, err := prompts.Create(t.Context(), ownerID, CreatePromptInput{Title: "A", Body: "B"})
	require.NoError(t, err)

	_, err = shares.EnablePublicShare(t.Context(), otherID, prompt.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, shares.DisablePublicShare(t.Context(), otherID, prompt.ID), ErrNotFound)
}
