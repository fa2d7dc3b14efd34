package services

import (
	"testing"

	"github.com/promptvault-dev/promptvault/internal/models"
	"github.com/stretchr/testify/require"
)

// Walks the whole lifecycle: first registration, create, edit, share, revoke.
func TestPromptLifecycleEndToEnd(t *testing.T) {
	database := setupTestDB(t)
	users := NewUserService(database)
	prompts := NewPromptService(database)
	shares := NewShareService(database)

	owner, err := users.Register(t.Context(), "founder@example.com", "password123", "Founder")
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, owner.Role)

	prompt, err := prompts.Create(t.Context(), owner.ID, CreatePromptInput{Title: "A", Body: "B"})
	require.NoError(t, err)

	view, err := prompts.Get(t.Context(), owner.ID, prompt.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, view.VersionCount)

	_, err = prompts.Update(t.Context(), owner.ID, prompt.ID, UpdatePromptInput{Body: strPtr("B2")})
	require.NoError(t, err)

	view, err = prompts.Get(t.Context(), owner.ID, prompt.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, view.VersionCount)
	require.Equal(t, "B2", view.Prompt.Body)

	shared, err := shares.EnablePublicShare(t.Context(), owner.ID, prompt.ID)
	require.NoError(t, err)
	token := *shared.PublicShareID

	public, err := shares.GetPublicByShareID(t.Context(), token)
	require.NoError(t, err)
	require.Equal(t, "A", public.Title)
	require.Equal(t, "B2", public.Body)

	require.NoError(t, shares.DisablePublicShare(t.Context(), owner.ID, prompt.ID))

	_, err = shares.GetPublicByShareID(t.Context(), token)
	require.ErrorIs(t, err, ErrNotFound)

	// The owner can still fetch the prompt itself.
	_, err = prompts.Get(t.Context(), owner.ID, prompt.ID)
	require.NoError(t, err)
}
