package handlers

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/promptvault-dev/promptvault/internal/services"
	"github.com/promptvault-dev/promptvault/internal/utils"
	"gorm.io/gorm"
)

type ShareHandler struct {
	shares  *services.ShareService
	prompts *services.PromptService
}

func NewShareHandler(database *gorm.DB) *ShareHandler {
	return &ShareHandler{
		shares:  services.NewShareService(database),
		prompts: services.NewPromptService(database),
	}
}

type SetVisibilityRequest struct {
	Visibility string `json:"visibility" binding:"required"`
}

// PublicPromptResponse is the unauthenticated projection: no owner, no tags,
// no versions, no ratings.
type PublicPromptResponse struct {
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Notes      string    `json:"notes"`
	ModelHints string    `json:"model_hints"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func publicOrigin() string {
	if origin := os.Getenv("PUBLIC_ORIGIN"); origin != "" {
		return origin
	}

	if origin := os.Getenv("CLIENT_URL"); origin != "" {
		return origin
	}

	return "http://localhost:5173"
}

func (h *ShareHandler) SetVisibility(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	promptID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	var body SetVisibilityRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	_, err = h.shares.SetVisibility(ctx.Request.Context(), userID, promptID, body.Visibility)

	if err != nil {
		respondError(ctx, err)
		return
	}

	view, err := h.prompts.Get(ctx.Request.Context(), userID, promptID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newPromptResponse(view))
}

func (h *ShareHandler) EnablePublicShare(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	promptID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	prompt, err := h.shares.EnablePublicShare(ctx.Request.Context(), userID, promptID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"publicUrl": fmt.Sprintf("%s/share/%s", publicOrigin(), *prompt.PublicShareID),
	})
}

func (h *ShareHandler) DisablePublicShare(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	promptID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	if err := h.shares.DisablePublicShare(ctx.Request.Context(), userID, promptID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *ShareHandler) GetPublic(ctx *gin.Context) {
	shareID := ctx.Param("shareId")

	prompt, err := h.shares.GetPublicByShareID(ctx.Request.Context(), shareID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, PublicPromptResponse{
		Title:      prompt.Title,
		Body:       prompt.Body,
		Notes:      prompt.Notes,
		ModelHints: prompt.ModelHints,
		CreatedAt:  prompt.CreatedAt,
		UpdatedAt:  prompt.UpdatedAt,
	})
}
