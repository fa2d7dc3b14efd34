package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/promptvault-dev/promptvault/internal/models"
	"github.com/promptvault-dev/promptvault/internal/services"
	"github.com/promptvault-dev/promptvault/internal/types"
	"github.com/promptvault-dev/promptvault/internal/utils"
	"gorm.io/gorm"
)

type PromptHandler struct {
	prompts *services.PromptService
}

func NewPromptHandler(database *gorm.DB) *PromptHandler {
	return &PromptHandler{prompts: services.NewPromptService(database)}
}

type CreatePromptRequest struct {
	Title      string   `json:"title" binding:"required"`
	Body       string   `json:"body" binding:"required"`
	Variables  string   `json:"variables"`
	Notes      string   `json:"notes"`
	ModelHints string   `json:"model_hints"`
	Tags       []string `json:"tags"`
}

type UpdatePromptRequest struct {
	Title      *string   `json:"title"`
	Body       *string   `json:"body"`
	Variables  *string   `json:"variables"`
	Notes      *string   `json:"notes"`
	ModelHints *string   `json:"model_hints"`
	Visibility *string   `json:"visibility"`
	Tags       *[]string `json:"tags"`
}

type RatingResponse struct {
	ID        uint      `json:"id"`
	PromptID  uint      `json:"prompt_id"`
	UserID    uint      `json:"user_id"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type VersionResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

type PromptResponse struct {
	ID               uint                `json:"id"`
	Title            string              `json:"title"`
	Body             string              `json:"body"`
	Variables        string              `json:"variables"`
	Notes            string              `json:"notes"`
	ModelHints       string              `json:"model_hints"`
	Visibility       string              `json:"visibility"`
	IsPubliclyShared bool                `json:"is_publicly_shared"`
	PublicShareID    *string             `json:"public_share_id"`
	Tags             []string            `json:"tags"`
	Ratings          []RatingResponse    `json:"ratings"`
	AvgRating        float64             `json:"avg_rating"`
	VersionCount     int64               `json:"version_count"`
	Versions         []VersionResponse   `json:"versions,omitempty"`
	Owner            *types.UserResponse `json:"owner,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

func newRatingResponse(rating models.Rating) RatingResponse {
	return RatingResponse{
		ID:        rating.ID,
		PromptID:  rating.PromptID,
		UserID:    rating.UserID,
		Value:     rating.Value,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
}

func newPromptResponse(view services.PromptView) PromptResponse {
	tags := make([]string, 0, len(view.Tags))

	for _, tag := range view.Tags {
		tags = append(tags, tag.Name)
	}

	ratings := make([]RatingResponse, 0, len(view.Ratings))

	for _, rating := range view.Ratings {
		ratings = append(ratings, newRatingResponse(rating))
	}

	versions := make([]VersionResponse, 0, len(view.Versions))

	for _, version := range view.Versions {
		versions = append(versions, VersionResponse{
			ID:        version.ID,
			Title:     version.Title,
			Body:      version.Body,
			Notes:     version.Notes,
			CreatedAt: version.CreatedAt,
		})
	}

	response := PromptResponse{
		ID:               view.Prompt.ID,
		Title:            view.Prompt.Title,
		Body:             view.Prompt.Body,
		Variables:        view.Prompt.Variables,
		Notes:            view.Prompt.Notes,
		ModelHints:       view.Prompt.ModelHints,
		Visibility:       view.Prompt.Visibility,
		IsPubliclyShared: view.Prompt.IsPubliclyShared,
		PublicShareID:    view.Prompt.PublicShareID,
		Tags:             tags,
		Ratings:          ratings,
		AvgRating:        view.AvgRating,
		VersionCount:     view.VersionCount,
		Versions:         versions,
		CreatedAt:        view.Prompt.CreatedAt,
		UpdatedAt:        view.Prompt.UpdatedAt,
	}

	if view.Owner != nil {
		response.Owner = &types.UserResponse{
			ID:     view.Owner.ID,
			Email:  view.Owner.Email,
			Name:   view.Owner.Name,
			TeamID: view.Owner.TeamID,
			Role:   view.Owner.Role,
		}
	}

	return response
}

func (h *PromptHandler) Create(ctx *gin.Context) {
	var body CreatePromptRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	prompt, err := h.prompts.Create(ctx.Request.Context(), userID, services.CreatePromptInput{
		Title:      body.Title,
		Body:       body.Body,
		Variables:  body.Variables,
		Notes:      body.Notes,
		ModelHints: body.ModelHints,
		Tags:       body.Tags,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	view, err := h.prompts.Get(ctx.Request.Context(), userID, prompt.ID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newPromptResponse(view))
}

func (h *PromptHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	views, err := h.prompts.List(ctx.Request.Context(), userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]PromptResponse, 0, len(views))

	for _, view := range views {
		response = append(response, newPromptResponse(view))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *PromptHandler) Get(ctx *gin.Context) {
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

	view, err := h.prompts.Get(ctx.Request.Context(), userID, promptID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newPromptResponse(view))
}

func (h *PromptHandler) Update(ctx *gin.Context) {
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

	var body UpdatePromptRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	_, err = h.prompts.Update(ctx.Request.Context(), userID, promptID, services.UpdatePromptInput{
		Title:      body.Title,
		Body:       body.Body,
		Variables:  body.Variables,
		Notes:      body.Notes,
		ModelHints: body.ModelHints,
		Visibility: body.Visibility,
		Tags:       body.Tags,
	})

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

func (h *PromptHandler) Delete(ctx *gin.Context) {
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

	if err := h.prompts.Delete(ctx.Request.Context(), userID, promptID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *PromptHandler) TeamFeed(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	views, err := h.prompts.TeamFeed(ctx.Request.Context(), userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]PromptResponse, 0, len(views))

	for _, view := range views {
		response = append(response, newPromptResponse(view))
	}

	ctx.JSON(http.StatusOK, response)
}
