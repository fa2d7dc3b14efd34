package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/promptvault-dev/promptvault/internal/services"
	"github.com/promptvault-dev/promptvault/internal/utils"
	"gorm.io/gorm"
)

type SearchHandler struct {
	search *services.SearchService
}

func NewSearchHandler(database *gorm.DB) *SearchHandler {
	return &SearchHandler{search: services.NewSearchService(database)}
}

// SearchResultResponse is identical for the indexed path and the substring
// fallback; callers cannot tell which one served them.
type SearchResultResponse struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Variables  string    `json:"variables"`
	Notes      string    `json:"notes"`
	ModelHints string    `json:"model_hints"`
	Visibility string    `json:"visibility"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (h *SearchHandler) Search(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	results, err := h.search.Search(ctx.Request.Context(), userID, ctx.Query("q"))

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]SearchResultResponse, 0, len(results))

	for _, result := range results {
		tags := make([]string, 0, len(result.Tags))

		for _, tag := range result.Tags {
			tags = append(tags, tag.Name)
		}

		response = append(response, SearchResultResponse{
			ID:         result.Prompt.ID,
			Title:      result.Prompt.Title,
			Body:       result.Prompt.Body,
			Variables:  result.Prompt.Variables,
			Notes:      result.Prompt.Notes,
			ModelHints: result.Prompt.ModelHints,
			Visibility: result.Prompt.Visibility,
			Tags:       tags,
			CreatedAt:  result.Prompt.CreatedAt,
			UpdatedAt:  result.Prompt.UpdatedAt,
		})
	}

	ctx.JSON(http.StatusOK, response)
}
