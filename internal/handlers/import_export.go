package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promptvault-dev/promptvault/internal/services"
	"github.com/promptvault-dev/promptvault/internal/utils"
	"gorm.io/gorm"
)

type ImportExportHandler struct {
	prompts *services.PromptService
}

func NewImportExportHandler(database *gorm.DB) *ImportExportHandler {
	return &ImportExportHandler{prompts: services.NewPromptService(database)}
}

type ImportPromptItem struct {
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	Variables  string   `json:"variables"`
	Notes      string   `json:"notes"`
	ModelHints string   `json:"model_hints"`
	Tags       []string `json:"tags"`
}

func (h *ImportExportHandler) Export(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	views, err := h.prompts.Export(ctx.Request.Context(), userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]PromptResponse, 0, len(views))

	for _, view := range views {
		response = append(response, newPromptResponse(view))
	}

	ctx.Header("Content-Disposition", "attachment; filename=prompts.json")
	ctx.JSON(http.StatusOK, response)
}

// Import creates one prompt per item, each with its initial version and
// resolved tags. Items are independent creations; an invalid item aborts the
// request without touching the items after it.
func (h *ImportExportHandler) Import(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var items []ImportPromptItem

	if err := ctx.BindJSON(&items); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	imported := 0

	for _, item := range items {
		_, err := h.prompts.Create(ctx.Request.Context(), userID, services.CreatePromptInput{
			Title:      item.Title,
			Body:       item.Body,
			Variables:  item.Variables,
			Notes:      item.Notes,
			ModelHints: item.ModelHints,
			Tags:       item.Tags,
		})

		if err != nil {
			respondError(ctx, err)
			return
		}

		imported++
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "imported": imported})
}
