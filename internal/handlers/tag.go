package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/promptvault-dev/promptvault/internal/services"
	"github.com/promptvault-dev/promptvault/internal/utils"
	"gorm.io/gorm"
)

type TagHandler struct {
	tags *services.TagService
}

func NewTagHandler(database *gorm.DB) *TagHandler {
	return &TagHandler{tags: services.NewTagService(database)}
}

type TagResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	UsageCount int64     `json:"usage_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type RenameTagRequest struct {
	Name string `json:"name" binding:"required"`
}

func newTagResponse(tag services.TagWithUsage) TagResponse {
	return TagResponse{
		ID:         tag.Tag.ID,
		Name:       tag.Tag.Name,
		UsageCount: tag.UsageCount,
		CreatedAt:  tag.Tag.CreatedAt,
		UpdatedAt:  tag.Tag.UpdatedAt,
	}
}

func (h *TagHandler) List(ctx *gin.Context) {
	tags, err := h.tags.List(ctx.Request.Context())

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]TagResponse, 0, len(tags))

	for _, tag := range tags {
		response = append(response, newTagResponse(tag))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *TagHandler) Get(ctx *gin.Context) {
	tagID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	tag, err := h.tags.Get(ctx.Request.Context(), tagID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newTagResponse(tag))
}

func (h *TagHandler) Rename(ctx *gin.Context) {
	tagID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	var body RenameTagRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	tag, err := h.tags.Rename(ctx.Request.Context(), tagID, body.Name)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newTagResponse(tag))
}

func (h *TagHandler) Delete(ctx *gin.Context) {
	tagID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	if err := h.tags.Delete(ctx.Request.Context(), tagID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
