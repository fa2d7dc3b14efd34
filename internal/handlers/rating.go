package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promptvault-dev/promptvault/internal/services"
	"github.com/promptvault-dev/promptvault/internal/utils"
	"gorm.io/gorm"
)

type RatingHandler struct {
	ratings *services.RatingService
}

func NewRatingHandler(database *gorm.DB) *RatingHandler {
	return &RatingHandler{ratings: services.NewRatingService(database)}
}

type RateRequest struct {
	Value int `json:"value" binding:"required"`
}

func (h *RatingHandler) Rate(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	promptID, err := utils.GetIDParam(ctx, "promptId")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	var body RateRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	rating, err := h.ratings.Rate(ctx.Request.Context(), userID, promptID, body.Value)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newRatingResponse(rating))
}
