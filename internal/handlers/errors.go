package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promptvault-dev/promptvault/internal/services"
)

// respondError maps service errors onto HTTP responses. Anything outside the
// known taxonomy is logged and surfaced as a generic server error so internal
// details never reach the caller.
func respondError(ctx *gin.Context, err error) {
	var tagInUse *services.TagInUseError

	switch {
	case errors.Is(err, services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	case errors.Is(err, services.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, services.ErrEmailInUse):
		ctx.JSON(http.StatusConflict, gin.H{"error": "Email in use"})
	case errors.Is(err, services.ErrRegistrationDisabled):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Registration disabled"})
	case errors.Is(err, services.ErrTagNameTaken):
		ctx.JSON(http.StatusConflict, gin.H{"error": "Tag name already exists"})
	case errors.Is(err, services.ErrTeamNameTaken):
		ctx.JSON(http.StatusConflict, gin.H{"error": "Team name already exists"})
	case errors.As(err, &tagInUse):
		ctx.JSON(http.StatusConflict, gin.H{
			"error":      "Cannot delete tag that is still in use",
			"usageCount": tagInUse.UsageCount,
		})
	default:
		log.Printf("Internal error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
