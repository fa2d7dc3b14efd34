package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/promptvault-dev/promptvault/internal/services"
	"github.com/promptvault-dev/promptvault/internal/utils"
	"gorm.io/gorm"
)

type TeamHandler struct {
	users *services.UserService
}

func NewTeamHandler(database *gorm.DB) *TeamHandler {
	return &TeamHandler{users: services.NewUserService(database)}
}

type CreateTeamRequest struct {
	Name string `json:"name" binding:"required"`
}

type TeamResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *TeamHandler) List(ctx *gin.Context) {
	teams, err := h.users.ListTeams(ctx.Request.Context())

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]TeamResponse, 0, len(teams))

	for _, team := range teams {
		response = append(response, TeamResponse{ID: team.ID, Name: team.Name, CreatedAt: team.CreatedAt})
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *TeamHandler) Create(ctx *gin.Context) {
	var body CreateTeamRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	team, err := h.users.CreateTeam(ctx.Request.Context(), body.Name)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, TeamResponse{ID: team.ID, Name: team.Name, CreatedAt: team.CreatedAt})
}

func (h *TeamHandler) Delete(ctx *gin.Context) {
	teamID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	if err := h.users.DeleteTeam(ctx.Request.Context(), teamID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
