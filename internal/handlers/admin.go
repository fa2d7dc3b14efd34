package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promptvault-dev/promptvault/internal/services"
	"github.com/promptvault-dev/promptvault/internal/types"
	"github.com/promptvault-dev/promptvault/internal/utils"
	"gorm.io/gorm"
)

type AdminHandler struct {
	users *services.UserService
}

func NewAdminHandler(database *gorm.DB) *AdminHandler {
	return &AdminHandler{users: services.NewUserService(database)}
}

type AdminCreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	TeamID   *uint  `json:"team_id"`
}

type AdminUpdateUserRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	TeamID   *uint   `json:"team_id"`
	SetTeam  bool    `json:"set_team"`
}

type UpdateSettingsRequest struct {
	AllowRegistration *bool `json:"allow_registration" binding:"required"`
}

type SettingsResponse struct {
	AllowRegistration bool `json:"allow_registration"`
}

func (h *AdminHandler) ListUsers(ctx *gin.Context) {
	users, err := h.users.ListUsers(ctx.Request.Context())

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]types.UserResponse, 0, len(users))

	for _, user := range users {
		response = append(response, newUserResponse(user))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *AdminHandler) CreateUser(ctx *gin.Context) {
	var body AdminCreateUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := h.users.CreateUser(ctx.Request.Context(), services.AdminUserInput{
		Email:    body.Email,
		Password: body.Password,
		Name:     body.Name,
		Role:     body.Role,
		TeamID:   body.TeamID,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newUserResponse(user))
}

func (h *AdminHandler) UpdateUser(ctx *gin.Context) {
	userID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	var body AdminUpdateUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := h.users.UpdateUser(ctx.Request.Context(), userID, services.AdminUserUpdate{
		Email:    body.Email,
		Password: body.Password,
		Name:     body.Name,
		Role:     body.Role,
		TeamID:   body.TeamID,
		SetTeam:  body.SetTeam || body.TeamID != nil,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newUserResponse(user))
}

func (h *AdminHandler) DeleteUser(ctx *gin.Context) {
	userID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	if err := h.users.DeleteUser(ctx.Request.Context(), userID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AdminHandler) GetSettings(ctx *gin.Context) {
	settings, err := h.users.GetSettings(ctx.Request.Context())

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, SettingsResponse{AllowRegistration: settings.AllowRegistration})
}

func (h *AdminHandler) UpdateSettings(ctx *gin.Context) {
	var body UpdateSettingsRequest

	if err := ctx.BindJSON(&body); err != nil || body.AllowRegistration == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	settings, err := h.users.UpdateSettings(ctx.Request.Context(), *body.AllowRegistration)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, SettingsResponse{AllowRegistration: settings.AllowRegistration})
}
