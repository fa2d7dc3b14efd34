package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/promptvault-dev/promptvault/internal/auth"
	"github.com/promptvault-dev/promptvault/internal/models"
	"github.com/promptvault-dev/promptvault/internal/services"
	"github.com/promptvault-dev/promptvault/internal/types"
	"github.com/promptvault-dev/promptvault/internal/utils"
	"gorm.io/gorm"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(database *gorm.DB) *AuthHandler {
	return &AuthHandler{users: services.NewUserService(database)}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	TeamID   *uint   `json:"team_id"`
	SetTeam  bool    `json:"set_team"`
	Password *string `json:"password"`
}

var (
	Domain = os.Getenv("DOMAIN")
)

func newUserResponse(user models.User) types.UserResponse {
	return types.UserResponse{
		ID:     user.ID,
		Email:  user.Email,
		Name:   user.Name,
		TeamID: user.TeamID,
		Role:   user.Role,
	}
}

func setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Domain:   Domain,
		MaxAge:   maxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var body RegisterRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := h.users.Register(ctx.Request.Context(), body.Email, body.Password, body.Name)

	if err != nil {
		respondError(ctx, err)
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Role)

	if err != nil {
		respondError(ctx, err)
		return
	}

	setSessionCookie(ctx, token, 60*60*24*7)

	ctx.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := h.users.Login(ctx.Request.Context(), body.Email, body.Password)

	if err != nil {
		respondError(ctx, err)
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Role)

	if err != nil {
		respondError(ctx, err)
		return
	}

	setSessionCookie(ctx, token, 60*60*24*7)

	ctx.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

func (h *AuthHandler) Logout(ctx *gin.Context) {
	setSessionCookie(ctx, "", -1)

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, err := h.users.Get(ctx.Request.Context(), currentUser.ID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

func (h *AuthHandler) UpdateProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdateProfileRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := h.users.UpdateProfile(ctx.Request.Context(), currentUser.ID, services.ProfileUpdate{
		Name:     body.Name,
		TeamID:   body.TeamID,
		SetTeam:  body.SetTeam || body.TeamID != nil,
		Password: body.Password,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}
