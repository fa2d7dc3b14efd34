package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/promptvault-dev/promptvault/internal/handlers"
	"github.com/promptvault-dev/promptvault/internal/middleware"
	"github.com/promptvault-dev/promptvault/internal/types"
	"gorm.io/gorm"
)

func NewRouter(database *gorm.DB) *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := handlers.NewAuthHandler(database)
	promptHandler := handlers.NewPromptHandler(database)
	ratingHandler := handlers.NewRatingHandler(database)
	shareHandler := handlers.NewShareHandler(database)
	searchHandler := handlers.NewSearchHandler(database)
	tagHandler := handlers.NewTagHandler(database)
	teamHandler := handlers.NewTeamHandler(database)
	adminHandler := handlers.NewAdminHandler(database)
	importExportHandler := handlers.NewImportExportHandler(database)

	requireAuth := middleware.AuthMiddleware(database)
	requireAdmin := middleware.AdminMiddleware()

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.Me)
			auth.PUT("/profile", requireAuth, authHandler.UpdateProfile)
		}

		prompts := api.Group("/prompts", requireAuth)
		{
			prompts.POST("", promptHandler.Create)
			prompts.GET("", promptHandler.List)
			prompts.GET("/feed/team", promptHandler.TeamFeed)
			prompts.GET("/:id", promptHandler.Get)
			prompts.PUT("/:id", promptHandler.Update)
			prompts.DELETE("/:id", promptHandler.Delete)
			prompts.PUT("/:id/visibility", shareHandler.SetVisibility)
		}

		api.POST("/ratings/:promptId", requireAuth, ratingHandler.Rate)

		share := api.Group("/share")
		{
			share.GET("/public/:shareId", shareHandler.GetPublic)
			share.POST("/:id/public", requireAuth, shareHandler.EnablePublicShare)
			share.DELETE("/:id/public", requireAuth, shareHandler.DisablePublicShare)
		}

		api.GET("/search", requireAuth, searchHandler.Search)

		tags := api.Group("/tags", requireAuth)
		{
			tags.GET("", tagHandler.List)
			tags.GET("/:id", requireAdmin, tagHandler.Get)
			tags.PUT("/:id", requireAdmin, tagHandler.Rename)
			tags.DELETE("/:id", requireAdmin, tagHandler.Delete)
		}

		admin := api.Group("/admin", requireAuth, requireAdmin)
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.POST("/users", adminHandler.CreateUser)
			admin.PUT("/users/:id", adminHandler.UpdateUser)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)

			admin.GET("/settings", adminHandler.GetSettings)
			admin.PUT("/settings", adminHandler.UpdateSettings)

			admin.GET("/teams", teamHandler.List)
			admin.POST("/teams", teamHandler.Create)
			admin.DELETE("/teams/:id", teamHandler.Delete)
		}

		importExport := api.Group("/import-export", requireAuth)
		{
			importExport.GET("/export", importExportHandler.Export)
			importExport.POST("/import", importExportHandler.Import)
		}
	}

	return r
}
