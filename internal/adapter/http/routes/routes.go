package routes

import (
	"github.com/gin-gonic/gin"

	"blogapp/internal/adapter/http/handler"
	"blogapp/internal/adapter/http/middleware"
	"blogapp/internal/core/domain"
	"blogapp/internal/core/port"
	"blogapp/internal/core/telemetry"
	"blogapp/pkg/config"
)

type HandlersConfig struct {
	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	CategoryHandler *handler.CategoryHandler
	HealthHandler   *handler.HealthHandler

	// The bearer filter resolves tokens against these.
	Tokens port.TokenCodec
	Users  port.UserRepository
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *config.LokiLogger, cfg *config.AppConfig) *gin.Engine {
	router := gin.New()

	middleware.SetupGinMiddleware(router, cfg, metrics, logger)

	registerRoutes(router, handlers)

	return router
}

// SetupRouterForTests skips telemetry, logging and HTTPS redirects.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()

	router.Use(middleware.CurrentMiddleware())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())

	registerRoutes(router, handlers)

	return router
}

func registerRoutes(router *gin.Engine, handlers HandlersConfig) {
	if handlers.HealthHandler != nil {
		router.GET("/health", handlers.HealthHandler.Health)
	}

	api := router.Group("/api/v1")
	bearer := middleware.AuthMiddleware(handlers.Tokens, handlers.Users)
	admin := middleware.RequireRole(domain.RoleAdmin)
	selfOrAdmin := middleware.RequireSelfOrRole("id", domain.RoleAdmin)

	if handlers.AuthHandler != nil {
		setupAuthRoutes(api, handlers.AuthHandler)
	}

	if handlers.CategoryHandler != nil {
		setupCategoryRoutes(api, handlers.CategoryHandler, bearer)
	}

	if handlers.UserHandler != nil {
		setupUserRoutes(api, handlers.UserHandler, bearer, admin, selfOrAdmin)
	}
}

func setupAuthRoutes(api *gin.RouterGroup, authHandler *handler.AuthHandler) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/verify", authHandler.VerifyAccount)
		auth.POST("/resend-verification", authHandler.ResendVerification)
		auth.POST("/login", authHandler.Login)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
		auth.POST("/refresh", authHandler.RefreshToken)
		auth.GET("/logout", authHandler.Logout)
	}
}

func setupCategoryRoutes(api *gin.RouterGroup, categoryHandler *handler.CategoryHandler, bearer gin.HandlerFunc) {
	categories := api.Group("/categories")
	{
		categories.GET("", categoryHandler.ListCategories)
		categories.POST("", bearer, categoryHandler.CreateCategory)
		categories.DELETE("/:id", bearer, categoryHandler.DeleteCategory)
	}
}

func setupUserRoutes(api *gin.RouterGroup, userHandler *handler.UserHandler, bearer, admin, selfOrAdmin gin.HandlerFunc) {
	users := api.Group("/users")
	users.Use(bearer)
	{
		users.GET("", userHandler.ListUsers)
		users.GET("/count", userHandler.CountUsers)
		users.GET("/me", userHandler.Me)
		users.GET("/email/:email", userHandler.GetUserByEmail)
		users.GET("/:id", userHandler.GetUser)
		users.PUT("/:id", selfOrAdmin, userHandler.UpdateUser)
		users.PATCH("/:id/role", admin, userHandler.UpdateUserRole)
		users.DELETE("/email/:email", admin, userHandler.DeleteUserByEmail)
		users.DELETE("/:id", admin, userHandler.DeleteUser)
	}
}
