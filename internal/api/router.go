package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nexusflow/nexusflow-api/internal/api/handler"
	"github.com/nexusflow/nexusflow-api/internal/api/middleware"
	"github.com/nexusflow/nexusflow-api/internal/core/domain"
	"github.com/nexusflow/nexusflow-api/internal/core/service"
	"github.com/nexusflow/nexusflow-api/internal/core/token"
	"github.com/nexusflow/nexusflow-api/internal/pkg/config"
	mongostore "github.com/nexusflow/nexusflow-api/internal/infrastructure/db/mongo"
	redisstore "github.com/nexusflow/nexusflow-api/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, tokens *token.Manager, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddleware("nexusflow"))

	// --- Repositories ---
	userRepo := mongostore.NewUserRepository(db)
	roleRepo := mongostore.NewRoleRepository(db)
	projectRepo := mongostore.NewProjectRepository(db)
	taskRepo := mongostore.NewTaskRepository(db)
	statsCache := redisstore.NewStatsCache(rdb, log)

	// --- Services ---
	authService := service.NewAuthService(userRepo, roleRepo, tokens, cfg.SetupInvitationCode, log)
	userService := service.NewUserService(userRepo, roleRepo, log)
	projectService := service.NewProjectService(projectRepo, userRepo, log)
	taskService := service.NewTaskService(taskRepo, projectRepo, userRepo, log)
	dashboardService := service.NewDashboardService(projectRepo, taskRepo, userRepo, statsCache, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(authService, userService)
	adminHandler := handler.NewAdminHandler(userService, dashboardService)
	projectHandler := handler.NewProjectHandler(projectService, authService)
	taskHandler := handler.NewTaskHandler(taskService, authService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	setupHandler := handler.NewSetupHandler(authService)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	authGate := middleware.Auth(tokens, userRepo)

	// --- Public routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.GET("/api/setup/status", setupHandler.Status)
	e.POST("/api/setup/create-first-admin", setupHandler.CreateFirstAdmin)

	// --- Authenticated routes ---
	e.GET("/api/auth/me", authHandler.Me, authGate)

	profile := e.Group("/api/profile", authGate)
	profile.GET("", profileHandler.Get)
	profile.PUT("", profileHandler.Update)

	projects := e.Group("/api/projects", authGate)
	projects.GET("", projectHandler.List)
	projects.POST("", projectHandler.Create)
	projects.GET("/statistics", projectHandler.Statistics)
	projects.GET("/:id", projectHandler.Get)
	projects.PUT("/:id", projectHandler.Update)
	projects.DELETE("/:id", projectHandler.Delete)

	tasks := e.Group("/api/tasks", authGate)
	tasks.GET("/my-tasks", taskHandler.MyTasks)
	tasks.GET("/project/:projectId", taskHandler.ByProject)
	tasks.POST("", taskHandler.Create)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.PATCH("/:id/status", taskHandler.UpdateStatus)
	tasks.DELETE("/:id", taskHandler.Delete)

	e.GET("/api/dashboard/stats", dashboardHandler.Stats, authGate)

	// --- Admin routes ---
	admin := e.Group("/api/admin", authGate, middleware.RequireRoles(domain.RoleAdmin))
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/page", adminHandler.ListUsersPage)
	admin.GET("/users/search", adminHandler.SearchUsers)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.PUT("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.PATCH("/users/:id/toggle-status", adminHandler.ToggleUserStatus)
	admin.PATCH("/users/:id/roles", adminHandler.UpdateUserRoles)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
