package http

import (
	"github.com/sasazame/todo-app-backend/internal/config"
	"github.com/sasazame/todo-app-backend/internal/http/handlers"
	"github.com/sasazame/todo-app-backend/internal/http/middleware"
	"github.com/sasazame/todo-app-backend/internal/repository"
	"github.com/sasazame/todo-app-backend/internal/service"
	"github.com/sasazame/todo-app-backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	userRepo := repository.NewUserRepository(db)
	todoRepo := repository.NewTodoRepository(db)

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpiration, cfg.JWTRefreshExpiration)
	hub := ws.NewHub()

	authService := service.NewAuthService(userRepo, tokens)
	resolver := service.NewIdentityResolver(userRepo, tokens)
	todoService := service.NewTodoService(todoRepo, hub)
	userService := service.NewUserService(userRepo)

	h := handlers.NewHandler(authService, resolver, todoService, userService, hub)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.Metrics())
	v1.Use(middleware.RateLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	authRL := middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)
	authRequired := middleware.Auth(resolver)

	// Auth
	auth := v1.Group("/auth")
	auth.POST("/register", authRL, h.Register)
	auth.POST("/login", authRL, h.Login)
	auth.GET("/me", authRequired, h.Me)

	// Todos
	todos := v1.Group("/todos")
	todos.Use(authRequired)
	{
		todos.POST("", h.CreateTodo)
		todos.GET("", h.ListTodos)
		todos.GET("/status/:status", h.ListTodosByStatus)
		todos.GET("/:id", h.GetTodo)
		todos.PUT("/:id", h.UpdateTodo)
		todos.DELETE("/:id", h.DeleteTodo)
		todos.GET("/:id/children", h.ListTodoChildren)
	}

	// User profile
	users := v1.Group("/users")
	users.Use(authRequired)
	{
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.PUT("/:id/password", h.ChangePassword)
		users.DELETE("/:id", h.DeleteUser)
	}

	// WebSocket task event stream (token via query or header)
	v1.GET("/events", h.Events)
}
