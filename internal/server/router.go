package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
  "github.com/corpfinity/corpfinity-backend/internal/handlers"
  "github.com/corpfinity/corpfinity-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler       *handlers.AuthHandler
  AuthMiddleware    *middleware.AuthMiddleware
  UserHandler       *handlers.UserHandler
  ChallengeHandler  *handlers.ChallengeHandler
  SessionHandler    *handlers.SessionHandler
  ProgressHandler   *handlers.ProgressHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  router.Use(otelgin.Middleware("corpfinity-backend"))

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5173",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/auth/register", cfg.AuthHandler.Register)
  router.POST("/auth/login", cfg.AuthHandler.Login)
  router.POST("/auth/refresh", cfg.AuthHandler.Refresh)
  router.GET("/challenges", cfg.ChallengeHandler.List)

// ===============
// || Protected ||
// ===============
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.POST("/auth/logout", cfg.AuthHandler.Logout)
  protected.GET("/auth/me", cfg.UserHandler.GetMe)
  // Challenges
  protected.GET("/challenges/next", cfg.ChallengeHandler.Next)
  protected.POST("/challenges/:id/complete", cfg.ChallengeHandler.Complete)
  // Sessions
  protected.POST("/sessions", cfg.SessionHandler.Create)
  protected.GET("/activity/recent", cfg.SessionHandler.RecentActivity)
  // Progress
  protected.GET("/progress/summary", cfg.ProgressHandler.Summary)
  protected.GET("/progress/breakdown", cfg.ProgressHandler.Breakdown)
  protected.GET("/progress/calendar", cfg.ProgressHandler.Calendar)
  protected.GET("/progress/weekly", cfg.ProgressHandler.Weekly)
  protected.GET("/progress/monthly", cfg.ProgressHandler.Monthly)
  protected.GET("/progress/yearly", cfg.ProgressHandler.Yearly)

  return router
}
