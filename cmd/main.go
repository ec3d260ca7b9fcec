package main

import (
  "context"
  "fmt"
  "os"
  "time"
  "github.com/corpfinity/corpfinity-backend/internal/logger"
  "github.com/corpfinity/corpfinity-backend/internal/utils"
  "github.com/corpfinity/corpfinity-backend/internal/db"
  "github.com/corpfinity/corpfinity-backend/internal/observability"
  "github.com/corpfinity/corpfinity-backend/internal/repos"
  "github.com/corpfinity/corpfinity-backend/internal/services"
  "github.com/corpfinity/corpfinity-backend/internal/handlers"
  "github.com/corpfinity/corpfinity-backend/internal/middleware"
  "github.com/corpfinity/corpfinity-backend/internal/server"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 604800, log)

  // Tracing
  shutdownOTel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
    ServiceName: "corpfinity-backend",
    Environment: utils.GetEnv("APP_ENV", "development", log),
    Version:     utils.GetEnv("APP_VERSION", "dev", log),
  })
  if shutdownOTel != nil {
    defer func() {
      ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
      defer cancel()
      _ = shutdownOTel(ctx)
    }()
  }

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  challengeRepo := repos.NewChallengeRepo(thePG, log)
  completionRepo := repos.NewCompletionRepo(thePG, log)
  sessionRepo := repos.NewSessionRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
  userService := services.NewUserService(thePG, log, userRepo)
  challengeService := services.NewChallengeService(thePG, log, challengeRepo, completionRepo)
  sessionService := services.NewSessionService(thePG, log, sessionRepo, challengeRepo)
  progressService := services.NewProgressService(thePG, log, sessionRepo, completionRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  userHandler := handlers.NewUserHandler(userService)
  challengeHandler := handlers.NewChallengeHandler(challengeService)
  sessionHandler := handlers.NewSessionHandler(sessionService)
  progressHandler := handlers.NewProgressHandler(progressService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:      authHandler,
    AuthMiddleware:   authMiddleware,
    UserHandler:      userHandler,
    ChallengeHandler: challengeHandler,
    SessionHandler:   sessionHandler,
    ProgressHandler:  progressHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
