package main

import (
  "context"
  "flag"
  "fmt"
  "os"
  "github.com/corpfinity/corpfinity-backend/internal/logger"
  "github.com/corpfinity/corpfinity-backend/internal/db"
  "github.com/corpfinity/corpfinity-backend/internal/repos"
  "github.com/corpfinity/corpfinity-backend/internal/services"
)

func main() {
  flag.Parse()
  csvPath := flag.Arg(0)
  if csvPath == "" {
    fmt.Println("Usage: import_challenges <csv_path>")
    os.Exit(1)
  }

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

  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Error("Postgres auto migration failed", "error", err)
    os.Exit(1)
  }
  thePG := postgresService.DB()

  challengeRepo := repos.NewChallengeRepo(thePG, log)
  stepRepo := repos.NewChallengeStepRepo(thePG, log)
  importService := services.NewImportService(thePG, log, challengeRepo, stepRepo)

  imported, err := importService.ImportCSV(context.Background(), csvPath)
  if err != nil {
    log.Error("Import failed", "error", err)
    os.Exit(1)
  }
  fmt.Printf("Imported %d challenges from %s\n", imported, csvPath)
}
