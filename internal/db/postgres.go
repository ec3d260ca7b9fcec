package db

import (
  "fmt"
  "gorm.io/driver/postgres"
  "gorm.io/gorm"
  "github.com/corpfinity/corpfinity-backend/internal/types"
  "github.com/corpfinity/corpfinity-backend/internal/utils"
  "github.com/corpfinity/corpfinity-backend/internal/logger"
)

type PostgresService struct {
  db *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  log.Info("Loading environment variables...")
  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "corpfinity", log)
  postgresSSLMode := utils.GetEnv("POSTGRES_SSLMODE", "disable", log)

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName, postgresSSLMode)

  log.Info("Connecting to Postgres...")
  gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    log.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
  }

  return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.UserToken{},
    &types.Challenge{},
    &types.ChallengeStep{},
    &types.ChallengeCompletion{},
    &types.Session{},
  )
  if err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }
  s.log.Info("Configuring foreign key relationships for postgres tables...")
  constraints := []struct {
    name string
    sql  string
  }{
    {"fk_user_tokens_user_id", `ALTER TABLE "user_tokens" ADD CONSTRAINT "fk_user_tokens_user_id" FOREIGN KEY ("user_id") REFERENCES "users"("id") ON DELETE CASCADE`},
    {"fk_challenge_steps_challenge_id", `ALTER TABLE "challenge_steps" ADD CONSTRAINT "fk_challenge_steps_challenge_id" FOREIGN KEY ("challenge_id") REFERENCES "challenges"("id") ON DELETE CASCADE`},
    {"fk_challenge_completions_user_id", `ALTER TABLE "challenge_completions" ADD CONSTRAINT "fk_challenge_completions_user_id" FOREIGN KEY ("user_id") REFERENCES "users"("id") ON DELETE CASCADE`},
    {"fk_challenge_completions_challenge_id", `ALTER TABLE "challenge_completions" ADD CONSTRAINT "fk_challenge_completions_challenge_id" FOREIGN KEY ("challenge_id") REFERENCES "challenges"("id") ON DELETE CASCADE`},
    {"fk_sessions_user_id", `ALTER TABLE "sessions" ADD CONSTRAINT "fk_sessions_user_id" FOREIGN KEY ("user_id") REFERENCES "users"("id") ON DELETE CASCADE`},
    {"fk_sessions_challenge_id", `ALTER TABLE "sessions" ADD CONSTRAINT "fk_sessions_challenge_id" FOREIGN KEY ("challenge_id") REFERENCES "challenges"("id") ON DELETE CASCADE`},
  }
  for _, c := range constraints {
    var count int64
    if err := s.db.Raw(`SELECT COUNT(*) FROM information_schema.table_constraints WHERE constraint_name = ?`, c.name).Scan(&count).Error; err != nil {
      return fmt.Errorf("Failed to check constraint %s: %w", c.name, err)
    }
    if count > 0 {
      continue
    }
    if err := s.db.Exec(c.sql).Error; err != nil {
      return fmt.Errorf("Failed to add %s: %w", c.name, err)
    }
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
