package services

import (
  "context"
  "encoding/csv"
  "fmt"
  "io"
  "os"
  "strconv"
  "strings"
  "gorm.io/gorm"
  "github.com/corpfinity/corpfinity-backend/internal/logger"
  "github.com/corpfinity/corpfinity-backend/internal/types"
  "github.com/corpfinity/corpfinity-backend/internal/repos"
)

type ImportService interface {
  ImportCSV(ctx context.Context, path string) (int, error)
}

type importService struct {
  db            *gorm.DB
  log           *logger.Logger
  challengeRepo repos.ChallengeRepo
  stepRepo      repos.ChallengeStepRepo
}

func NewImportService(db *gorm.DB, log *logger.Logger, challengeRepo repos.ChallengeRepo, stepRepo repos.ChallengeStepRepo) ImportService {
  serviceLog := log.With("service", "ImportService")
  return &importService{
    db:            db,
    log:           serviceLog,
    challengeRepo: challengeRepo,
    stepRepo:      stepRepo,
  }
}

// ImportCSV loads the challenge catalog from a CSV with columns Pillar,
// Energy Level, Challenge #, Challenge Name, Duration, Description and
// Steps (pipe-separated). Rows upsert on (pillar, energy_level, number);
// an existing challenge gets its display fields updated and its steps
// replaced wholesale. Returns the number of rows imported.
func (is *importService) ImportCSV(ctx context.Context, path string) (int, error) {
  f, err := os.Open(path)
  if err != nil {
    return 0, fmt.Errorf("Failed to open csv: %w", err)
  }
  defer f.Close()

  reader := csv.NewReader(f)
  header, err := reader.Read()
  if err != nil {
    return 0, fmt.Errorf("Failed to read csv header: %w", err)
  }
  col := make(map[string]int, len(header))
  for i, name := range header {
    col[strings.TrimSpace(name)] = i
  }

  imported := 0
  err = is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    for {
      record, rErr := reader.Read()
      if rErr == io.EOF {
        break
      }
      if rErr != nil {
        return fmt.Errorf("Failed to read csv record: %w", rErr)
      }
      row := func(name string) string {
        idx, ok := col[name]
        if !ok || idx >= len(record) {
          return ""
        }
        return strings.TrimSpace(record[idx])
      }
      pillar := row("Pillar")
      energy := strings.ToUpper(row("Energy Level"))
      number, _ := strconv.Atoi(row("Challenge #"))
      name := row("Challenge Name")
      duration := parseDuration(row("Duration"))
      description := row("Description")
      steps := splitSteps(row("Steps"))

      existing, gErr := is.challengeRepo.GetByKey(ctx, tx, pillar, energy, number)
      if gErr != nil {
        return fmt.Errorf("Failed to look up challenge: %w", gErr)
      }
      var challengeID uint
      if existing != nil {
        existing.Name = name
        existing.DurationMinutes = duration
        existing.Description = description
        if uErr := is.challengeRepo.Update(ctx, tx, existing); uErr != nil {
          return fmt.Errorf("Failed to update challenge: %w", uErr)
        }
        challengeID = existing.ID
      } else {
        created, cErr := is.challengeRepo.Create(ctx, tx, []*types.Challenge{{
          Pillar:          pillar,
          EnergyLevel:     energy,
          Number:          number,
          Name:            name,
          DurationMinutes: duration,
          Description:     description,
        }})
        if cErr != nil {
          return fmt.Errorf("Failed to create challenge: %w", cErr)
        }
        challengeID = created[0].ID
      }
      if sErr := is.stepRepo.ReplaceForChallenge(ctx, tx, challengeID, steps); sErr != nil {
        return fmt.Errorf("Failed to replace challenge steps: %w", sErr)
      }
      imported++
    }
    return nil
  })
  if err != nil {
    return 0, err
  }
  is.log.Info("Challenge catalog imported", "rows", imported)
  return imported, nil
}

// parseDuration turns strings like "5 minutes" into an int, defaulting
// to 5 when unparseable.
func parseDuration(value string) int {
  v := strings.ToLower(strings.TrimSpace(value))
  v = strings.TrimSuffix(v, "minutes")
  v = strings.TrimSuffix(v, "minute")
  v = strings.TrimSpace(v)
  n, err := strconv.Atoi(v)
  if err != nil {
    return 5
  }
  return n
}

func splitSteps(raw string) []*types.ChallengeStep {
  parts := strings.Split(raw, "|")
  steps := make([]*types.ChallengeStep, 0, len(parts))
  position := 0
  for _, p := range parts {
    text := strings.TrimSpace(p)
    if text == "" {
      continue
    }
    position++
    steps = append(steps, &types.ChallengeStep{Position: position, Text: text})
  }
  return steps
}
