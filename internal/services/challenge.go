package services

import (
  "context"
  "fmt"
  "gorm.io/gorm"
  "github.com/corpfinity/corpfinity-backend/internal/logger"
  "github.com/corpfinity/corpfinity-backend/internal/types"
  "github.com/corpfinity/corpfinity-backend/internal/repos"
)

type ChallengeOut struct {
  ID              uint     `json:"id"`
  Pillar          string   `json:"pillar"`
  EnergyLevel     string   `json:"energy_level"`
  Number          int      `json:"number"`
  Name            string   `json:"name"`
  DurationMinutes int      `json:"duration_minutes"`
  Description     string   `json:"description"`
  Steps           []string `json:"steps"`
}

type ChallengeService interface {
  ListChallenges(ctx context.Context, pillar, energyLevel string) ([]*ChallengeOut, error)
  NextChallenge(ctx context.Context, userID uint, pillar, energyLevel string) (*ChallengeOut, error)
  CompleteChallenge(ctx context.Context, userID, challengeID uint) error
}

type challengeService struct {
  db             *gorm.DB
  log            *logger.Logger
  challengeRepo  repos.ChallengeRepo
  completionRepo repos.CompletionRepo
}

func NewChallengeService(db *gorm.DB, log *logger.Logger, challengeRepo repos.ChallengeRepo, completionRepo repos.CompletionRepo) ChallengeService {
  serviceLog := log.With("service", "ChallengeService")
  return &challengeService{
    db:             db,
    log:            serviceLog,
    challengeRepo:  challengeRepo,
    completionRepo: completionRepo,
  }
}

// ListChallenges returns the catalog, optionally filtered by pillar and
// energy level. Unknown filter values are a valid empty result, not an
// error.
func (cs *challengeService) ListChallenges(ctx context.Context, pillar, energyLevel string) ([]*ChallengeOut, error) {
  challenges, err := cs.challengeRepo.List(ctx, nil, pillar, energyLevel)
  if err != nil {
    return nil, fmt.Errorf("Failed to list challenges: %w", err)
  }
  out := make([]*ChallengeOut, 0, len(challenges))
  for _, c := range challenges {
    out = append(out, toChallengeOut(c))
  }
  return out, nil
}

// NextChallenge picks the first challenge in the (pillar, energyLevel)
// bucket, ordered by ascending number, that the user has not completed.
// When every challenge in the bucket has a completion record the whole
// bucket is cleared with one bulk delete and selection restarts from the
// bucket's first challenge. Read, check and reset run inside a single
// transaction so a concurrent completion cannot observe a half-cleared
// bucket. Returns nil when the bucket is empty.
func (cs *challengeService) NextChallenge(ctx context.Context, userID uint, pillar, energyLevel string) (*ChallengeOut, error) {
  var choice *types.Challenge
  err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    challenges, lErr := cs.challengeRepo.ListBucket(ctx, tx, pillar, energyLevel)
    if lErr != nil {
      return fmt.Errorf("Failed to load challenge bucket: %w", lErr)
    }
    if len(challenges) == 0 {
      return nil
    }
    completedIDs, cErr := cs.completionRepo.GetCompletedIDs(ctx, tx, userID, pillar, energyLevel)
    if cErr != nil {
      return fmt.Errorf("Failed to load completed challenge ids: %w", cErr)
    }
    completed := make(map[uint]struct{}, len(completedIDs))
    for _, id := range completedIDs {
      completed[id] = struct{}{}
    }
    for _, c := range challenges {
      if _, done := completed[c.ID]; !done {
        choice = c
        break
      }
    }
    if choice == nil {
      // Full cycle: clear the bucket and restart from the first challenge.
      if dErr := cs.completionRepo.DeleteBucket(ctx, tx, userID, pillar, energyLevel); dErr != nil {
        return fmt.Errorf("Failed to reset completion bucket: %w", dErr)
      }
      cs.log.Info("Completion bucket cycled", "user_id", userID, "pillar", pillar, "energy_level", energyLevel)
      choice = challenges[0]
    }
    return nil
  })
  if err != nil {
    return nil, err
  }
  if choice == nil {
    return nil, nil
  }
  return toChallengeOut(choice), nil
}

// CompleteChallenge records that the user finished the challenge. The
// completion row carries the challenge's pillar and energy level.
// Re-completing an already-completed challenge is a silent no-op.
func (cs *challengeService) CompleteChallenge(ctx context.Context, userID, challengeID uint) error {
  challenge, err := cs.challengeRepo.GetByID(ctx, nil, challengeID)
  if err != nil {
    return fmt.Errorf("Failed to load challenge: %w", err)
  }
  if challenge == nil {
    return ErrChallengeNotFound
  }
  completion := &types.ChallengeCompletion{
    UserID:      userID,
    ChallengeID: challenge.ID,
    Pillar:      challenge.Pillar,
    EnergyLevel: challenge.EnergyLevel,
  }
  if err := cs.completionRepo.Create(ctx, nil, completion); err != nil {
    return fmt.Errorf("Failed to record challenge completion: %w", err)
  }
  return nil
}

func toChallengeOut(c *types.Challenge) *ChallengeOut {
  return &ChallengeOut{
    ID:              c.ID,
    Pillar:          c.Pillar,
    EnergyLevel:     c.EnergyLevel,
    Number:          c.Number,
    Name:            c.Name,
    DurationMinutes: c.DurationMinutes,
    Description:     c.Description,
    Steps:           c.StepTexts(),
  }
}
