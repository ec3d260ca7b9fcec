package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/corpfinity/corpfinity-backend/internal/logger"
  "github.com/corpfinity/corpfinity-backend/internal/types"
)

type ChallengeStepRepo interface {
  ReplaceForChallenge(ctx context.Context, tx *gorm.DB, challengeID uint, steps []*types.ChallengeStep) error
  ListByChallengeID(ctx context.Context, tx *gorm.DB, challengeID uint) ([]*types.ChallengeStep, error)
}

type challengeStepRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewChallengeStepRepo(db *gorm.DB, baseLog *logger.Logger) ChallengeStepRepo {
  repoLog := baseLog.With("repo", "ChallengeStepRepo")
  return &challengeStepRepo{db: db, log: repoLog}
}

// ReplaceForChallenge deletes the challenge's existing steps and inserts
// the given set. Used by the catalog importer on re-import.
func (csr *challengeStepRepo) ReplaceForChallenge(ctx context.Context, tx *gorm.DB, challengeID uint, steps []*types.ChallengeStep) error {
  transaction := tx
  if transaction == nil {
    transaction = csr.db
  }
  if err := transaction.WithContext(ctx).
    Where("challenge_id = ?", challengeID).
    Delete(&types.ChallengeStep{}).Error; err != nil {
    return err
  }
  if len(steps) == 0 {
    return nil
  }
  for _, s := range steps {
    s.ChallengeID = challengeID
  }
  return transaction.WithContext(ctx).Create(&steps).Error
}

func (csr *challengeStepRepo) ListByChallengeID(ctx context.Context, tx *gorm.DB, challengeID uint) ([]*types.ChallengeStep, error) {
  transaction := tx
  if transaction == nil {
    transaction = csr.db
  }
  var results []*types.ChallengeStep
  if err := transaction.WithContext(ctx).
    Where("challenge_id = ?", challengeID).
    Order("position ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
