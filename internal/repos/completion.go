package repos

import (
  "context"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/corpfinity/corpfinity-backend/internal/logger"
  "github.com/corpfinity/corpfinity-backend/internal/types"
)

type CompletionRepo interface {
  Create(ctx context.Context, tx *gorm.DB, completion *types.ChallengeCompletion) error
  GetCompletedIDs(ctx context.Context, tx *gorm.DB, userID uint, pillar, energyLevel string) ([]uint, error)
  CountByUser(ctx context.Context, tx *gorm.DB, userID uint) (int64, error)
  DeleteBucket(ctx context.Context, tx *gorm.DB, userID uint, pillar, energyLevel string) error
}

type completionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCompletionRepo(db *gorm.DB, baseLog *logger.Logger) CompletionRepo {
  repoLog := baseLog.With("repo", "CompletionRepo")
  return &completionRepo{db: db, log: repoLog}
}

// Create inserts a completion record. A conflicting insert for the same
// (user_id, challenge_id) is absorbed by the unique index, so a racing
// duplicate write succeeds as a no-op.
func (cr *completionRepo) Create(ctx context.Context, tx *gorm.DB, completion *types.ChallengeCompletion) error {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  return transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "user_id"}, {Name: "challenge_id"}},
      DoNothing: true,
    }).
    Create(completion).Error
}

func (cr *completionRepo) GetCompletedIDs(ctx context.Context, tx *gorm.DB, userID uint, pillar, energyLevel string) ([]uint, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var ids []uint
  if err := transaction.WithContext(ctx).
    Model(&types.ChallengeCompletion{}).
    Where("user_id = ? AND pillar = ? AND energy_level = ?", userID, pillar, energyLevel).
    Pluck("challenge_id", &ids).Error; err != nil {
    return nil, err
  }
  return ids, nil
}

func (cr *completionRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uint) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.ChallengeCompletion{}).
    Where("user_id = ?", userID).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

// DeleteBucket clears every completion in a user's (pillar, energy_level)
// bucket with a single keyed bulk delete so the cycle reset is atomic.
func (cr *completionRepo) DeleteBucket(ctx context.Context, tx *gorm.DB, userID uint, pillar, energyLevel string) error {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  return transaction.WithContext(ctx).
    Where("user_id = ? AND pillar = ? AND energy_level = ?", userID, pillar, energyLevel).
    Delete(&types.ChallengeCompletion{}).Error
}
