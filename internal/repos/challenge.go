package repos

import (
  "context"
  "errors"
  "gorm.io/gorm"
  "github.com/corpfinity/corpfinity-backend/internal/logger"
  "github.com/corpfinity/corpfinity-backend/internal/types"
)

type ChallengeRepo interface {
  List(ctx context.Context, tx *gorm.DB, pillar, energyLevel string) ([]*types.Challenge, error)
  ListBucket(ctx context.Context, tx *gorm.DB, pillar, energyLevel string) ([]*types.Challenge, error)
  GetByID(ctx context.Context, tx *gorm.DB, challengeID uint) (*types.Challenge, error)
  GetByKey(ctx context.Context, tx *gorm.DB, pillar, energyLevel string, number int) (*types.Challenge, error)
  Create(ctx context.Context, tx *gorm.DB, challenges []*types.Challenge) ([]*types.Challenge, error)
  Update(ctx context.Context, tx *gorm.DB, challenge *types.Challenge) error
}

type challengeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewChallengeRepo(db *gorm.DB, baseLog *logger.Logger) ChallengeRepo {
  repoLog := baseLog.With("repo", "ChallengeRepo")
  return &challengeRepo{db: db, log: repoLog}
}

func orderedSteps(db *gorm.DB) *gorm.DB {
  return db.Order("position ASC")
}

// List returns the catalog, optionally filtered, ordered by
// (pillar, energy_level, number) with steps preloaded in order.
func (cr *challengeRepo) List(ctx context.Context, tx *gorm.DB, pillar, energyLevel string) ([]*types.Challenge, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  q := transaction.WithContext(ctx).Preload("Steps", orderedSteps)
  if pillar != "" {
    q = q.Where("pillar = ?", pillar)
  }
  if energyLevel != "" {
    q = q.Where("energy_level = ?", energyLevel)
  }
  var results []*types.Challenge
  if err := q.Order("pillar ASC, energy_level ASC, number ASC").Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// ListBucket returns every challenge in one (pillar, energy_level) bucket
// ordered by ascending number, ties broken by id so selection stays
// deterministic.
func (cr *challengeRepo) ListBucket(ctx context.Context, tx *gorm.DB, pillar, energyLevel string) ([]*types.Challenge, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var results []*types.Challenge
  if err := transaction.WithContext(ctx).
    Preload("Steps", orderedSteps).
    Where("pillar = ? AND energy_level = ?", pillar, energyLevel).
    Order("number ASC, id ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *challengeRepo) GetByID(ctx context.Context, tx *gorm.DB, challengeID uint) (*types.Challenge, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var result types.Challenge
  err := transaction.WithContext(ctx).
    Preload("Steps", orderedSteps).
    Where("id = ?", challengeID).
    First(&result).Error
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (cr *challengeRepo) GetByKey(ctx context.Context, tx *gorm.DB, pillar, energyLevel string, number int) (*types.Challenge, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var result types.Challenge
  err := transaction.WithContext(ctx).
    Preload("Steps", orderedSteps).
    Where("pillar = ? AND energy_level = ? AND number = ?", pillar, energyLevel, number).
    First(&result).Error
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (cr *challengeRepo) Create(ctx context.Context, tx *gorm.DB, challenges []*types.Challenge) ([]*types.Challenge, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  if len(challenges) == 0 {
    return []*types.Challenge{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&challenges).Error; err != nil {
    return nil, err
  }
  return challenges, nil
}

func (cr *challengeRepo) Update(ctx context.Context, tx *gorm.DB, challenge *types.Challenge) error {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  return transaction.WithContext(ctx).
    Model(&types.Challenge{}).
    Where("id = ?", challenge.ID).
    Updates(map[string]any{
      "name":             challenge.Name,
      "duration_minutes": challenge.DurationMinutes,
      "description":      challenge.Description,
    }).Error
}
