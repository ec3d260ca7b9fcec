package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/corpfinity/corpfinity-backend/internal/logger"
  "github.com/corpfinity/corpfinity-backend/internal/types"
)

type SessionRepo interface {
  Create(ctx context.Context, tx *gorm.DB, session *types.Session) (*types.Session, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*types.Session, error)
  ListRecent(ctx context.Context, tx *gorm.DB, userID uint, limit int) ([]*types.Session, error)
}

type sessionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
  repoLog := baseLog.With("repo", "SessionRepo")
  return &sessionRepo{db: db, log: repoLog}
}

func (sr *sessionRepo) Create(ctx context.Context, tx *gorm.DB, session *types.Session) (*types.Session, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  if err := transaction.WithContext(ctx).Create(session).Error; err != nil {
    return nil, err
  }
  return session, nil
}

// ListByUser returns the user's full session history ordered by start
// time. The aggregation reports are pure functions of this slice.
func (sr *sessionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*types.Session, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  var results []*types.Session
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("started_at ASC, id ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (sr *sessionRepo) ListRecent(ctx context.Context, tx *gorm.DB, userID uint, limit int) ([]*types.Session, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  if limit <= 0 {
    limit = 20
  }
  var results []*types.Session
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("started_at DESC, id DESC").
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
