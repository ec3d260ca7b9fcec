package services

import (
  "context"
  "fmt"
  "strings"
  "time"
  "gorm.io/gorm"
  "github.com/corpfinity/corpfinity-backend/internal/logger"
  "github.com/corpfinity/corpfinity-backend/internal/types"
  "github.com/corpfinity/corpfinity-backend/internal/repos"
)

type CreateSessionInput struct {
  ChallengeID     uint       `json:"challenge_id"`
  DurationSeconds int        `json:"duration_seconds"`
  Intensity       string     `json:"intensity"`
  StartedAt       *time.Time `json:"started_at"`
  EndedAt         *time.Time `json:"ended_at"`
}

type ActivityItem struct {
  ID              uint      `json:"id"`
  ChallengeID     uint      `json:"challenge_id"`
  Title           string    `json:"title"`
  StartedAt       time.Time `json:"started_at"`
  DurationMinutes int       `json:"duration_minutes"`
  Intensity       string    `json:"intensity"`
  Points          int       `json:"points"`
}

type SessionService interface {
  CreateSession(ctx context.Context, userID uint, in CreateSessionInput) (*types.Session, error)
  RecentActivity(ctx context.Context, userID uint, limit int) ([]*ActivityItem, error)
}

type sessionService struct {
  db            *gorm.DB
  log           *logger.Logger
  sessionRepo   repos.SessionRepo
  challengeRepo repos.ChallengeRepo
  now           func() time.Time
}

func NewSessionService(db *gorm.DB, log *logger.Logger, sessionRepo repos.SessionRepo, challengeRepo repos.ChallengeRepo) SessionService {
  serviceLog := log.With("service", "SessionService")
  return &sessionService{
    db:            db,
    log:           serviceLog,
    sessionRepo:   sessionRepo,
    challengeRepo: challengeRepo,
    now:           time.Now,
  }
}

// normalizeIntensity upper-cases the input and falls back to MEDIUM for
// absent or unrecognized values.
func normalizeIntensity(intensity string) string {
  switch strings.ToUpper(strings.TrimSpace(intensity)) {
  case types.IntensityLow:
    return types.IntensityLow
  case types.IntensityHigh:
    return types.IntensityHigh
  default:
    return types.IntensityMedium
  }
}

// pointsFor computes session points: max(duration_seconds/60, 1) times
// the intensity multiplier (LOW 1, MEDIUM 2, HIGH 3).
func pointsFor(durationSeconds int, intensity string) int {
  base := durationSeconds / 60
  if base < 1 {
    base = 1
  }
  mult := 2
  switch normalizeIntensity(intensity) {
  case types.IntensityLow:
    mult = 1
  case types.IntensityHigh:
    mult = 3
  }
  return base * mult
}

func (ss *sessionService) CreateSession(ctx context.Context, userID uint, in CreateSessionInput) (*types.Session, error) {
  challenge, err := ss.challengeRepo.GetByID(ctx, nil, in.ChallengeID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load challenge: %w", err)
  }
  if challenge == nil {
    return nil, ErrChallengeNotFound
  }
  started := ss.now()
  if in.StartedAt != nil {
    started = *in.StartedAt
  }
  ended := ss.now()
  if in.EndedAt != nil {
    ended = *in.EndedAt
  }
  session := &types.Session{
    UserID:          userID,
    ChallengeID:     challenge.ID,
    Pillar:          challenge.Pillar,
    EnergyLevel:     challenge.EnergyLevel,
    StartedAt:       started,
    EndedAt:         ended,
    DurationSeconds: in.DurationSeconds,
    Intensity:       normalizeIntensity(in.Intensity),
    Points:          pointsFor(in.DurationSeconds, in.Intensity),
  }
  created, cErr := ss.sessionRepo.Create(ctx, nil, session)
  if cErr != nil {
    return nil, fmt.Errorf("Failed to create session: %w", cErr)
  }
  return created, nil
}

func (ss *sessionService) RecentActivity(ctx context.Context, userID uint, limit int) ([]*ActivityItem, error) {
  sessions, err := ss.sessionRepo.ListRecent(ctx, nil, userID, limit)
  if err != nil {
    return nil, fmt.Errorf("Failed to list recent sessions: %w", err)
  }
  items := make([]*ActivityItem, 0, len(sessions))
  for _, s := range sessions {
    title := ""
    challenge, cErr := ss.challengeRepo.GetByID(ctx, nil, s.ChallengeID)
    if cErr != nil {
      return nil, fmt.Errorf("Failed to load challenge for activity: %w", cErr)
    }
    if challenge != nil {
      title = challenge.Name
    }
    items = append(items, &ActivityItem{
      ID:              s.ID,
      ChallengeID:     s.ChallengeID,
      Title:           title,
      StartedAt:       s.StartedAt,
      DurationMinutes: s.DurationSeconds / 60,
      Intensity:       s.Intensity,
      Points:          s.Points,
    })
  }
  return items, nil
}
