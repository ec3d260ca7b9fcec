package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/corpfinity/corpfinity-backend/internal/logger"
	"github.com/corpfinity/corpfinity-backend/internal/repos"
	"github.com/corpfinity/corpfinity-backend/internal/types"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// newTestDB opens a per-test in-memory sqlite database and migrates the
// full model set.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Challenge{},
		&types.ChallengeStep{},
		&types.ChallengeCompletion{},
		&types.Session{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, email string) *types.User {
	t.Helper()
	user := &types.User{Username: username, Email: email, Password: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedChallenge(t *testing.T, db *gorm.DB, pillar, energy string, number int, name string) *types.Challenge {
	t.Helper()
	c := &types.Challenge{
		Pillar:          pillar,
		EnergyLevel:     energy,
		Number:          number,
		Name:            name,
		DurationMinutes: 5,
		Description:     "seeded",
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed challenge: %v", err)
	}
	return c
}

func seedSession(t *testing.T, db *gorm.DB, userID, challengeID uint, pillar string, startedAt time.Time, durationSeconds, points int) *types.Session {
	t.Helper()
	s := &types.Session{
		UserID:          userID,
		ChallengeID:     challengeID,
		Pillar:          pillar,
		EnergyLevel:     "LOW",
		StartedAt:       startedAt,
		EndedAt:         startedAt.Add(time.Duration(durationSeconds) * time.Second),
		DurationSeconds: durationSeconds,
		Intensity:       types.IntensityMedium,
		Points:          points,
	}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return s
}

func newChallengeService(db *gorm.DB) ChallengeService {
	log := testLogger()
	return NewChallengeService(db, log, repos.NewChallengeRepo(db, log), repos.NewCompletionRepo(db, log))
}

func newProgressServiceAt(db *gorm.DB, now time.Time) ProgressService {
	log := testLogger()
	svc := NewProgressService(db, log, repos.NewSessionRepo(db, log), repos.NewCompletionRepo(db, log)).(*progressService)
	svc.now = func() time.Time { return now }
	return svc
}
