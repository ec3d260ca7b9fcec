package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corpfinity/corpfinity-backend/internal/repos"
	"github.com/corpfinity/corpfinity-backend/internal/types"
)

func TestPointsFor(t *testing.T) {
	cases := []struct {
		name            string
		durationSeconds int
		intensity       string
		want            int
	}{
		{"low two minutes", 125, "low", 2},
		{"default medium", 600, "", 20},
		{"sub minute floors to one", 30, "HIGH", 3},
		{"unknown intensity is medium", 45, "bogus", 2},
		{"hour at medium", 3600, "medium", 120},
		{"zero duration", 0, "LOW", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := pointsFor(tc.durationSeconds, tc.intensity)
			if got != tc.want {
				t.Fatalf("pointsFor(%d, %q) = %d, want %d", tc.durationSeconds, tc.intensity, got, tc.want)
			}
		})
	}
}

func TestNormalizeIntensity(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"low", types.IntensityLow},
		{" HIGH ", types.IntensityHigh},
		{"Medium", types.IntensityMedium},
		{"", types.IntensityMedium},
		{"extreme", types.IntensityMedium},
	}
	for _, tc := range cases {
		if got := normalizeIntensity(tc.in); got != tc.want {
			t.Fatalf("normalizeIntensity(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCreateSessionDenormalizesChallenge(t *testing.T) {
	db := newTestDB(t)
	log := testLogger()
	user := seedUser(t, db, "mover", "mover@example.com")
	challenge := seedChallenge(t, db, "Movement", "HIGH", 1, "Stair sprint")

	svc := NewSessionService(db, log, repos.NewSessionRepo(db, log), repos.NewChallengeRepo(db, log)).(*sessionService)
	fixed := time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	created, err := svc.CreateSession(context.Background(), user.ID, CreateSessionInput{
		ChallengeID:     challenge.ID,
		DurationSeconds: 300,
		Intensity:       "high",
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if created.Pillar != "Movement" || created.EnergyLevel != "HIGH" {
		t.Fatalf("expected denormalized challenge fields, got %q/%q", created.Pillar, created.EnergyLevel)
	}
	if created.Intensity != types.IntensityHigh {
		t.Fatalf("expected HIGH intensity, got %q", created.Intensity)
	}
	if created.Points != 15 {
		t.Fatalf("expected 15 points for 300s HIGH, got %d", created.Points)
	}
	if !created.StartedAt.Equal(fixed) || !created.EndedAt.Equal(fixed) {
		t.Fatalf("expected timestamps to default to the clock, got %v / %v", created.StartedAt, created.EndedAt)
	}
}

func TestCreateSessionExplicitTimestamps(t *testing.T) {
	db := newTestDB(t)
	log := testLogger()
	user := seedUser(t, db, "timed", "timed@example.com")
	challenge := seedChallenge(t, db, "Sleep", "LOW", 1, "Wind down")
	svc := NewSessionService(db, log, repos.NewSessionRepo(db, log), repos.NewChallengeRepo(db, log))

	started := time.Date(2025, time.March, 9, 22, 0, 0, 0, time.UTC)
	ended := started.Add(10 * time.Minute)
	created, err := svc.CreateSession(context.Background(), user.ID, CreateSessionInput{
		ChallengeID:     challenge.ID,
		DurationSeconds: 600,
		StartedAt:       &started,
		EndedAt:         &ended,
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if !created.StartedAt.Equal(started) || !created.EndedAt.Equal(ended) {
		t.Fatalf("expected supplied timestamps kept, got %v / %v", created.StartedAt, created.EndedAt)
	}
}

func TestCreateSessionUnknownChallenge(t *testing.T) {
	db := newTestDB(t)
	log := testLogger()
	user := seedUser(t, db, "lost", "lost@example.com")
	svc := NewSessionService(db, log, repos.NewSessionRepo(db, log), repos.NewChallengeRepo(db, log))

	_, err := svc.CreateSession(context.Background(), user.ID, CreateSessionInput{ChallengeID: 4242, DurationSeconds: 60})
	if !errors.Is(err, ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound, got %v", err)
	}
}

func TestRecentActivityNewestFirst(t *testing.T) {
	db := newTestDB(t)
	log := testLogger()
	user := seedUser(t, db, "active", "active@example.com")
	challenge := seedChallenge(t, db, "Mindfulness", "LOW", 1, "Box breathing")

	base := time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seedSession(t, db, user.ID, challenge.ID, "Mindfulness", base.AddDate(0, 0, i), 300, 10)
	}

	svc := NewSessionService(db, log, repos.NewSessionRepo(db, log), repos.NewChallengeRepo(db, log))
	items, err := svc.RecentActivity(context.Background(), user.ID, 2)
	if err != nil {
		t.Fatalf("RecentActivity: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected limit of 2 items, got %d", len(items))
	}
	if !items[0].StartedAt.After(items[1].StartedAt) {
		t.Fatalf("expected newest-first ordering, got %v then %v", items[0].StartedAt, items[1].StartedAt)
	}
	if items[0].Title != "Box breathing" {
		t.Fatalf("expected challenge title on the item, got %q", items[0].Title)
	}
	if items[0].DurationMinutes != 5 {
		t.Fatalf("expected duration reported in minutes, got %d", items[0].DurationMinutes)
	}
}
