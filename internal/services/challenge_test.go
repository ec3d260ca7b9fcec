package services

import (
	"context"
	"errors"
	"testing"

	"github.com/corpfinity/corpfinity-backend/internal/repos"
	"github.com/corpfinity/corpfinity-backend/internal/types"
)

func TestNextChallengeWalksBucketInOrder(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "walker", "walker@example.com")
	first := seedChallenge(t, db, "Mindfulness", "LOW", 1, "Box breathing")
	second := seedChallenge(t, db, "Mindfulness", "LOW", 2, "Body scan")
	third := seedChallenge(t, db, "Mindfulness", "LOW", 3, "Gratitude note")
	svc := newChallengeService(db)
	ctx := context.Background()

	for _, want := range []*types.Challenge{first, second, third} {
		got, err := svc.NextChallenge(ctx, user.ID, "Mindfulness", "LOW")
		if err != nil {
			t.Fatalf("NextChallenge: %v", err)
		}
		if got == nil || got.ID != want.ID {
			t.Fatalf("expected challenge %d next, got %+v", want.ID, got)
		}
		if err := svc.CompleteChallenge(ctx, user.ID, want.ID); err != nil {
			t.Fatalf("CompleteChallenge: %v", err)
		}
	}
}

func TestNextChallengeStableWithoutCompletion(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "stable", "stable@example.com")
	first := seedChallenge(t, db, "Movement", "HIGH", 1, "Stair sprint")
	seedChallenge(t, db, "Movement", "HIGH", 2, "Desk stretch")
	svc := newChallengeService(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := svc.NextChallenge(ctx, user.ID, "Movement", "HIGH")
		if err != nil {
			t.Fatalf("NextChallenge: %v", err)
		}
		if got == nil || got.ID != first.ID {
			t.Fatalf("call %d: expected challenge %d, got %+v", i, first.ID, got)
		}
	}
}

func TestNextChallengeCyclesBucket(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "cycler", "cycler@example.com")
	first := seedChallenge(t, db, "Nutrition", "MEDIUM", 1, "Water break")
	second := seedChallenge(t, db, "Nutrition", "MEDIUM", 2, "Fruit swap")
	svc := newChallengeService(db)
	ctx := context.Background()

	if err := svc.CompleteChallenge(ctx, user.ID, first.ID); err != nil {
		t.Fatalf("CompleteChallenge: %v", err)
	}
	if err := svc.CompleteChallenge(ctx, user.ID, second.ID); err != nil {
		t.Fatalf("CompleteChallenge: %v", err)
	}

	got, err := svc.NextChallenge(ctx, user.ID, "Nutrition", "MEDIUM")
	if err != nil {
		t.Fatalf("NextChallenge after full cycle: %v", err)
	}
	if got == nil || got.ID != first.ID {
		t.Fatalf("expected cycle to restart at challenge %d, got %+v", first.ID, got)
	}

	completionRepo := repos.NewCompletionRepo(db, testLogger())
	ids, err := completionRepo.GetCompletedIDs(ctx, nil, user.ID, "Nutrition", "MEDIUM")
	if err != nil {
		t.Fatalf("GetCompletedIDs: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected the bucket to be cleared, still have %v", ids)
	}
}

func TestNextChallengeResetScopedToBucket(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "scoped", "scoped@example.com")
	low := seedChallenge(t, db, "Sleep", "LOW", 1, "Wind down")
	other := seedChallenge(t, db, "Sleep", "HIGH", 1, "No screens hour")
	svc := newChallengeService(db)
	ctx := context.Background()

	if err := svc.CompleteChallenge(ctx, user.ID, low.ID); err != nil {
		t.Fatalf("CompleteChallenge: %v", err)
	}
	if err := svc.CompleteChallenge(ctx, user.ID, other.ID); err != nil {
		t.Fatalf("CompleteChallenge: %v", err)
	}

	// Cycling the LOW bucket must not touch the HIGH bucket's record.
	if _, err := svc.NextChallenge(ctx, user.ID, "Sleep", "LOW"); err != nil {
		t.Fatalf("NextChallenge: %v", err)
	}
	completionRepo := repos.NewCompletionRepo(db, testLogger())
	ids, err := completionRepo.GetCompletedIDs(ctx, nil, user.ID, "Sleep", "HIGH")
	if err != nil {
		t.Fatalf("GetCompletedIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != other.ID {
		t.Fatalf("expected HIGH bucket untouched, got %v", ids)
	}
}

func TestNextChallengeEmptyBucket(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "empty", "empty@example.com")
	svc := newChallengeService(db)

	got, err := svc.NextChallenge(context.Background(), user.ID, "Mindfulness", "LOW")
	if err != nil {
		t.Fatalf("NextChallenge: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for an empty bucket, got %+v", got)
	}
}

func TestCompleteChallengeIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "repeat", "repeat@example.com")
	challenge := seedChallenge(t, db, "Movement", "LOW", 1, "Walk a lap")
	svc := newChallengeService(db)
	ctx := context.Background()

	if err := svc.CompleteChallenge(ctx, user.ID, challenge.ID); err != nil {
		t.Fatalf("first CompleteChallenge: %v", err)
	}
	if err := svc.CompleteChallenge(ctx, user.ID, challenge.ID); err != nil {
		t.Fatalf("second CompleteChallenge: %v", err)
	}

	var count int64
	if err := db.Model(&types.ChallengeCompletion{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count completions: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 completion row, got %d", count)
	}
}

func TestCompleteChallengeNotFound(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "ghost", "ghost@example.com")
	svc := newChallengeService(db)

	err := svc.CompleteChallenge(context.Background(), user.ID, 9999)
	if !errors.Is(err, ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound, got %v", err)
	}
}

func TestListChallengesFilters(t *testing.T) {
	db := newTestDB(t)
	seedChallenge(t, db, "Mindfulness", "LOW", 1, "Box breathing")
	seedChallenge(t, db, "Mindfulness", "HIGH", 1, "Cold shower")
	seedChallenge(t, db, "Movement", "LOW", 1, "Walk a lap")
	svc := newChallengeService(db)
	ctx := context.Background()

	all, err := svc.ListChallenges(ctx, "", "")
	if err != nil {
		t.Fatalf("ListChallenges: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 challenges, got %d", len(all))
	}

	filtered, err := svc.ListChallenges(ctx, "Mindfulness", "LOW")
	if err != nil {
		t.Fatalf("ListChallenges filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Name != "Box breathing" {
		t.Fatalf("unexpected filtered result: %+v", filtered)
	}

	none, err := svc.ListChallenges(ctx, "Unknown", "")
	if err != nil {
		t.Fatalf("ListChallenges unknown pillar: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected empty result for unknown pillar, got %d", len(none))
	}
}
