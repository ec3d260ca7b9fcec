package services

import (
	"context"
	"testing"
	"time"

	"github.com/corpfinity/corpfinity-backend/internal/types"
)

func mkSession(pillar string, startedAt time.Time, durationSeconds int) *types.Session {
	return &types.Session{
		Pillar:          pillar,
		StartedAt:       startedAt,
		EndedAt:         startedAt.Add(time.Duration(durationSeconds) * time.Second),
		DurationSeconds: durationSeconds,
	}
}

func TestStreakDays(t *testing.T) {
	now := time.Date(2025, time.March, 10, 18, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time { return now.AddDate(0, 0, offset) }

	cases := []struct {
		name     string
		sessions []*types.Session
		want     int
	}{
		{"no sessions", nil, 0},
		{"three consecutive days ending today", []*types.Session{
			mkSession("Movement", day(0), 300),
			mkSession("Movement", day(-1), 300),
			mkSession("Movement", day(-2), 300),
		}, 3},
		{"yesterday only breaks the streak", []*types.Session{
			mkSession("Movement", day(-1), 300),
			mkSession("Movement", day(-2), 300),
		}, 0},
		{"gap two days back", []*types.Session{
			mkSession("Movement", day(0), 300),
			mkSession("Movement", day(-2), 300),
		}, 1},
		{"multiple sessions one day count once", []*types.Session{
			mkSession("Movement", day(0), 300),
			mkSession("Sleep", day(0).Add(2*time.Hour), 300),
			mkSession("Movement", day(-1), 300),
		}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := streakDays(tc.sessions, now); got != tc.want {
				t.Fatalf("streakDays = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestSummaryAggregates(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "summ", "summ@example.com")
	challenge := seedChallenge(t, db, "Mindfulness", "LOW", 1, "Box breathing")

	now := time.Date(2025, time.March, 10, 18, 0, 0, 0, time.UTC)
	seedSession(t, db, user.ID, challenge.ID, "Mindfulness", now.Add(-1*time.Hour), 600, 20)
	seedSession(t, db, user.ID, challenge.ID, "Mindfulness", now.AddDate(0, 0, -1), 330, 10)

	chSvc := newChallengeService(db)
	if err := chSvc.CompleteChallenge(context.Background(), user.ID, challenge.ID); err != nil {
		t.Fatalf("CompleteChallenge: %v", err)
	}

	svc := newProgressServiceAt(db, now)
	got, err := svc.Summary(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if got.CompletedCount != 1 {
		t.Fatalf("CompletedCount = %d, want 1", got.CompletedCount)
	}
	if got.TotalMinutes != 15 {
		t.Fatalf("TotalMinutes = %d, want 15 (930s floored)", got.TotalMinutes)
	}
	if got.StreakDays != 2 {
		t.Fatalf("StreakDays = %d, want 2", got.StreakDays)
	}
	if got.Points != 30 {
		t.Fatalf("Points = %d, want 30", got.Points)
	}
}

func TestPillarBreakdownPercentages(t *testing.T) {
	base := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)

	t.Run("clean thirty seventy split", func(t *testing.T) {
		items := pillarBreakdown([]*types.Session{
			mkSession("Mindfulness", base, 3*60),
			mkSession("Movement", base.Add(time.Hour), 7*60),
		})
		if len(items) != 2 {
			t.Fatalf("expected 2 pillars, got %d", len(items))
		}
		if items[0].Pillar != "Mindfulness" || items[0].Percentage != 30 {
			t.Fatalf("first pillar = %+v, want Mindfulness at 30%%", items[0])
		}
		if items[1].Pillar != "Movement" || items[1].Percentage != 70 {
			t.Fatalf("second pillar = %+v, want Movement at 70%%", items[1])
		}
	})

	t.Run("floor truncation leaves the sum short", func(t *testing.T) {
		items := pillarBreakdown([]*types.Session{
			mkSession("Sleep", base, 60),
			mkSession("Nutrition", base.Add(time.Hour), 120),
		})
		if items[0].Percentage != 33 || items[1].Percentage != 66 {
			t.Fatalf("percentages = %d/%d, want 33/66", items[0].Percentage, items[1].Percentage)
		}
	})

	t.Run("no sessions", func(t *testing.T) {
		if items := pillarBreakdown(nil); len(items) != 0 {
			t.Fatalf("expected empty breakdown, got %+v", items)
		}
	})
}

func TestCalendarDaysFebruary(t *testing.T) {
	days := calendarDays([]*types.Session{
		mkSession("Movement", time.Date(2021, time.February, 10, 7, 0, 0, 0, time.UTC), 25*60),
		mkSession("Movement", time.Date(2021, time.February, 11, 7, 0, 0, 0, time.UTC), 5*60),
		mkSession("Movement", time.Date(2021, time.March, 1, 7, 0, 0, 0, time.UTC), 25*60),
	}, 2021, time.February)

	if len(days) != 28 {
		t.Fatalf("expected 28 days for February 2021, got %d", len(days))
	}
	if days[0].Date != "2021-02-01" || days[27].Date != "2021-02-28" {
		t.Fatalf("unexpected date range %s .. %s", days[0].Date, days[27].Date)
	}
	for _, d := range days {
		want := 0
		switch d.Date {
		case "2021-02-10":
			want = 2
		case "2021-02-11":
			want = 1
		}
		if d.Activity != want {
			t.Fatalf("activity for %s = %d, want %d", d.Date, d.Activity, want)
		}
	}
}

func TestParseMonth(t *testing.T) {
	now := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		in        string
		wantYear  int
		wantMonth time.Month
	}{
		{"2021-02", 2021, time.February},
		{"2024-12", 2024, time.December},
		{"", 2025, time.March},
		{"garbage", 2025, time.March},
		{"2024-13", 2025, time.March},
	}
	for _, tc := range cases {
		y, m := parseMonth(tc.in, now)
		if y != tc.wantYear || m != tc.wantMonth {
			t.Fatalf("parseMonth(%q) = %d-%d, want %d-%d", tc.in, y, m, tc.wantYear, tc.wantMonth)
		}
	}
}

func TestWeeklyRatios(t *testing.T) {
	// Wednesday; the week under report runs Mon 2024-05-13 .. Sun 2024-05-19.
	now := time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2024, time.May, 13, 8, 0, 0, 0, time.UTC)

	sessions := []*types.Session{
		mkSession("Movement", monday, 300),
		mkSession("Movement", monday.Add(time.Hour), 300),
		mkSession("Movement", monday.Add(2*time.Hour), 300),
		mkSession("Movement", monday.AddDate(0, 0, 3), 300),
		mkSession("Movement", monday.AddDate(0, 0, 6), 300),
		mkSession("Movement", monday.AddDate(0, 0, 6).Add(time.Hour), 300),
		// Outside the week, must not count.
		mkSession("Movement", monday.AddDate(0, 0, -1), 300),
		mkSession("Movement", monday.AddDate(0, 0, 7), 300),
	}

	buckets := weeklyRatios(sessions, now)
	if len(buckets) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(buckets))
	}
	wantSessions := []int{3, 0, 0, 1, 0, 0, 2}
	wantRatios := []float64{1, 0, 0, 0.33, 0, 0, 0.67}
	wantLabels := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	for i, b := range buckets {
		if b.Day != wantLabels[i] {
			t.Fatalf("bucket %d label = %q, want %q", i, b.Day, wantLabels[i])
		}
		if b.Sessions != wantSessions[i] {
			t.Fatalf("bucket %s sessions = %d, want %d", b.Day, b.Sessions, wantSessions[i])
		}
		if b.Ratio != wantRatios[i] {
			t.Fatalf("bucket %s ratio = %v, want %v", b.Day, b.Ratio, wantRatios[i])
		}
	}
}

func TestMonthlyRatiosShortLastChunk(t *testing.T) {
	now := time.Date(2024, time.May, 20, 12, 0, 0, 0, time.UTC)
	day := func(d int) time.Time { return time.Date(2024, time.May, d, 9, 0, 0, 0, time.UTC) }

	sessions := []*types.Session{
		mkSession("Sleep", day(1), 300),
		mkSession("Sleep", day(3), 300),
		mkSession("Sleep", day(8), 300),
		mkSession("Sleep", day(31), 300),
		mkSession("Sleep", time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC), 300),
	}

	buckets := monthlyRatios(sessions, now)
	if len(buckets) != 5 {
		t.Fatalf("expected 5 chunks for a 31-day month, got %d", len(buckets))
	}
	wantLabels := []string{"W1", "W2", "W3", "W4", "W5"}
	wantSessions := []int{2, 1, 0, 0, 1}
	wantRatios := []float64{1, 0.5, 0, 0, 0.5}
	for i, b := range buckets {
		if b.Day != wantLabels[i] || b.Sessions != wantSessions[i] || b.Ratio != wantRatios[i] {
			t.Fatalf("chunk %d = %+v, want %s/%d/%v", i, b, wantLabels[i], wantSessions[i], wantRatios[i])
		}
	}
}

func TestYearlyRatios(t *testing.T) {
	now := time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)
	sessions := []*types.Session{
		mkSession("Nutrition", time.Date(2024, time.January, 5, 9, 0, 0, 0, time.UTC), 300),
		mkSession("Nutrition", time.Date(2024, time.January, 20, 9, 0, 0, 0, time.UTC), 300),
		mkSession("Nutrition", time.Date(2024, time.March, 2, 9, 0, 0, 0, time.UTC), 300),
		mkSession("Nutrition", time.Date(2023, time.March, 2, 9, 0, 0, 0, time.UTC), 300),
	}

	buckets := yearlyRatios(sessions, now)
	if len(buckets) != 12 {
		t.Fatalf("expected 12 buckets, got %d", len(buckets))
	}
	if buckets[0].Day != "Jan" || buckets[0].Sessions != 2 || buckets[0].Ratio != 1 {
		t.Fatalf("Jan bucket = %+v", buckets[0])
	}
	if buckets[2].Day != "Mar" || buckets[2].Sessions != 1 || buckets[2].Ratio != 0.5 {
		t.Fatalf("Mar bucket = %+v", buckets[2])
	}
	for _, b := range buckets[3:] {
		if b.Sessions != 0 || b.Ratio != 0 {
			t.Fatalf("expected empty bucket, got %+v", b)
		}
	}
}

func TestRatioBucketsAllZero(t *testing.T) {
	buckets := ratioBuckets([]string{"Mon", "Tue"}, []int{0, 0})
	for _, b := range buckets {
		if b.Ratio != 0 {
			t.Fatalf("expected zero ratio for idle period, got %+v", b)
		}
	}
}
