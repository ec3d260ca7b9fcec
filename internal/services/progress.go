package services

import (
  "context"
  "fmt"
  "math"
  "strconv"
  "strings"
  "time"
  "gorm.io/gorm"
  "github.com/corpfinity/corpfinity-backend/internal/logger"
  "github.com/corpfinity/corpfinity-backend/internal/types"
  "github.com/corpfinity/corpfinity-backend/internal/repos"
)

type SummaryReport struct {
  CompletedCount int `json:"completed_count"`
  TotalMinutes   int `json:"total_minutes"`
  StreakDays     int `json:"streak_days"`
  Points         int `json:"points"`
}

type PillarBreakdown struct {
  Pillar     string `json:"pillar"`
  Sessions   int    `json:"sessions"`
  Minutes    int    `json:"minutes"`
  Percentage int    `json:"percentage"`
}

type CalendarDay struct {
  Date     string `json:"date"`
  Activity int    `json:"activity"`
}

// RatioBucket is one bucket of a weekly/monthly/yearly report. The "day"
// key carries the bucket label (Mon..Sun, W1.., Jan..Dec).
type RatioBucket struct {
  Day      string  `json:"day"`
  Sessions int     `json:"sessions"`
  Ratio    float64 `json:"ratio"`
}

type ProgressService interface {
  Summary(ctx context.Context, userID uint) (*SummaryReport, error)
  Breakdown(ctx context.Context, userID uint) ([]*PillarBreakdown, error)
  Calendar(ctx context.Context, userID uint, month string) ([]*CalendarDay, error)
  Weekly(ctx context.Context, userID uint) ([]*RatioBucket, error)
  Monthly(ctx context.Context, userID uint) ([]*RatioBucket, error)
  Yearly(ctx context.Context, userID uint) ([]*RatioBucket, error)
}

type progressService struct {
  db             *gorm.DB
  log            *logger.Logger
  sessionRepo    repos.SessionRepo
  completionRepo repos.CompletionRepo
  now            func() time.Time
}

func NewProgressService(db *gorm.DB, log *logger.Logger, sessionRepo repos.SessionRepo, completionRepo repos.CompletionRepo) ProgressService {
  serviceLog := log.With("service", "ProgressService")
  return &progressService{
    db:             db,
    log:            serviceLog,
    sessionRepo:    sessionRepo,
    completionRepo: completionRepo,
    now:            time.Now,
  }
}

const dateLayout = "2006-01-02"

func (ps *progressService) Summary(ctx context.Context, userID uint) (*SummaryReport, error) {
  completedCount, err := ps.completionRepo.CountByUser(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to count completions: %w", err)
  }
  sessions, err := ps.sessionRepo.ListByUser(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load sessions: %w", err)
  }
  totalSeconds := 0
  points := 0
  for _, s := range sessions {
    totalSeconds += s.DurationSeconds
    points += s.Points
  }
  return &SummaryReport{
    CompletedCount: int(completedCount),
    TotalMinutes:   totalSeconds / 60,
    StreakDays:     streakDays(sessions, ps.now()),
    Points:         points,
  }, nil
}

// streakDays counts consecutive calendar days with at least one session,
// walking back from today. A day without a session ends the walk, so a
// user with sessions yesterday but none today has a streak of zero.
// Dates are taken from the stored start timestamps as-is, with no
// timezone conversion.
func streakDays(sessions []*types.Session, now time.Time) int {
  if len(sessions) == 0 {
    return 0
  }
  seen := make(map[string]struct{}, len(sessions))
  for _, s := range sessions {
    seen[s.StartedAt.Format(dateLayout)] = struct{}{}
  }
  streak := 0
  cur := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
  for {
    if _, ok := seen[cur.Format(dateLayout)]; !ok {
      break
    }
    streak++
    cur = cur.AddDate(0, 0, -1)
  }
  return streak
}

func (ps *progressService) Breakdown(ctx context.Context, userID uint) ([]*PillarBreakdown, error) {
  sessions, err := ps.sessionRepo.ListByUser(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load sessions: %w", err)
  }
  return pillarBreakdown(sessions), nil
}

// pillarBreakdown groups sessions by pillar in order of first appearance.
// Percentages are floor-truncated against the total and may not sum to
// 100; that loss is accepted behavior, not rounding to fix.
func pillarBreakdown(sessions []*types.Session) []*PillarBreakdown {
  order := make([]string, 0)
  byPillar := make(map[string]*PillarBreakdown)
  totalMinutes := 0
  for _, s := range sessions {
    minutes := s.DurationSeconds / 60
    totalMinutes += minutes
    agg, ok := byPillar[s.Pillar]
    if !ok {
      agg = &PillarBreakdown{Pillar: s.Pillar}
      byPillar[s.Pillar] = agg
      order = append(order, s.Pillar)
    }
    agg.Sessions++
    agg.Minutes += minutes
  }
  items := make([]*PillarBreakdown, 0, len(order))
  for _, pillar := range order {
    agg := byPillar[pillar]
    if totalMinutes > 0 {
      agg.Percentage = agg.Minutes * 100 / totalMinutes
    }
    items = append(items, agg)
  }
  return items
}

func (ps *progressService) Calendar(ctx context.Context, userID uint, month string) ([]*CalendarDay, error) {
  sessions, err := ps.sessionRepo.ListByUser(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load sessions: %w", err)
  }
  year, mon := parseMonth(month, ps.now())
  return calendarDays(sessions, year, mon), nil
}

// parseMonth accepts "YYYY-MM"; malformed or absent values fall back to
// the current month.
func parseMonth(month string, now time.Time) (int, time.Month) {
  parts := strings.SplitN(strings.TrimSpace(month), "-", 2)
  if len(parts) == 2 {
    y, yErr := strconv.Atoi(parts[0])
    m, mErr := strconv.Atoi(parts[1])
    if yErr == nil && mErr == nil && m >= 1 && m <= 12 {
      return y, time.Month(m)
    }
  }
  return now.Year(), now.Month()
}

// calendarDays produces one entry per real calendar day of the month.
// Activity level: 0 minutes -> 0, 1-19 -> 1, >=20 -> 2.
func calendarDays(sessions []*types.Session, year int, month time.Month) []*CalendarDay {
  minutesByDay := make(map[int]int)
  for _, s := range sessions {
    if s.StartedAt.Year() == year && s.StartedAt.Month() == month {
      minutesByDay[s.StartedAt.Day()] += s.DurationSeconds / 60
    }
  }
  daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
  out := make([]*CalendarDay, 0, daysInMonth)
  for day := 1; day <= daysInMonth; day++ {
    mins := minutesByDay[day]
    activity := 0
    if mins > 0 && mins < 20 {
      activity = 1
    } else if mins >= 20 {
      activity = 2
    }
    out = append(out, &CalendarDay{
      Date:     time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(dateLayout),
      Activity: activity,
    })
  }
  return out
}

func (ps *progressService) Weekly(ctx context.Context, userID uint) ([]*RatioBucket, error) {
  sessions, err := ps.sessionRepo.ListByUser(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load sessions: %w", err)
  }
  return weeklyRatios(sessions, ps.now()), nil
}

var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// weeklyRatios partitions the current Monday-start week into per-day
// session counts, normalized against the busiest day.
func weeklyRatios(sessions []*types.Session, now time.Time) []*RatioBucket {
  today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
  start := today.AddDate(0, 0, -mondayOffset(today.Weekday()))
  counts := make([]int, 7)
  for i := 0; i < 7; i++ {
    key := start.AddDate(0, 0, i).Format(dateLayout)
    for _, s := range sessions {
      if s.StartedAt.Format(dateLayout) == key {
        counts[i]++
      }
    }
  }
  return ratioBuckets(weekdayLabels, counts)
}

func mondayOffset(wd time.Weekday) int {
  return (int(wd) + 6) % 7
}

func (ps *progressService) Monthly(ctx context.Context, userID uint) ([]*RatioBucket, error) {
  sessions, err := ps.sessionRepo.ListByUser(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load sessions: %w", err)
  }
  return monthlyRatios(sessions, ps.now()), nil
}

// monthlyRatios partitions the current month into consecutive 7-day
// chunks starting at day 1; the last chunk is short when the month is
// not a multiple of seven days.
func monthlyRatios(sessions []*types.Session, now time.Time) []*RatioBucket {
  year, month := now.Year(), now.Month()
  daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
  chunks := (daysInMonth + 6) / 7
  labels := make([]string, chunks)
  counts := make([]int, chunks)
  for i := 0; i < chunks; i++ {
    labels[i] = fmt.Sprintf("W%d", i+1)
    startDay := 1 + i*7
    endDay := startDay + 6
    if endDay > daysInMonth {
      endDay = daysInMonth
    }
    for _, s := range sessions {
      if s.StartedAt.Year() == year && s.StartedAt.Month() == month {
        d := s.StartedAt.Day()
        if d >= startDay && d <= endDay {
          counts[i]++
        }
      }
    }
  }
  return ratioBuckets(labels, counts)
}

func (ps *progressService) Yearly(ctx context.Context, userID uint) ([]*RatioBucket, error) {
  sessions, err := ps.sessionRepo.ListByUser(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load sessions: %w", err)
  }
  return yearlyRatios(sessions, ps.now()), nil
}

var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// yearlyRatios partitions the current year into its twelve calendar
// months.
func yearlyRatios(sessions []*types.Session, now time.Time) []*RatioBucket {
  year := now.Year()
  counts := make([]int, 12)
  for _, s := range sessions {
    if s.StartedAt.Year() == year {
      counts[int(s.StartedAt.Month())-1]++
    }
  }
  return ratioBuckets(monthLabels, counts)
}

// ratioBuckets normalizes per-bucket session counts against the maximum
// count, rounded to two decimals. An all-zero period yields all-zero
// ratios. Ratios always use session counts, never minutes or points.
func ratioBuckets(labels []string, counts []int) []*RatioBucket {
  maxCount := 0
  for _, c := range counts {
    if c > maxCount {
      maxCount = c
    }
  }
  out := make([]*RatioBucket, 0, len(labels))
  for i, label := range labels {
    ratio := 0.0
    if maxCount > 0 {
      ratio = math.Round(float64(counts[i])/float64(maxCount)*100) / 100
    }
    out = append(out, &RatioBucket{Day: label, Sessions: counts[i], Ratio: ratio})
  }
  return out
}
