package types

import (
  "time"
)

const (
  IntensityLow    = "LOW"
  IntensityMedium = "MEDIUM"
  IntensityHigh   = "HIGH"
)

// Session is an immutable log entry of one practice session. Pillar and
// energy level are copied from the challenge at creation time.
type Session struct {
  ID              uint      `gorm:"primaryKey" json:"id"`
  UserID          uint      `gorm:"not null;index;column:user_id" json:"-"`
  ChallengeID     uint      `gorm:"not null;index;column:challenge_id" json:"challenge_id"`
  Pillar          string    `gorm:"size:100;not null;index" json:"pillar"`
  EnergyLevel     string    `gorm:"size:20;not null;index;column:energy_level" json:"energy_level"`
  StartedAt       time.Time `gorm:"not null;column:started_at" json:"started_at"`
  EndedAt         time.Time `gorm:"not null;column:ended_at" json:"ended_at"`
  DurationSeconds int       `gorm:"not null;column:duration_seconds" json:"duration_seconds"`
  Intensity       string    `gorm:"size:20;not null;default:MEDIUM" json:"intensity"`
  Points          int       `gorm:"not null;default:0" json:"points"`
}

func (Session) TableName() string {
  return "sessions"
}
