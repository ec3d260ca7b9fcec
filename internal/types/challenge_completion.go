package types

import (
  "time"
)

// ChallengeCompletion records that a user finished a challenge. Pillar and
// energy level are copied from the challenge at insert time so bucket
// queries and the cycle reset stay single-table filters.
type ChallengeCompletion struct {
  ID          uint      `gorm:"primaryKey" json:"id"`
  UserID      uint      `gorm:"not null;index;uniqueIndex:uq_completion_user_challenge,priority:1;column:user_id" json:"user_id"`
  ChallengeID uint      `gorm:"not null;index;uniqueIndex:uq_completion_user_challenge,priority:2;column:challenge_id" json:"challenge_id"`
  Pillar      string    `gorm:"size:100;not null;index" json:"pillar"`
  EnergyLevel string    `gorm:"size:20;not null;index;column:energy_level" json:"energy_level"`
  CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (ChallengeCompletion) TableName() string {
  return "challenge_completions"
}
