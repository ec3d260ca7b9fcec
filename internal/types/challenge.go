package types

import (
  "time"
)

type Challenge struct {
  ID              uint              `gorm:"primaryKey" json:"id"`
  Pillar          string            `gorm:"size:100;not null;index;uniqueIndex:uq_challenges_key,priority:1" json:"pillar"`
  EnergyLevel     string            `gorm:"size:20;not null;index;uniqueIndex:uq_challenges_key,priority:2;column:energy_level" json:"energy_level"`
  Number          int               `gorm:"not null;uniqueIndex:uq_challenges_key,priority:3" json:"number"`
  Name            string            `gorm:"size:255;not null" json:"name"`
  DurationMinutes int               `gorm:"not null;column:duration_minutes" json:"duration_minutes"`
  Description     string            `gorm:"size:1024;not null" json:"description"`
  CreatedAt       time.Time         `gorm:"not null" json:"created_at"`
  Steps           []*ChallengeStep  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ChallengeID;references:ID" json:"-"`
}

func (Challenge) TableName() string {
  return "challenges"
}

// StepTexts returns the step texts in stored order. Steps must have been
// preloaded ordered by position.
func (c *Challenge) StepTexts() []string {
  out := make([]string, 0, len(c.Steps))
  for _, s := range c.Steps {
    out = append(out, s.Text)
  }
  return out
}
