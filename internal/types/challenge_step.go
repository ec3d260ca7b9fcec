package types

type ChallengeStep struct {
  ID          uint      `gorm:"primaryKey" json:"id"`
  ChallengeID uint      `gorm:"index;not null;column:challenge_id" json:"challenge_id"`
  Position    int       `gorm:"not null;column:position" json:"position"`
  Text        string    `gorm:"size:1024;not null" json:"text"`
}

func (ChallengeStep) TableName() string {
  return "challenge_steps"
}
