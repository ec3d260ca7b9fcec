package types

import (
  "time"
)

type User struct {
  ID              uint            `gorm:"primaryKey" json:"id"`
  Username        string          `gorm:"size:100;uniqueIndex;not null;column:username" json:"username"`
  Email           string          `gorm:"size:255;uniqueIndex;not null;column:email" json:"email"`
  Password        string          `gorm:"size:255;not null;column:hashed_password" json:"-"`
  CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
}

func (User) TableName() string {
  return "users"
}
