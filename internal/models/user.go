package models

import "time"

// UserModel represents a registered reviewer/park owner.
type UserModel struct {
	Base
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Name     string `json:"name"`
	Password string `json:"-"        gorm:"not null"`

	Hearts []HeartModel `json:"-" gorm:"foreignKey:UserID"`
}

func (UserModel) TableName() string { return "users" }

// HeartModel is one favorited park for one user. The composite primary key
// makes duplicate membership impossible at the store level; rows are hard
// deleted so a toggle round-trips cleanly.
type HeartModel struct {
	UserID    string    `json:"user_id" gorm:"primaryKey;type:char(36)"`
	ParkID    string    `json:"park_id" gorm:"primaryKey;type:char(36)"`
	CreatedAt time.Time `json:"created"`
}

func (HeartModel) TableName() string { return "hearts" }
