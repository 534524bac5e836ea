package db

import (
	"time"

	"gorm.io/datatypes"
)

// User is one registered account. HighScore holds the best score the
// player ever finished a game with.
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"size:64;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:128"`
	HighScore    int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// Event is one room lifecycle record, kept for auditing and replay.
type Event struct {
	ID        uint           `gorm:"primaryKey"`
	RoomCode  string         `gorm:"size:8;index;not null"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}
