package models

import "time"

// UserProfile is global per Discord user, not per guild. XP lives on
// LevelRecord; this only carries profile customization. Deleting a
// profile removes the row outright.
type UserProfile struct {
	ID        uint    `gorm:"primaryKey"`
	DiscordID string  `gorm:"uniqueIndex; size:64"`
	RankImage *string `gorm:"size:512"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
