package models

import "time"

// LevelRecord holds cumulative XP per (user, guild). Level is always
// derived from XP via the curve, never stored. Deletes are immediate
// hard deletes so the (user, guild) slot frees for a fresh record.
type LevelRecord struct {
	ID        uint   `gorm:"primaryKey"`
	DiscordID string `gorm:"uniqueIndex:user_guild_idx; size:64"`
	GuildID   string `gorm:"uniqueIndex:user_guild_idx; size:64"`
	XP        int64  `gorm:"default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
