package models

import "time"

// RoleReward maps a level threshold to a Discord role. At most one
// reward per (guild, level); levels need not be contiguous. Removal is
// a hard delete so the level slot can be reconfigured immediately.
type RoleReward struct {
	ID        uint   `gorm:"primaryKey"`
	GuildID   string `gorm:"uniqueIndex:guild_level_idx; size:64"`
	Level     int    `gorm:"uniqueIndex:guild_level_idx"`
	RoleID    string `gorm:"size:64"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
