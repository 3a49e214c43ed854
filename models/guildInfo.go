package models

import "time"

const (
	RewardModeStacking    = "stacking"
	RewardModeNonStacking = "non-stacking"
)

type Guild struct {
	ID              uint   `gorm:"primaryKey"`
	GuildID         string `gorm:"uniqueIndex; size:64"`
	GuildName       string
	XPPerMessage    int          `gorm:"default:15"`
	CooldownSeconds int          `gorm:"default:60"`
	RewardMode      string       `gorm:"size:16; default:non-stacking"`
	RankImage       *string      `gorm:"size:512"`
	RoleRewards     []RoleReward `gorm:"foreignKey:GuildID;references:GuildID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
