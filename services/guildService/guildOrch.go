package guildService

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"levelUpBot/models"
	"levelUpBot/services/common"
)

// GetGuildInfo returns the guild config, creating it with defaults on
// first interaction. Role rewards are always preloaded so callers can
// reconcile without a second query.
func GetGuildInfo(s *discordgo.Session, db *gorm.DB, guildID string) (*models.Guild, error) {
	var guild models.Guild
	guildResult := db.Preload("RoleRewards").Where("guild_id = ?", guildID).First(&guild)

	if guildResult.RowsAffected == 0 {
		guildInfo, err := s.Guild(guildID)
		if err != nil {
			return nil, err
		}
		newGuild := &models.Guild{
			GuildID:         guildID,
			GuildName:       guildInfo.Name,
			XPPerMessage:    15,
			CooldownSeconds: 60,
			RewardMode:      models.RewardModeNonStacking,
		}
		newGuildResult := db.Create(newGuild)
		if newGuildResult.Error != nil {
			return nil, newGuildResult.Error
		}
		guild = *newGuild
	}

	return &guild, nil
}

func SetXPPerMessage(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondNotAuthorized(s, i)
		return
	}

	options := i.ApplicationCommandData().Options
	amount := int(options[0].IntValue())
	if amount <= 0 {
		common.Respond(s, i, "XP per message must be greater than zero.", true)
		return
	}

	guild, err := GetGuildInfo(s, db, i.GuildID)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	guild.XPPerMessage = amount
	db.Save(guild)

	common.Respond(s, i, fmt.Sprintf("Members now earn **%d** XP per message.", amount), true)
}

func SetXPCooldown(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondNotAuthorized(s, i)
		return
	}

	options := i.ApplicationCommandData().Options
	seconds := int(options[0].IntValue())
	if seconds < 0 {
		common.Respond(s, i, "Cooldown cannot be negative.", true)
		return
	}

	guild, err := GetGuildInfo(s, db, i.GuildID)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	guild.CooldownSeconds = seconds
	db.Save(guild)

	common.Respond(s, i, fmt.Sprintf("XP cooldown set to **%d** seconds.", seconds), true)
}

func SetRewardMode(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondNotAuthorized(s, i)
		return
	}

	options := i.ApplicationCommandData().Options
	mode := options[0].StringValue()
	if mode != models.RewardModeStacking && mode != models.RewardModeNonStacking {
		common.Respond(s, i, "Reward mode must be `stacking` or `non-stacking`.", true)
		return
	}

	guild, err := GetGuildInfo(s, db, i.GuildID)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	guild.RewardMode = mode
	db.Save(guild)

	common.Respond(s, i, fmt.Sprintf("Reward mode set to **%s**.", mode), true)
}

func SetGuildRankImage(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondNotAuthorized(s, i)
		return
	}

	options := i.ApplicationCommandData().Options
	imageURL := options[0].StringValue()

	guild, err := GetGuildInfo(s, db, i.GuildID)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	guild.RankImage = &imageURL
	db.Save(guild)

	common.Respond(s, i, "Default rank image updated.", true)
}

// DeleteGuildConfig removes a guild's config and, through the cascade,
// its role rewards. Called when the bot leaves a guild.
func DeleteGuildConfig(db *gorm.DB, guildID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("guild_id = ?", guildID).Delete(&models.RoleReward{}).Error; err != nil {
			return err
		}
		return tx.Where("guild_id = ?", guildID).Delete(&models.Guild{}).Error
	})
}
