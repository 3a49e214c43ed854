package services

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"levelUpBot/models"
	"levelUpBot/services/common"
	"levelUpBot/services/guildService"
	"levelUpBot/services/leveling"
)

// SetXP overrides a member's XP. Lowering it can drop their level, so
// the member's reward roles are reconciled right after the write.
func SetXP(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, engine *leveling.Engine) {
	if !common.IsAdmin(s, i) {
		common.RespondNotAuthorized(s, i)
		return
	}

	guild, err := guildService.GetGuildInfo(s, db, i.GuildID)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	options := i.ApplicationCommandData().Options
	targetUser := options[0].UserValue(s)
	amount := options[1].IntValue()

	if err := engine.Ledger().SetXP(targetUser.ID, i.GuildID, amount); err != nil {
		if errors.Is(err, leveling.ErrValidation) {
			common.Respond(s, i, "XP cannot be negative.", true)
			return
		}
		common.SendError(s, i, err, db)
		return
	}

	roles := []string{}
	if member, memberErr := s.GuildMember(i.GuildID, targetUser.ID); memberErr == nil {
		roles = member.Roles
	}
	if _, err := engine.ReconcileMember(targetUser.ID, guild, roles, DiscordRoleSyncer{Session: s}); err != nil {
		common.LogError(db, i.GuildID, err)
	}

	level := leveling.LevelForXP(amount)
	common.Respond(s, i, fmt.Sprintf("Set **%s** to **%d** XP (level %d).", targetUser.Username, amount, level), false)
}

// ResetXP zeroes every member's XP in the guild.
func ResetXP(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondNotAuthorized(s, i)
		return
	}

	guildID := i.GuildID
	db.Model(&models.LevelRecord{}).Where("guild_id = ?", guildID).Update("xp", 0)

	common.Respond(s, i, "All members' XP has been reset. Reward roles will be synced on the next sweep.", false)
}

// DeleteXPRecord removes a single member's XP record entirely.
func DeleteXPRecord(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, engine *leveling.Engine) {
	if !common.IsAdmin(s, i) {
		common.RespondNotAuthorized(s, i)
		return
	}

	options := i.ApplicationCommandData().Options
	targetUser := options[0].UserValue(s)

	if err := engine.Ledger().DeleteRecord(targetUser.ID, i.GuildID); err != nil {
		common.SendError(s, i, err, db)
		return
	}

	common.Respond(s, i, fmt.Sprintf("Deleted the XP record for **%s**.", targetUser.Username), false)
}
