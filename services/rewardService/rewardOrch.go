package rewardService

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"levelUpBot/models"
	"levelUpBot/services/common"
)

// AddLevelRole configures a role reward at a level threshold. At most
// one reward per (guild, level); adding to an occupied level is
// rejected rather than silently replaced.
func AddLevelRole(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondNotAuthorized(s, i)
		return
	}

	options := i.ApplicationCommandData().Options
	role := options[0].RoleValue(s, i.GuildID)
	level := int(options[1].IntValue())

	if level <= 0 {
		common.Respond(s, i, "Level must be greater than zero.", true)
		return
	}

	var existing models.RoleReward
	err := db.Where("guild_id = ? AND level = ?", i.GuildID, level).Take(&existing).Error
	if err == nil {
		common.Respond(s, i, fmt.Sprintf("Level **%d** already rewards <@&%s>. Remove it first.", level, existing.RoleID), true)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		common.SendError(s, i, err, db)
		return
	}

	reward := models.RoleReward{GuildID: i.GuildID, Level: level, RoleID: role.ID}
	if err := db.Create(&reward).Error; err != nil {
		common.SendError(s, i, err, db)
		return
	}

	common.Respond(s, i, fmt.Sprintf("Members reaching level **%d** will now receive <@&%s>.", level, role.ID), false)
}

// DeleteReward removes the reward at a level threshold outright, so
// the (guild, level) slot is free for reconfiguration right away.
func DeleteReward(db *gorm.DB, guildID string, level int) (int64, error) {
	result := db.Where("guild_id = ? AND level = ?", guildID, level).Delete(&models.RoleReward{})
	return result.RowsAffected, result.Error
}

// RemoveLevelRole drops the reward configured at a level threshold.
func RemoveLevelRole(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondNotAuthorized(s, i)
		return
	}

	options := i.ApplicationCommandData().Options
	level := int(options[0].IntValue())

	removed, err := DeleteReward(db, i.GuildID, level)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}
	if removed == 0 {
		common.Respond(s, i, fmt.Sprintf("No role reward is configured at level **%d**.", level), true)
		return
	}

	common.Respond(s, i, fmt.Sprintf("Removed the role reward at level **%d**.", level), false)
}

// ListLevelRoles shows the guild's configured rewards ordered by level.
func ListLevelRoles(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	var rewards []models.RoleReward
	if err := db.Where("guild_id = ?", i.GuildID).Order("level asc").Find(&rewards).Error; err != nil {
		common.SendError(s, i, err, db)
		return
	}

	if len(rewards) == 0 {
		common.Respond(s, i, "No role rewards configured for this server.", true)
		return
	}

	description := ""
	for _, reward := range rewards {
		description += fmt.Sprintf("Level **%d** - <@&%s>\n", reward.Level, reward.RoleID)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎖 Role Rewards",
		Description: description,
		Color:       0x3498db,
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
	}
}
