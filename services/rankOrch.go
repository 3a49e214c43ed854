package services

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"levelUpBot/models"
	"levelUpBot/services/common"
	"levelUpBot/services/leveling"
)

// ShowRank displays level, XP progress and guild position for the
// caller or the chosen member.
func ShowRank(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	target := i.Member.User
	options := i.ApplicationCommandData().Options
	if len(options) > 0 {
		target = options[0].UserValue(s)
	}

	var record models.LevelRecord
	err := db.Where("discord_id = ? AND guild_id = ?", target.ID, i.GuildID).Take(&record).Error
	if err != nil {
		common.Respond(s, i, fmt.Sprintf("**%s** has not earned any XP yet.", common.GetUsernameFromUser(target)), true)
		return
	}

	level := leveling.LevelForXP(record.XP)
	nextLevelXP := leveling.XPForLevel(level + 1)

	var higher int64
	db.Model(&models.LevelRecord{}).
		Where("guild_id = ? AND xp > ?", i.GuildID, record.XP).
		Count(&higher)
	position := higher + 1

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Rank for %s", common.GetUsernameFromUser(target)),
		Description: fmt.Sprintf("Rank **#%d**", position),
		Color:       0x2ecc71,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Level",
				Value:  fmt.Sprintf("%d", level),
				Inline: true,
			},
			{
				Name:   "XP",
				Value:  fmt.Sprintf("%d / %d", record.XP, nextLevelXP),
				Inline: true,
			},
		},
	}

	if image := rankImageFor(db, target.ID, i.GuildID); image != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: image}
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
	}
}

// rankImageFor picks the member's own rank image, falling back to the
// guild default. The engine only stores the reference; rendering is
// Discord's problem.
func rankImageFor(db *gorm.DB, userID, guildID string) string {
	var profile models.UserProfile
	if err := db.Where("discord_id = ?", userID).Take(&profile).Error; err == nil {
		if profile.RankImage != nil && *profile.RankImage != "" {
			return *profile.RankImage
		}
	}

	var guild models.Guild
	if err := db.Where("guild_id = ?", guildID).Take(&guild).Error; err == nil {
		if guild.RankImage != nil && *guild.RankImage != "" {
			return *guild.RankImage
		}
	}
	return ""
}

func ShowLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	guildID := i.GuildID

	var records []models.LevelRecord
	db.Where("guild_id = ?", guildID).Order("xp desc").Limit(10).Find(&records)

	if len(records) == 0 {
		common.Respond(s, i, "No members found on the leaderboard.", false)
		return
	}

	description := ""
	for idx, record := range records {
		member, err := s.GuildMember(guildID, record.DiscordID)
		username := "Unknown User"
		if err == nil {
			username = common.GetUsernameFromUser(member.User)
		}
		description += fmt.Sprintf("**%d. %s** - Level %d (%d XP)\n",
			idx+1, username, leveling.LevelForXP(record.XP), record.XP)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🏆 Leaderboard",
		Description: description,
		Color:       0x00ff00,
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

// SetRankImage stores the caller's rank card image reference on their
// global profile.
func SetRankImage(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	options := i.ApplicationCommandData().Options
	imageURL := options[0].StringValue()
	userID := i.Member.User.ID

	profile := models.UserProfile{DiscordID: userID, RankImage: &imageURL}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "discord_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"rank_image": imageURL}),
	}).Create(&profile).Error
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	common.Respond(s, i, "Rank image updated.", true)
}

// DeleteProfile removes the caller's global profile record. XP records
// are separate aggregates and stay untouched.
func DeleteProfile(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	userID := i.Member.User.ID
	if err := db.Where("discord_id = ?", userID).Delete(&models.UserProfile{}).Error; err != nil {
		common.SendError(s, i, err, db)
		return
	}

	common.Respond(s, i, "Your profile has been deleted.", true)
}
