package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"levelUpBot/models"
	"levelUpBot/services/common"
	"levelUpBot/services/guildService"
	"levelUpBot/services/leveling"
)

const roleSyncTimeout = 10 * time.Second

// DiscordRoleSyncer applies reward role mutations through the Discord
// API with a bounded timeout per call.
type DiscordRoleSyncer struct {
	Session *discordgo.Session
}

func (r DiscordRoleSyncer) GrantRole(guildID, userID, roleID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), roleSyncTimeout)
	defer cancel()
	return r.Session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx))
}

func (r DiscordRoleSyncer) RevokeRole(guildID, userID, roleID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), roleSyncTimeout)
	defer cancel()
	return r.Session.GuildMemberRoleRemove(guildID, userID, roleID, discordgo.WithContext(ctx))
}

// HandleMessageXP runs every guild message through the leveling engine
// and announces level-ups in the channel the message came from.
func HandleMessageXP(s *discordgo.Session, m *discordgo.MessageCreate, db *gorm.DB, engine *leveling.Engine) {
	if m.Author.Bot || m.GuildID == "" {
		return
	}

	guild, err := guildService.GetGuildInfo(s, db, m.GuildID)
	if err != nil {
		common.LogError(db, m.GuildID, fmt.Errorf("fetching guild config: %v", err))
		return
	}

	if err := EnsureUserProfile(db, m.Author.ID); err != nil {
		common.LogError(db, m.GuildID, fmt.Errorf("upserting user profile: %v", err))
		return
	}

	ev := leveling.MessageEvent{
		UserID:    m.Author.ID,
		GuildID:   m.GuildID,
		Timestamp: m.Timestamp,
	}

	result, err := engine.HandleMessage(ev, guild, memberRoles(s, m), DiscordRoleSyncer{Session: s})
	if err != nil {
		// A reconciliation failure keeps the XP grant; the cron sweep
		// re-derives and applies the missing role mutations later.
		common.LogError(db, m.GuildID, err)
	}

	if result.LeveledUp() {
		content := fmt.Sprintf("%s LEVEL UP! `%d` -> `%d`", m.Author.Mention(), result.OldLevel, result.NewLevel)
		if _, sendErr := s.ChannelMessageSend(m.ChannelID, content); sendErr != nil {
			log.Printf("Error announcing level up in %s: %v", m.ChannelID, sendErr)
		}
	}
}

// EnsureUserProfile creates the global user profile on first XP grant.
// Existing profiles are left untouched.
func EnsureUserProfile(db *gorm.DB, userID string) error {
	profile := models.UserProfile{DiscordID: userID}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "discord_id"}},
		DoNothing: true,
	}).Create(&profile).Error
}

// memberRoles returns the member's current role set, preferring the
// roles already attached to the message event.
func memberRoles(s *discordgo.Session, m *discordgo.MessageCreate) []string {
	if m.Member != nil && m.Member.Roles != nil {
		return m.Member.Roles
	}
	member, err := s.GuildMember(m.GuildID, m.Author.ID)
	if err != nil {
		log.Printf("Error fetching member %s in %s: %v", m.Author.ID, m.GuildID, err)
		return nil
	}
	return member.Roles
}
