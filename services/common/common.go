package common

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"levelUpBot/models"
)

func IsAdmin(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	// Use member data from the interaction - no privileged intent needed
	if i.Member == nil {
		return false
	}

	for _, roleID := range i.Member.Roles {
		role, err := s.State.Role(i.GuildID, roleID)
		if err != nil || role == nil {
			roles, err := s.GuildRoles(i.GuildID)
			if err != nil {
				log.Printf("Error fetching roles from API: %v", err)
				continue
			}

			for _, r := range roles {
				if r.ID == roleID {
					role = r
					break
				}
			}

			if role == nil {
				log.Printf("Role %s not found in guild %s", roleID, i.GuildID)
				continue
			}
		}

		if role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}

	return false
}

// SendError reports an error back to the interaction (when there is
// one) and records it in the error log table.
func SendError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, db *gorm.DB) {
	fmt.Println(err)

	guildId := ""
	if i != nil {
		guildId = i.GuildID
		localErr := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("An error occured: %v", err),
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		if localErr != nil {
			log.Printf("Error sending interaction: %v", localErr)
		}
	}
	LogError(db, guildId, err)
}

// LogError records an error without an interaction to answer, e.g. from
// the message handler or a cron job.
func LogError(db *gorm.DB, guildID string, err error) {
	log.Printf("[guild %s] %v", guildID, err)
	errLog := models.ErrorLog{
		GuildID: guildID,
		Message: fmt.Sprintf("%v", err),
	}
	db.Create(&errLog)
}

// Respond sends a plain text interaction response.
func Respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Printf("Error sending interaction: %v", err)
	}
}

// RespondNotAuthorized is the canned reply for non-admin use of an
// admin command.
func RespondNotAuthorized(s *discordgo.Session, i *discordgo.InteractionCreate) {
	Respond(s, i, "You are not authorized to use this command.", true)
}

// GetUsernameFromUser extracts a display name from a discordgo.User.
func GetUsernameFromUser(user *discordgo.User) string {
	if user == nil {
		return "Unknown User"
	}
	username := user.GlobalName
	if username == "" {
		username = user.Username
	}
	if username == "" {
		return "Unknown User"
	}
	return username
}
