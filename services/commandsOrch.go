package services

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"levelUpBot/services/guildService"
	"levelUpBot/services/leveling"
	"levelUpBot/services/rewardService"
)

func HandleSlashCommand(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, engine *leveling.Engine) {
	switch i.ApplicationCommandData().Name {
	case "rank":
		ShowRank(s, i, db)
	case "leaderboard":
		ShowLeaderboard(s, i, db)
	case "rank-image":
		SetRankImage(s, i, db)
	case "delete-profile":
		DeleteProfile(s, i, db)
	case "set-xp":
		SetXP(s, i, db, engine)
	case "reset-xp":
		ResetXP(s, i, db)
	case "delete-xp":
		DeleteXPRecord(s, i, db, engine)
	case "set-xp-per-message":
		guildService.SetXPPerMessage(s, i, db)
	case "set-xp-cooldown":
		guildService.SetXPCooldown(s, i, db)
	case "set-reward-mode":
		guildService.SetRewardMode(s, i, db)
	case "set-guild-rank-image":
		guildService.SetGuildRankImage(s, i, db)
	case "add-level-role":
		rewardService.AddLevelRole(s, i, db)
	case "remove-level-role":
		rewardService.RemoveLevelRole(s, i, db)
	case "list-level-roles":
		rewardService.ListLevelRoles(s, i, db)
	}
}

func RegisterCommands(s *discordgo.Session) error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "rank",
			Description: "Show a member's level, XP and position in this server",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "Member to look up (defaults to you)",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    false,
				},
			},
		},
		{
			Name:        "leaderboard",
			Description: "Show the top members by XP",
		},
		{
			Name:        "rank-image",
			Description: "Set your rank card background image",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "url",
					Description: "Image URL",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
			},
		},
		{
			Name:        "delete-profile",
			Description: "Delete your profile and rank image (your XP is kept)",
		},
		{
			Name:        "set-xp",
			Description: "🛡 Set a member's XP - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "Member to update",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
				{
					Name:        "amount",
					Description: "New cumulative XP value",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
			},
		},
		{
			Name:        "reset-xp",
			Description: "🛡 Reset all members' XP to zero - ADMIN ONLY",
		},
		{
			Name:        "delete-xp",
			Description: "🛡 Delete a member's XP record - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "Member whose record to delete",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
			},
		},
		{
			Name:        "set-xp-per-message",
			Description: "🛡 Set the XP granted per eligible message - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "amount",
					Description: "XP per message (default 15)",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
			},
		},
		{
			Name:        "set-xp-cooldown",
			Description: "🛡 Set the cooldown between XP grants - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "seconds",
					Description: "Cooldown in seconds (default 60, 0 disables)",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
			},
		},
		{
			Name:        "set-reward-mode",
			Description: "🛡 Choose whether reward roles stack - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "mode",
					Description: "Reward mode",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "stacking", Value: "stacking"},
						{Name: "non-stacking", Value: "non-stacking"},
					},
				},
			},
		},
		{
			Name:        "set-guild-rank-image",
			Description: "🛡 Set the default rank card image for this server - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "url",
					Description: "Image URL",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
			},
		},
		{
			Name:        "add-level-role",
			Description: "🛡 Reward a role when members reach a level - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "role",
					Description: "Role to grant",
					Type:        discordgo.ApplicationCommandOptionRole,
					Required:    true,
				},
				{
					Name:        "level",
					Description: "Level threshold",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
			},
		},
		{
			Name:        "remove-level-role",
			Description: "🛡 Remove the role reward at a level - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "level",
					Description: "Level threshold to clear",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
			},
		},
		{
			Name:        "list-level-roles",
			Description: "List this server's role rewards",
		},
	}

	registeredCommands := make([]*discordgo.ApplicationCommand, len(commands))

	for i, cmd := range commands {
		rcmd, err := s.ApplicationCommandCreate(s.State.User.ID, "", cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%v' command: %v", cmd.Name, err)
		}
		registeredCommands[i] = rcmd
	}

	return nil
}
