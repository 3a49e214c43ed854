package scheduler_jobs

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"levelUpBot/models"
	"levelUpBot/services"
	"levelUpBot/services/common"
	"levelUpBot/services/leveling"
)

// ReconcileRoleRewards walks every joined guild with configured rewards
// and re-applies the role diff for each member with an XP record.
// Reconciliation is a pure function of current XP and config, so this
// sweep recovers from any role mutation that failed when it leveled.
func ReconcileRoleRewards(s *discordgo.Session, db *gorm.DB, engine *leveling.Engine) error {
	syncer := services.DiscordRoleSyncer{Session: s}

	for _, stateGuild := range s.State.Guilds {
		var guild models.Guild
		err := db.Preload("RoleRewards").Where("guild_id = ?", stateGuild.ID).First(&guild).Error
		if err != nil {
			continue
		}
		if len(guild.RoleRewards) == 0 {
			continue
		}

		var records []models.LevelRecord
		if err := db.Where("guild_id = ?", stateGuild.ID).Find(&records).Error; err != nil {
			common.LogError(db, stateGuild.ID, fmt.Errorf("loading level records for sweep: %v", err))
			continue
		}

		for _, record := range records {
			member, err := s.GuildMember(stateGuild.ID, record.DiscordID)
			if err != nil {
				// Member left or is otherwise unreachable; nothing to sync.
				continue
			}

			diff, err := engine.ReconcileMember(record.DiscordID, &guild, member.Roles, syncer)
			if err != nil {
				common.LogError(db, stateGuild.ID, err)
				continue
			}
			if !diff.Empty() {
				log.Printf("Sweep reconciled %s in %s: +%v -%v",
					record.DiscordID, stateGuild.ID, diff.Grant, diff.Revoke)
			}
		}
	}

	return nil
}
