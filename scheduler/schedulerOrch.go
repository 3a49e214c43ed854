package scheduler

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"levelUpBot/scheduler/scheduler_jobs"
	"levelUpBot/services/leveling"
)

func SetupCron(s *discordgo.Session, db *gorm.DB, engine *leveling.Engine) {
	cronService := cron.New(cron.WithSeconds())

	_, err := cronService.AddFunc("0 15 * * * *", func() {
		// Hourly: re-derive reward roles from current XP so any sync
		// that failed against Discord heals on its own.
		err := scheduler_jobs.ReconcileRoleRewards(s, db, engine)
		if err != nil {
			fmt.Println(err)
		}
	})

	_, err = cronService.AddFunc("0 */30 * * * *", func() {
		// Every 30 minutes: drop stale cooldown entries.
		scheduler_jobs.PruneCooldowns(engine)
	})

	if err != nil {
		fmt.Println(err)
	}

	cronService.Start()
}
