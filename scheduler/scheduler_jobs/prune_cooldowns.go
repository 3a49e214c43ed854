package scheduler_jobs

import (
	"log"
	"time"

	"levelUpBot/services/leveling"
)

// Admissions older than this can never deny anything again; no guild
// runs a cooldown that long.
const cooldownRetention = 24 * time.Hour

func PruneCooldowns(engine *leveling.Engine) {
	removed := engine.Tracker().Prune(time.Now().Add(-cooldownRetention))
	if removed > 0 {
		log.Printf("Pruned %d stale cooldown entries", removed)
	}
}
