package leveling

import (
	"sync"
	"time"
)

type cooldownKey struct {
	userID  string
	guildID string
}

// CooldownTracker gates XP grants per (user, guild). State is process
// memory only; losing it on restart just re-admits one extra grant.
type CooldownTracker struct {
	mu   sync.Mutex
	last map[cooldownKey]time.Time
}

func NewCooldownTracker() *CooldownTracker {
	return &CooldownTracker{last: make(map[cooldownKey]time.Time)}
}

// TryAdmit reports whether a message at now is eligible to grant XP and
// records now as the last admission if so. Atomic per key: two
// concurrent calls for the same key cannot both be admitted inside one
// cooldown window.
func (t *CooldownTracker) TryAdmit(userID, guildID string, cooldown time.Duration, now time.Time) bool {
	key := cooldownKey{userID: userID, guildID: guildID}

	t.mu.Lock()
	defer t.mu.Unlock()

	if last, ok := t.last[key]; ok && cooldown > 0 && now.Before(last.Add(cooldown)) {
		return false
	}
	t.last[key] = now
	return true
}

// Prune drops admissions older than before, bounding the map for users
// that went quiet.
func (t *CooldownTracker) Prune(before time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for key, last := range t.last {
		if last.Before(before) {
			delete(t.last, key)
			removed++
		}
	}
	return removed
}
