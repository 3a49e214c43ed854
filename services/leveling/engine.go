package leveling

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"levelUpBot/models"
)

// Outcome is the terminal state of one message event through the
// pipeline.
type Outcome int

const (
	// OutcomeSkipped means the cooldown gate denied the event.
	OutcomeSkipped Outcome = iota
	// OutcomeNoLevelChange means XP was granted without crossing a
	// level threshold.
	OutcomeNoLevelChange
	// OutcomeReconciled means the event leveled the member up and the
	// reward diff was emitted.
	OutcomeReconciled
)

// MessageEvent is all the engine needs from an inbound message.
type MessageEvent struct {
	UserID    string
	GuildID   string
	Timestamp time.Time
}

// RoleSyncer applies role mutations against the chat platform. Calls
// must be bounded; implementations own timeouts and retries.
type RoleSyncer interface {
	GrantRole(guildID, userID, roleID string) error
	RevokeRole(guildID, userID, roleID string) error
}

type Result struct {
	Outcome  Outcome
	OldXP    int64
	NewXP    int64
	OldLevel int
	NewLevel int
	Granted  []string
	Revoked  []string
}

func (r Result) LeveledUp() bool {
	return r.NewLevel > r.OldLevel
}

// Engine runs the accrual pipeline: cooldown admission, XP grant, level
// detection, reward reconciliation. Events for the same (user, guild)
// are serialized end to end; distinct keys run in parallel.
type Engine struct {
	ledger  *Ledger
	tracker *CooldownTracker

	mu       sync.Mutex
	keyLocks map[cooldownKey]*sync.Mutex
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{
		ledger:   NewLedger(db),
		tracker:  NewCooldownTracker(),
		keyLocks: make(map[cooldownKey]*sync.Mutex),
	}
}

func (e *Engine) Ledger() *Ledger {
	return e.ledger
}

func (e *Engine) Tracker() *CooldownTracker {
	return e.tracker
}

func (e *Engine) lockKey(userID, guildID string) *sync.Mutex {
	key := cooldownKey{userID: userID, guildID: guildID}

	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.keyLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		e.keyLocks[key] = lock
	}
	return lock
}

// HandleMessage processes one message event. currentRoles is the
// externally-reported role set of the member; the engine never reads
// role state itself. A syncer failure does not roll back the XP grant:
// the returned Result still carries the new XP and the error wraps
// ErrReconciliation so the caller can retry the diff later via
// ReconcileMember.
func (e *Engine) HandleMessage(ev MessageEvent, guild *models.Guild, currentRoles []string, syncer RoleSyncer) (Result, error) {
	lock := e.lockKey(ev.UserID, ev.GuildID)
	lock.Lock()
	defer lock.Unlock()

	cooldown := time.Duration(guild.CooldownSeconds) * time.Second
	if !e.tracker.TryAdmit(ev.UserID, ev.GuildID, cooldown, ev.Timestamp) {
		return Result{Outcome: OutcomeSkipped}, nil
	}

	grant, err := e.ledger.GrantXP(ev.UserID, ev.GuildID, int64(guild.XPPerMessage))
	if err != nil {
		return Result{Outcome: OutcomeSkipped}, err
	}

	result := Result{
		OldXP:    grant.OldXP,
		NewXP:    grant.NewXP,
		OldLevel: LevelForXP(grant.OldXP),
		NewLevel: LevelForXP(grant.NewXP),
	}

	if result.NewLevel <= result.OldLevel {
		result.Outcome = OutcomeNoLevelChange
		return result, nil
	}

	diff := Reconcile(guild.RoleRewards, guild.RewardMode, result.NewLevel, currentRoles)
	result.Outcome = OutcomeReconciled
	result.Granted, result.Revoked, err = applyDiff(syncer, ev.GuildID, ev.UserID, diff)
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrReconciliation, err)
	}
	return result, nil
}

// ReconcileMember re-derives the reward diff from the member's current
// XP and applies it. Reconciliation is a pure function of current
// state, so this recovers from any failed or interrupted sync.
func (e *Engine) ReconcileMember(userID string, guild *models.Guild, currentRoles []string, syncer RoleSyncer) (RewardDiff, error) {
	xp, _, err := e.ledger.GetXP(userID, guild.GuildID)
	if err != nil {
		return RewardDiff{}, err
	}

	diff := Reconcile(guild.RoleRewards, guild.RewardMode, LevelForXP(xp), currentRoles)
	if _, _, err := applyDiff(syncer, guild.GuildID, userID, diff); err != nil {
		return diff, fmt.Errorf("%w: %v", ErrReconciliation, err)
	}
	return diff, nil
}

// applyDiff emits the mutations one by one and reports what actually
// went through, so a partial failure leaves an accurate record.
func applyDiff(syncer RoleSyncer, guildID, userID string, diff RewardDiff) (granted, revoked []string, err error) {
	for _, roleID := range diff.Grant {
		if grantErr := syncer.GrantRole(guildID, userID, roleID); grantErr != nil {
			return granted, revoked, fmt.Errorf("granting role %s: %v", roleID, grantErr)
		}
		granted = append(granted, roleID)
	}
	for _, roleID := range diff.Revoke {
		if revokeErr := syncer.RevokeRole(guildID, userID, roleID); revokeErr != nil {
			return granted, revoked, fmt.Errorf("revoking role %s: %v", roleID, revokeErr)
		}
		revoked = append(revoked, roleID)
	}
	return granted, revoked, nil
}
