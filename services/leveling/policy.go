package leveling

import (
	"sort"

	"levelUpBot/models"
)

// RewardDiff is the exact set of role mutations needed to line external
// role state up with the member's current level. Grant and Revoke are
// disjoint and sorted.
type RewardDiff struct {
	Grant  []string
	Revoke []string
}

func (d RewardDiff) Empty() bool {
	return len(d.Grant) == 0 && len(d.Revoke) == 0
}

// TargetRoles returns the reward roles a member at level should hold
// under mode. Non-stacking keeps only the single highest threshold at or
// below level; stacking keeps every threshold at or below level.
func TargetRoles(rewards []models.RoleReward, mode string, level int) map[string]bool {
	target := make(map[string]bool)

	if mode == models.RewardModeStacking {
		for _, reward := range rewards {
			if reward.Level <= level {
				target[reward.RoleID] = true
			}
		}
		return target
	}

	best := 0
	bestRole := ""
	for _, reward := range rewards {
		if reward.Level <= level && reward.Level > best {
			best = reward.Level
			bestRole = reward.RoleID
		}
	}
	if bestRole != "" {
		target[bestRole] = true
	}
	return target
}

// Reconcile diffs the target role set against the externally-reported
// currentRoles. Only roles that are reward roles of this guild are ever
// revoked; anything else the member holds is left alone. A level drop
// revokes every reward whose threshold exceeds the new level.
func Reconcile(rewards []models.RoleReward, mode string, level int, currentRoles []string) RewardDiff {
	target := TargetRoles(rewards, mode, level)

	current := make(map[string]bool, len(currentRoles))
	for _, roleID := range currentRoles {
		current[roleID] = true
	}

	var diff RewardDiff
	for roleID := range target {
		if !current[roleID] {
			diff.Grant = append(diff.Grant, roleID)
		}
	}

	seen := make(map[string]bool)
	for _, reward := range rewards {
		if current[reward.RoleID] && !target[reward.RoleID] && !seen[reward.RoleID] {
			diff.Revoke = append(diff.Revoke, reward.RoleID)
			seen[reward.RoleID] = true
		}
	}

	sort.Strings(diff.Grant)
	sort.Strings(diff.Revoke)
	return diff
}
