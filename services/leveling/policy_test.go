package leveling

import (
	"reflect"
	"testing"

	"levelUpBot/models"
)

func rewardSet() []models.RoleReward {
	return []models.RoleReward{
		{GuildID: "guild1", Level: 5, RoleID: "roleA"},
		{GuildID: "guild1", Level: 10, RoleID: "roleB"},
	}
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name         string
		mode         string
		level        int
		currentRoles []string
		expectGrant  []string
		expectRevoke []string
	}{
		{
			name:         "non-stacking level up grants only highest",
			mode:         models.RewardModeNonStacking,
			level:        12,
			currentRoles: nil,
			expectGrant:  []string{"roleB"},
			expectRevoke: nil,
		},
		{
			name:         "non-stacking upgrade swaps roles",
			mode:         models.RewardModeNonStacking,
			level:        12,
			currentRoles: []string{"roleA"},
			expectGrant:  []string{"roleB"},
			expectRevoke: []string{"roleA"},
		},
		{
			name:         "non-stacking below every threshold",
			mode:         models.RewardModeNonStacking,
			level:        3,
			currentRoles: nil,
			expectGrant:  nil,
			expectRevoke: nil,
		},
		{
			name:         "non-stacking mid threshold",
			mode:         models.RewardModeNonStacking,
			level:        7,
			currentRoles: nil,
			expectGrant:  []string{"roleA"},
			expectRevoke: nil,
		},
		{
			name:         "stacking level up grants union",
			mode:         models.RewardModeStacking,
			level:        12,
			currentRoles: nil,
			expectGrant:  []string{"roleA", "roleB"},
			expectRevoke: nil,
		},
		{
			name:         "stacking demotion revokes thresholds above new level",
			mode:         models.RewardModeStacking,
			level:        4,
			currentRoles: []string{"roleA", "roleB"},
			expectGrant:  nil,
			expectRevoke: []string{"roleA", "roleB"},
		},
		{
			name:         "stacking demotion keeps thresholds still met",
			mode:         models.RewardModeStacking,
			level:        6,
			currentRoles: []string{"roleA", "roleB"},
			expectGrant:  nil,
			expectRevoke: []string{"roleB"},
		},
		{
			name:         "already in sync",
			mode:         models.RewardModeStacking,
			level:        12,
			currentRoles: []string{"roleA", "roleB"},
			expectGrant:  nil,
			expectRevoke: nil,
		},
		{
			name:         "unrelated roles are never revoked",
			mode:         models.RewardModeNonStacking,
			level:        3,
			currentRoles: []string{"moderator", "roleA"},
			expectGrant:  nil,
			expectRevoke: []string{"roleA"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			diff := Reconcile(rewardSet(), tc.mode, tc.level, tc.currentRoles)
			if !reflect.DeepEqual(diff.Grant, tc.expectGrant) {
				t.Errorf("grant: expected %v, got %v", tc.expectGrant, diff.Grant)
			}
			if !reflect.DeepEqual(diff.Revoke, tc.expectRevoke) {
				t.Errorf("revoke: expected %v, got %v", tc.expectRevoke, diff.Revoke)
			}
		})
	}
}

func TestReconcileNoRewards(t *testing.T) {
	diff := Reconcile(nil, models.RewardModeStacking, 50, []string{"roleA"})
	if !diff.Empty() {
		t.Errorf("expected empty diff for guild without rewards, got %+v", diff)
	}
}

func TestTargetRolesSecondHighestIgnoredInNonStacking(t *testing.T) {
	rewards := []models.RoleReward{
		{GuildID: "guild1", Level: 5, RoleID: "roleA"},
		{GuildID: "guild1", Level: 10, RoleID: "roleB"},
		{GuildID: "guild1", Level: 20, RoleID: "roleC"},
	}

	target := TargetRoles(rewards, models.RewardModeNonStacking, 15)
	if len(target) != 1 || !target["roleB"] {
		t.Errorf("expected exactly {roleB}, got %v", target)
	}
}
