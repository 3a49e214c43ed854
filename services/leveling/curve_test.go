package leveling

import (
	"math"
	"testing"
)

func TestLevelForXPKnownValues(t *testing.T) {
	tests := []struct {
		xp    int64
		level int
	}{
		{0, 0},
		{1, 0},
		{99, 0},
		{100, 1},
		{101, 1},
		{399, 1},
		{400, 2},
		{2500, 5},
		{9999, 9},
		{10000, 10},
		{1000000, 100},
	}

	for _, tc := range tests {
		if got := LevelForXP(tc.xp); got != tc.level {
			t.Errorf("LevelForXP(%d): expected %d, got %d", tc.xp, tc.level, got)
		}
	}
}

func TestLevelForXPMonotonic(t *testing.T) {
	samples := []int64{
		0, 1, 2, 99, 100, 101, 399, 400, 401,
		12345, 999999, 1000000,
		math.MaxInt32, math.MaxInt64 / 2, math.MaxInt64 - 1, math.MaxInt64,
	}

	for i := 1; i < len(samples); i++ {
		lo, hi := samples[i-1], samples[i]
		if LevelForXP(lo) > LevelForXP(hi) {
			t.Errorf("monotonicity violated: LevelForXP(%d)=%d > LevelForXP(%d)=%d",
				lo, LevelForXP(lo), hi, LevelForXP(hi))
		}
	}
}

func TestCurveThresholdBoundary(t *testing.T) {
	levels := []int{1, 2, 3, 5, 10, 50, 100, 1000, 100000, 1000000}

	for _, level := range levels {
		threshold := XPForLevel(level)
		if got := LevelForXP(threshold); got != level {
			t.Errorf("LevelForXP(XPForLevel(%d)): expected %d, got %d", level, level, got)
		}
		if got := LevelForXP(threshold - 1); got >= level {
			t.Errorf("LevelForXP(XPForLevel(%d)-1): expected < %d, got %d", level, level, got)
		}
	}
}

func TestCurveBaseLevel(t *testing.T) {
	if got := LevelForXP(0); got != 0 {
		t.Errorf("expected base level 0 at zero XP, got %d", got)
	}
	if got := XPForLevel(0); got != 0 {
		t.Errorf("expected 0 XP for level 0, got %d", got)
	}
	if got := XPForLevel(-3); got != 0 {
		t.Errorf("expected 0 XP for negative level, got %d", got)
	}
}

func TestXPForLevelSaturatesBeyondMaxLevel(t *testing.T) {
	if got := LevelForXP(math.MaxInt64); got != MaxLevel {
		t.Errorf("LevelForXP(MaxInt64): expected %d, got %d", MaxLevel, got)
	}
	if got := XPForLevel(MaxLevel); got <= 0 {
		t.Errorf("XPForLevel(MaxLevel) overflowed: got %d", got)
	}
	if got := LevelForXP(XPForLevel(MaxLevel)); got != MaxLevel {
		t.Errorf("inverse broken at MaxLevel: got %d", got)
	}

	// One past the top, as /rank computes for next-level progress, must
	// saturate instead of wrapping negative.
	if got := XPForLevel(MaxLevel + 1); got != math.MaxInt64 {
		t.Errorf("XPForLevel(MaxLevel+1): expected MaxInt64, got %d", got)
	}
	if XPForLevel(MaxLevel+1) < XPForLevel(MaxLevel) {
		t.Error("XPForLevel not monotone across the saturation point")
	}
}

func TestLevelForXPHugeValues(t *testing.T) {
	// Near int64 max, float sqrt alone would wobble; the corrected
	// isqrt must stay exact and monotone.
	prev := -1
	for _, xp := range []int64{math.MaxInt64 - 2, math.MaxInt64 - 1, math.MaxInt64} {
		level := LevelForXP(xp)
		if level < prev {
			t.Errorf("level decreased at xp=%d: %d -> %d", xp, prev, level)
		}
		if threshold := XPForLevel(level); threshold > xp {
			t.Errorf("XPForLevel(%d)=%d exceeds xp %d it was derived from", level, threshold, xp)
		}
		prev = level
	}
}
