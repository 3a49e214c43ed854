package leveling

import "math"

// The curve is quadratic: reaching level L requires 100*L*L XP, so
// level 0 starts at 0 XP, level 1 at 100, level 2 at 400 and so on.
const xpPerLevelUnit = 100

// maxRoot is the largest r with r*r still representable in int64.
const maxRoot = 3037000499

// MaxLevel is the highest level reachable within int64 XP; it equals
// LevelForXP(math.MaxInt64).
const MaxLevel = 303700049

// XPForLevel returns the minimum cumulative XP required for level.
// Levels beyond MaxLevel are unreachable and saturate at math.MaxInt64
// rather than overflowing.
func XPForLevel(level int) int64 {
	if level <= 0 {
		return 0
	}
	if level > MaxLevel {
		return math.MaxInt64
	}
	return int64(level) * int64(level) * xpPerLevelUnit
}

// LevelForXP returns the level reached with xp cumulative XP. It is
// monotonically non-decreasing over all of int64.
func LevelForXP(xp int64) int {
	if xp <= 0 {
		return 0
	}
	return int(isqrt(xp / xpPerLevelUnit))
}

// isqrt returns floor(sqrt(n)). math.Sqrt alone drifts for large n, so
// the float result is corrected with integer arithmetic.
func isqrt(n int64) int64 {
	if n <= 0 {
		return 0
	}
	r := int64(math.Sqrt(float64(n)))
	if r > maxRoot {
		r = maxRoot
	}
	for r > 0 && r*r > n {
		r--
	}
	for r < maxRoot && (r+1)*(r+1) <= n {
		r++
	}
	return r
}
