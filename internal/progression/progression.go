// Package progression holds the canonical XP/leveling rules. Both the
// client-side preview and the authoritative server check must go through
// these functions; keeping a single implementation is what prevents the two
// sides from disagreeing about whether a level boundary was crossed.
package progression

// XPPerLevel is the size of one level block. Level 1 covers [0, 100).
const XPPerLevel = 100

// LevelForXP maps an XP value to a level. Total for every integer input:
// negative XP keeps following the floor-division convention, so xp=-1 maps
// to level 0 rather than failing or clamping.
func LevelForXP(xp int) int {
	return 1 + floorDiv(xp, XPPerLevel)
}

// ProgressWithinLevel returns the fraction of the current level block that
// has been earned, in [0, 1). Uses the Euclidean modulo so the result stays
// well-defined for negative XP.
func ProgressWithinLevel(xp int) float64 {
	return float64(euclidMod(xp, XPPerLevel)) / float64(XPPerLevel)
}

// XPThresholdForNextLevel returns the total XP needed to reach the next level.
func XPThresholdForNextLevel(xp int) int {
	return LevelForXP(xp) * XPPerLevel
}

// DidLevelUp reports whether moving from oldXP to newXP crossed a level
// boundary upward.
func DidLevelUp(oldXP, newXP int) bool {
	return LevelForXP(newXP) > LevelForXP(oldXP)
}

// Summary is the progress view handed to UI callers.
type Summary struct {
	Level          int     `json:"level"`
	XP             int     `json:"xp"`
	Progress       float64 `json:"progress"`
	XPForNextLevel int     `json:"xp_for_next_level"`
}

// Summarize derives the full progress view from a raw XP value.
func Summarize(xp int) Summary {
	return Summary{
		Level:          LevelForXP(xp),
		XP:             xp,
		Progress:       ProgressWithinLevel(xp),
		XPForNextLevel: XPThresholdForNextLevel(xp),
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func euclidMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
