package progression_test

import (
	"testing"

	"questboard/internal/progression"

	"github.com/stretchr/testify/assert"
)

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{1, 1},
		{99, 1},
		{100, 2},
		{101, 2},
		{199, 2},
		{200, 3},
		{1000, 11},
		{-1, 0},
		{-100, 0},
		{-101, -1},
	}

	for _, c := range cases {
		assert.Equal(t, c.level, progression.LevelForXP(c.xp), "xp=%d", c.xp)
	}
}

func TestLevelForXP_FloorFormula(t *testing.T) {
	// For non-negative xp the level is exactly 1 + floor(xp / XPPerLevel).
	for xp := 0; xp <= 1000; xp++ {
		assert.Equal(t, 1+xp/progression.XPPerLevel, progression.LevelForXP(xp), "xp=%d", xp)
	}
}

func TestProgressWithinLevel(t *testing.T) {
	assert.Equal(t, 0.0, progression.ProgressWithinLevel(0))
	assert.Equal(t, 0.5, progression.ProgressWithinLevel(50))
	assert.Equal(t, 0.99, progression.ProgressWithinLevel(99))
	assert.Equal(t, 0.0, progression.ProgressWithinLevel(100))
	assert.Equal(t, 0.1, progression.ProgressWithinLevel(210))

	// Negative XP stays in [0, 1).
	assert.Equal(t, 0.99, progression.ProgressWithinLevel(-1))
	assert.Equal(t, 0.0, progression.ProgressWithinLevel(-100))

	for xp := -500; xp <= 500; xp++ {
		p := progression.ProgressWithinLevel(xp)
		assert.GreaterOrEqual(t, p, 0.0, "xp=%d", xp)
		assert.Less(t, p, 1.0, "xp=%d", xp)
	}
}

func TestXPThresholdForNextLevel(t *testing.T) {
	assert.Equal(t, 100, progression.XPThresholdForNextLevel(0))
	assert.Equal(t, 100, progression.XPThresholdForNextLevel(99))
	assert.Equal(t, 200, progression.XPThresholdForNextLevel(100))
	assert.Equal(t, 200, progression.XPThresholdForNextLevel(110))
	assert.Equal(t, 0, progression.XPThresholdForNextLevel(-1))
}

func TestDidLevelUp(t *testing.T) {
	assert.True(t, progression.DidLevelUp(90, 110))
	assert.True(t, progression.DidLevelUp(99, 100))
	assert.False(t, progression.DidLevelUp(110, 115))
	assert.False(t, progression.DidLevelUp(0, 99))
	assert.False(t, progression.DidLevelUp(100, 100))

	// Losing XP is never a level-up, even across a boundary.
	assert.False(t, progression.DidLevelUp(110, 90))
	assert.False(t, progression.DidLevelUp(0, -50))

	// Recovering from negative XP counts as a level-up once a boundary
	// is crossed upward.
	assert.True(t, progression.DidLevelUp(-10, 10))
}

func TestDidLevelUp_MatchesFloorComparison(t *testing.T) {
	for xp := -300; xp <= 300; xp += 7 {
		for amount := -250; amount <= 250; amount += 11 {
			want := progression.LevelForXP(xp+amount) > progression.LevelForXP(xp)
			assert.Equal(t, want, progression.DidLevelUp(xp, xp+amount), "xp=%d amount=%d", xp, amount)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := progression.Summarize(250)
	assert.Equal(t, 3, s.Level)
	assert.Equal(t, 250, s.XP)
	assert.Equal(t, 0.5, s.Progress)
	assert.Equal(t, 300, s.XPForNextLevel)
}
