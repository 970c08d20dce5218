package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_NowIsUTC(t *testing.T) {
	before := time.Now()
	got := RealClock{}.Now()
	after := time.Now()

	assert.Equal(t, time.UTC, got.Location())
	assert.False(t, got.Before(before.Truncate(time.Second)))
	assert.False(t, got.After(after))
}

func TestStepping(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := NewStepping(start, time.Second)

	assert.Equal(t, start, c.Now())
	assert.Equal(t, start.Add(time.Second), c.Now())
	assert.Equal(t, start.Add(2*time.Second), c.Now())
}

func TestStepping_ZeroStepIsFixed(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := NewStepping(start, 0)

	assert.Equal(t, start, c.Now())
	assert.Equal(t, start, c.Now())
}
