package coop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTickOver(t *testing.T) {
	assert.True(t, IsTickOver(100, 100), "a tick is over exactly at the limit")
	assert.True(t, IsTickOver(101, 100))
	assert.False(t, IsTickOver(99, 100))

	// Wraparound: ref has wrapped past zero but is still "after" limit in
	// the wrap-safe ordering.
	var limit Tick = MaxTick - 5
	var ref Tick = 4 // wrapped around past MaxTick
	assert.True(t, IsTickOver(ref, limit))

	// Comfortably before the limit, no wraparound involved.
	assert.False(t, IsTickOver(50, 1000))
}

func TestClockFunc(t *testing.T) {
	var calls int
	c := ClockFunc(func() Tick {
		calls++
		return Tick(calls)
	})
	assert.Equal(t, Tick(1), c.Tick())
	assert.Equal(t, Tick(2), c.Tick())
}

func TestSystemClock_Monotonic(t *testing.T) {
	c := NewSystemClock()
	a := c.Tick()
	b := c.Tick()
	assert.True(t, b >= a)
}
