package coop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIdlePrimitive records every sleep request instead of actually
// sleeping, and advances a shared fake clock by that amount, so tests can
// exercise collapseIdle's "everyone's idle, sleep until the soonest
// deadline" path without real time passing.
type fakeIdlePrimitive struct {
	clockTick *Tick
	slept     []Tick
}

func (f *fakeIdlePrimitive) Idle(ticks Tick) {
	f.slept = append(f.slept, ticks)
	*f.clockTick += ticks
}

func TestCollapseIdle_PromotesSoonestDeadlineAfterSleeping(t *testing.T) {
	var now Tick
	clk := ClockFunc(func() Tick { return now })
	idlePrim := &fakeIdlePrimitive{clockTick: &now}

	s := New(WithMaxThreads(3), WithClock(clk), WithIdlePrimitive(idlePrim))

	// Two threads go straight to IDLE and never RUN again; collapseIdle is
	// exercised directly, bypassing Service's dispatch loop.
	s.pool[0].state = StateIdle
	s.pool[0].idleTo = 100
	s.pool[1].state = StateIdle
	s.pool[1].idleTo = 250
	s.idleN = 2

	promoted := s.collapseIdle()

	require.True(t, promoted)
	assert.Equal(t, StateRun, s.pool[0].state)
	assert.Equal(t, StateIdle, s.pool[1].state, "only the soonest deadline is promoted per pass")
	assert.Equal(t, 1, s.idleN)
	assert.Equal(t, []Tick{100}, idlePrim.slept)
	assert.Equal(t, Tick(100), now)
}

func TestCollapseIdle_NoOpWhenAnyThreadIsRunning(t *testing.T) {
	s := New(WithMaxThreads(2))
	s.pool[0].state = StateRun
	s.pool[1].state = StateIdle
	s.pool[1].idleTo = MaxTick
	s.idleN = 1

	promoted := s.collapseIdle()
	assert.False(t, promoted)
	assert.Equal(t, StateIdle, s.pool[1].state)
}

func TestCollapseIdle_NoOpWhenNewSlotIsPending(t *testing.T) {
	idlePrim := &fakeIdlePrimitive{clockTick: new(Tick)}
	s := New(WithMaxThreads(2), WithIdlePrimitive(idlePrim))
	s.pool[0].state = StateNew
	s.pool[1].state = StateIdle
	s.pool[1].idleTo = MaxTick
	s.idleN = 1

	promoted := s.collapseIdle()
	assert.False(t, promoted)
	assert.Equal(t, StateIdle, s.pool[1].state)
	assert.Empty(t, idlePrim.slept, "a pending NEW slot must not be stalled behind an idle nap")
}

func TestCollapseIdle_NoOpWhenAnyThreadIsWaiting(t *testing.T) {
	idlePrim := &fakeIdlePrimitive{clockTick: new(Tick)}
	s := New(WithMaxThreads(2), WithIdlePrimitive(idlePrim))
	s.pool[0].state = StateWait
	s.pool[0].infinite = true
	s.pool[1].state = StateIdle
	s.pool[1].idleTo = MaxTick
	s.idleN = 1

	promoted := s.collapseIdle()
	assert.False(t, promoted)
	assert.Equal(t, StateIdle, s.pool[1].state)
	assert.Empty(t, idlePrim.slept, "a waiting slot's own timeout must not be ignored by an idle nap")
}

func TestMinOf(t *testing.T) {
	assert.Equal(t, 3, minOf(5, 3, 9))
	assert.Equal(t, Tick(1), minOf(Tick(10), Tick(1), Tick(7)))
	assert.Equal(t, 0, minOf[int]())
}
