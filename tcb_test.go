package coop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThread_NameAndTick(t *testing.T) {
	ticks := []Tick{5, 5}
	i := 0
	clk := ClockFunc(func() Tick {
		v := ticks[i]
		if i < len(ticks)-1 {
			i++
		}
		return v
	})
	s := New(WithMaxThreads(2), WithClock(clk))

	var gotName string
	var gotTick Tick
	worker := func(th *Thread, arg any) {
		gotName = th.Name()
		gotTick = th.Tick()
	}
	require.NoError(t, s.Schedule(worker, "reader", 0, nil))

	s.Service()

	assert.Equal(t, "reader", gotName)
	assert.Equal(t, Tick(5), gotTick)
}

func TestTCB_ResetRestoresEmptyStateWithFreshChannels(t *testing.T) {
	tc := newTCB()
	tc.name = "stale"
	tc.state = StateRun
	tc.depth = 3
	oldResume := tc.resume

	tc.reset()

	assert.Equal(t, "", tc.name)
	assert.Equal(t, StateEmpty, tc.state)
	assert.Equal(t, 0, tc.depth)
	assert.NotEqual(t, oldResume, tc.resume, "reset must recreate channels, not reuse stale ones")
}
