package coop

import (
	"time"

	"golang.org/x/exp/constraints"
)

// IdlePrimitive is the platform idle-sleep collaborator, spec.md §6's
// idle_cb: sleep for up to the given number of ticks, returning early is
// permitted.
type IdlePrimitive interface {
	Idle(ticks Tick)
}

// SleepIdlePrimitive is the default IdlePrimitive, converting ticks to a
// time.Sleep call. It assumes a Clock whose tick unit is roughly
// microseconds, matching SystemClock.
type SleepIdlePrimitive struct{}

// Idle implements IdlePrimitive.
func (SleepIdlePrimitive) Idle(ticks Tick) {
	if ticks == 0 {
		return
	}
	time.Sleep(time.Duration(ticks) * time.Microsecond)
}

// minOf returns the smallest of the given values, used by collapseIdle to
// find the soonest-expiring idle_to across slots. Grounded on go-catrate's
// use of golang.org/x/exp generic constraints for small numeric helpers.
func minOf[T constraints.Ordered](vals ...T) (min T) {
	if len(vals) == 0 {
		return
	}
	min = vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
	}
	return
}

// collapseIdle implements spec.md §4.4: when every busy, non-hole slot is
// IDLE, sleep for the soonest remaining idle period (wrap-safe), then
// promote every slot whose idle_to has elapsed to RUN. Repeats until at
// least one slot is RUN or no idle-only deadlock remains. Returns true if
// it promoted anything.
//
// Only the single Service goroutine ever calls collapseIdle, but it still
// takes s.mu around every pool read/write: Notify/NotifyAll and the
// yield-family methods on *Thread may run concurrently from a currently
// active thread's own goroutine, and s.mu is how every other method in this
// package serializes against that. The blocking sleep itself is done with
// the lock released, so a concurrent Schedule/Notify is never stalled by an
// idle nap.
func (s *Scheduler) collapseIdle() bool {
	if !s.cfg.idleSupport {
		return false
	}
	promotedAny := false
	for {
		s.mu.Lock()
		now := s.cfg.clock.Tick()

		allIdleOrInactive := true
		var remaining []Tick
		for i := range s.pool {
			switch s.pool[i].state {
			case StateRun, StateNew, StateWait:
				allIdleOrInactive = false
			case StateIdle:
				if IsTickOver(now, s.pool[i].idleTo) {
					s.promoteIdle(i, now)
					promotedAny = true
					allIdleOrInactive = false
				} else {
					remaining = append(remaining, s.pool[i].idleTo-now)
				}
			}
		}
		s.mu.Unlock()

		if !allIdleOrInactive || len(remaining) == 0 {
			return promotedAny
		}

		s.cfg.idlePrimitive.Idle(minOf(remaining...))
	}
}

// promoteIdle transitions a single IDLE slot to RUN, per spec.md §4.2's
// IDLE dispatch branch. Callers must hold s.mu.
func (s *Scheduler) promoteIdle(i int, now Tick) {
	s.log.transition("idle", i, s.pool[i].name, StateIdle, StateRun, now)
	s.pool[i].state = StateRun
	s.idleN--
	s.pool[i].switchTick = now
}
