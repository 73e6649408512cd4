package coop

// terminate runs spec.md §4.5's unwind algorithm for a slot whose goroutine
// has just returned. terminate acquires s.mu itself for the duration, so
// callers must not hold it; it is only ever invoked from handlePark, which
// runs with s.mu unlocked.
//
// Case A: the terminating slot is not topmost (its depth is below
// sched.depth) — some other still-live slot was started later and hasn't
// finished, so this slot's bookkeeping can't be reclaimed yet. It becomes a
// HOLE and waits.
//
// Case B: the terminating slot is topmost. It is freed outright, then the
// new top-of-stack depth is recomputed from the remaining started, non-hole
// slots (RUN/IDLE/WAIT); every HOLE whose depth now sits above that new top
// has nothing left to wait for either, so it collapses to EMPTY too. This
// is the "unwind reclaims both the terminator and any newly-exposed holes
// in one pass" behavior spec.md's scenario 3 describes.
func (s *Scheduler) terminate(slot int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.cfg.clock.Tick()
	tc := &s.pool[slot]
	name := tc.name

	if tc.depth < s.depth {
		s.log.transition("unwind", slot, name, tc.state, StateHole, now)
		tc.state = StateHole
		s.holeN++
		return
	}

	s.log.transition("unwind", slot, name, tc.state, StateEmpty, now)
	s.freeSlot(slot)
	s.busyN--

	newTop := 0
	for i := range s.pool {
		if s.isStartedLive(i) && s.pool[i].depth > newTop {
			newTop = s.pool[i].depth
		}
	}

	for i := range s.pool {
		if s.pool[i].state == StateHole && s.pool[i].depth > newTop {
			s.log.note("unwind", "hole collapsed", map[string]any{
				"slot":  i,
				"depth": s.pool[i].depth,
			})
			s.freeSlot(i)
			s.busyN--
			s.holeN--
		}
	}

	s.depth = newTop
}

// isStartedLive reports whether slot i counts as a still-started, still
// occupying-a-depth thread for the purposes of recomputing sched.depth —
// RUN, IDLE, or WAIT. A HOLE has already terminated (it no longer has
// anything left to run) so it is deliberately excluded here even though
// tcb.started remains true for it; see DESIGN.md's Open Question 2
// resolution. Callers must hold s.mu.
func (s *Scheduler) isStartedLive(i int) bool {
	tc := &s.pool[i]
	if !tc.started {
		return false
	}
	switch tc.state {
	case StateRun, StateIdle, StateWait:
		return true
	default:
		return false
	}
}

// freeSlot resets slot i to EMPTY and returns it to the free-slot pool,
// ready for reuse by a later Schedule call. Callers must hold s.mu.
func (s *Scheduler) freeSlot(i int) {
	s.pool[i].reset()
	s.freeSlots.Enqueue(i)
}
