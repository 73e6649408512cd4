package coop

// Service runs the scheduler's main loop (spec.md §4.2): repeatedly advance
// to the next slot, collapse any all-IDLE deadlock, dispatch the selected
// slot according to its state, and hand control to its goroutine via the
// park/resume baton. Service returns once every slot has drained back to
// EMPTY (busy_n reaches zero), having first reset the scheduler so a fresh
// session can begin (spec.md §4.1/§7).
//
// Service is not reentrant: calling it again on a Scheduler that is already
// being serviced (from any goroutine) panics, mirroring the original
// state machine's assumption of a single active scheduler context.
func (s *Scheduler) Service() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		panic("coop: Service is already running on this Scheduler")
	}
	s.running = true
	s.mu.Unlock()

	for s.serviceOnce() {
	}

	s.mu.Lock()
	s.running = false
	s.reset()
	s.mu.Unlock()
}

// serviceOnce runs a single dispatch iteration and reports whether the
// scheduler still has busy work (i.e. whether Service should keep looping).
func (s *Scheduler) serviceOnce() bool {
	s.mu.Lock()
	if s.busyN == 0 {
		s.mu.Unlock()
		return false
	}
	n := len(s.pool)
	s.curThrd = (s.curThrd + 1) % n
	slot := s.curThrd
	s.mu.Unlock()

	s.collapseIdle()

	s.mu.Lock()
	state := s.pool[slot].state
	s.mu.Unlock()

	switch state {
	case StateEmpty, StateHole:
		// Nothing to do this slot this round, per spec.md §4.2.

	case StateIdle:
		s.mu.Lock()
		now := s.cfg.clock.Tick()
		if !IsTickOver(now, s.pool[slot].idleTo) {
			s.mu.Unlock()
			break
		}
		s.promoteIdle(slot, now)
		s.mu.Unlock()
		s.runSlot(slot)

	case StateWait:
		s.mu.Lock()
		now := s.cfg.clock.Tick()
		tc := &s.pool[slot]
		if tc.infinite || !IsTickOver(now, tc.waitTo) {
			s.mu.Unlock()
			break
		}
		s.log.transition("dispatch", slot, tc.name, StateWait, StateRun, now)
		tc.state = StateRun
		tc.switchTick = now
		s.mu.Unlock()
		s.runSlot(slot)

	case StateRun:
		s.runSlot(slot)

	case StateNew:
		s.enterNew(slot)
	}

	return true
}

// runSlot hands control to an already-started slot's goroutine (the "save
// scheduler context, jump to the thread's run context" branch of spec.md
// §4.2) and processes the result once it yields or terminates. switchTick
// is refreshed on every entry, not just the first, since YieldAfter's
// "ticks since last switched in" reading has to mean the most recent
// dispatch, not the thread's original NEW->RUN transition.
func (s *Scheduler) runSlot(slot int) {
	s.mu.Lock()
	s.pool[slot].switchTick = s.cfg.clock.Tick()
	s.curName = s.pool[slot].name
	s.mu.Unlock()

	sig := s.resume(slot)
	s.handlePark(slot, sig)
}

// enterNew performs the first entry into a NEW slot (spec.md §4.3's "stack
// carving" contract, reframed per SPEC_FULL.md §0: a fresh goroutine takes
// the place of a freshly carved stack frame). The slot is assigned the next
// depth and transitions straight to RUN before its goroutine is launched.
func (s *Scheduler) enterNew(slot int) {
	s.mu.Lock()
	now := s.cfg.clock.Tick()
	s.depth++
	tc := &s.pool[slot]
	tc.depth = s.depth
	tc.switchTick = now
	s.log.transition("dispatch", slot, tc.name, StateNew, StateRun, now)
	tc.state = StateRun
	s.curName = tc.name
	s.mu.Unlock()

	s.launch(slot)
	sig := s.awaitFirstPark(slot)
	s.handlePark(slot, sig)
}

// handlePark processes a park signal received from a slot's goroutine:
// either it yielded (no further action; any state change was already made
// by the yield-family call before parking) or it terminated, in which case
// the unwind engine runs.
func (s *Scheduler) handlePark(slot int, sig parkSignal) {
	if sig.terminated {
		s.terminate(slot)
	}
}
