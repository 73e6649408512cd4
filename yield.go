package coop

// Yield implements spec.md §4.6's yield(): unconditionally hand control
// back to the scheduler, remaining RUN so the dispatcher picks this thread
// up again on its next pass.
func (t *Thread) Yield() {
	t.park()
}

// YieldAfter implements spec.md §4.6's yield_after(limit): yield only if at
// least limit ticks have elapsed since this thread was last switched in,
// using the wrap-safe comparison from tick.go. Reports whether it yielded.
// If YieldAfter support is disabled (WithYieldAfterSupport(false)), it never
// yields and always returns false.
func (t *Thread) YieldAfter(limit Tick) bool {
	s := t.sched
	s.mu.Lock()
	if !s.cfg.yieldAfterSupport {
		s.mu.Unlock()
		return false
	}
	tc := &s.pool[t.slot]
	now := s.cfg.clock.Tick()
	due := IsTickOver(now, tc.switchTick+limit)
	s.mu.Unlock()

	if !due {
		return false
	}
	t.park()
	return true
}

// Idle implements spec.md §4.6's idle(period): park this thread in IDLE
// until at least period ticks have passed, at which point the dispatcher
// (directly, or via collapseIdle) promotes it back to RUN. If idle support
// is disabled (WithIdleSupport(false)), Idle returns immediately without
// parking.
func (t *Thread) Idle(period Tick) {
	s := t.sched
	s.mu.Lock()
	if !s.cfg.idleSupport {
		s.mu.Unlock()
		return
	}
	tc := &s.pool[t.slot]
	now := s.cfg.clock.Tick()
	s.log.transition("idle", t.slot, tc.name, StateRun, StateIdle, now)
	tc.state = StateIdle
	tc.idleTo = now + period
	s.idleN++
	s.mu.Unlock()

	t.park()
}

// Wait implements spec.md §4.6's wait(sem_id, timeout): block this thread
// until Notify/NotifyAll is called with a matching sem_id, or timeout ticks
// elapse. A timeout of zero waits forever. Reports whether it was woken by
// a notification (false on timeout). If WAIT support is disabled
// (WithWaitSupport(false)), Wait returns false immediately without
// blocking.
func (t *Thread) Wait(semID uint32, timeout Tick) bool {
	return t.wait(semID, nil, timeout)
}

// WaitAny is the supplemental multi-semaphore generalization of Wait
// (SPEC_FULL.md §4, grounded on selector.go's Select fairness rule): block
// until any one of sems is notified, or timeout ticks elapse. Returns the
// id that woke it and true, or (0, false) on timeout. A timeout of zero
// waits forever.
func (t *Thread) WaitAny(sems []uint32, timeout Tick) (uint32, bool) {
	if len(sems) == 0 {
		return 0, false
	}
	woke := t.wait(0, sems, timeout)
	if !woke {
		return 0, false
	}
	s := t.sched
	s.mu.Lock()
	id := s.pool[t.slot].matchedSem
	s.mu.Unlock()
	return id, true
}

// wait is the shared implementation behind Wait and WaitAny. When sems is
// non-nil, semID is ignored and the wait is a multi-id WaitAny.
//
// notified is cleared at the *start* of the call, before the slot is even
// marked WAIT, per DESIGN.md's Open Question 1 resolution: a stale notify
// from a previous, already-timed-out Wait on the same slot must never be
// mistaken for this call's wakeup.
func (t *Thread) wait(semID uint32, sems []uint32, timeout Tick) bool {
	s := t.sched
	s.mu.Lock()
	if !s.cfg.waitSupport {
		s.mu.Unlock()
		return false
	}
	tc := &s.pool[t.slot]
	now := s.cfg.clock.Tick()
	tc.notified = false
	tc.semID = semID
	tc.waitSems = sems
	tc.waitSince = now
	tc.infinite = timeout == 0
	tc.waitTo = now + timeout
	s.log.transition("wait", t.slot, tc.name, StateRun, StateWait, now)
	tc.state = StateWait
	s.mu.Unlock()

	t.park()

	s.mu.Lock()
	woke := s.pool[t.slot].notified
	s.mu.Unlock()
	return woke
}

// Notify implements spec.md §4.6's notify(sem_id): wake the single
// lowest-indexed WAITing thread blocked on sem_id, if any. Waking means
// transitioning it back to RUN; the dispatcher gives it control again on
// its next round-robin pass, it does not preempt whatever is currently
// running.
func (t *Thread) Notify(semID uint32) {
	t.sched.notify(semID, false)
}

// NotifyAll implements spec.md §4.6's notify_all(sem_id): wake every
// WAITing thread currently blocked on sem_id.
func (t *Thread) NotifyAll(semID uint32) {
	t.sched.notify(semID, true)
}

// Notify is the Scheduler-level form, usable from outside any running
// thread's own goroutine (e.g. an external event source waking a waiter).
func (s *Scheduler) Notify(semID uint32) { s.notify(semID, false) }

// NotifyAll is the Scheduler-level form of NotifyAll.
func (s *Scheduler) NotifyAll(semID uint32) { s.notify(semID, true) }

func (s *Scheduler) notify(semID uint32, all bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cfg.waitSupport {
		return
	}
	now := s.cfg.clock.Tick()

	if !all {
		slot, found := fairestWaiter(s.pool, semID)
		if found {
			s.wake(slot, semID, now)
		}
		return
	}

	for i := range s.pool {
		if s.pool[i].state == StateWait && waitMatches(&s.pool[i], semID) {
			s.wake(i, semID, now)
		}
	}
}

// wake transitions a single WAITing slot to RUN following a notification.
// Callers must hold s.mu.
func (s *Scheduler) wake(i int, semID uint32, now Tick) {
	tc := &s.pool[i]
	s.log.transition("wait", i, tc.name, StateWait, StateRun, now)
	tc.notified = true
	tc.matchedSem = semID
	tc.state = StateRun
	tc.switchTick = now
}

// waitMatches reports whether a WAITing slot is blocked on semID, covering
// both the single-id Wait form and the multi-id WaitAny form.
func waitMatches(tc *tcb, semID uint32) bool {
	if tc.waitSems == nil {
		return tc.semID == semID
	}
	for _, id := range tc.waitSems {
		if id == semID {
			return true
		}
	}
	return false
}
