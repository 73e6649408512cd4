package coop

// park is the core baton-pass primitive: the calling (currently active)
// thread goroutine hands control back to the dispatcher and blocks until
// the dispatcher resumes it. This is the Go-goroutine substitute for
// spec.md §4.2/§4.6's "save run context; jump to scheduler context."
//
// Grounded on thread_parker.go's single-slot Park/Ready design, but
// reimplemented with a pair of unbuffered channels instead of the
// go:linkname runtime hooks that backed the teacher's version — see
// DESIGN.md for why those hooks were not ported.
func (t *Thread) park() {
	tc := &t.sched.pool[t.slot]
	tc.parked <- parkSignal{}
	<-tc.resume
}

// finish signals the dispatcher that the entry routine has returned. The
// backing goroutine exits immediately afterward; it never reads tc.resume
// again.
func (t *Thread) finish() {
	tc := &t.sched.pool[t.slot]
	tc.parked <- parkSignal{terminated: true}
}

// launch starts slot's backing goroutine and runs its entry routine. Called
// exactly once per slot, the first time the dispatcher visits a NEW slot.
func (s *Scheduler) launch(slot int) *Thread {
	t := &Thread{sched: s, slot: slot}
	tc := &s.pool[slot]
	proc, arg := tc.proc, tc.arg
	tc.started = true
	go func() {
		proc(t, arg)
		t.finish()
	}()
	return t
}

// resume wakes an already-started slot's parked goroutine and waits for it
// to yield or terminate again.
func (s *Scheduler) resume(slot int) parkSignal {
	s.pool[slot].resume <- struct{}{}
	return <-s.pool[slot].parked
}

// awaitFirstPark waits for a freshly launched slot's first yield or
// immediate return.
func (s *Scheduler) awaitFirstPark(slot int) parkSignal {
	return <-s.pool[slot].parked
}
