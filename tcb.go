package coop

// ThreadFunc is a cooperative thread's entry routine. t exposes the
// yield-family API back to the scheduler that dispatched it; arg is the
// opaque value passed to Schedule, kept as a distinct parameter (rather than
// relying solely on closures) to stay faithful to spec.md §3's TCB, which
// models "entry routine" and "opaque argument" as separate attributes.
type ThreadFunc func(t *Thread, arg any)

// parkSignal is sent from a parked thread goroutine back to the dispatcher
// when it yields or terminates.
type parkSignal struct {
	terminated bool
}

// tcb is a Thread Control Block, spec.md §3.
type tcb struct {
	// static, set at Schedule time
	proc      ThreadFunc
	arg       any
	name      string
	stackSize int

	// lifecycle
	state ThreadState
	depth int

	// timers / wait bookkeeping
	idleTo     Tick
	switchTick Tick
	semID      uint32
	waitSems   []uint32 // non-nil => this WAIT is a WaitAny over these ids
	matchedSem uint32   // set by Notify/NotifyAll, read back by WaitAny
	waitSince  Tick     // tick this slot entered WAIT; Notify's lowest-index selection does not read it
	waitTo     Tick
	notified   bool
	infinite   bool

	// baton-passing channels, the Go-goroutine substitute for the two saved
	// execution contexts (run context, entry context) spec.md §3 describes.
	// See DESIGN.md: park.go's channel handoff replaces the teacher's
	// runtime-linkage park/ready primitive.
	resume chan struct{}
	parked chan parkSignal

	started bool
}

func newTCB() *tcb {
	return &tcb{
		resume: make(chan struct{}),
		parked: make(chan parkSignal),
	}
}

// reset restores a slot to its EMPTY zero-state, ready to be reused by a
// later Schedule call. Channels are recreated rather than reused so a
// goroutine lingering past its expected lifetime (a programmer error, per
// spec.md §7) can never be confused for a fresh thread's signal.
func (t *tcb) reset() {
	*t = tcb{
		resume: make(chan struct{}),
		parked: make(chan parkSignal),
	}
}

// Thread is the handle a running cooperative thread uses to talk back to
// its scheduler. It is the Go-idiomatic substitute for the global singleton
// access the original state machine assumes (see DESIGN.md Open Question 3).
type Thread struct {
	sched *Scheduler
	slot  int
}

// Name returns the thread's display name.
func (t *Thread) Name() string {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	return t.sched.pool[t.slot].name
}

// Tick returns the tick at which this thread was last resumed.
func (t *Thread) Tick() Tick {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	return t.sched.pool[t.slot].switchTick
}
