package coop

import (
	"sync"
)

// noCurrent is cur_thrd's sentinel value before the first dispatch, per
// spec.md §3.
const noCurrent = -1

// Scheduler holds the fixed-size TCB pool and the global counters described
// in spec.md §3. The zero value is not usable; construct one with New.
//
// A Scheduler is safe for concurrent use: spec.md's single-threaded
// cooperative model guarantees only one logical thread of control is ever
// "active", but Notify/NotifyAll may legitimately be called from outside
// that active thread in this reimplementation (Scheduler.Notify and
// Scheduler.NotifyAll), so all pool/counter access goes through mu.
type Scheduler struct {
	cfg *config
	log debugLog

	mu        sync.Mutex
	pool      []tcb
	freeSlots *List[int]
	curThrd   int
	busyN     int
	holeN     int
	idleN     int
	depth     int
	running   bool
	curName   string
}

// New constructs a Scheduler. Per DESIGN.md's Open Question resolution,
// multiple independent Schedulers may coexist (useful for tests); nothing
// coordinates them, matching spec.md's Non-goals.
func New(opts ...Option) *Scheduler {
	cfg := newConfig()
	for _, o := range opts {
		o(cfg)
	}
	s := &Scheduler{
		cfg:     cfg,
		curThrd: noCurrent,
	}
	if cfg.logger != nil {
		s.log = debugLog{logger: cfg.logger}
		if cfg.logRates != nil {
			s.log.limiter = newLimiterFor(cfg.logRates)
		}
	}
	s.reset()
	return s
}

var (
	defaultScheduler     *Scheduler
	defaultSchedulerOnce sync.Once
)

// Default returns the process-wide singleton Scheduler, constructing it
// with default options on first use (spec.md §9: "a process-wide state
// object initialized on first use").
func Default() *Scheduler {
	defaultSchedulerOnce.Do(func() {
		defaultScheduler = New()
	})
	return defaultScheduler
}

// reset restores the scheduler to a freshly-initialized state: every slot
// EMPTY, all counters zero. Called at construction and again whenever
// Service drains (spec.md §4.1/§7: "when service() drains, scheduler state
// is reset so a fresh session may begin").
func (s *Scheduler) reset() {
	s.pool = make([]tcb, s.cfg.maxThreads)
	for i := range s.pool {
		s.pool[i].reset()
	}
	s.freeSlots = newList[int]()
	for i := range s.pool {
		s.freeSlots.Enqueue(i)
	}
	s.curThrd = noCurrent
	s.busyN = 0
	s.holeN = 0
	s.idleN = 0
	s.depth = 0
	s.curName = ""
}

// Schedule reserves an EMPTY slot and initializes it to NEW, spec.md §4.1.
// The slot is taken from the free-slot queue, which hands slots out in the
// order they were freed (ascending index after New or a drain), so the
// lowest-index EMPTY slot is not necessarily the one chosen. A zero
// stackSize is replaced by the configured default.
func (s *Scheduler) Schedule(proc ThreadFunc, name string, stackSize int, arg any) error {
	if proc == nil {
		return ErrInvalidEntry
	}
	if s.cfg.overloadGuard != nil {
		if _, ok := s.cfg.overloadGuard.Allow("schedule"); !ok {
			return ErrOverloaded
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.freeSlots.Dequeue()
	if !ok {
		return ErrThreadLimit
	}

	if stackSize == 0 {
		stackSize = s.cfg.defaultStackSize
	}

	s.pool[slot].reset()
	s.pool[slot].proc = proc
	s.pool[slot].arg = arg
	s.pool[slot].name = name
	s.pool[slot].stackSize = stackSize
	s.pool[slot].state = StateNew
	s.pool[slot].depth = 0

	s.busyN++

	s.log.transition("schedule", slot, name, StateEmpty, StateNew, s.cfg.clock.Tick())

	return nil
}

// CurrentName returns the display name of the currently executing thread,
// spec.md §4.1. Returns "" before the first dispatch or after Service
// drains.
func (s *Scheduler) CurrentName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.curName
}

// Stats is a read-only snapshot of scheduler counters, a supplemental
// introspection surface (SPEC_FULL.md §4) grounded on ZenQ's Dump().
type Stats struct {
	BusyThreads int
	HoleThreads int
	IdleThreads int
	Depth       int
}

// Stats returns a snapshot of the scheduler's counters.
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		BusyThreads: s.busyN,
		HoleThreads: s.holeN,
		IdleThreads: s.idleN,
		Depth:       s.depth,
	}
}
