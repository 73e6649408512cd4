package coop

import (
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
)

// defaults mirror spec.md §6's compile-time configuration constants,
// expressed as runtime defaults per SPEC_FULL.md §2.4.
const (
	// DefaultMaxThreads is used when WithMaxThreads is not given.
	DefaultMaxThreads = 32
	// DefaultStackSize is substituted for a zero stack_sz argument to
	// Schedule, kept for API fidelity even though nothing is physically
	// carved (see SPEC_FULL.md §0).
	DefaultStackSize = 4096
)

// config accumulates Option values before New builds a Scheduler.
type config struct {
	maxThreads        int
	defaultStackSize  int
	clock             Clock
	idlePrimitive     IdlePrimitive
	logger            *logiface.Logger[logiface.Event]
	logRates          map[time.Duration]int
	idleSupport       bool
	waitSupport       bool
	yieldAfterSupport bool
	overloadGuard     *catrate.Limiter
}

func newConfig() *config {
	return &config{
		maxThreads:        DefaultMaxThreads,
		defaultStackSize:  DefaultStackSize,
		clock:             NewSystemClock(),
		idlePrimitive:     SleepIdlePrimitive{},
		idleSupport:       true,
		waitSupport:       true,
		yieldAfterSupport: true,
	}
}

// Option configures a Scheduler constructed by New.
type Option func(*config)

// WithMaxThreads sets the fixed size of the TCB pool (spec.md §6
// MAX_THREADS).
func WithMaxThreads(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxThreads = n
		}
	}
}

// WithDefaultStackSize sets the value substituted for a zero stack_sz
// argument to Schedule (spec.md §6 DEFAULT_STACK_SIZE).
func WithDefaultStackSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.defaultStackSize = n
		}
	}
}

// WithClock overrides the tick source (spec.md §6's tick() collaborator).
func WithClock(clock Clock) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithIdlePrimitive overrides the platform idle-sleep primitive (spec.md
// §6's idle_cb collaborator).
func WithIdlePrimitive(p IdlePrimitive) Option {
	return func(c *config) {
		if p != nil {
			c.idlePrimitive = p
		}
	}
}

// WithLogger wires a structured debug log sink (spec.md §6's
// debug_log_cb collaborator). Pass nil (the default) for a true no-op.
// Build one with a concrete backend, then generify it with Logger(), e.g.
// stumpy.L.New(stumpy.L.WithStumpy()).Logger() (mirrors go-utilpkg's own
// sql/export.Exporter.Logger field).
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return func(c *config) { c.logger = logger }
}

// WithLogRateLimit throttles debug log emission per category using
// go-catrate, so a tight cooperative loop cannot flood the configured
// logger. Pass a nil map to use defaultLogRates.
func WithLogRateLimit(rates map[time.Duration]int) Option {
	return func(c *config) {
		if rates == nil {
			rates = defaultLogRates
		}
		c.logRates = rates
	}
}

// WithOverloadGuard rejects Schedule calls (with ErrOverloaded) once they
// exceed the given rate, protecting a fixed-size pool from being filled
// faster than the application can drain it (SPEC_FULL.md §3).
func WithOverloadGuard(rates map[time.Duration]int) Option {
	return func(c *config) {
		if len(rates) != 0 {
			c.overloadGuard = catrate.NewLimiter(rates)
		}
	}
}

// WithIdleSupport enables or disables the IDLE state and the Idle method.
// Disabled by default only if explicitly turned off; enabled otherwise,
// matching spec.md §6's "feature toggles...enabling/disabling IDLE".
func WithIdleSupport(enabled bool) Option {
	return func(c *config) { c.idleSupport = enabled }
}

// WithWaitSupport enables or disables the WAIT state and the
// Wait/Notify/NotifyAll methods.
func WithWaitSupport(enabled bool) Option {
	return func(c *config) { c.waitSupport = enabled }
}

// WithYieldAfterSupport enables or disables YieldAfter.
func WithYieldAfterSupport(enabled bool) Option {
	return func(c *config) { c.yieldAfterSupport = enabled }
}
