package coop

import (
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
)

// debugLog is the spec.md §6 debug_log_cb collaborator: a structured sink,
// callable from any scheduler path, that is a true no-op when unconfigured.
// Grounded on stumpy's own example (logiface-stumpy/example_test.go) —
// WithLogger is expected to be given a logger built the same way, e.g.
// stumpy.L.New(stumpy.L.WithStumpy()).
type debugLog struct {
	logger  *logiface.Logger[logiface.Event]
	limiter *catrate.Limiter
}

// event starts a debug-level log entry for category, applying the
// log-rate-limiter (if configured) before doing any field-building work.
// Returns nil when logging is disabled or the category is currently
// throttled, in which case callers must skip field-building entirely.
func (d *debugLog) event(category string) *logiface.Builder[logiface.Event] {
	if d == nil || d.logger == nil {
		return nil
	}
	if d.limiter != nil {
		if _, ok := d.limiter.Allow(category); !ok {
			return nil
		}
	}
	b := d.logger.Debug()
	if b == nil {
		return nil
	}
	return b.Str("category", category)
}

// transition logs a slot's state change, the scheduler's single most
// common debug event.
func (d *debugLog) transition(category string, slot int, name string, from, to ThreadState, tick Tick) {
	b := d.event(category)
	if b == nil {
		return
	}
	b.Int(`slot`, slot).
		Str(`name`, name).
		Str(`from`, from.String()).
		Str(`to`, to.String()).
		Int64(`tick`, int64(tick)).
		Log(`thread state transition`)
}

// note logs a free-form debug message with no structured thread context,
// used by the idle-collapsing and unwind passes for events that don't map
// onto a single slot transition.
func (d *debugLog) note(category, msg string, fields map[string]any) {
	b := d.event(category)
	if b == nil {
		return
	}
	for k, v := range fields {
		b.Interface(k, v)
	}
	b.Log(msg)
}

// newLimiterFor builds the catrate.Limiter backing a Scheduler's debugLog,
// isolated so Scheduler.New doesn't need to import catrate directly.
func newLimiterFor(rates map[time.Duration]int) *catrate.Limiter {
	return catrate.NewLimiter(rates)
}

// defaultLogRates is the rate schedule applied by WithLogRateLimit when the
// caller wants throttling but doesn't need to tune it: a tight cooperative
// loop on a constrained target should not be able to produce more than a
// few hundred debug lines a second no matter how fast it yields.
var defaultLogRates = map[time.Duration]int{
	time.Second: 200,
	time.Minute: 6000,
}
