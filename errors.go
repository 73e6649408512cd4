package coop

import "errors"

// Error taxonomy, spec.md §7: three outcomes from Schedule —
// invalid-argument, capacity-exceeded, and success (nil error) — plus
// ErrOverloaded when an overload guard is configured. No other
// scheduler or yield-family operation surfaces an error; wait timeouts are
// reported via Wait's bool return, not an error (§7).
var (
	// ErrInvalidEntry is returned by Schedule when proc is nil.
	ErrInvalidEntry = errors.New("coop: entry routine is required")

	// ErrThreadLimit is returned by Schedule when the TCB pool is full.
	ErrThreadLimit = errors.New("coop: thread pool is at capacity")

	// ErrOverloaded is returned by Schedule when an overload guard
	// (WithOverloadGuard) rejects the call. This is a supplemental
	// condition (SPEC_FULL.md §3), reported distinctly from ErrThreadLimit
	// so callers can tell "the pool is full" apart from "you're scheduling
	// faster than the configured rate allows".
	ErrOverloaded = errors.New("coop: scheduling rate exceeded")
)
