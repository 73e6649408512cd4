// Package coop implements a lightweight cooperative thread scheduler aimed
// at resource-constrained targets: a fixed pool of thread control blocks,
// round-robin dispatch, wrap-safe tick timing, and idle/wait/notify
// primitives, with every cooperative thread backed by its own goroutine
// instead of a hand-carved shared stack.
package coop
