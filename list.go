// A lock-free, generic FIFO queue.

package coop

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

// listNode is a single node in List's linked list.
type listNode[T any] struct {
	value T
	next  unsafe.Pointer
}

// List is a lock-free queue.
// theory -> https://www.cs.rochester.edu/u/scott/papers/1996_PODC_queues.pdf
// pseudocode -> https://www.cs.rochester.edu/research/synchronization/pseudocode/queues.html
//
// Adapted from the teacher's Michael-Scott list: the original specialized
// it to store raw (threadPtr, dataOut) pairs for a runtime-linkage parking
// path that this module doesn't use (see DESIGN.md). Generalized here with
// Go generics into a reusable lock-free queue of any value type; the
// Scheduler uses a List[int] as its free-slot index pool (scheduler.go),
// dequeuing a free slot in Schedule and enqueuing it back in freeSlot.
type List[T any] struct {
	head, tail unsafe.Pointer
	pool       sync.Pool
}

// newList returns a new, empty List.
func newList[T any]() *List[T] {
	l := &List[T]{
		pool: sync.Pool{New: func() any { return new(listNode[T]) }},
	}
	n := unsafe.Pointer(new(listNode[T]))
	l.head, l.tail = n, n
	return l
}

// Enqueue inserts value at the tail of the queue.
func (l *List[T]) Enqueue(value T) {
	n := l.pool.Get().(*listNode[T])
	n.value, n.next = value, nil
	for {
		tail := loadNode[T](&l.tail)
		next := loadNode[T](&tail.next)
		if tail == loadNode[T](&l.tail) { // are tail and next consistent?
			if next == nil {
				if casNode(&tail.next, next, n) {
					casNode(&l.tail, tail, n) // Enqueue is done, try to swing tail to the inserted node
					return
				}
			} else { // tail was not pointing to the last node
				casNode(&l.tail, tail, next) // try to swing tail to the next node
			}
		}
	}
}

// Dequeue removes and returns the value at the head of the queue.
// ok is false if the queue was empty.
func (l *List[T]) Dequeue() (value T, ok bool) {
	for {
		head := loadNode[T](&l.head)
		tail := loadNode[T](&l.tail)
		next := loadNode[T](&head.next)
		if head == loadNode[T](&l.head) { // are head, tail, and next consistent?
			if head == tail { // is queue empty or tail falling behind?
				if next == nil { // is queue empty?
					return value, false
				}
				casNode(&l.tail, tail, next) // tail is falling behind, try to advance it
			} else {
				value = next.value // read value before CAS, otherwise a racing dequeue might free next
				if casNode(&l.head, head, next) {
					var zero T
					head.value, head.next = zero, nil
					l.pool.Put(head)
					return value, true
				}
			}
		}
	}
}

func loadNode[T any](p *unsafe.Pointer) *listNode[T] {
	return (*listNode[T])(atomic.LoadPointer(p))
}

func casNode[T any](p *unsafe.Pointer, old, new *listNode[T]) bool {
	return atomic.CompareAndSwapPointer(p, unsafe.Pointer(old), unsafe.Pointer(new))
}
