package coop

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_FIFOOrder(t *testing.T) {
	l := newList[int]()
	for i := 0; i < 5; i++ {
		l.Enqueue(i)
	}
	for i := 0; i < 5; i++ {
		v, ok := l.Dequeue()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	_, ok := l.Dequeue()
	assert.False(t, ok, "dequeue on an empty list reports not-ok")
}

func TestList_DequeueAfterEnqueueFromAnotherGoroutine(t *testing.T) {
	l := newList[int]()
	const n = 1000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			l.Enqueue(i)
		}
	}()
	wg.Wait()

	seen := make(map[int]bool, n)
	for i := 0; i < n; i++ {
		v, ok := l.Dequeue()
		require.True(t, ok)
		seen[v] = true
	}
	assert.Len(t, seen, n)
	_, ok := l.Dequeue()
	assert.False(t, ok)
}
