package benchmarks

import (
	"testing"

	"github.com/alphadose/coopthreads"
)

// schedulerRunner drives a fresh Scheduler through one full Service session
// with numThreads threads, each yielding numYields times before returning.
func schedulerRunner(numThreads, numYields int) {
	sched := coop.New(coop.WithMaxThreads(numThreads))

	worker := func(t *coop.Thread, arg any) {
		for i := 0; i < numYields; i++ {
			t.Yield()
		}
	}

	for i := 0; i < numThreads; i++ {
		if err := sched.Schedule(worker, "", 0, nil); err != nil {
			panic(err)
		}
	}

	sched.Service()
}

func runnerTestRunner(numThreads, numYields int, b *testing.B) {
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		schedulerRunner(numThreads, numYields)
	}
}

func Benchmark_Service_Threads1_Yields100(b *testing.B) { runnerTestRunner(1, 100, b) }

func Benchmark_Service_Threads8_Yields100(b *testing.B) { runnerTestRunner(8, 100, b) }

func Benchmark_Service_Threads32_Yields100(b *testing.B) { runnerTestRunner(32, 100, b) }

func Benchmark_Service_Threads32_Yields10000(b *testing.B) { runnerTestRunner(32, 10000, b) }

// nestedRunner measures the unwind path by starting threads that start
// further threads before returning (spec.md §4.5's depth/hole bookkeeping),
// rather than a flat sibling pool.
func nestedRunner(depth int) {
	sched := coop.New(coop.WithMaxThreads(depth + 1))

	var spawn coop.ThreadFunc
	spawn = func(t *coop.Thread, arg any) {
		remaining := arg.(int)
		if remaining <= 0 {
			return
		}
		if err := sched.Schedule(spawn, "", 0, remaining-1); err != nil {
			panic(err)
		}
		t.Yield()
	}

	if err := sched.Schedule(spawn, "", 0, depth); err != nil {
		panic(err)
	}

	sched.Service()
}

func Benchmark_Service_NestedDepth16(b *testing.B) {
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		nestedRunner(16)
	}
}
