package coop

// fairestWaiter picks which WAITing slot blocked on semID should be the one
// a single-target Notify wakes, when more than one slot qualifies.
//
// spec.md §4.6 pins this down explicitly: "Selection order is ascending
// slot index" (restated by §8's P6 as "the lowest-index one"), so this is a
// plain linear scan rather than the teacher's Select fairness rule — the
// name is kept because the scan still answers "which of several eligible
// candidates wins", the same question Select answers for ready ZenQ
// streams, just with spec.md's own fixed tie-break instead of a
// least-recently-served one.
func fairestWaiter(pool []tcb, semID uint32) (slot int, found bool) {
	for i := range pool {
		tc := &pool[i]
		if tc.state == StateWait && waitMatches(tc, semID) {
			return i, true
		}
	}
	return -1, false
}
