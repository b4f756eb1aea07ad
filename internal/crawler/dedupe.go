package crawler

import "sync"

// dedupSet is a mutex-guarded string set providing atomic check-and-insert.
// It exists purely to prevent repeated work; it caches no content.
//
// Design decision: membership check and insertion must be a single atomic
// operation. Two independent read-then-write steps would let concurrent
// workers both claim the same URL between the check and the insert.
type dedupSet struct {
	mu      sync.Mutex
	members map[string]struct{}
}

// newDedupSet creates an empty set.
func newDedupSet() *dedupSet {
	return &dedupSet{members: make(map[string]struct{})}
}

// TryAdd inserts v and reports whether it was newly added. A false return
// means some caller already claimed v.
func (s *dedupSet) TryAdd(v string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[v]; ok {
		return false
	}
	s.members[v] = struct{}{}
	return true
}

// Len returns the current number of members.
func (s *dedupSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}
