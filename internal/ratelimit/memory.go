package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	stamp time.Time
	token string
}

// MemoryStore keeps the admission window in process memory as an ordered
// slice of stamps. Reserve runs prune, check, and append under one mutex
// hold, so the window invariant holds regardless of caller count.
type MemoryStore struct {
	mu      sync.Mutex
	entries []entry
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-process window.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Reserve(_ context.Context, now time.Time, window time.Duration, max int) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune(now, window)
	if len(s.entries) >= max {
		return "", false, nil
	}
	token := uuid.New().String()
	s.entries = append(s.entries, entry{stamp: now, token: token})
	return token, true, nil
}

func (s *MemoryStore) Release(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.token == token {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	// Already pruned by windowing.
	return nil
}

// prune drops stamps older than now minus the window. The slice is ordered,
// so the first retained index bounds the cut.
func (s *MemoryStore) prune(now time.Time, window time.Duration) {
	cutoff := now.Add(-window)
	i := 0
	for i < len(s.entries) && !s.entries[i].stamp.After(cutoff) {
		i++
	}
	if i > 0 {
		s.entries = append(s.entries[:0], s.entries[i:]...)
	}
}
