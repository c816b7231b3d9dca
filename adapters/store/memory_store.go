package store

import (
	"context"
	"sync"
	"time"

	"github.com/cybermonitor-rd/sentinel/core"
	"github.com/cybermonitor-rd/sentinel/ports"
)

// MemoryStore is an in-memory implementation of the ChallengeStore
// interface. Entries are sharded into per-reference slots so concurrent
// unrelated logins never contend on one lock beyond the map access itself.
type MemoryStore struct {
	mu      sync.RWMutex
	pending map[string]*memoryEntry
}

type memoryEntry struct {
	mu        sync.Mutex
	challenge core.Challenge
}

// NewMemoryStore creates a new in-memory challenge store
func NewMemoryStore() ports.ChallengeStore {
	return &MemoryStore{
		pending: make(map[string]*memoryEntry),
	}
}

// Put stores a pending challenge under its reference
func (s *MemoryStore) Put(ctx context.Context, challenge *core.Challenge) error {
	entry := &memoryEntry{challenge: *challenge}

	s.mu.Lock()
	s.pending[challenge.Ref] = entry
	s.mu.Unlock()

	// Reclaim the slot once the challenge can no longer be consumed
	go func() {
		time.Sleep(time.Until(challenge.ExpiresAt) + time.Minute)

		s.mu.Lock()
		defer s.mu.Unlock()

		if current, exists := s.pending[challenge.Ref]; exists && current == entry {
			delete(s.pending, challenge.Ref)
		}
	}()

	return nil
}

// Get returns a copy of the pending challenge for ref
func (s *MemoryStore) Get(ctx context.Context, ref string) (*core.Challenge, error) {
	s.mu.RLock()
	entry, exists := s.pending[ref]
	s.mu.RUnlock()

	if !exists {
		return nil, core.ErrChallengeNotFound
	}

	entry.mu.Lock()
	challenge := entry.challenge
	entry.mu.Unlock()

	return &challenge, nil
}

// RecordFailure increments the attempt counter for ref and returns the
// new count
func (s *MemoryStore) RecordFailure(ctx context.Context, ref string) (int, error) {
	s.mu.RLock()
	entry, exists := s.pending[ref]
	s.mu.RUnlock()

	if !exists {
		return 0, core.ErrChallengeNotFound
	}

	entry.mu.Lock()
	entry.challenge.Attempts++
	attempts := entry.challenge.Attempts
	entry.mu.Unlock()

	return attempts, nil
}

// Delete removes the pending challenge for ref, reporting whether an
// entry was removed. The map lock makes racing deletes for one reference
// resolve to a single winner.
func (s *MemoryStore) Delete(ctx context.Context, ref string) (bool, error) {
	s.mu.Lock()
	_, exists := s.pending[ref]
	delete(s.pending, ref)
	s.mu.Unlock()

	return exists, nil
}
