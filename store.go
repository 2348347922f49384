package main

import (
	"sync"

	"ticketmetrics/models"
)

// MemoryStore holds the most recent snapshot in process memory behind a
// reader/writer lock. Parsing happens entirely before Replace is called,
// so writers only hold the lock for the pointer swap and readers are
// never blocked behind an ingestion in progress.
type MemoryStore struct {
	mu      sync.RWMutex
	current *models.Snapshot
}

// NewMemoryStore creates an empty store; Current reports no snapshot
// until the first Replace.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Replace publishes a new snapshot, superseding the previous one.
// Concurrent replaces serialize on the write lock; the last to acquire
// it wins.
func (s *MemoryStore) Replace(snapshot *models.Snapshot) {
	s.mu.Lock()
	s.current = snapshot
	s.mu.Unlock()
}

// Current returns the latest published snapshot, or nil and false when
// nothing has been ingested yet.
func (s *MemoryStore) Current() (*models.Snapshot, bool) {
	s.mu.RLock()
	snapshot := s.current
	s.mu.RUnlock()
	if snapshot == nil {
		return nil, false
	}
	return snapshot, true
}
