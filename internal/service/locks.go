package service

import (
	"sync"
)

// lockTable serializes work per customer ID. Entries are reference counted
// and removed once the last holder releases, so the table stays bounded by
// the number of in-flight customers rather than all customers ever seen.
type lockTable struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newLockTable() *lockTable {
	return &lockTable{entries: make(map[string]*lockEntry)}
}

// acquire blocks until the caller holds the exclusive lock for the key.
func (t *lockTable) acquire(key string) {
	t.mu.Lock()
	entry, ok := t.entries[key]
	if !ok {
		entry = &lockEntry{}
		t.entries[key] = entry
	}
	entry.refs++
	t.mu.Unlock()

	entry.mu.Lock()
}

// release unlocks the key and drops the entry when no one else is waiting.
func (t *lockTable) release(key string) {
	t.mu.Lock()
	entry := t.entries[key]
	entry.refs--
	if entry.refs == 0 {
		delete(t.entries, key)
	}
	t.mu.Unlock()

	entry.mu.Unlock()
}
