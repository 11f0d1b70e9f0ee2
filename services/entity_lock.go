package services

import (
	"sync"

	"github.com/google/uuid"
)

// entityLocks serializes mutating operations per entity id. Payment
// application, issuance and conversion all read current state before
// writing a new one; without per-entity mutual exclusion two concurrent
// payments could both pass the overpayment check against a stale balance.
type entityLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*entityLock
}

type entityLock struct {
	mu   sync.Mutex
	refs int
}

func newEntityLocks() *entityLocks {
	return &entityLocks{locks: make(map[uuid.UUID]*entityLock)}
}

// Lock acquires the lock for the given entity and returns its release
// function. Lock entries are reference counted and removed once the last
// holder releases.
func (l *entityLocks) Lock(id uuid.UUID) func() {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &entityLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
