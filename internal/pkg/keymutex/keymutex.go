// Package keymutex provides per-key mutual exclusion.
//
// The booking engine holds the mutex for a house id across its
// check-overlap-then-write critical section, so two concurrent requests
// for the same house cannot both pass the availability check before
// either of them commits. Conflicts are always scoped to one house, so
// there is no cross-key ordering and no deadlock surface.
package keymutex

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// KeyMutex is a set of mutexes addressed by string key.
// Idle mutexes are released, so memory stays proportional to the number
// of keys currently locked or contended, not the number ever seen.
type KeyMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New creates an empty KeyMutex.
func New() *KeyMutex {
	return &KeyMutex{
		entries: make(map[string]*entry),
	}
}

// Lock acquires the mutex for key, blocking until it is available.
func (k *KeyMutex) Lock(key string) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for key.
// It must only be called by a holder of the lock.
func (k *KeyMutex) Unlock(key string) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		k.mu.Unlock()
		panic("keymutex: unlock of unlocked key " + key)
	}
	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}
