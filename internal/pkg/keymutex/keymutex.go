// Package keymutex provides named mutual-exclusion domains. Events touching
// the same actor or order are serialized by locking their keys, while events
// on unrelated keys proceed in parallel. Multi-key acquisition always happens
// in sorted key order, so two events that share any subset of keys cannot
// deadlock each other.
package keymutex

import (
	"sort"
	"sync"
)

type entry struct {
	mu   sync.Mutex
	refs int
}

// KeyedMutex hands out one mutex per string key. Entries are created on
// first use and dropped once no holder or waiter remains.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New creates an empty KeyedMutex.
func New() *KeyedMutex {
	return &KeyedMutex{
		entries: make(map[string]*entry),
	}
}

// Lock acquires every given key in sorted order, ignoring duplicates, and
// returns the matching unlock function. Calling Lock with no keys returns a
// no-op unlock.
func (km *KeyedMutex) Lock(keys ...string) (unlock func()) {
	sorted := dedupSorted(keys)

	locked := make([]*entry, 0, len(sorted))
	for _, key := range sorted {
		e := km.retain(key)
		e.mu.Lock()
		locked = append(locked, e)
	}

	once := sync.Once{}
	return func() {
		once.Do(func() {
			// Release in reverse acquisition order.
			for i := len(locked) - 1; i >= 0; i-- {
				locked[i].mu.Unlock()
				km.release(sorted[i])
			}
		})
	}
}

func (km *KeyedMutex) retain(key string) *entry {
	km.mu.Lock()
	defer km.mu.Unlock()

	e, ok := km.entries[key]
	if !ok {
		e = &entry{}
		km.entries[key] = e
	}
	e.refs++
	return e
}

func (km *KeyedMutex) release(key string) {
	km.mu.Lock()
	defer km.mu.Unlock()

	e, ok := km.entries[key]
	if !ok {
		return
	}
	e.refs--
	if e.refs == 0 {
		delete(km.entries, key)
	}
}

func dedupSorted(keys []string) []string {
	sorted := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		sorted = append(sorted, key)
	}
	sort.Strings(sorted)
	return sorted
}
