// Package keylock serializes work on the same key while letting different
// keys proceed in parallel.
package keylock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

type Locker[K comparable] struct {
	mu   sync.Mutex
	byID map[K]*entry
}

func New[K comparable]() *Locker[K] {
	return &Locker[K]{byID: make(map[K]*entry)}
}

// Lock blocks until key is free and returns the unlock func. Entries are
// dropped once nobody holds or waits for them.
func (l *Locker[K]) Lock(key K) func() {
	l.mu.Lock()
	e, ok := l.byID[key]
	if !ok {
		e = &entry{}
		l.byID[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.byID, key)
		}
		l.mu.Unlock()
	}
}

func (l *Locker[K]) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byID)
}
