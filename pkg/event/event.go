// Package event provides a small synchronous observer registry.
//
// A Bus carries no payload: observers are told that something changed and
// re-read whatever state they care about. Delivery is synchronous and
// best-effort — publishing with no observers registered is fine.
package event

import "sync"

// Bus fans a change signal out to registered observers.
// The zero value is not usable; construct with NewBus.
type Bus struct {
	mu        sync.RWMutex
	nextID    int
	observers map[int]func()
}

// NewBus creates an empty observer registry.
func NewBus() *Bus {
	return &Bus{observers: map[int]func(){}}
}

// Subscribe registers fn and returns a token for Unsubscribe.
func (b *Bus) Subscribe(fn func()) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.observers[b.nextID] = fn
	return b.nextID
}

// Unsubscribe removes the observer registered under id; unknown ids are a no-op.
func (b *Bus) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.observers, id)
}

// Publish invokes every registered observer synchronously.
// Observers are copied out under the lock so one may unsubscribe itself.
func (b *Bus) Publish() {
	b.mu.RLock()
	fns := make([]func(), 0, len(b.observers))
	for _, fn := range b.observers {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
