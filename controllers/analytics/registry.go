package controllers

import "sync"

// Registry is an explicit subscriber registry for analytics broadcasts. It
// is created by the serving process and lives for its lifetime; nothing
// module-level holds subscriber state.
type Registry struct {
	mu     sync.Mutex
	subs   map[uint64]chan []byte
	nextID uint64
}

// NewRegistry returns an empty subscriber registry.
func NewRegistry() *Registry {
	return &Registry{subs: make(map[uint64]chan []byte)}
}

// Add registers a new subscriber and returns its id and receive channel.
// The channel is buffered; a subscriber that falls behind misses broadcasts
// rather than blocking the broadcaster.
func (r *Registry) Add() (uint64, <-chan []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	ch := make(chan []byte, 8)
	r.subs[r.nextID] = ch
	return r.nextID, ch
}

// Remove unregisters a subscriber and closes its channel. Removing an
// unknown id is a no-op.
func (r *Registry) Remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ch, ok := r.subs[id]; ok {
		close(ch)
		delete(r.subs, id)
	}
}

// Broadcast delivers payload to every current subscriber without blocking.
func (r *Registry) Broadcast(payload []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ch := range r.subs {
		select {
		case ch <- payload:
		default:
		}
	}
}

// Count returns the number of registered subscribers.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}
