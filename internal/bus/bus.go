// Package bus is a small in-process pub/sub hub. Broadcasts never block the
// publisher: slow subscribers miss intermediate events and the hub keeps the
// latest one for late joiners.
package bus

import (
	"context"
	"sync"
)

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{
		subs: make(map[*chan T]struct{}),
	}
}

type Hub[T any] struct {
	mu   sync.Mutex
	subs map[*chan T]struct{}
	last T
	seen bool
}

// Broadcast delivers event to every subscriber that is ready to receive and
// records it as the latest value.
func (h *Hub[T]) Broadcast(ctx context.Context, event T) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = event
	h.seen = true
	for sub := range h.subs {
		select {
		case <-ctx.Done():
		case *sub <- event:
		default:
		}
	}
	return nil
}

// Latest returns the most recently broadcast event, if any.
func (h *Hub[T]) Latest() (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last, h.seen
}

// Subscribe returns a buffered event channel and a cancel function that
// detaches it from the hub.
func (h *Hub[T]) Subscribe(ctx context.Context) (<-chan T, func()) {
	h.mu.Lock()
	c := make(chan T, 1)

	key := &c
	h.subs[key] = struct{}{}
	h.mu.Unlock()

	return c, func() {
		h.mu.Lock()
		delete(h.subs, key)
		h.mu.Unlock()
	}
}
