package bus

import (
	"context"
	"testing"
)

func TestLatest(t *testing.T) {
	h := NewHub[int]()
	ctx := context.Background()

	if _, ok := h.Latest(); ok {
		t.Fatal("fresh hub reported a latest event")
	}

	h.Broadcast(ctx, 1)
	h.Broadcast(ctx, 2)
	if got, ok := h.Latest(); !ok || got != 2 {
		t.Fatalf("latest = %d, %v", got, ok)
	}
}

func TestSubscribeReceivesBroadcasts(t *testing.T) {
	h := NewHub[string]()
	ctx := context.Background()

	c, cancel := h.Subscribe(ctx)
	defer cancel()

	h.Broadcast(ctx, "hello")
	if got := <-c; got != "hello" {
		t.Fatalf("got %q", got)
	}
}

func TestBroadcastNeverBlocksOnFullSubscriber(t *testing.T) {
	h := NewHub[int]()
	ctx := context.Background()

	c, cancel := h.Subscribe(ctx)
	defer cancel()

	// Fill the subscriber's buffer and keep publishing; the extra events are
	// dropped rather than stalling the publisher.
	h.Broadcast(ctx, 1)
	h.Broadcast(ctx, 2)
	h.Broadcast(ctx, 3)

	if got := <-c; got != 1 {
		t.Fatalf("got %d, want the first buffered event", got)
	}
	select {
	case got := <-c:
		t.Fatalf("unexpected queued event %d", got)
	default:
	}
	if got, ok := h.Latest(); !ok || got != 3 {
		t.Fatalf("latest = %d, %v", got, ok)
	}
}

func TestCancelDetachesSubscriber(t *testing.T) {
	h := NewHub[int]()
	ctx := context.Background()

	c, cancel := h.Subscribe(ctx)
	cancel()

	h.Broadcast(ctx, 7)
	select {
	case got := <-c:
		t.Fatalf("detached subscriber received %d", got)
	default:
	}
}
