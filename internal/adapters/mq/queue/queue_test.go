package queue

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/zentro/shadowscout/internal/domain/model"
)

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	// Test empty queue
	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	// Enqueue up to capacity
	if ok := q.Enqueue(ctx, model.ActivityEvent{EventID: "e1", ShadowID: "s1", Kind: model.KindCipher}); !ok {
		t.Error("expected enqueue to succeed")
	}
	if ok := q.Enqueue(ctx, model.ActivityEvent{EventID: "e2", ShadowID: "s2", Kind: model.KindCipher}); !ok {
		t.Error("expected enqueue to succeed")
	}
	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}

	// Queue full
	if ok := q.Enqueue(ctx, model.ActivityEvent{EventID: "e3"}); ok {
		t.Error("expected enqueue to fail on full queue")
	}
}

func TestInMemoryQueue_Dequeue(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if ok := q.Enqueue(ctx, model.ActivityEvent{EventID: fmt.Sprintf("e%d", i), ShadowID: "s", Kind: model.KindMission}); !ok {
			t.Fatalf("enqueue %d failed", i)
		}
	}

	out := q.Dequeue(ctx)

	for i := 0; i < 3; i++ {
		select {
		case e := <-out:
			want := fmt.Sprintf("e%d", i)
			if e.EventID != want {
				t.Errorf("expected %s, got %s", want, e.EventID)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestInMemoryQueue_Close(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(5))
	ctx := context.Background()

	q.Enqueue(ctx, model.ActivityEvent{EventID: "e1"})

	if err := q.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to be closed")
	}

	// Enqueue after close fails
	if ok := q.Enqueue(ctx, model.ActivityEvent{EventID: "e2"}); ok {
		t.Error("expected enqueue to fail after close")
	}

	// Buffered events drain, then the channel closes
	out := q.Dequeue(ctx)
	e, ok := <-out
	if !ok || e.EventID != "e1" {
		t.Errorf("expected buffered event e1, got %v (ok=%v)", e.EventID, ok)
	}
	if _, ok := <-out; ok {
		t.Error("expected dequeue channel to close after drain")
	}

	// Double close returns the sentinel
	if err := q.Close(); err != ErrQueueClosed {
		t.Errorf("expected ErrQueueClosed, got %v", err)
	}
}

func TestInMemoryQueue_DequeueContextCancel(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(5))
	ctx, cancel := context.WithCancel(context.Background())

	out := q.Dequeue(ctx)
	cancel()

	// Closing the queue ends the forwarding goroutine either way; the
	// consumer channel must close without a consumer reading events.
	q.Enqueue(context.Background(), model.ActivityEvent{EventID: "e1"})
	_ = q.Close()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-out:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for channel close")
		}
	}
}
