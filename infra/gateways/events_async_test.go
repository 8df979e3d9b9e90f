package gateways

import (
	"context"
	"errors"
	"sync"
	"testing"

	protocols "github.com/giovaniif/device-rental/protocols"
)

type recordingPublisher struct {
	mutex  sync.Mutex
	events []protocols.ReservationEvent
	block  chan struct{}
}

func (r *recordingPublisher) Publish(ctx context.Context, event protocols.ReservationEvent) error {
	if r.block != nil {
		<-r.block
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.events = append(r.events, event)
	return nil
}

func TestAsyncEventPublisher_DeliversInOrder(t *testing.T) {
	next := &recordingPublisher{}
	p := NewAsyncEventPublisher(next, 8)
	for _, id := range []string{"r-1", "r-2", "r-3"} {
		ev := sampleEvent()
		ev.ReservationId = id
		if err := p.Publish(context.Background(), ev); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}
	if err := p.Close(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	next.mutex.Lock()
	defer next.mutex.Unlock()
	if len(next.events) != 3 || next.events[0].ReservationId != "r-1" || next.events[2].ReservationId != "r-3" {
		t.Fatalf("unexpected delivery: %+v", next.events)
	}
}

func TestAsyncEventPublisher_RejectsAfterClose(t *testing.T) {
	p := NewAsyncEventPublisher(&recordingPublisher{}, 1)
	_ = p.Close(context.Background())
	if err := p.Publish(context.Background(), sampleEvent()); !errors.Is(err, ErrPublisherClosed) {
		t.Fatalf("expected ErrPublisherClosed, got %v", err)
	}
	if err := p.Close(context.Background()); err != nil {
		t.Fatalf("expected second Close to succeed, got %v", err)
	}
}

func TestAsyncEventPublisher_QueueFull(t *testing.T) {
	next := &recordingPublisher{block: make(chan struct{})}
	p := NewAsyncEventPublisher(next, 1)

	var sawFull bool
	for i := 0; i < 3; i++ {
		if err := p.Publish(context.Background(), sampleEvent()); errors.Is(err, ErrQueueFull) {
			sawFull = true
		}
	}
	close(next.block)
	_ = p.Close(context.Background())
	if !sawFull {
		t.Fatalf("expected ErrQueueFull once the buffer is exhausted")
	}
}
