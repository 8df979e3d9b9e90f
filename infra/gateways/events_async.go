package gateways

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	protocols "github.com/giovaniif/device-rental/protocols"
)

var (
	ErrPublisherClosed = errors.New("event publisher closed")
	ErrQueueFull       = errors.New("event queue full")
)

// AsyncEventPublisher hands events to a background worker so request handlers
// never wait on the broker. Events are delivered in the order they were queued.
type AsyncEventPublisher struct {
	next   protocols.EventPublisher
	mutex  sync.RWMutex
	closed bool
	queue  chan protocols.ReservationEvent
	done   chan struct{}
}

func NewAsyncEventPublisher(next protocols.EventPublisher, buffer int) *AsyncEventPublisher {
	p := &AsyncEventPublisher{
		next:  next,
		queue: make(chan protocols.ReservationEvent, buffer),
		done:  make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *AsyncEventPublisher) Publish(ctx context.Context, event protocols.ReservationEvent) error {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *AsyncEventPublisher) run() {
	defer close(p.done)
	for event := range p.queue {
		if err := p.next.Publish(context.Background(), event); err != nil {
			slog.Warn("dropping reservation event", "type", event.Type, "reservation_id", event.ReservationId, "err", err)
		}
	}
}

// Close stops accepting events and waits until the queue is drained or ctx ends.
func (p *AsyncEventPublisher) Close(ctx context.Context) error {
	p.mutex.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mutex.Unlock()

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
