package gateways

import (
	"context"
	"log/slog"
	"math"
	"time"

	protocols "github.com/giovaniif/device-rental/protocols"
)

var (
	MAX_RETRIES = 5
	BASE_DELAY  = 1 * time.Second
)

type RetryFunc func() error

// RetryWithBackoff runs operation up to MAX_RETRIES times, sleeping
// BASE_DELAY * 2^attempt between failures. It stops early once ctx is done.
func RetryWithBackoff(ctx context.Context, operation RetryFunc, sleeper protocols.Sleeper) RetryFunc {
	return func() error {
		var lastError error

		for i := 0; i < MAX_RETRIES; i++ {
			err := operation()
			if err == nil {
				return nil
			}
			lastError = err
			if ctx.Err() != nil {
				return lastError
			}
			if i == MAX_RETRIES-1 {
				break
			}

			delay := time.Duration(math.Pow(2, float64(i))) * BASE_DELAY
			slog.WarnContext(ctx, "retrying operation", "attempt", i+1, "delay", delay.String(), "err", err)
			sleeper.Sleep(delay)
		}

		return lastError
	}
}

type RetryingEventPublisher struct {
	next    protocols.EventPublisher
	sleeper protocols.Sleeper
}

func NewRetryingEventPublisher(next protocols.EventPublisher, sleeper protocols.Sleeper) *RetryingEventPublisher {
	return &RetryingEventPublisher{next: next, sleeper: sleeper}
}

func (p *RetryingEventPublisher) Publish(ctx context.Context, event protocols.ReservationEvent) error {
	return RetryWithBackoff(ctx, func() error {
		return p.next.Publish(ctx, event)
	}, p.sleeper)()
}
