package protocols

import "context"

type IdempotencyKeyResult struct {
	ReservationId string `json:"reservationId"`
}

// IdempotencyGateway guards reservation requests against client retries.
// ReserveIdempotencyKey returns (nil, nil) when the caller should proceed and
// a stored result when the key already completed.
type IdempotencyGateway interface {
	ReserveIdempotencyKey(ctx context.Context, idempotencyKey string) (*IdempotencyKeyResult, error)
	MarkFailure(ctx context.Context, idempotencyKey string) error
	MarkSuccess(ctx context.Context, idempotencyKey string, result IdempotencyKeyResult) error
}
