package gateways

import (
	"context"
	"errors"
	"sync"

	protocols "github.com/giovaniif/device-rental/protocols"
)

const (
	statusProcessing = "processing"
	statusSuccess    = "success"
)

var ErrKeyInProgress = errors.New("idempotency key is already being processed")

type IdempotencyGatewayMemory struct {
	mutex           sync.Mutex
	idempotencyKeys map[string]*IdempotencyState
}

type IdempotencyState struct {
	Status string
	Result *protocols.IdempotencyKeyResult
}

func NewIdempotencyGatewayMemory() *IdempotencyGatewayMemory {
	return &IdempotencyGatewayMemory{
		idempotencyKeys: make(map[string]*IdempotencyState),
	}
}

func (g *IdempotencyGatewayMemory) ReserveIdempotencyKey(ctx context.Context, idempotencyKey string) (*protocols.IdempotencyKeyResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mutex.Lock()
	defer g.mutex.Unlock()
	state, exists := g.idempotencyKeys[idempotencyKey]
	if exists {
		switch state.Status {
		case statusSuccess:
			return state.Result, nil
		case statusProcessing:
			return nil, ErrKeyInProgress
		}
		delete(g.idempotencyKeys, idempotencyKey)
	}

	g.idempotencyKeys[idempotencyKey] = &IdempotencyState{Status: statusProcessing}
	return nil, nil
}

func (g *IdempotencyGatewayMemory) MarkFailure(ctx context.Context, idempotencyKey string) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	delete(g.idempotencyKeys, idempotencyKey)
	return nil
}

func (g *IdempotencyGatewayMemory) MarkSuccess(ctx context.Context, idempotencyKey string, result protocols.IdempotencyKeyResult) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if state, exists := g.idempotencyKeys[idempotencyKey]; exists {
		state.Status = statusSuccess
		state.Result = &result
	}
	return nil
}
