package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRange      = errors.New("invalid date range")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCapacityExceeded  = errors.New("capacity exceeded")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrAuthFailed        = errors.New("authentication failed")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidItem       = errors.New("invalid item")
)

func NewInvalidRangeError(details string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRange, details)
}

func NewInvalidQuantityError(details string) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuantity, details)
}

func NewInsufficientStockError(details string) error {
	return fmt.Errorf("%w: %s", ErrInsufficientStock, details)
}

func NewCapacityExceededError(details string) error {
	return fmt.Errorf("%w: %s", ErrCapacityExceeded, details)
}

func NewInvalidTransitionError(details string) error {
	return fmt.Errorf("%w: %s", ErrInvalidTransition, details)
}

func NewNotFoundError(details string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, details)
}

func NewAlreadyExistsError(details string) error {
	return fmt.Errorf("%w: %s", ErrAlreadyExists, details)
}

func NewInvalidItemError(details string) error {
	return fmt.Errorf("%w: %s", ErrInvalidItem, details)
}

func NewForbiddenError(details string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, details)
}
