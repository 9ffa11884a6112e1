// Package services holds the business rules: inventory, orders and payments,
// reviews, media ingestion and accounts. Every service takes its store
// explicitly and bounds each store call with a timeout.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jmt-archery-backend/models"
	"jmt-archery-backend/store"
)

const DefaultTimeout = 10 * time.Second

// Notifier receives domain events, e.g. the admin websocket hub.
type Notifier interface {
	Publish(event string, payload any)
}

type nopNotifier struct{}

func (nopNotifier) Publish(string, any) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

type base struct {
	store   store.Store
	timeout time.Duration
}

func newBase(s store.Store, timeout time.Duration) base {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return base{store: s, timeout: timeout}
}

// readCtx bounds a read by the service timeout and the caller's lifetime.
func (b base) readCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, b.timeout)
}

// writeCtx bounds a mutation by the service timeout only. A client that
// disconnects does not abort a write already in flight.
func (b base) writeCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(parent), b.timeout)
}

// storeError converts storage sentinels into service errors. entity names
// the record for the error message.
func storeError(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%s %w", entity, ErrNotFound)
	case errors.Is(err, store.ErrDuplicate):
		return fmt.Errorf("%s %w", entity, ErrAlreadyExists)
	case errors.Is(err, store.ErrInsufficientStock):
		return ErrInsufficientStock
	case errors.Is(err, store.ErrStockLimit):
		return fmt.Errorf("%w: %s stock cannot exceed %d", ErrInvalidArgument, entity, models.MaxStock)
	case errors.Is(err, store.ErrConflict):
		return fmt.Errorf("%w: %s was modified concurrently", ErrInvalidTransition, entity)
	case errors.Is(err, store.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return err
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
