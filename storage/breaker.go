package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"actividad-clase/api-service/logging"

	"github.com/sony/gobreaker"
)

// NewBreaker trips after more than three consecutive backend failures and
// lets one trial call through after five seconds. Cancelled requests do not
// count as failures.
func NewBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
}

// BreakerCollection fails fast with ErrUnavailable while the breaker is open.
type BreakerCollection[T any] struct {
	inner   Collection[T]
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerCollection routes every call to inner through breaker.
func NewBreakerCollection[T any](inner Collection[T], breaker *gobreaker.CircuitBreaker) *BreakerCollection[T] {
	return &BreakerCollection[T]{inner: inner, breaker: breaker}
}

func (c *BreakerCollection[T]) Name() string { return c.inner.Name() }

func (c *BreakerCollection[T]) ReadAll(ctx context.Context) ([]T, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.inner.ReadAll(ctx)
	})
	if err != nil {
		return nil, breakerError(err)
	}
	return result.([]T), nil
}

func (c *BreakerCollection[T]) WriteAll(ctx context.Context, records []T) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.inner.WriteAll(ctx, records)
	})
	return breakerError(err)
}

func breakerError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
