package httpx

import (
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned while the breaker rejects calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitBreaker interface {
	Execute(fn func() error) error
}

type CircuitBreakerOption func(*gobreaker.Settings)

// WithSuccessPredicate marks errors that should not count against the
// breaker, e.g. client errors that say nothing about upstream health.
func WithSuccessPredicate(isSuccessful func(err error) bool) CircuitBreakerOption {
	return func(s *gobreaker.Settings) {
		s.IsSuccessful = func(err error) bool {
			return err == nil || isSuccessful(err)
		}
	}
}

// WithStateChangeHook is invoked on every breaker state transition.
func WithStateChangeHook(hook func(name string, from, to string)) CircuitBreakerOption {
	return func(s *gobreaker.Settings) {
		s.OnStateChange = func(name string, from gobreaker.State, to gobreaker.State) {
			hook(name, from.String(), to.String())
		}
	}
}

type circuitBreakerWrapper struct {
	breaker *gobreaker.CircuitBreaker
}

func NewCircuitBreaker(name string, timeout time.Duration, maxFailures uint32, opts ...CircuitBreakerOption) CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
	}
	for _, opt := range opts {
		opt(&settings)
	}
	return &circuitBreakerWrapper{
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (g *circuitBreakerWrapper) Execute(fn func() error) error {
	_, err := g.breaker.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("breaker (%s): %w", g.breaker.Name(), ErrCircuitOpen)
	}
	return fmt.Errorf("breaker (%s): %w", g.breaker.Name(), err)
}
