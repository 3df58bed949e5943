package circuitbreaker

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

type Config struct {
	FailureThreshold uint32
	OpenTimeout      time.Duration
	Logger           *zap.Logger
	Clock            clockwork.Clock
}

// CircuitBreaker trips after FailureThreshold consecutive failures and
// rejects calls until OpenTimeout has passed; the first call after the
// timeout probes the downstream in half-open state.
type CircuitBreaker struct {
	name             string
	failureThreshold uint32
	openTimeout      time.Duration
	logger           *zap.Logger
	clock            clockwork.Clock

	mu       sync.Mutex
	state    State
	failures uint32
	openedAt time.Time
}

func New(name string, cfg Config) *CircuitBreaker {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.OpenTimeout == 0 {
		cfg.OpenTimeout = time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	return &CircuitBreaker{
		name:             name,
		failureThreshold: cfg.FailureThreshold,
		openTimeout:      cfg.OpenTimeout,
		logger:           cfg.Logger,
		clock:            cfg.Clock,
	}
}

func (cb *CircuitBreaker) Execute(operation func() error) error {
	if err := cb.beforeCall(); err != nil {
		return err
	}

	err := operation()
	cb.afterCall(err == nil)
	return err
}

func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) beforeCall() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen {
		if cb.clock.Since(cb.openedAt) < cb.openTimeout {
			return ErrCircuitOpen
		}
		cb.setState(StateHalfOpen)
	}
	return nil
}

func (cb *CircuitBreaker) afterCall(success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if success {
		cb.failures = 0
		if cb.state == StateHalfOpen {
			cb.setState(StateClosed)
		}
		return
	}

	cb.failures++
	if cb.state == StateHalfOpen || cb.failures >= cb.failureThreshold {
		cb.openedAt = cb.clock.Now()
		cb.setState(StateOpen)
	}
}

func (cb *CircuitBreaker) setState(next State) {
	if cb.state == next {
		return
	}
	cb.logger.Info("Circuit breaker state change",
		zap.String("name", cb.name),
		zap.String("from", cb.state.String()),
		zap.String("to", next.String()),
	)
	cb.state = next
	if next == StateClosed {
		cb.failures = 0
	}
}
