package infra

import (
	"errors"
	"sync"
	"time"
)

// ── Circuit Breaker ──────────────────────────────────────────────────────────
// Guards calls to the SMTP relay. After FailureThreshold consecutive errors
// the breaker opens and every call fails fast with ErrCircuitOpen until
// OpenTimeout elapses; then calls try the relay again (half-open) and
// SuccessThreshold successes close it.

type CBState int

const (
	CBClosed CBState = iota
	CBOpen
	CBHalfOpen
)

func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	}
	return "unknown"
}

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitBreakerConfig struct {
	FailureThreshold int
	SuccessThreshold int
	OpenTimeout      time.Duration
}

// DefaultCBConfig: 5 failures open the breaker for a minute, 2 half-open successes close it.
func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{FailureThreshold: 5, SuccessThreshold: 2, OpenTimeout: time.Minute}
}

type CircuitBreaker struct {
	mu       sync.Mutex
	cfg      CircuitBreakerConfig
	state    CBState
	falhas   int
	sucessos int
	abertoEm time.Time
	now      func() time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCBConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = def.SuccessThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.estado()
}

// estado must be called with mu held.
func (cb *CircuitBreaker) estado() CBState {
	if cb.state == CBOpen && cb.now().Sub(cb.abertoEm) >= cb.cfg.OpenTimeout {
		cb.state = CBHalfOpen
		cb.sucessos = 0
	}
	return cb.state
}

// Execute runs fn unless the breaker is open.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	if cb.estado() == CBOpen {
		cb.mu.Unlock()
		return ErrCircuitOpen
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.registrarFalha()
		return err
	}
	cb.registrarSucesso()
	return nil
}

func (cb *CircuitBreaker) registrarFalha() {
	switch cb.state {
	case CBHalfOpen:
		cb.abrir()
	case CBClosed:
		cb.falhas++
		if cb.falhas >= cb.cfg.FailureThreshold {
			cb.abrir()
		}
	}
}

func (cb *CircuitBreaker) registrarSucesso() {
	switch cb.state {
	case CBClosed:
		cb.falhas = 0
	case CBHalfOpen:
		cb.sucessos++
		if cb.sucessos >= cb.cfg.SuccessThreshold {
			cb.state = CBClosed
			cb.falhas, cb.sucessos = 0, 0
		}
	}
}

func (cb *CircuitBreaker) abrir() {
	cb.state = CBOpen
	cb.abertoEm = cb.now()
	cb.falhas, cb.sucessos = 0, 0
}
