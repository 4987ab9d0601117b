package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b := NewCircuitBreaker(2, 5*time.Second, 1)

	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}
}

func TestCircuitBreaker_RetryAfter(t *testing.T) {
	b := NewCircuitBreaker(1, 10*time.Second, 1)

	now := time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	if got := b.RetryAfter(); got != 0 {
		t.Fatalf("expected zero retry-after while closed, got %s", got)
	}

	b.RecordFailure()
	if got := b.RetryAfter(); got != 10*time.Second {
		t.Fatalf("expected full open timeout, got %s", got)
	}

	now = now.Add(7 * time.Second)
	if got := b.RetryAfter(); got != 3*time.Second {
		t.Fatalf("expected 3s remaining, got %s", got)
	}

	now = now.Add(5 * time.Second)
	if got := b.RetryAfter(); got != 0 {
		t.Fatalf("expected zero once cool-down elapsed, got %s", got)
	}
}

func TestNewCircuitBreakerFromConfig(t *testing.T) {
	if b := NewCircuitBreakerFromConfig(CircuitBreakerConfig{Enabled: false}); b != nil {
		t.Fatal("expected nil breaker when disabled")
	}

	b := NewCircuitBreakerFromConfig(CircuitBreakerConfig{Enabled: true})
	if b == nil {
		t.Fatal("expected breaker from enabled config")
	}
	if b.failureThreshold != DefaultCircuitBreakerConfig().FailureThreshold {
		t.Fatalf("expected default threshold, got %d", b.failureThreshold)
	}
}

func TestNormalizeCircuitBreakerConfig(t *testing.T) {
	got := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{Enabled: true})
	want := DefaultCircuitBreakerConfig()
	if got.FailureThreshold != want.FailureThreshold || got.OpenTimeout != want.OpenTimeout || got.HalfOpenMaxReq != want.HalfOpenMaxReq {
		t.Fatalf("expected defaults for zero values, got %+v", got)
	}

	custom := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{Enabled: true, FailureThreshold: 9, OpenTimeout: time.Minute, HalfOpenMaxReq: 4})
	if custom.FailureThreshold != 9 || custom.OpenTimeout != time.Minute || custom.HalfOpenMaxReq != 4 {
		t.Fatalf("expected custom values preserved, got %+v", custom)
	}
}
