package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/matchday-dev/matchday/internal/platform/resilience"
)

type classifiedErr struct {
	msg   string
	retry bool
}

func (e classifiedErr) Error() string   { return e.msg }
func (e classifiedErr) Retryable() bool { return e.retry }

func fastBackoff() resilience.Backoff {
	return resilience.Backoff{Base: time.Millisecond, Cap: 4 * time.Millisecond}
}

func TestDo_CachesWithinStaleWindow(t *testing.T) {
	store, clock := newFakeStore()
	defer store.Close()

	key := NewKey("competitions")
	opts := Options{StaleTime: 2 * time.Minute, CacheTime: 10 * time.Minute}

	var calls atomic.Int32
	fetch := func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "catalog", nil
	}

	for i := 0; i < 3; i++ {
		got, err := Do(context.Background(), store, key, opts, fetch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "catalog" {
			t.Fatalf("expected cached catalog, got %q", got)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one upstream call within the window, got %d", got)
	}

	clock.Advance(3 * time.Minute)
	if _, err := Do(context.Background(), store, key, opts, fetch); err != nil {
		t.Fatalf("unexpected error after window: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected refetch once stale, got %d calls", got)
	}
}

func TestDo_DeduplicatesConcurrentCallers(t *testing.T) {
	store, _ := newFakeStore()
	defer store.Close()

	key := NewKey("matches").WithParam("date", "2026-08-26")
	opts := Options{StaleTime: time.Minute}

	var calls atomic.Int32
	fetch := func(ctx context.Context) (int, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return 7, nil
	}

	const workers = 12
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			got, err := Do(context.Background(), store, key, opts, fetch)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if got != 7 {
				t.Errorf("expected shared result, got %d", got)
			}
		}()
	}
	close(start)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single in-flight fetch, got %d", got)
	}
}

func TestDo_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	store := NewStore(StoreConfig{GCInterval: -1})
	defer store.Close()

	key := NewKey("competitions/standings", "PD")
	opts := Options{Retry: 2, Backoff: fastBackoff()}

	var calls atomic.Int32
	fetch := func(ctx context.Context) (string, error) {
		if calls.Add(1) < 3 {
			return "", classifiedErr{msg: "upstream hiccup", retry: true}
		}
		return "table", nil
	}

	got, err := Do(context.Background(), store, key, opts, fetch)
	if err != nil {
		t.Fatalf("expected recovery within retry budget, got %v", err)
	}
	if got != "table" {
		t.Fatalf("expected table, got %q", got)
	}
	if n := calls.Load(); n != 3 {
		t.Fatalf("expected 3 attempts, got %d", n)
	}
}

func TestDo_StopsAtRetryBudget(t *testing.T) {
	t.Parallel()

	store := NewStore(StoreConfig{GCInterval: -1})
	defer store.Close()

	var calls atomic.Int32
	fetch := func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "", classifiedErr{msg: "still down", retry: true}
	}

	_, err := Do(context.Background(), store, NewKey("matches", "1"), Options{Retry: 2, Backoff: fastBackoff()}, fetch)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if n := calls.Load(); n != 3 {
		t.Fatalf("expected initial call plus two retries, got %d", n)
	}
}

func TestDo_NeverRetriesCallerErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(StoreConfig{GCInterval: -1})
	defer store.Close()

	var calls atomic.Int32
	fetch := func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "", classifiedErr{msg: "404 not found", retry: false}
	}

	_, err := Do(context.Background(), store, NewKey("matches", "999"), Options{Retry: 2, Backoff: fastBackoff()}, fetch)
	if err == nil {
		t.Fatal("expected the caller error to surface")
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("expected zero retries on caller errors, got %d attempts", n)
	}
}

func TestDo_UnclassifiedErrorsAreNotRetried(t *testing.T) {
	t.Parallel()

	store := NewStore(StoreConfig{GCInterval: -1})
	defer store.Close()

	var calls atomic.Int32
	fetch := func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "", errors.New("garbled response")
	}

	_, err := Do(context.Background(), store, NewKey("teams", "81"), Options{Retry: 2, Backoff: fastBackoff()}, fetch)
	if err == nil {
		t.Fatal("expected error")
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("expected a single attempt, got %d", n)
	}
}

func TestDo_InvalidKeyNeverTouchesNetwork(t *testing.T) {
	t.Parallel()

	store := NewStore(StoreConfig{GCInterval: -1})
	defer store.Close()

	var calls atomic.Int32
	fetch := func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "never", nil
	}

	_, err := Do(context.Background(), store, NewKey("matches/detail", ""), Options{}, fetch)
	if !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatal("expected fetch to stay untouched for invalid keys")
	}
}

func TestDo_DisabledNeverTouchesNetwork(t *testing.T) {
	t.Parallel()

	store := NewStore(StoreConfig{GCInterval: -1})
	defer store.Close()

	var calls atomic.Int32
	fetch := func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "never", nil
	}

	_, err := Do(context.Background(), store, NewKey("matches", "1"), Options{Disabled: true}, fetch)
	if !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatal("expected fetch to stay untouched when disabled")
	}
}

func TestDo_ReturnsStaleValueAlongsideRefreshError(t *testing.T) {
	store, clock := newFakeStore()
	defer store.Close()

	key := NewKey("competitions/scorers", "PD")
	opts := Options{StaleTime: 2 * time.Minute, CacheTime: time.Hour}

	healthy := true
	fetch := func(ctx context.Context) (string, error) {
		if healthy {
			return "pichichi", nil
		}
		return "", classifiedErr{msg: "upstream down", retry: false}
	}

	if _, err := Do(context.Background(), store, key, opts, fetch); err != nil {
		t.Fatalf("seed fetch failed: %v", err)
	}

	healthy = false
	clock.Advance(3 * time.Minute)

	got, err := Do(context.Background(), store, key, opts, fetch)
	if err == nil {
		t.Fatal("expected refresh error to surface")
	}
	if got != "pichichi" {
		t.Fatalf("expected last known value alongside the error, got %q", got)
	}
}

func TestRefetch_BypassesFreshness(t *testing.T) {
	store, _ := newFakeStore()
	defer store.Close()

	key := NewKey("matches").WithParam("date", "2026-08-26")
	opts := Options{StaleTime: time.Hour}

	var calls atomic.Int32
	fetch := func(ctx context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}

	if _, err := Do(context.Background(), store, key, opts, fetch); err != nil {
		t.Fatalf("seed fetch failed: %v", err)
	}
	got, err := Refetch(context.Background(), store, key, opts, fetch)
	if err != nil {
		t.Fatalf("refetch failed: %v", err)
	}
	if got != 2 {
		t.Fatalf("expected forced second call, got result %d", got)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected two upstream calls, got %d", calls.Load())
	}
}

func TestDo_ContextCancelCutsBackoffWait(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 8, 26, 18, 0, 0, 0, time.UTC))
	store := NewStore(StoreConfig{Clock: clock, GCInterval: -1})
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	attempted := make(chan struct{}, 1)
	fetch := func(ctx context.Context) (string, error) {
		attempted <- struct{}{}
		return "", classifiedErr{msg: "flaky", retry: true}
	}

	done := make(chan error, 1)
	go func() {
		_, err := Do(ctx, store, NewKey("matches", "1"), Options{Retry: 2}, fetch)
		done <- err
	}()

	<-attempted
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context cancellation, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Do did not return after cancellation")
	}
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	if IsRetryable(errors.New("plain")) {
		t.Fatal("plain errors must not be retryable")
	}
	if !IsRetryable(classifiedErr{retry: true}) {
		t.Fatal("expected classified transient error to be retryable")
	}
	if IsRetryable(classifiedErr{retry: false}) {
		t.Fatal("expected classified caller error to be final")
	}
	wrapped := classifiedErr{msg: "inner", retry: true}
	if !IsRetryable(fmtWrap(wrapped)) {
		t.Fatal("expected classification to survive wrapping")
	}
}

func fmtWrap(err error) error {
	return errors.Join(errors.New("outer"), err)
}
