package query

import (
	"context"
	"errors"
	"fmt"
)

var ErrDisabled = errors.New("query is disabled")

// FetchFunc performs the actual upstream call for one key.
type FetchFunc[T any] func(ctx context.Context) (T, error)

type retryableError interface {
	Retryable() bool
}

// IsRetryable reports whether the retry budget applies to the error. Only
// errors that classify themselves as retryable qualify; everything else,
// caller mistakes and malformed responses included, fails immediately.
func IsRetryable(err error) bool {
	var r retryableError
	if errors.As(err, &r) {
		return r.Retryable()
	}
	return false
}

// Do resolves the key through the store: a fresh cached value is returned
// without any network activity, concurrent identical keys share one in-flight
// fetch, and retryable failures consume the configured retry budget with
// exponential backoff. On a refresh failure the last known value, if still
// retained, is returned alongside the error so callers can keep rendering it.
func Do[T any](ctx context.Context, store *Store, key Key, opts Options, fn FetchFunc[T]) (T, error) {
	return run(ctx, store, key, opts, fn, false)
}

// Refetch behaves like Do but skips the freshness fast path, forcing one
// upstream call even inside the staleness window. Poll ticks and manual
// refresh affordances use it; deduplication and generation checks still hold.
func Refetch[T any](ctx context.Context, store *Store, key Key, opts Options, fn FetchFunc[T]) (T, error) {
	return run(ctx, store, key, opts, fn, true)
}

func run[T any](ctx context.Context, store *Store, key Key, opts Options, fn FetchFunc[T], force bool) (T, error) {
	var zero T

	if err := key.Validate(); err != nil {
		return zero, err
	}
	if opts.Disabled {
		return zero, fmt.Errorf("%w: %s", ErrDisabled, key.Kind)
	}

	if !force {
		if value, fresh, ok := store.Lookup(key, opts.StaleTime); ok && fresh {
			if typed, ok := value.(T); ok {
				return typed, nil
			}
			// A kind collision left the wrong shape here; fall through and refetch.
		}
	}

	ks := key.String()
	value, err, _ := store.flight.Do(ks, func() (any, error) {
		if !force {
			if cached, fresh, ok := store.Lookup(key, opts.StaleTime); ok && fresh {
				return cached, nil
			}
		}
		gen := store.begin(ks)
		fetched, err := fetchWithRetry(ctx, store, opts, fn)
		if err != nil {
			return nil, err
		}
		store.commit(key, gen, fetched, opts.CacheTime)
		return fetched, nil
	})
	if err != nil {
		if stale, _, ok := store.Lookup(key, opts.StaleTime); ok {
			if typed, tok := stale.(T); tok {
				return typed, err
			}
		}
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("query %s resolved to %T, not the requested type", ks, value)
	}
	return typed, nil
}

func fetchWithRetry[T any](ctx context.Context, store *Store, opts Options, fn FetchFunc[T]) (T, error) {
	var zero T

	budget := opts.Retry
	if budget < 0 {
		budget = 0
	}

	var lastErr error
	for attempt := 0; attempt <= budget; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return zero, fmt.Errorf("wait before retry: %w", ctx.Err())
			case <-store.clock.After(opts.Backoff.Delay(attempt - 1)):
			}
		}

		value, err := fn(ctx)
		if err == nil {
			return value, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			break
		}
	}

	return zero, lastErr
}
