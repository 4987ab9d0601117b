package usecase

import (
	"context"

	"github.com/matchday-dev/matchday/internal/query"
)

// PageOptions applies to a whole page load.
type PageOptions struct {
	// ForceRefresh bypasses the freshness window for every section while
	// keeping the last good values around if the refresh fails.
	ForceRefresh bool
}

func fetchSection[T any](ctx context.Context, store *query.Store, key query.Key, qopts query.Options, popts PageOptions, fn query.FetchFunc[T]) (T, error) {
	if popts.ForceRefresh {
		return query.Refetch(ctx, store, key, qopts, fn)
	}
	return query.Do(ctx, store, key, qopts, fn)
}
