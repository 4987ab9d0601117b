package query

import (
	"time"

	"github.com/matchday-dev/matchday/internal/platform/resilience"
)

const (
	// StaleTimeVolatile covers data that changes while matches run: today's
	// fixtures, live scores, a match detail page.
	StaleTimeVolatile = 2 * time.Minute
	// StaleTimeStable covers catalog-like data: competition lists, standings
	// between matchdays, squads.
	StaleTimeStable = 10 * time.Minute
	// StaleTimeHistorical covers data that only grows: head-to-head records.
	StaleTimeHistorical = 5 * time.Minute

	DefaultCacheTime = 5 * time.Minute

	DefaultRetry    = 2
	HistoricalRetry = 1

	PollLive  = 30 * time.Second
	PollToday = time.Minute
)

// Options shape one query's caching and retry behavior. The zero value means
// always-stale, no retries, default retention.
type Options struct {
	// StaleTime is the freshness window: a cached value younger than this is
	// served without touching the upstream.
	StaleTime time.Duration
	// CacheTime is how long a value is retained after its last write before
	// the sweeper may drop it. Zero uses the store default.
	CacheTime time.Duration
	// Retry is the number of extra attempts after a retryable failure.
	Retry int
	// Backoff computes the wait before each retry.
	Backoff resilience.Backoff
	// PollEvery enables background refresh for subscriptions on this key.
	PollEvery time.Duration
	// Disabled short-circuits execution without touching cache or network.
	Disabled bool
}

// Volatile is the profile for frequently changing resources.
func Volatile() Options {
	return Options{
		StaleTime: StaleTimeVolatile,
		CacheTime: DefaultCacheTime,
		Retry:     DefaultRetry,
		PollEvery: PollToday,
	}
}

// Stable is the profile for rarely changing resources; no polling.
func Stable() Options {
	return Options{
		StaleTime: StaleTimeStable,
		CacheTime: 30 * time.Minute,
		Retry:     DefaultRetry,
	}
}

// Historical is the profile for append-only resources such as head-to-head
// records; these are the least time-sensitive, so a single retry suffices.
func Historical() Options {
	return Options{
		StaleTime: StaleTimeHistorical,
		CacheTime: 30 * time.Minute,
		Retry:     HistoricalRetry,
	}
}
