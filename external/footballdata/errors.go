package footballdata

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/matchday-dev/matchday/internal/platform/resilience"
)

// ErrorKind buckets every failed upstream call. The split drives retry
// policy: network and server faults may be retried, caller faults and
// malformed responses never are.
type ErrorKind string

const (
	// KindNetwork covers failures where no usable response reached us:
	// connectivity, DNS, timeouts, cancelled contexts.
	KindNetwork ErrorKind = "network"
	// KindClient covers HTTP 4xx: bad parameters, forbidden resources,
	// missing entities, exhausted rate allowances.
	KindClient ErrorKind = "client"
	// KindServer covers HTTP 5xx.
	KindServer ErrorKind = "server"
	// KindUnknown covers everything else, undecodable bodies included.
	KindUnknown ErrorKind = "unknown"
)

// Error is the structured failure every client method returns.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Op         string
	Detail     string
	cause      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("footballdata: %s: %s error", e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.cause }

// Retryable reports whether a later attempt could plausibly succeed. Circuit
// refusals are excluded: the breaker already decided to shed load.
func (e *Error) Retryable() bool {
	if errors.Is(e.cause, resilience.ErrCircuitOpen) {
		return false
	}
	return e.Kind == KindNetwork || e.Kind == KindServer
}

// RateLimited reports the upstream's fixed requests-per-minute ceiling being
// hit, so callers can advise waiting instead of blindly failing.
func (e *Error) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// AsError unwraps err to the structured client error, if present.
func AsError(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

func IsNotFound(err error) bool {
	fe, ok := AsError(err)
	return ok && fe.StatusCode == http.StatusNotFound
}

func IsRateLimited(err error) bool {
	fe, ok := AsError(err)
	return ok && fe.RateLimited()
}

func IsCircuitOpen(err error) bool {
	return errors.Is(err, resilience.ErrCircuitOpen)
}

func classifyStatus(status int) ErrorKind {
	switch {
	case status >= 400 && status < 500:
		return KindClient
	case status >= 500 && status < 600:
		return KindServer
	default:
		return KindUnknown
	}
}
