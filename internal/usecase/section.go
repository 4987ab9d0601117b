package usecase

import "errors"

type SectionState string

const (
	SectionIdle    SectionState = "idle"
	SectionLoading SectionState = "loading"
	SectionSuccess SectionState = "success"
	SectionError   SectionState = "error"
)

// SectionFailure is the wire-safe failure shape surfaced per section: a stable
// code the frontend switches on plus a short message. Full error chains stay
// in the logs.
type SectionFailure struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Section is one independently loaded slice of a page. Data is meaningful in
// the success state, and on an error state it may still carry the last good
// value when one was cached. Children gated on an unresolved parent stay idle.
type Section[T any] struct {
	Data  T             `json:"data,omitempty"`
	Err   *SectionFailure `json:"error,omitempty"`
	State SectionState  `json:"state"`
}

func idleSection[T any]() Section[T] {
	return Section[T]{State: SectionIdle}
}

func successSection[T any](data T) Section[T] {
	return Section[T]{Data: data, State: SectionSuccess}
}

// failedSection keeps whatever value the cache still held so a view can show
// stale data next to the failure.
func failedSection[T any](stale T, err error) Section[T] {
	return Section[T]{Data: stale, Err: sectionFailure(err), State: SectionError}
}

func sectionFailure(err error) *SectionFailure {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidInput):
		return &SectionFailure{Code: "invalid_input", Message: ErrInvalidInput.Error()}
	case errors.Is(err, ErrNotFound):
		return &SectionFailure{Code: "not_found", Message: ErrNotFound.Error()}
	case errors.Is(err, ErrRateLimited):
		return &SectionFailure{Code: "rate_limited", Message: ErrRateLimited.Error()}
	case errors.Is(err, ErrUpstreamUnavailable):
		return &SectionFailure{Code: "upstream_unavailable", Message: ErrUpstreamUnavailable.Error()}
	default:
		return &SectionFailure{Code: "internal", Message: "internal error"}
	}
}
