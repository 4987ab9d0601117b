package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/matchday-dev/matchday/external/footballdata"
	"github.com/matchday-dev/matchday/internal/query"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("resource not found")
	ErrRateLimited         = errors.New("request limit reached")
	ErrUpstreamUnavailable = errors.New("football data temporarily unavailable")
)

// WrapUpstream folds a data-layer failure into the service taxonomy, keeping
// the original chain intact for logs and errors.As callers.
func WrapUpstream(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, query.ErrInvalidKey) || errors.Is(err, query.ErrDisabled) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	fe, ok := footballdata.AsError(err)
	if !ok {
		return err
	}
	switch {
	case fe.RateLimited():
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	case fe.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case fe.Kind == footballdata.KindClient:
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
}
