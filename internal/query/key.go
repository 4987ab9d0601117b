package query

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrInvalidKey = errors.New("invalid query key")

// Key identifies one cacheable upstream request: the resource kind, the
// required identifiers, and every parameter that affects the response body,
// detail-expansion flags included. Two requests that differ only in an
// expansion flag therefore occupy separate cache slots.
type Key struct {
	Kind   string
	Args   []string
	Params url.Values
}

func NewKey(kind string, args ...string) Key {
	return Key{Kind: kind, Args: args}
}

// WithParam returns a copy carrying the extra parameter. Empty values are
// dropped so optional filters never dirty the canonical form.
func (k Key) WithParam(name, value string) Key {
	if strings.TrimSpace(value) == "" {
		return k
	}
	params := make(url.Values, len(k.Params)+1)
	for key, vals := range k.Params {
		params[key] = append([]string(nil), vals...)
	}
	params.Set(name, value)
	k.Params = params
	return k
}

func (k Key) Validate() error {
	if strings.TrimSpace(k.Kind) == "" {
		return fmt.Errorf("%w: kind is required", ErrInvalidKey)
	}
	for i, arg := range k.Args {
		if strings.TrimSpace(arg) == "" {
			return fmt.Errorf("%w: %s argument %d is empty", ErrInvalidKey, k.Kind, i)
		}
	}
	return nil
}

// String renders the canonical cache key. url.Values.Encode sorts parameter
// names, so equal requests always collapse to equal strings.
func (k Key) String() string {
	var sb strings.Builder
	sb.WriteString(k.Kind)
	for _, arg := range k.Args {
		sb.WriteByte('/')
		sb.WriteString(arg)
	}
	if len(k.Params) > 0 {
		sb.WriteByte('?')
		sb.WriteString(k.Params.Encode())
	}
	return sb.String()
}
