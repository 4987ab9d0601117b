package query

import (
	"errors"
	"testing"
)

func TestKey_StringIsCanonical(t *testing.T) {
	t.Parallel()

	a := NewKey("competitions/matches", "PD").
		WithParam("season", "2026").
		WithParam("status", "FINISHED")
	b := NewKey("competitions/matches", "PD").
		WithParam("status", "FINISHED").
		WithParam("season", "2026")

	if a.String() != b.String() {
		t.Fatalf("expected order-independent keys, got %q vs %q", a.String(), b.String())
	}
	if want := "competitions/matches/PD?season=2026&status=FINISHED"; a.String() != want {
		t.Fatalf("expected %q, got %q", want, a.String())
	}
}

func TestKey_ExpansionFlagsChangeTheKey(t *testing.T) {
	t.Parallel()

	plain := NewKey("matches/detail", "499231")
	unfolded := plain.WithParam("lineups", "true")

	if plain.String() == unfolded.String() {
		t.Fatal("expected expansion flag to produce a distinct cache key")
	}
	if len(plain.Params) != 0 {
		t.Fatal("expected WithParam to copy, not mutate, the original key")
	}
}

func TestKey_WithParamDropsEmptyValues(t *testing.T) {
	t.Parallel()

	key := NewKey("matches").WithParam("date", "").WithParam("status", "  ")
	if got := key.String(); got != "matches" {
		t.Fatalf("expected bare kind, got %q", got)
	}
}

func TestKey_Validate(t *testing.T) {
	t.Parallel()

	if err := NewKey("matches", "499231").Validate(); err != nil {
		t.Fatalf("expected valid key, got %v", err)
	}

	if err := (Key{}).Validate(); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey for empty kind, got %v", err)
	}

	if err := NewKey("matches", "").Validate(); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey for empty argument, got %v", err)
	}
}
