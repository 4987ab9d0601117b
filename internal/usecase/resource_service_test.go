package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/matchday-dev/matchday/external/footballdata"
)

type stubResourceAPI struct {
	standingsErr error
	teamErr      error

	competitionsCalls atomic.Int32
	standingsCalls    atomic.Int32
	matchesCalls      atomic.Int32
	matchCalls        atomic.Int32
	h2hCalls          atomic.Int32
	teamCalls         atomic.Int32

	gotStandingsOpts footballdata.StandingsOptions
	gotMatchesOpts   footballdata.MatchListOptions
}

func (s *stubResourceAPI) Competitions(_ context.Context, _ footballdata.CompetitionListOptions) (*footballdata.CompetitionsResponse, error) {
	s.competitionsCalls.Add(1)
	return &footballdata.CompetitionsResponse{
		Count:        1,
		Competitions: []footballdata.Competition{{ID: 2014, Code: "PD", Name: "Primera Division"}},
	}, nil
}

func (s *stubResourceAPI) Standings(_ context.Context, code string, opts footballdata.StandingsOptions) (*footballdata.StandingsResponse, error) {
	s.standingsCalls.Add(1)
	s.gotStandingsOpts = opts
	if s.standingsErr != nil {
		return nil, s.standingsErr
	}
	return &footballdata.StandingsResponse{
		Standings: []footballdata.Standing{{Stage: "REGULAR_SEASON", Type: footballdata.StandingTypeTotal}},
	}, nil
}

func (s *stubResourceAPI) Matches(_ context.Context, opts footballdata.MatchListOptions) (*footballdata.MatchesResponse, error) {
	s.matchesCalls.Add(1)
	s.gotMatchesOpts = opts
	return &footballdata.MatchesResponse{Matches: []footballdata.Match{{ID: 498012, Status: footballdata.StatusTimed}}}, nil
}

func (s *stubResourceAPI) Match(_ context.Context, id int64, _ footballdata.MatchDetailOptions) (*footballdata.Match, error) {
	s.matchCalls.Add(1)
	return &footballdata.Match{ID: id, Status: footballdata.StatusInPlay}, nil
}

func (s *stubResourceAPI) HeadToHead(_ context.Context, matchID int64, _ footballdata.HeadToHeadOptions) (*footballdata.HeadToHeadResponse, error) {
	s.h2hCalls.Add(1)
	return &footballdata.HeadToHeadResponse{Matches: []footballdata.Match{{ID: matchID - 1}}}, nil
}

func (s *stubResourceAPI) Team(_ context.Context, id int64) (*footballdata.TeamDetail, error) {
	s.teamCalls.Add(1)
	if s.teamErr != nil {
		return nil, s.teamErr
	}
	return &footballdata.TeamDetail{Team: footballdata.Team{ID: id, Name: "Real Madrid CF", TLA: "RMA"}}, nil
}

func (s *stubResourceAPI) TeamMatches(_ context.Context, _ int64, _ footballdata.TeamMatchesOptions) (*footballdata.MatchesResponse, error) {
	return &footballdata.MatchesResponse{Matches: []footballdata.Match{{ID: 610000, Status: footballdata.StatusFinished}}}, nil
}

func TestResourceService_MatchesDefaultsToToday(t *testing.T) {
	t.Parallel()

	api := &stubResourceAPI{}
	clock := clockwork.NewFakeClockAt(time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC))
	service := NewResourceService(api, newPageStore(t), clock)

	matches, err := service.Matches(context.Background(), footballdata.MatchListOptions{}, PageOptions{})
	if err != nil {
		t.Fatalf("matches: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if api.gotMatchesOpts.DateFrom != "2026-08-26" || api.gotMatchesOpts.DateTo != "2026-08-26" {
		t.Fatalf("expected today's range, got %+v", api.gotMatchesOpts)
	}
}

func TestResourceService_SharesCacheSlotWithPages(t *testing.T) {
	t.Parallel()

	api := &stubResourceAPI{}
	store := newPageStore(t)
	service := NewResourceService(api, store, clockwork.NewFakeClockAt(time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC)))
	teamPage := NewTeamPageService(api, store)

	if _, err := service.Team(context.Background(), 86, PageOptions{}); err != nil {
		t.Fatalf("team: %v", err)
	}
	page := teamPage.Load(context.Background(), 86, PageOptions{})
	if page.Team.State != SectionSuccess {
		t.Fatalf("team section: %+v", page.Team)
	}
	if got := api.teamCalls.Load(); got != 1 {
		t.Fatalf("expected the page load to reuse the cached team, got %d calls", got)
	}
}

func TestResourceService_FilteredStandingsUseSeparateSlot(t *testing.T) {
	t.Parallel()

	api := &stubResourceAPI{}
	service := NewResourceService(api, newPageStore(t), nil)

	if _, err := service.Standings(context.Background(), "PD", footballdata.StandingsOptions{Season: 2026}, PageOptions{}); err != nil {
		t.Fatalf("standings: %v", err)
	}
	if _, err := service.Standings(context.Background(), "PD", footballdata.StandingsOptions{Season: 2026, Matchday: 3}, PageOptions{}); err != nil {
		t.Fatalf("filtered standings: %v", err)
	}

	if got := api.standingsCalls.Load(); got != 2 {
		t.Fatalf("expected 2 upstream calls for distinct filters, got %d", got)
	}
	if api.gotStandingsOpts.Matchday != 3 {
		t.Fatalf("expected matchday filter to pass through, got %+v", api.gotStandingsOpts)
	}
}

func TestResourceService_WrapsNotFound(t *testing.T) {
	t.Parallel()

	api := &stubResourceAPI{teamErr: upstreamNotFound("team 999")}
	service := NewResourceService(api, newPageStore(t), nil)

	_, err := service.Team(context.Background(), 999, PageOptions{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResourceService_InvalidIDNeverTouchesNetwork(t *testing.T) {
	t.Parallel()

	api := &stubResourceAPI{}
	service := NewResourceService(api, newPageStore(t), nil)

	_, err := service.Team(context.Background(), 0, PageOptions{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if got := api.teamCalls.Load(); got != 0 {
		t.Fatalf("expected no upstream call, got %d", got)
	}
}

func TestResourceService_ForceRefreshBypassesFreshness(t *testing.T) {
	t.Parallel()

	api := &stubResourceAPI{}
	service := NewResourceService(api, newPageStore(t), nil)

	if _, err := service.Competitions(context.Background(), PageOptions{}); err != nil {
		t.Fatalf("competitions: %v", err)
	}
	if _, err := service.Competitions(context.Background(), PageOptions{}); err != nil {
		t.Fatalf("competitions cached: %v", err)
	}
	if got := api.competitionsCalls.Load(); got != 1 {
		t.Fatalf("expected the second call to hit the cache, got %d", got)
	}

	if _, err := service.Competitions(context.Background(), PageOptions{ForceRefresh: true}); err != nil {
		t.Fatalf("competitions refresh: %v", err)
	}
	if got := api.competitionsCalls.Load(); got != 2 {
		t.Fatalf("expected force refresh to hit upstream, got %d calls", got)
	}
}
