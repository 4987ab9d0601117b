package usecase

import (
	"context"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/matchday-dev/matchday/external/footballdata"
	"github.com/matchday-dev/matchday/internal/query"
)

type resourceAPI interface {
	Competitions(ctx context.Context, opts footballdata.CompetitionListOptions) (*footballdata.CompetitionsResponse, error)
	Standings(ctx context.Context, code string, opts footballdata.StandingsOptions) (*footballdata.StandingsResponse, error)
	Matches(ctx context.Context, opts footballdata.MatchListOptions) (*footballdata.MatchesResponse, error)
	Match(ctx context.Context, id int64, opts footballdata.MatchDetailOptions) (*footballdata.Match, error)
	HeadToHead(ctx context.Context, matchID int64, opts footballdata.HeadToHeadOptions) (*footballdata.HeadToHeadResponse, error)
	Team(ctx context.Context, id int64) (*footballdata.TeamDetail, error)
}

// ResourceService backs the single-resource passthrough endpoints. It runs
// every call through the same store and, where the filters line up, the same
// keys the page services use, so a page load and a direct resource fetch
// share one cache slot instead of racing each other to the upstream.
type ResourceService struct {
	api   resourceAPI
	store *query.Store
	clock clockwork.Clock
}

func NewResourceService(api resourceAPI, store *query.Store, clock clockwork.Clock) *ResourceService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ResourceService{api: api, store: store, clock: clock}
}

func (s *ResourceService) Competitions(ctx context.Context, opts PageOptions) ([]footballdata.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResourceService.Competitions")
	defer span.End()

	list, err := fetchSection(ctx, s.store, keyCompetitions(), query.Stable(), opts, func(ctx context.Context) ([]footballdata.Competition, error) {
		resp, err := s.api.Competitions(ctx, footballdata.CompetitionListOptions{})
		if err != nil {
			return nil, err
		}
		return resp.Competitions, nil
	})
	if err != nil {
		return nil, WrapUpstream(err)
	}
	return list, nil
}

func (s *ResourceService) Standings(ctx context.Context, code string, sopts footballdata.StandingsOptions, opts PageOptions) ([]footballdata.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResourceService.Standings")
	defer span.End()

	key := keyStandings(code, sopts.Season).
		WithParam("matchday", intArg(sopts.Matchday)).
		WithParam("date", sopts.Date)
	standings, err := fetchSection(ctx, s.store, key, query.Stable(), opts, func(ctx context.Context) ([]footballdata.Standing, error) {
		resp, err := s.api.Standings(ctx, code, sopts)
		if err != nil {
			return nil, err
		}
		return resp.Standings, nil
	})
	if err != nil {
		return nil, WrapUpstream(err)
	}
	return standings, nil
}

// Matches lists matches for one day, defaulting to today when the caller
// gives no range. An unfiltered request for today lands on the exact key the
// home page keeps warm.
func (s *ResourceService) Matches(ctx context.Context, lopts footballdata.MatchListOptions, opts PageOptions) ([]footballdata.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResourceService.Matches")
	defer span.End()

	if lopts.DateFrom == "" && lopts.DateTo == "" {
		day := s.clock.Now().UTC().Format(matchDayFormat)
		lopts.DateFrom, lopts.DateTo = day, day
	}

	key := keyMatchesByDate(lopts.DateFrom).
		WithParam("dateTo", differingDateTo(lopts)).
		WithParam("status", string(lopts.Status)).
		WithParam("competitions", strings.Join(lopts.Competitions, ","))
	matches, err := fetchSection(ctx, s.store, key, query.Volatile(), opts, func(ctx context.Context) ([]footballdata.Match, error) {
		resp, err := s.api.Matches(ctx, lopts)
		if err != nil {
			return nil, err
		}
		return resp.Matches, nil
	})
	if err != nil {
		return nil, WrapUpstream(err)
	}
	return matches, nil
}

func (s *ResourceService) Match(ctx context.Context, id int64, dopts footballdata.MatchDetailOptions, opts PageOptions) (*footballdata.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResourceService.Match")
	defer span.End()

	match, err := fetchSection(ctx, s.store, keyMatch(id, dopts), query.Volatile(), opts, func(ctx context.Context) (*footballdata.Match, error) {
		return s.api.Match(ctx, id, dopts)
	})
	if err != nil {
		return nil, WrapUpstream(err)
	}
	return match, nil
}

func (s *ResourceService) HeadToHead(ctx context.Context, matchID int64, hopts footballdata.HeadToHeadOptions, opts PageOptions) (*footballdata.HeadToHeadResponse, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResourceService.HeadToHead")
	defer span.End()

	key := keyHeadToHead(matchID, hopts.Limit).
		WithParam("dateFrom", hopts.DateFrom).
		WithParam("dateTo", hopts.DateTo).
		WithParam("competitions", strings.Join(hopts.Competitions, ","))
	h2h, err := fetchSection(ctx, s.store, key, query.Historical(), opts, func(ctx context.Context) (*footballdata.HeadToHeadResponse, error) {
		return s.api.HeadToHead(ctx, matchID, hopts)
	})
	if err != nil {
		return nil, WrapUpstream(err)
	}
	return h2h, nil
}

func (s *ResourceService) Team(ctx context.Context, id int64, opts PageOptions) (*footballdata.TeamDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResourceService.Team")
	defer span.End()

	team, err := fetchSection(ctx, s.store, keyTeam(id), query.Stable(), opts, func(ctx context.Context) (*footballdata.TeamDetail, error) {
		return s.api.Team(ctx, id)
	})
	if err != nil {
		return nil, WrapUpstream(err)
	}
	return team, nil
}

// differingDateTo keeps single-day keys canonical: dateTo only shows up in
// the key when it widens the range past dateFrom.
func differingDateTo(opts footballdata.MatchListOptions) string {
	if opts.DateTo == opts.DateFrom {
		return ""
	}
	return opts.DateTo
}
