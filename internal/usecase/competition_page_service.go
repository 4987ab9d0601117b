package usecase

import (
	"context"

	"github.com/sourcegraph/conc"

	"github.com/matchday-dev/matchday/external/footballdata"
	"github.com/matchday-dev/matchday/internal/query"
)

// CompetitionPage is the composed view behind the competition screen. The
// competition itself gates the rest: while it is unresolved or failed, the
// four child sections stay idle.
type CompetitionPage struct {
	Competition Section[*footballdata.Competition] `json:"competition"`
	Standings   Section[[]footballdata.Standing]   `json:"standings"`
	Scorers     Section[[]footballdata.Scorer]     `json:"scorers"`
	Teams       Section[[]footballdata.TeamDetail] `json:"teams"`
	Matches     Section[[]footballdata.Match]      `json:"matches"`
}

type competitionAPI interface {
	Competition(ctx context.Context, code string) (*footballdata.Competition, error)
	Standings(ctx context.Context, code string, opts footballdata.StandingsOptions) (*footballdata.StandingsResponse, error)
	Scorers(ctx context.Context, code string, opts footballdata.ScorersOptions) (*footballdata.ScorersResponse, error)
	CompetitionTeams(ctx context.Context, code string, opts footballdata.CompetitionTeamsOptions) (*footballdata.CompetitionTeamsResponse, error)
	CompetitionMatches(ctx context.Context, code string, opts footballdata.CompetitionMatchesOptions) (*footballdata.MatchesResponse, error)
}

type CompetitionPageService struct {
	api   competitionAPI
	store *query.Store
}

func NewCompetitionPageService(api competitionAPI, store *query.Store) *CompetitionPageService {
	return &CompetitionPageService{api: api, store: store}
}

// Load resolves the competition first, then fans the four children out
// concurrently. Children are independent: a failing sibling never blocks or
// empties the others. A zero season means the current one.
func (s *CompetitionPageService) Load(ctx context.Context, code string, season int, opts PageOptions) CompetitionPage {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionPageService.Load")
	defer span.End()

	page := CompetitionPage{
		Competition: idleSection[*footballdata.Competition](),
		Standings:   idleSection[[]footballdata.Standing](),
		Scorers:     idleSection[[]footballdata.Scorer](),
		Teams:       idleSection[[]footballdata.TeamDetail](),
		Matches:     idleSection[[]footballdata.Match](),
	}

	competition, err := fetchSection(ctx, s.store, keyCompetition(code), query.Stable(), opts, func(ctx context.Context) (*footballdata.Competition, error) {
		return s.api.Competition(ctx, code)
	})
	if err != nil {
		page.Competition = failedSection(competition, WrapUpstream(err))
		return page
	}
	page.Competition = successSection(competition)

	var wg conc.WaitGroup
	wg.Go(func() {
		standings, err := fetchSection(ctx, s.store, keyStandings(code, season), query.Stable(), opts, func(ctx context.Context) ([]footballdata.Standing, error) {
			resp, err := s.api.Standings(ctx, code, footballdata.StandingsOptions{Season: season})
			if err != nil {
				return nil, err
			}
			return resp.Standings, nil
		})
		if err != nil {
			page.Standings = failedSection(standings, WrapUpstream(err))
			return
		}
		page.Standings = successSection(standings)
	})
	wg.Go(func() {
		scorers, err := fetchSection(ctx, s.store, keyScorers(code, season), query.Stable(), opts, func(ctx context.Context) ([]footballdata.Scorer, error) {
			resp, err := s.api.Scorers(ctx, code, footballdata.ScorersOptions{Season: season})
			if err != nil {
				return nil, err
			}
			return resp.Scorers, nil
		})
		if err != nil {
			page.Scorers = failedSection(scorers, WrapUpstream(err))
			return
		}
		page.Scorers = successSection(scorers)
	})
	wg.Go(func() {
		teams, err := fetchSection(ctx, s.store, keyCompetitionTeams(code, season), query.Stable(), opts, func(ctx context.Context) ([]footballdata.TeamDetail, error) {
			resp, err := s.api.CompetitionTeams(ctx, code, footballdata.CompetitionTeamsOptions{Season: season})
			if err != nil {
				return nil, err
			}
			return resp.Teams, nil
		})
		if err != nil {
			page.Teams = failedSection(teams, WrapUpstream(err))
			return
		}
		page.Teams = successSection(teams)
	})
	wg.Go(func() {
		matches, err := fetchSection(ctx, s.store, keyCompetitionMatches(code, season), query.Stable(), opts, func(ctx context.Context) ([]footballdata.Match, error) {
			resp, err := s.api.CompetitionMatches(ctx, code, footballdata.CompetitionMatchesOptions{Season: season})
			if err != nil {
				return nil, err
			}
			return resp.Matches, nil
		})
		if err != nil {
			page.Matches = failedSection(matches, WrapUpstream(err))
			return
		}
		page.Matches = successSection(matches)
	})
	wg.Wait()

	return page
}
