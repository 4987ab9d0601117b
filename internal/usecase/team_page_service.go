package usecase

import (
	"context"

	"github.com/matchday-dev/matchday/external/footballdata"
	"github.com/matchday-dev/matchday/internal/query"
)

const teamMatchesLimit = 20

type TeamPage struct {
	Team    Section[*footballdata.TeamDetail] `json:"team"`
	Matches Section[[]footballdata.Match]     `json:"matches"`
}

type teamAPI interface {
	Team(ctx context.Context, id int64) (*footballdata.TeamDetail, error)
	TeamMatches(ctx context.Context, id int64, opts footballdata.TeamMatchesOptions) (*footballdata.MatchesResponse, error)
}

type TeamPageService struct {
	api   teamAPI
	store *query.Store
}

func NewTeamPageService(api teamAPI, store *query.Store) *TeamPageService {
	return &TeamPageService{api: api, store: store}
}

// Load resolves the team first; its fixture list only fires once the team
// exists.
func (s *TeamPageService) Load(ctx context.Context, id int64, opts PageOptions) TeamPage {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamPageService.Load")
	defer span.End()

	page := TeamPage{
		Team:    idleSection[*footballdata.TeamDetail](),
		Matches: idleSection[[]footballdata.Match](),
	}

	team, err := fetchSection(ctx, s.store, keyTeam(id), query.Stable(), opts, func(ctx context.Context) (*footballdata.TeamDetail, error) {
		return s.api.Team(ctx, id)
	})
	if err != nil {
		page.Team = failedSection(team, WrapUpstream(err))
		return page
	}
	page.Team = successSection(team)

	matches, err := fetchSection(ctx, s.store, keyTeamMatches(id, teamMatchesLimit), query.Stable(), opts, func(ctx context.Context) ([]footballdata.Match, error) {
		resp, err := s.api.TeamMatches(ctx, id, footballdata.TeamMatchesOptions{Limit: teamMatchesLimit})
		if err != nil {
			return nil, err
		}
		return resp.Matches, nil
	})
	if err != nil {
		page.Matches = failedSection(matches, WrapUpstream(err))
		return page
	}
	page.Matches = successSection(matches)

	return page
}
