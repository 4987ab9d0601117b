package usecase

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/sourcegraph/conc"

	"github.com/matchday-dev/matchday/external/footballdata"
	"github.com/matchday-dev/matchday/internal/query"
)

const matchDayFormat = "2006-01-02"

type HomePage struct {
	Competitions Section[[]footballdata.Competition] `json:"competitions"`
	Matches      Section[[]footballdata.Match]       `json:"matches"`
}

type homeAPI interface {
	Competitions(ctx context.Context, opts footballdata.CompetitionListOptions) (*footballdata.CompetitionsResponse, error)
	Matches(ctx context.Context, opts footballdata.MatchListOptions) (*footballdata.MatchesResponse, error)
}

type HomePageService struct {
	api   homeAPI
	store *query.Store
	clock clockwork.Clock
}

func NewHomePageService(api homeAPI, store *query.Store, clock clockwork.Clock) *HomePageService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &HomePageService{api: api, store: store, clock: clock}
}

// Load assembles the landing view. The competition list and the day's
// matches have no dependency on each other, so both load concurrently and
// one failing leaves the other intact.
func (s *HomePageService) Load(ctx context.Context, date string, opts PageOptions) HomePage {
	ctx, span := startUsecaseSpan(ctx, "usecase.HomePageService.Load")
	defer span.End()

	if date == "" {
		date = s.clock.Now().UTC().Format(matchDayFormat)
	}

	page := HomePage{
		Competitions: idleSection[[]footballdata.Competition](),
		Matches:      idleSection[[]footballdata.Match](),
	}

	var wg conc.WaitGroup
	wg.Go(func() {
		list, err := fetchSection(ctx, s.store, keyCompetitions(), query.Stable(), opts, func(ctx context.Context) ([]footballdata.Competition, error) {
			resp, err := s.api.Competitions(ctx, footballdata.CompetitionListOptions{})
			if err != nil {
				return nil, err
			}
			return resp.Competitions, nil
		})
		if err != nil {
			page.Competitions = failedSection(list, WrapUpstream(err))
			return
		}
		page.Competitions = successSection(list)
	})
	wg.Go(func() {
		day := date
		matches, err := fetchSection(ctx, s.store, keyMatchesByDate(day), query.Volatile(), opts, func(ctx context.Context) ([]footballdata.Match, error) {
			resp, err := s.api.Matches(ctx, footballdata.MatchListOptions{DateFrom: day, DateTo: day})
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
