package usecase

import (
	"context"

	"github.com/matchday-dev/matchday/external/footballdata"
	"github.com/matchday-dev/matchday/internal/query"
	"github.com/matchday-dev/matchday/internal/timeline"
)

// headToHeadLimit keeps the mutual-history panel short; the upstream returns
// the most recent encounters first.
const headToHeadLimit = 10

type MatchPage struct {
	Match      Section[*footballdata.Match]              `json:"match"`
	Timeline   Section[[]timeline.Event]                 `json:"timeline"`
	HeadToHead Section[*footballdata.HeadToHeadResponse] `json:"headToHead"`
}

type matchAPI interface {
	Match(ctx context.Context, id int64, opts footballdata.MatchDetailOptions) (*footballdata.Match, error)
	HeadToHead(ctx context.Context, matchID int64, opts footballdata.HeadToHeadOptions) (*footballdata.HeadToHeadResponse, error)
}

type MatchPageService struct {
	api   matchAPI
	store *query.Store
}

func NewMatchPageService(api matchAPI, store *query.Store) *MatchPageService {
	return &MatchPageService{api: api, store: store}
}

// Load fetches the match with every expansion unfolded, derives the timeline
// locally from its event lists, and resolves the head-to-head history. Both
// children gate on the match itself.
func (s *MatchPageService) Load(ctx context.Context, id int64, opts PageOptions) MatchPage {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchPageService.Load")
	defer span.End()

	page := MatchPage{
		Match:      idleSection[*footballdata.Match](),
		Timeline:   idleSection[[]timeline.Event](),
		HeadToHead: idleSection[*footballdata.HeadToHeadResponse](),
	}

	flags := allDetailFlags()
	match, err := fetchSection(ctx, s.store, keyMatch(id, flags), query.Volatile(), opts, func(ctx context.Context) (*footballdata.Match, error) {
		return s.api.Match(ctx, id, flags)
	})
	if err != nil {
		page.Match = failedSection(match, WrapUpstream(err))
		return page
	}
	page.Match = successSection(match)

	// The timeline is a pure merge of the parent's event lists; it cannot
	// fail and costs no extra upstream call.
	page.Timeline = successSection(timeline.FromMatch(match))

	h2h, err := fetchSection(ctx, s.store, keyHeadToHead(id, headToHeadLimit), query.Historical(), opts, func(ctx context.Context) (*footballdata.HeadToHeadResponse, error) {
		return s.api.HeadToHead(ctx, id, footballdata.HeadToHeadOptions{Limit: headToHeadLimit})
	})
	if err != nil {
		page.HeadToHead = failedSection(h2h, WrapUpstream(err))
		return page
	}
	page.HeadToHead = successSection(h2h)

	return page
}
