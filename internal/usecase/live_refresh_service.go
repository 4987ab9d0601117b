package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"

	"github.com/matchday-dev/matchday/external/footballdata"
	"github.com/matchday-dev/matchday/internal/platform/logging"
	"github.com/matchday-dev/matchday/internal/query"
)

type liveAPI interface {
	Matches(ctx context.Context, opts footballdata.MatchListOptions) (*footballdata.MatchesResponse, error)
}

// LiveRefreshService keeps the live slice of the cache warm. While running it
// holds a subscription on the current day's match list, which shares a cache
// slot with the home page, and watches match statuses across polls. A match
// crossing into a finished state drops its cached detail plus every standings
// and scorers entry, so the next page load shows the settled result.
type LiveRefreshService struct {
	api    liveAPI
	store  *query.Store
	poller *query.Poller
	clock  clockwork.Clock
	logger *logging.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewLiveRefreshService(api liveAPI, store *query.Store, poller *query.Poller, clock clockwork.Clock, logger *logging.Logger) *LiveRefreshService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LiveRefreshService{api: api, store: store, poller: poller, clock: clock, logger: logger}
}

// Start launches the watcher. It returns an error when already running or
// when the first subscription cannot be established.
func (s *LiveRefreshService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return errors.New("live refresh already running")
	}

	day := s.clock.Now().UTC().Format(matchDayFormat)
	sub, err := s.subscribeDay(day, query.PollToday)
	if err != nil {
		return errors.Wrap(err, "subscribe live matches")
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	go s.run(ctx, day, sub, done)
	return nil
}

// Stop detaches the subscription and waits for the watcher to exit. Safe to
// call when never started.
func (s *LiveRefreshService) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *LiveRefreshService) subscribeDay(day string, poll time.Duration) (*query.Subscription, error) {
	opts := query.Volatile()
	opts.PollEvery = poll
	return query.Subscribe(s.poller, keyMatchesByDate(day), opts, func(ctx context.Context) ([]footballdata.Match, error) {
		resp, err := s.api.Matches(ctx, footballdata.MatchListOptions{DateFrom: day, DateTo: day})
		if err != nil {
			return nil, err
		}
		return resp.Matches, nil
	})
}

func (s *LiveRefreshService) run(ctx context.Context, day string, sub *query.Subscription, done chan struct{}) {
	defer close(done)
	defer func() { sub.Close() }()

	seen := make(map[int64]footballdata.MatchStatus)
	poll := query.PollToday
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-sub.Updates():
			if !ok {
				return
			}
			if u.Err != nil {
				s.logger.Warn("live poll failed", "day", day, "error", u.Err)
				continue
			}
			matches, ok := u.Value.([]footballdata.Match)
			if !ok {
				continue
			}
			s.applyTransitions(seen, matches)

			// The cadence tightens while a match is in play; past
			// midnight UTC the watched key moves to the new day.
			today := s.clock.Now().UTC().Format(matchDayFormat)
			want := pollCadence(matches)
			if today == day && want == poll {
				continue
			}
			// The first subscriber's interval owns a loop, so a
			// cadence change on the same key needs the old loop
			// torn down before resubscribing.
			sub.Close()
			next, err := s.subscribeDay(today, want)
			if err != nil {
				s.logger.Warn("live resubscribe failed", "day", today, "error", err)
				return
			}
			sub = next
			poll = want
			if today != day {
				day = today
				clear(seen)
			}
		}
	}
}

// pollCadence picks the subscription interval for the day's match list: the
// tight live interval while any match runs, the relaxed one otherwise.
func pollCadence(matches []footballdata.Match) time.Duration {
	for _, m := range matches {
		if footballdata.IsLiveStatus(m.Status) {
			return query.PollLive
		}
	}
	return query.PollToday
}

// applyTransitions compares the poll against the last known status per match.
// Only a tracked match moving into a finished state triggers invalidation; a
// match first observed as finished was settled all along.
func (s *LiveRefreshService) applyTransitions(seen map[int64]footballdata.MatchStatus, matches []footballdata.Match) {
	for _, m := range matches {
		prev, tracked := seen[m.ID]
		seen[m.ID] = m.Status
		if !tracked || prev == m.Status {
			continue
		}
		if footballdata.IsFinishedStatus(m.Status) && !footballdata.IsFinishedStatus(prev) {
			s.settle(m)
		}
	}
}

func (s *LiveRefreshService) settle(m footballdata.Match) {
	s.store.Invalidate(keyMatch(m.ID, allDetailFlags()))
	s.store.InvalidateKind(kindStandings)
	s.store.InvalidateKind(kindScorers)
	s.logger.Info("match finished, dropped derived caches", "match_id", m.ID)
}
