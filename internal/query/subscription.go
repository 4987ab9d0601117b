package query

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/matchday-dev/matchday/internal/platform/logging"
)

// Update is one poll result delivered to subscribers. Slow consumers only
// ever see the latest update; intermediate ones are dropped.
type Update struct {
	Value any
	Err   error
	At    time.Time
}

// Poller owns the background refresh loops for volatile keys. One loop runs
// per key while at least one subscriber holds it; the loop stops the moment
// the last subscriber detaches. Tick work executes on a shared bounded pool
// so a burst of slow upstream calls cannot spawn unbounded goroutines.
type Poller struct {
	store  *Store
	pool   *ants.Pool
	logger *logging.Logger

	mu    sync.Mutex
	loops map[string]*pollLoop
}

type PollerConfig struct {
	// Workers bounds concurrent poll refreshes. Zero picks 4.
	Workers int
	Logger  *logging.Logger
}

func NewPoller(store *Store, cfg PollerConfig) (*Poller, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create poller pool: %w", err)
	}

	return &Poller{
		store:  store,
		pool:   pool,
		logger: logger,
		loops:  make(map[string]*pollLoop),
	}, nil
}

// Close stops every loop, closes subscriber channels, and releases the pool.
func (p *Poller) Close() {
	p.mu.Lock()
	loops := make([]*pollLoop, 0, len(p.loops))
	for _, loop := range p.loops {
		loops = append(loops, loop)
	}
	p.loops = make(map[string]*pollLoop)
	p.mu.Unlock()

	for _, loop := range loops {
		loop.mu.Lock()
		for sub := range loop.subs {
			close(sub.ch)
		}
		loop.subs = make(map[*Subscription]struct{})
		loop.mu.Unlock()

		loop.cancel()
		<-loop.done
	}
	p.pool.Release()
}

// Subscribe attaches a consumer to the key's poll loop, starting it on first
// use. Every tick forces a refetch through the store, so subscribers and
// regular Do callers share one cache slot and one in-flight fetch.
func Subscribe[T any](p *Poller, key Key, opts Options, fn FetchFunc[T]) (*Subscription, error) {
	run := func(ctx context.Context) (any, error) {
		return Refetch(ctx, p.store, key, opts, fn)
	}
	return p.subscribe(key, opts, run)
}

func (p *Poller) subscribe(key Key, opts Options, run func(context.Context) (any, error)) (*Subscription, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if opts.PollEvery <= 0 {
		return nil, fmt.Errorf("subscribe %s: poll interval required", key.Kind)
	}

	ks := key.String()

	p.mu.Lock()
	defer p.mu.Unlock()

	loop, ok := p.loops[ks]
	if !ok {
		// The first subscriber's interval wins for the lifetime of the loop.
		ctx, cancel := context.WithCancel(context.Background())
		loop = &pollLoop{
			poller:   p,
			ks:       ks,
			interval: opts.PollEvery,
			run:      run,
			subs:     make(map[*Subscription]struct{}),
			cancel:   cancel,
			done:     make(chan struct{}),
		}
		p.loops[ks] = loop
		go loop.poll(ctx)
	}

	sub := &Subscription{loop: loop, ch: make(chan Update, 1)}
	loop.mu.Lock()
	loop.subs[sub] = struct{}{}
	loop.mu.Unlock()
	return sub, nil
}

func (p *Poller) removeLoop(ks string, loop *pollLoop) {
	p.mu.Lock()
	loop.mu.Lock()
	empty := len(loop.subs) == 0
	loop.mu.Unlock()
	if empty {
		if cur, ok := p.loops[ks]; ok && cur == loop {
			delete(p.loops, ks)
		}
	}
	p.mu.Unlock()

	// A subscriber that raced in keeps the loop; only a truly empty one stops.
	if empty {
		loop.cancel()
	}
}

type pollLoop struct {
	poller   *Poller
	ks       string
	interval time.Duration
	run      func(context.Context) (any, error)
	cancel   context.CancelFunc
	done     chan struct{}

	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func (l *pollLoop) poll(ctx context.Context) {
	defer close(l.done)

	ticker := l.poller.store.clock.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if err := l.poller.pool.Submit(func() { l.refresh(ctx) }); err != nil {
				l.poller.logger.Warn("poll refresh rejected", "key", l.ks, "error", err)
			}
		}
	}
}

func (l *pollLoop) refresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	value, err := l.run(ctx)
	if err != nil {
		l.poller.logger.Warn("poll refresh failed", "key", l.ks, "error", err)
	}
	l.broadcast(Update{Value: value, Err: err, At: l.poller.store.clock.Now()})
}

func (l *pollLoop) broadcast(u Update) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for sub := range l.subs {
		sub.push(u)
	}
}

func (l *pollLoop) detach(sub *Subscription) {
	l.mu.Lock()
	if _, attached := l.subs[sub]; attached {
		delete(l.subs, sub)
		close(sub.ch)
	}
	remaining := len(l.subs)
	l.mu.Unlock()

	if remaining == 0 {
		l.poller.removeLoop(l.ks, l)
	}
}

// Subscription is one consumer's handle on a polled key.
type Subscription struct {
	loop      *pollLoop
	ch        chan Update
	closeOnce sync.Once
}

// Updates yields poll results. The channel closes on Close.
func (s *Subscription) Updates() <-chan Update {
	return s.ch
}

// Close detaches the subscriber; the key's loop stops when nobody is left.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() { s.loop.detach(s) })
}

// push delivers latest-wins: a full buffer is drained before writing so a
// stalled consumer never blocks the loop.
func (s *Subscription) push(u Update) {
	select {
	case s.ch <- u:
		return
	default:
	}
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- u:
	default:
	}
}
