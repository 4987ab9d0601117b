package query

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/matchday-dev/matchday/internal/platform/resilience"
)

// Store is the process-wide query cache: key → last fetched value plus the
// bookkeeping that keeps concurrent fetches honest. It is built and injected
// explicitly so every test can own an isolated instance with a fake clock.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry

	flight resilience.SingleFlight
	clock  clockwork.Clock

	defaultCacheTime time.Duration
	gcInterval       time.Duration

	stopGC   chan struct{}
	stopOnce sync.Once
}

type entry struct {
	kind      string
	value     any
	hasValue  bool
	fetchedAt time.Time
	expiresAt time.Time
	// generation counts invalidations; a fetch that began before an
	// Invalidate must not commit over the newer state.
	generation uint64
}

type StoreConfig struct {
	// Clock defaults to the wall clock; tests inject clockwork fakes.
	Clock clockwork.Clock
	// DefaultCacheTime is the retention for writes whose Options carry none.
	DefaultCacheTime time.Duration
	// GCInterval is the sweep cadence for expired entries. Zero picks one
	// minute; negative disables the sweeper.
	GCInterval time.Duration
}

func NewStore(cfg StoreConfig) *Store {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	cacheTime := cfg.DefaultCacheTime
	if cacheTime <= 0 {
		cacheTime = DefaultCacheTime
	}
	gcInterval := cfg.GCInterval
	if gcInterval == 0 {
		gcInterval = time.Minute
	}

	s := &Store{
		entries:          make(map[string]*entry),
		clock:            clock,
		defaultCacheTime: cacheTime,
		gcInterval:       gcInterval,
		stopGC:           make(chan struct{}),
	}
	if gcInterval > 0 {
		go s.sweepLoop()
	}
	return s
}

// Close stops the background sweeper. Safe to call more than once.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stopGC) })
}

// Lookup reports the cached value for the key, whether it is still fresh for
// the given staleness window, and whether it exists at all. Expired entries
// are treated as absent.
func (s *Store) Lookup(key Key, staleTime time.Duration) (any, bool, bool) {
	ks := key.String()
	now := s.clock.Now()

	s.mu.RLock()
	e, ok := s.entries[ks]
	if !ok || !e.hasValue || now.After(e.expiresAt) {
		s.mu.RUnlock()
		return nil, false, false
	}
	value := e.value
	age := now.Sub(e.fetchedAt)
	s.mu.RUnlock()

	return value, age < staleTime, true
}

// Write stores a value unconditionally, bypassing generation checks. It is
// the entry point for pre-warmed data; fetch results go through commit.
func (s *Store) Write(key Key, value any, cacheTime time.Duration) {
	ks := key.String()
	now := s.clock.Now()
	if cacheTime <= 0 {
		cacheTime = s.defaultCacheTime
	}

	s.mu.Lock()
	gen := uint64(0)
	if prev, ok := s.entries[ks]; ok {
		gen = prev.generation
	}
	s.entries[ks] = &entry{
		kind:       key.Kind,
		value:      value,
		hasValue:   true,
		fetchedAt:  now,
		expiresAt:  now.Add(cacheTime),
		generation: gen,
	}
	s.mu.Unlock()
}

// Invalidate drops the cached value and bumps the key's generation so that
// any fetch already in flight cannot commit a stale result. New callers are
// also detached from that in-flight call.
func (s *Store) Invalidate(key Key) {
	ks := key.String()
	now := s.clock.Now()

	s.mu.Lock()
	if e, ok := s.entries[ks]; ok {
		e.value = nil
		e.hasValue = false
		e.generation++
		e.expiresAt = now.Add(s.defaultCacheTime)
	}
	s.mu.Unlock()

	s.flight.Forget(ks)
}

// InvalidateKind invalidates every entry of one resource kind, e.g. all
// cached standings after a match finishes.
func (s *Store) InvalidateKind(kind string) {
	now := s.clock.Now()

	s.mu.Lock()
	var keys []string
	for ks, e := range s.entries {
		if e.kind != kind {
			continue
		}
		e.value = nil
		e.hasValue = false
		e.generation++
		e.expiresAt = now.Add(s.defaultCacheTime)
		keys = append(keys, ks)
	}
	s.mu.Unlock()

	for _, ks := range keys {
		s.flight.Forget(ks)
	}
}

// Len reports the number of live entries, tombstones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// begin captures the key's generation before a fetch starts.
func (s *Store) begin(ks string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entries[ks]; ok {
		return e.generation
	}
	return 0
}

// commit writes a fetch result unless the key was invalidated since begin.
// It reports whether the write happened.
func (s *Store) commit(key Key, gen uint64, value any, cacheTime time.Duration) bool {
	ks := key.String()
	now := s.clock.Now()
	if cacheTime <= 0 {
		cacheTime = s.defaultCacheTime
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[ks]; ok && e.generation != gen {
		return false
	}
	s.entries[ks] = &entry{
		kind:       key.Kind,
		value:      value,
		hasValue:   true,
		fetchedAt:  now,
		expiresAt:  now.Add(cacheTime),
		generation: gen,
	}
	return true
}

func (s *Store) sweepLoop() {
	ticker := s.clock.NewTicker(s.gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopGC:
			return
		case <-ticker.Chan():
			s.removeExpired(s.clock.Now())
		}
	}
}

func (s *Store) removeExpired(now time.Time) {
	s.mu.Lock()
	for ks, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, ks)
		}
	}
	s.mu.Unlock()
}
