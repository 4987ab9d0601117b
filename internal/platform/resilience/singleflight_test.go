package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	var g SingleFlight
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			_, err, _ := g.Do("matches?date=2026-08-26", func() (any, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	var g SingleFlight
	var counter int32

	var wg sync.WaitGroup
	for _, key := range []string{"competitions/PD", "competitions/PL"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			_, _, shared := g.Do(key, func() (any, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(10 * time.Millisecond)
				return key, nil
			})
			if shared {
				t.Errorf("key %q unexpectedly joined another call", key)
			}
		}(key)
	}
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 2 {
		t.Fatalf("expected one call per key, got %d", got)
	}
}

func TestSingleFlight_ForgetStartsFreshCall(t *testing.T) {
	var g SingleFlight
	var counter int32

	firstStarted := make(chan struct{})
	release := make(chan struct{})

	go func() {
		g.Do("teams/81", func() (any, error) {
			atomic.AddInt32(&counter, 1)
			close(firstStarted)
			<-release
			return "old", nil
		})
	}()

	<-firstStarted
	g.Forget("teams/81")

	done := make(chan struct{})
	go func() {
		defer close(done)
		val, _, shared := g.Do("teams/81", func() (any, error) {
			atomic.AddInt32(&counter, 1)
			return "new", nil
		})
		if shared {
			t.Error("expected a fresh call after Forget")
		}
		if val != "new" {
			t.Errorf("expected new result, got %v", val)
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second call still blocked after Forget")
	}
	close(release)
}
