package resilience

import "time"

// Backoff yields retry delays that double per attempt: Base, 2*Base, 4*Base,
// never exceeding Cap. The zero value behaves as {1s, 30s}.
type Backoff struct {
	Base time.Duration
	Cap  time.Duration
}

func (b Backoff) Delay(attempt int) time.Duration {
	base := b.Base
	if base <= 0 {
		base = time.Second
	}
	cap := b.Cap
	if cap <= 0 {
		cap = 30 * time.Second
	}
	if attempt < 0 {
		attempt = 0
	}
	if attempt > 30 {
		return cap
	}

	delay := base << uint(attempt)
	if delay <= 0 || delay > cap {
		return cap
	}
	return delay
}
