package llm

import (
	"time"

	"newscast/internal/logger"
)

// RateLimiter spaces outbound calls so the request rate stays under a
// configured per-minute ceiling. It records the dispatch time before the
// request is sent, not after the response arrives, which bounds the rate by
// send time and errs toward under-sending when responses are slow.
//
// One limiter serves one run. It holds no lock: the pipeline is strictly
// sequential and exactly one goroutine ever calls Wait.
type RateLimiter struct {
	minInterval time.Duration
	last        time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewRateLimiter returns a limiter enforcing at most requestsPerMinute
// dispatches per minute. Values below 1 are treated as 1.
func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	if requestsPerMinute < 1 {
		requestsPerMinute = 1
	}
	return &RateLimiter{
		minInterval: time.Minute / time.Duration(requestsPerMinute),
		now:         time.Now,
		sleep:       time.Sleep,
	}
}

// Wait blocks until the next dispatch is permitted, then records the
// dispatch time.
func (r *RateLimiter) Wait() {
	if !r.last.IsZero() {
		elapsed := r.now().Sub(r.last)
		if elapsed < r.minInterval {
			wait := r.minInterval - elapsed
			logger.Info("rate limiting before request", "sleep", wait.String())
			r.sleep(wait)
		}
	}
	r.last = r.now()
}
