// Package ratelimit throttles user-triggered calls to slow upstreams.
package ratelimit

import "golang.org/x/time/rate"

// Limiter wraps rate.Limiter.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a limiter allowing requestsPerMinute, with a burst of a tenth of that (at least one).
func New(requestsPerMinute int) *Limiter {
	rps := float64(requestsPerMinute) / 60.0
	burst := requestsPerMinute / 10
	if burst < 1 {
		burst = 1
	}

	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Allow reports whether a call may happen now. It never blocks.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
