// Package simulated stands in for wallets that have no local provider.
package simulated

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// Requester waits, then returns one made-up address of the form 0x<8 hex>...<4 hex>.
type Requester struct {
	delay time.Duration
}

func New(delay time.Duration) *Requester {
	return &Requester{delay: delay}
}

func (r *Requester) RequestAccounts(ctx context.Context) ([]string, error) {
	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return []string{fmt.Sprintf("0x%08x...%04x", rand.Uint32(), rand.Uint32N(1<<16))}, nil
}
