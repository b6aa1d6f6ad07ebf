// Package infra contains infrastructure adapters for the planner context.
package infra

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fd1az/dox-arbitrage/business/planner/domain"
	"github.com/fd1az/dox-arbitrage/internal/logger"
)

// SimulatedExecutor pretends to run a trade. Nothing leaves the process.
type SimulatedExecutor struct {
	delay time.Duration
	log   logger.LoggerInterface
	now   func() time.Time
}

// NewSimulatedExecutor creates an executor that completes after delay.
func NewSimulatedExecutor(delay time.Duration, log logger.LoggerInterface) *SimulatedExecutor {
	return &SimulatedExecutor{
		delay: delay,
		log:   log,
		now:   time.Now,
	}
}

// Execute waits for the configured delay and returns a receipt.
func (e *SimulatedExecutor) Execute(ctx context.Context, form domain.FormState) (*domain.Execution, error) {
	if e.delay > 0 {
		timer := time.NewTimer(e.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	exec := domain.NewExecution(uuid.NewString(), form, e.now())
	e.log.Debug(ctx, "simulated execution", "execution_id", exec.ID, "network", exec.Network)
	return exec, nil
}
