package app

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/fd1az/dox-arbitrage/business/planner/domain"
	"github.com/fd1az/dox-arbitrage/internal/metrics"
)

// Estimator derives the display values of a form.
type Estimator struct {
	recomputations metric.Int64Counter
}

// NewEstimator creates an Estimator reporting to the global meter provider.
func NewEstimator() *Estimator {
	meter := otel.GetMeterProvider().Meter("planner")
	return &Estimator{
		recomputations: metrics.Counter(meter, "estimate_recomputations_total", "Number of fee and profit recomputations"),
	}
}

// Estimate computes trade amount, gas fee and profit for the form.
func (e *Estimator) Estimate(ctx context.Context, form domain.FormState) domain.DerivedDisplay {
	display := domain.Estimate(form)

	e.recomputations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("network", form.Network),
		attribute.Bool("budget_mode", display.ShowGasInput),
	))

	return display
}
