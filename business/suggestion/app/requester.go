package app

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	planner "github.com/fd1az/dox-arbitrage/business/planner/domain"
	"github.com/fd1az/dox-arbitrage/business/suggestion/domain"
	"github.com/fd1az/dox-arbitrage/internal/apm"
	"github.com/fd1az/dox-arbitrage/internal/apperror"
	"github.com/fd1az/dox-arbitrage/internal/logger"
	"github.com/fd1az/dox-arbitrage/internal/metrics"
	"github.com/fd1az/dox-arbitrage/internal/ratelimit"
)

// RequesterConfig holds the requester settings.
type RequesterConfig struct {
	Timeout           time.Duration
	Liquidity         decimal.Decimal
	RequestsPerMinute int
}

// Requester sends one suggestion request at a time and turns every failure into a
// *domain.SuggestionError. It never retries.
type Requester struct {
	provider  Provider
	limiter   *ratelimit.Limiter
	timeout   time.Duration
	liquidity decimal.Decimal
	log       logger.LoggerInterface
	tracer    apm.Tracer

	inFlight atomic.Bool

	requests metric.Int64Counter
	latency  metric.Float64Histogram
}

// NewRequester creates a Requester around provider.
func NewRequester(provider Provider, cfg RequesterConfig, log logger.LoggerInterface) *Requester {
	meter := otel.GetMeterProvider().Meter("suggestion")

	var limiter *ratelimit.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = ratelimit.New(cfg.RequestsPerMinute)
	}

	return &Requester{
		provider:  provider,
		limiter:   limiter,
		timeout:   cfg.Timeout,
		liquidity: cfg.Liquidity,
		log:       log,
		tracer:    apm.NewTracer("suggestion"),
		requests:  metrics.Counter(meter, "suggestion_requests_total", "Smart suggestion requests by outcome"),
		latency:   metrics.Histogram(meter, "suggestion_latency_ms", "Smart suggestion round trip", "ms"),
	}
}

// ProviderName names the backing provider.
func (r *Requester) ProviderName() string {
	return r.provider.Name()
}

// Liquidity is the available liquidity sent with form-built requests.
func (r *Requester) Liquidity() decimal.Decimal {
	return r.liquidity
}

// InFlight reports whether a request is pending.
func (r *Requester) InFlight() bool {
	return r.inFlight.Load()
}

// RequestFor builds a request from the form and sends it.
func (r *Requester) RequestFor(ctx context.Context, form planner.FormState, display planner.DerivedDisplay) (*domain.Suggestion, error) {
	return r.Request(ctx, domain.NewRequest(form, display, r.liquidity))
}

// Request validates and sends req. A second call while one is pending fails immediately.
func (r *Requester) Request(ctx context.Context, req domain.Request) (*domain.Suggestion, error) {
	if !r.inFlight.CompareAndSwap(false, true) {
		return nil, r.fail(ctx, "in_flight", apperror.New(apperror.CodeSuggestionInFlight))
	}
	defer r.inFlight.Store(false)

	requestID := uuid.NewString()
	ctx, span := r.tracer.StartSpanFromContext(ctx, "suggestion.request")
	defer span.End()
	span.SetAttributes(
		attribute.String("request_id", requestID),
		attribute.String("provider", r.provider.Name()),
		attribute.String("network", req.Network),
		attribute.String("token_pair", req.TokenPair),
	)

	if err := req.Validate(); err != nil {
		span.NoticeError(err)
		return nil, r.fail(ctx, "invalid_request", apperror.New(apperror.CodeInvalidRequest,
			apperror.WithMessage("Suggestion request is incomplete: "+err.Error()),
			apperror.WithCause(err)))
	}

	if r.limiter != nil && !r.limiter.Allow() {
		return nil, r.fail(ctx, "rate_limited", apperror.New(apperror.CodeRateLimitExceeded,
			apperror.WithMessage("Too many suggestion requests, please wait a moment"),
			apperror.WithKind(apperror.KindSuggestion)))
	}

	callCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	r.log.Info(ctx, "requesting suggestion",
		"request_id", requestID,
		"provider", r.provider.Name(),
		"gas_budget", req.GasBudget.String(),
		"token_pair", req.TokenPair,
	)

	start := time.Now()
	s, err := r.provider.Suggest(callCtx, req)
	elapsed := float64(time.Since(start).Milliseconds())
	r.latency.Record(ctx, elapsed, metric.WithAttributes(attribute.String("provider", r.provider.Name())))

	if err != nil {
		span.NoticeError(err)
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, r.fail(ctx, "timeout", apperror.New(apperror.CodeSuggestionTimeout, apperror.WithCause(err)))
		}
		return nil, r.fail(ctx, "failed", err)
	}

	if err := s.Validate(); err != nil {
		span.NoticeError(err)
		return nil, r.fail(ctx, "invalid_response", apperror.New(apperror.CodeInvalidSuggestion, apperror.WithCause(err)))
	}

	r.requests.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "ok")))
	r.log.Info(ctx, "suggestion received",
		"request_id", requestID,
		"amount", s.SuggestedAmount.String(),
		"profit", s.EstimatedProfit.String(),
		"latency_ms", elapsed,
	)
	return s, nil
}

func (r *Requester) fail(ctx context.Context, outcome string, err error) *domain.SuggestionError {
	r.requests.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	r.log.Warn(ctx, "suggestion failed", "outcome", outcome, "error", err)

	var se *domain.SuggestionError
	if errors.As(err, &se) {
		return se
	}
	return domain.NewSuggestionError(userMessage(err), err)
}

// userMessage picks the text shown for err. Foreign errors get the generic message.
func userMessage(err error) string {
	if !apperror.IsAppError(err) {
		return domain.DefaultErrorMessage
	}
	switch apperror.GetCode(err) {
	case apperror.CodeCircuitOpen, apperror.CodeCircuitHalfOpen:
		return "The suggestion service is temporarily unavailable. Please try again later."
	}
	return apperror.UserMessage(err)
}
