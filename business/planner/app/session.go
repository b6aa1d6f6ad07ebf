package app

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/fd1az/dox-arbitrage/business/planner/domain"
	"github.com/fd1az/dox-arbitrage/internal/apm"
	"github.com/fd1az/dox-arbitrage/internal/apperror"
	"github.com/fd1az/dox-arbitrage/internal/catalog"
	"github.com/fd1az/dox-arbitrage/internal/logger"
	"github.com/fd1az/dox-arbitrage/internal/metrics"
)

// Snapshot is a consistent copy of the session for rendering.
type Snapshot struct {
	ID         string                    `json:"id"`
	Form       domain.FormState          `json:"form"`
	Display    domain.DerivedDisplay     `json:"display"`
	Errors     domain.ValidationErrors   `json:"errors,omitempty"`
	Phase      domain.Phase              `json:"phase"`
	Suggestion *domain.AppliedSuggestion `json:"suggestion,omitempty"`
	Execution  *domain.Execution         `json:"execution,omitempty"`
}

// Session owns one trade form and its submission state.
// Every edit recomputes the derived display; edits are refused while a submission is in flight.
type Session struct {
	mu        sync.Mutex
	id        string
	reg       *catalog.Registry
	estimator *Estimator
	executor  Executor
	log       logger.LoggerInterface
	tracer    apm.Tracer

	form    domain.FormState
	display domain.DerivedDisplay
	errors  domain.ValidationErrors
	// validated is set by the first rejected submit; from then on every edit re-validates.
	validated  bool
	phase      domain.Phase
	suggestion *domain.AppliedSuggestion
	execution  *domain.Execution

	submissions metric.Int64Counter
}

// NewSession creates a session populated with the catalog defaults.
func NewSession(reg *catalog.Registry, estimator *Estimator, executor Executor, log logger.LoggerInterface) *Session {
	meter := otel.GetMeterProvider().Meter("planner")

	s := &Session{
		id:          uuid.NewString(),
		reg:         reg,
		estimator:   estimator,
		executor:    executor,
		log:         log,
		tracer:      apm.NewTracer("planner"),
		form:        domain.DefaultFormState(reg),
		submissions: metrics.Counter(meter, "form_submissions_total", "Trade form submissions by outcome"),
	}
	s.recompute()
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

func (s *Session) SetNetwork(v string) error { return s.setSelection(domain.FieldNetwork, v) }
func (s *Session) SetProtocol(v string) error {
	return s.setSelection(domain.FieldBorrowingProtocol, v)
}
func (s *Session) SetDEXFrom(v string) error  { return s.setSelection(domain.FieldDEXFrom, v) }
func (s *Session) SetDEXTo(v string) error    { return s.setSelection(domain.FieldDEXTo, v) }
func (s *Session) SetCoinFrom(v string) error { return s.setSelection(domain.FieldCoinFrom, v) }
func (s *Session) SetCoinTo(v string) error   { return s.setSelection(domain.FieldCoinTo, v) }

func (s *Session) SetAmountFrom(v decimal.NullDecimal) error {
	return s.setAmount(domain.FieldAmountFrom, v)
}

func (s *Session) SetAmountTo(v decimal.NullDecimal) error {
	return s.setAmount(domain.FieldAmountTo, v)
}

// SetGasBudget stores the budget. When neither amount is positive, a positive budget
// also fills both amounts with the suggested trade size for that budget.
func (s *Session) SetGasBudget(v decimal.NullDecimal) error {
	return s.setAmount(domain.FieldGasBudget, v)
}

// Set parses raw user input for field. Selections accept an option id or its label;
// amounts accept a decimal number, and blank input clears the amount.
func (s *Session) Set(field domain.Field, raw string) error {
	if field.IsNumeric() {
		v, err := ParseAmount(raw)
		if err != nil {
			return err
		}
		return s.setAmount(field, v)
	}

	kind, ok := field.Kind()
	if !ok {
		return apperror.Validation(apperror.CodeUnknownField, string(field))
	}

	value, ok := s.resolveOption(kind, raw)
	if !ok {
		return apperror.New(apperror.CodeInvalidSelection,
			apperror.WithContext(string(field)),
			apperror.WithMessage(strings.TrimSpace(raw)+" "+domain.MsgUnsupportedOption))
	}
	return s.setSelection(field, value)
}

// ParseAmount converts user text into an optional amount.
func ParseAmount(raw string) (decimal.NullDecimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, apperror.New(apperror.CodeInvalidAmount,
			apperror.WithContext(raw), apperror.WithCause(err))
	}
	if !domain.AmountInRange(v) {
		return decimal.NullDecimal{}, apperror.New(apperror.CodeInvalidAmount,
			apperror.WithContext(raw), apperror.WithMessage(domain.MsgAmountOutOfRange))
	}
	return domain.Amount(v), nil
}

func (s *Session) resolveOption(kind catalog.Kind, raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	for _, opt := range s.reg.Options(kind) {
		if strings.EqualFold(opt.Value, raw) || strings.EqualFold(opt.Label, raw) {
			return opt.Value, true
		}
	}
	return "", false
}

func (s *Session) setSelection(field domain.Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editable(); err != nil {
		return err
	}

	s.form = s.form.With(field, value)
	s.recompute()
	return nil
}

func (s *Session) setAmount(field domain.Field, v decimal.NullDecimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editable(); err != nil {
		return err
	}

	s.form = s.form.WithAmount(field, v)

	if field == domain.FieldGasBudget && domain.Positive(v) && s.form.NeedsGasBudget() {
		if amount, ok := domain.SuggestAmountForBudget(v.Decimal); ok {
			s.form.AmountFrom = domain.Amount(amount)
			s.form.AmountTo = domain.Amount(amount)
			s.log.Debug(context.Background(), "amounts suggested from gas budget",
				"session_id", s.id, "budget", v.Decimal.String(), "amount", amount.String())
		}
	}

	s.recompute()
	return nil
}

func (s *Session) editable() error {
	if s.phase == domain.PhaseSubmitting {
		return apperror.State(apperror.CodeSubmissionInProgress, s.id)
	}
	return nil
}

// recompute must be called with mu held.
func (s *Session) recompute() {
	s.display = s.estimator.Estimate(context.Background(), s.form)
	if s.validated {
		s.errors = s.form.Validate(s.reg)
	}
}

// BeginSubmit validates the form and moves Idle to Submitting.
// It returns the form to execute. In Executed it resets the session and returns ok=false.
func (s *Session) BeginSubmit(ctx context.Context) (form domain.FormState, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case domain.PhaseSubmitting:
		return domain.FormState{}, false, apperror.State(apperror.CodeSubmissionInProgress, s.id)
	case domain.PhaseExecuted:
		s.reset()
		s.log.Info(ctx, "form reset", "session_id", s.id)
		return domain.FormState{}, false, nil
	}

	errs := s.form.Validate(s.reg)
	s.validated = true
	s.errors = errs
	if len(errs) > 0 {
		s.submissions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "invalid")))
		s.log.Info(ctx, "submission rejected", "session_id", s.id, "errors", len(errs))
		return domain.FormState{}, false, apperror.New(apperror.CodeFormValidationFailed,
			apperror.WithContext(s.id), apperror.WithCause(errs))
	}

	s.phase = domain.PhaseSubmitting
	s.log.Info(ctx, "submission started",
		"session_id", s.id,
		"network", s.form.Network,
		"pair", s.form.TokenPair(),
		"amount", s.display.TradeAmount.String(),
	)
	return s.form, true, nil
}

// CompleteSubmit records the outcome of an execution started by BeginSubmit.
// Success moves to Executed; failure returns to Idle with the form untouched.
func (s *Session) CompleteSubmit(ctx context.Context, exec *domain.Execution, execErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.PhaseSubmitting {
		return apperror.State(apperror.CodeInvalidState, s.phase.String())
	}

	if execErr != nil {
		s.phase = domain.PhaseIdle
		s.submissions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "failed")))
		s.log.Error(ctx, "execution failed", "session_id", s.id, "error", execErr)
		return apperror.New(apperror.CodeExecutionFailed, apperror.WithContext(s.id), apperror.WithCause(execErr))
	}

	s.phase = domain.PhaseExecuted
	s.execution = exec
	s.submissions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "executed")))
	s.log.Info(ctx, "execution completed", "session_id", s.id, "execution_id", exec.ID)
	return nil
}

// Submit runs the whole state machine synchronously. In Executed it resets and returns nil, nil.
func (s *Session) Submit(ctx context.Context) (*domain.Execution, error) {
	form, ok, err := s.BeginSubmit(ctx)
	if err != nil || !ok {
		return nil, err
	}

	return s.Execute(ctx, form)
}

// Execute runs the executor on a form returned by BeginSubmit and completes the submission.
// Callers that render while the trade is processing run it off the UI goroutine.
func (s *Session) Execute(ctx context.Context, form domain.FormState) (*domain.Execution, error) {
	ctx, span := s.tracer.StartSpanFromContext(ctx, "planner.execute")
	defer span.End()
	span.SetAttributes(
		attribute.String("session_id", s.id),
		attribute.String("network", form.Network),
		attribute.String("token_pair", form.TokenPair()),
	)

	exec, execErr := s.executor.Execute(ctx, form)
	if err := s.CompleteSubmit(ctx, exec, execErr); err != nil {
		span.NoticeError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("execution_id", exec.ID))
	return exec, nil
}

// Reset restores the catalog defaults and returns to Idle.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editable(); err != nil {
		return err
	}
	s.reset()
	return nil
}

func (s *Session) reset() {
	s.form = domain.DefaultFormState(s.reg)
	s.validated = false
	s.errors = nil
	s.suggestion = nil
	s.execution = nil
	s.phase = domain.PhaseIdle
	s.recompute()
}

// ApplySuggestion writes the suggested amount into amountFrom and shows the suggested profit
// in place of the computed one until the next edit.
func (s *Session) ApplySuggestion(sg domain.AppliedSuggestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editable(); err != nil {
		return err
	}

	s.form.AmountFrom = domain.Amount(sg.Amount)
	s.recompute()
	s.display.ProfitEstimate = sg.Profit
	s.display.FromSuggestion = true
	s.suggestion = &sg

	s.log.Info(context.Background(), "suggestion applied",
		"session_id", s.id, "amount", sg.Amount.String(), "profit", sg.Profit.String())
	return nil
}

// ClearSuggestion removes the suggestion card. The form keeps the applied amount.
func (s *Session) ClearSuggestion() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.suggestion = nil
	if s.display.FromSuggestion {
		s.recompute()
	}
}

// Phase returns the current submission state.
func (s *Session) Phase() domain.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Errors returns the visible validation errors.
func (s *Session) Errors() domain.ValidationErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(domain.ValidationErrors(nil), s.errors...)
}

// Snapshot copies the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:      s.id,
		Form:    s.form,
		Display: s.display,
		Errors:  append(domain.ValidationErrors(nil), s.errors...),
		Phase:   s.phase,
	}
	if s.suggestion != nil {
		sg := *s.suggestion
		snap.Suggestion = &sg
	}
	if s.execution != nil {
		ex := *s.execution
		snap.Execution = &ex
	}
	return snap
}
