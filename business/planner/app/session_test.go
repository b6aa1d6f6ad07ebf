package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/dox-arbitrage/business/planner/domain"
	"github.com/fd1az/dox-arbitrage/internal/apperror"
	"github.com/fd1az/dox-arbitrage/internal/catalog"
	"github.com/fd1az/dox-arbitrage/internal/logger"
)

type fakeExecutor struct {
	mu    sync.Mutex
	calls int
	err   error
	// release, when set, blocks Execute until closed.
	release chan struct{}
}

func (f *fakeExecutor) Execute(ctx context.Context, form domain.FormState) (*domain.Execution, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return domain.NewExecution("exec-1", form, time.Unix(0, 0)), nil
}

func newTestSession(exec Executor) *Session {
	return NewSession(catalog.DefaultRegistry(), NewEstimator(), exec, logger.NewNop())
}

func num(s string) decimal.NullDecimal {
	return domain.Amount(decimal.RequireFromString(s))
}

func TestSession_Defaults(t *testing.T) {
	s := newTestSession(&fakeExecutor{})
	snap := s.Snapshot()

	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, "ethereum", snap.Form.Network)
	assert.Equal(t, "USDT", snap.Form.CoinFrom)
	assert.Equal(t, "USDC", snap.Form.CoinTo)
	assert.True(t, snap.Display.ShowGasInput)
	assert.Equal(t, domain.PhaseIdle, snap.Phase)
	assert.Empty(t, snap.Errors)
}

func TestSession_EditRecomputes(t *testing.T) {
	s := newTestSession(&fakeExecutor{})

	require.NoError(t, s.SetAmountFrom(num("1000")))
	snap := s.Snapshot()
	assert.Equal(t, "$53.00", domain.FormatUSD(snap.Display.GasFeeEstimate))
	assert.Equal(t, "$-3.00", domain.FormatUSD(snap.Display.ProfitEstimate))

	require.NoError(t, s.SetNetwork("polygon"))
	require.NoError(t, s.SetDEXFrom("sushiswap"))
	require.NoError(t, s.SetDEXTo("curve"))
	require.NoError(t, s.SetAmountFrom(num("2000")))
	snap = s.Snapshot()
	assert.Equal(t, "$5.00", domain.FormatUSD(snap.Display.GasFeeEstimate))
	assert.Equal(t, "$55.00", domain.FormatUSD(snap.Display.ProfitEstimate))
}

func TestSession_GasBudgetSuggestsAmounts(t *testing.T) {
	tests := []struct {
		budget string
		want   string
	}{
		{"10", "500"},
		{"10.01", "2000"},
		{"50", "2000"},
		{"50.01", "5000"},
	}

	for _, tt := range tests {
		t.Run(tt.budget, func(t *testing.T) {
			s := newTestSession(&fakeExecutor{})
			require.NoError(t, s.SetGasBudget(num(tt.budget)))

			snap := s.Snapshot()
			assert.True(t, snap.Form.AmountFrom.Decimal.Equal(decimal.RequireFromString(tt.want)))
			assert.True(t, snap.Form.AmountTo.Decimal.Equal(decimal.RequireFromString(tt.want)))
			assert.False(t, snap.Display.ShowGasInput)
		})
	}
}

func TestSession_GasBudgetKeepsExistingAmounts(t *testing.T) {
	s := newTestSession(&fakeExecutor{})
	require.NoError(t, s.SetAmountTo(num("300")))
	require.NoError(t, s.SetGasBudget(num("60")))

	snap := s.Snapshot()
	assert.False(t, snap.Form.AmountFrom.Valid)
	assert.True(t, snap.Form.AmountTo.Decimal.Equal(decimal.NewFromInt(300)))
}

func TestSession_GasBudgetNonPositiveDoesNotSuggest(t *testing.T) {
	s := newTestSession(&fakeExecutor{})
	require.NoError(t, s.SetGasBudget(num("0")))

	snap := s.Snapshot()
	assert.False(t, snap.Form.AmountFrom.Valid)
	assert.True(t, snap.Display.ShowGasInput)
}

func TestSession_Set(t *testing.T) {
	s := newTestSession(&fakeExecutor{})

	require.NoError(t, s.Set(domain.FieldNetwork, "Binance Smart Chain"))
	require.NoError(t, s.Set(domain.FieldCoinTo, "eth"))
	require.NoError(t, s.Set(domain.FieldAmountFrom, " 12.5 "))
	require.NoError(t, s.Set(domain.FieldAmountTo, ""))

	snap := s.Snapshot()
	assert.Equal(t, "bsc", snap.Form.Network)
	assert.Equal(t, "ETH", snap.Form.CoinTo)
	assert.True(t, snap.Form.AmountFrom.Decimal.Equal(decimal.RequireFromString("12.5")))
	assert.False(t, snap.Form.AmountTo.Valid)

	err := s.Set(domain.FieldAmountFrom, "abc")
	assert.Equal(t, apperror.CodeInvalidAmount, apperror.GetCode(err))
	assert.Equal(t, apperror.KindValidation, apperror.GetKind(err))

	err = s.Set(domain.FieldDEXFrom, "doxswap")
	assert.Equal(t, apperror.CodeInvalidSelection, apperror.GetCode(err))

	err = s.Set(domain.Field("slippage"), "1")
	assert.Equal(t, apperror.CodeUnknownField, apperror.GetCode(err))
}

func TestSession_RejectsOversizedAmounts(t *testing.T) {
	s := newTestSession(&fakeExecutor{})
	require.NoError(t, s.Set(domain.FieldAmountFrom, "250"))

	for _, raw := range []string{"1e99999999", "1E99999999", "-1e99999999", "1e-99999999", "10000000000000000"} {
		done := make(chan error, 1)
		go func() { done <- s.Set(domain.FieldAmountFrom, raw) }()

		select {
		case err := <-done:
			assert.Equal(t, apperror.CodeInvalidAmount, apperror.GetCode(err), raw)
			assert.Equal(t, domain.MsgAmountOutOfRange, apperror.UserMessage(err), raw)
		case <-time.After(time.Second):
			t.Fatalf("Set(%q) did not return", raw)
		}
	}

	snap := s.Snapshot()
	assert.True(t, snap.Form.AmountFrom.Decimal.Equal(decimal.NewFromInt(250)))
	assert.True(t, snap.Display.TradeAmount.Equal(decimal.NewFromInt(250)))
	assert.NotEmpty(t, domain.FormatUSD(snap.Display.ProfitEstimate))
}

func TestSession_SubmitLifecycle(t *testing.T) {
	exec := &fakeExecutor{}
	s := newTestSession(exec)
	ctx := context.Background()

	require.NoError(t, s.SetAmountFrom(num("1000")))

	receipt, err := s.Submit(ctx)
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, "Trade for 1000 USDT processed.", receipt.Message())
	assert.Equal(t, domain.PhaseExecuted, s.Phase())

	// Executed: submit resets.
	receipt, err = s.Submit(ctx)
	require.NoError(t, err)
	assert.Nil(t, receipt)

	snap := s.Snapshot()
	assert.Equal(t, domain.PhaseIdle, snap.Phase)
	assert.False(t, snap.Form.AmountFrom.Valid)
	assert.Nil(t, snap.Execution)
	assert.Equal(t, 1, exec.calls)
}

func TestSession_SubmitRejectsInvalidForm(t *testing.T) {
	exec := &fakeExecutor{}
	s := newTestSession(exec)

	_, err := s.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperror.CodeFormValidationFailed, apperror.GetCode(err))
	assert.Equal(t, domain.PhaseIdle, s.Phase())
	assert.Zero(t, exec.calls)

	msg, ok := s.Errors().For(domain.FieldAmountFrom)
	require.True(t, ok)
	assert.Equal(t, domain.MsgAmountOrBudget, msg)

	// errors follow edits once a submit was attempted
	require.NoError(t, s.SetAmountFrom(num("1")))
	assert.Empty(t, s.Errors())
}

func TestSession_SubmitRejectsSameCoinsAndDEXs(t *testing.T) {
	s := newTestSession(&fakeExecutor{})
	require.NoError(t, s.SetAmountFrom(num("10")))
	require.NoError(t, s.SetCoinTo("USDT"))
	require.NoError(t, s.SetDEXTo("uniswap"))

	_, err := s.Submit(context.Background())
	require.Error(t, err)

	errs := s.Errors()
	_, coinErr := errs.For(domain.FieldCoinTo)
	_, dexErr := errs.For(domain.FieldDEXTo)
	assert.True(t, coinErr)
	assert.True(t, dexErr)
}

func TestSession_SingleSubmissionInFlight(t *testing.T) {
	exec := &fakeExecutor{release: make(chan struct{})}
	s := newTestSession(exec)
	ctx := context.Background()
	require.NoError(t, s.SetAmountFrom(num("100")))

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(ctx)
		done <- err
	}()

	require.Eventually(t, func() bool { return s.Phase() == domain.PhaseSubmitting }, time.Second, time.Millisecond)

	_, err := s.Submit(ctx)
	assert.Equal(t, apperror.CodeSubmissionInProgress, apperror.GetCode(err))
	assert.Equal(t, apperror.CodeSubmissionInProgress, apperror.GetCode(s.SetAmountFrom(num("5"))))
	assert.Error(t, s.Reset())

	close(exec.release)
	require.NoError(t, <-done)
	assert.Equal(t, domain.PhaseExecuted, s.Phase())
	assert.Equal(t, 1, exec.calls)
}

func TestSession_ExecutionFailureReturnsToIdle(t *testing.T) {
	s := newTestSession(&fakeExecutor{err: errors.New("node unreachable")})
	require.NoError(t, s.SetAmountFrom(num("100")))

	_, err := s.Submit(context.Background())
	assert.Equal(t, apperror.CodeExecutionFailed, apperror.GetCode(err))

	snap := s.Snapshot()
	assert.Equal(t, domain.PhaseIdle, snap.Phase)
	assert.True(t, snap.Form.AmountFrom.Decimal.Equal(decimal.NewFromInt(100)))
}

func TestSession_CompleteWithoutBegin(t *testing.T) {
	s := newTestSession(&fakeExecutor{})
	err := s.CompleteSubmit(context.Background(), nil, nil)
	assert.Equal(t, apperror.CodeInvalidState, apperror.GetCode(err))
}

func TestSession_ApplySuggestion(t *testing.T) {
	s := newTestSession(&fakeExecutor{})
	require.NoError(t, s.SetGasBudget(num("25")))

	require.NoError(t, s.ApplySuggestion(domain.AppliedSuggestion{
		Amount:      decimal.NewFromInt(1500),
		Profit:      decimal.RequireFromString("42.5"),
		Explanation: "Split across both pools.",
	}))

	snap := s.Snapshot()
	assert.True(t, snap.Form.AmountFrom.Decimal.Equal(decimal.NewFromInt(1500)))
	assert.True(t, snap.Display.ProfitEstimate.Equal(decimal.RequireFromString("42.5")))
	assert.True(t, snap.Display.FromSuggestion)
	require.NotNil(t, snap.Suggestion)
	assert.Equal(t, "Split across both pools.", snap.Suggestion.Explanation)

	// the next edit drops the override but keeps the card
	require.NoError(t, s.SetNetwork("arbitrum"))
	snap = s.Snapshot()
	assert.False(t, snap.Display.FromSuggestion)
	assert.True(t, snap.Display.ProfitEstimate.Equal(domain.Estimate(snap.Form).ProfitEstimate))
	assert.NotNil(t, snap.Suggestion)

	s.ClearSuggestion()
	assert.Nil(t, s.Snapshot().Suggestion)
}

func TestSession_ResetClearsEverything(t *testing.T) {
	s := newTestSession(&fakeExecutor{})
	require.NoError(t, s.SetNetwork("base"))
	require.NoError(t, s.SetAmountTo(num("9")))
	require.NoError(t, s.ApplySuggestion(domain.AppliedSuggestion{Amount: decimal.NewFromInt(1)}))

	require.NoError(t, s.Reset())

	snap := s.Snapshot()
	assert.Equal(t, domain.DefaultFormState(catalog.DefaultRegistry()).Network, snap.Form.Network)
	assert.False(t, snap.Form.AmountTo.Valid)
	assert.Nil(t, snap.Suggestion)
	assert.Empty(t, snap.Errors)
}
