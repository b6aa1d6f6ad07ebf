package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	plannerApp "github.com/fd1az/dox-arbitrage/business/planner/app"
	"github.com/fd1az/dox-arbitrage/business/planner/domain"
	plannerInfra "github.com/fd1az/dox-arbitrage/business/planner/infra"
	suggestionApp "github.com/fd1az/dox-arbitrage/business/suggestion/app"
	"github.com/fd1az/dox-arbitrage/business/suggestion/infra/stub"
	walletApp "github.com/fd1az/dox-arbitrage/business/wallet/app"
	"github.com/fd1az/dox-arbitrage/business/wallet/infra/injected"
	"github.com/fd1az/dox-arbitrage/business/wallet/infra/simulated"
	"github.com/fd1az/dox-arbitrage/internal/catalog"
	"github.com/fd1az/dox-arbitrage/internal/logger"
)

func testServices() Services {
	reg := catalog.DefaultRegistry()
	log := logger.NewNop()
	return Services{
		Registry: reg,
		Session:  plannerApp.NewSession(reg, plannerApp.NewEstimator(), plannerInfra.NewSimulatedExecutor(0, log), log),
		Requester: suggestionApp.NewRequester(stub.New(0), suggestionApp.RequesterConfig{
			Liquidity: decimal.NewFromInt(100000),
		}, log),
		Connector: walletApp.NewConnector(reg, injected.New(""), simulated.New(0), log),
	}
}

func keyMsg(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// send feeds msg to the model and runs the returned command once, feeding its result back.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil {
		return m
	}
	switch out := cmd().(type) {
	case WalletResultMsg, SuggestionResultMsg, ExecutionResultMsg:
		next, _ = m.Update(out)
		m = next.(Model)
	}
	return m
}

func connected(t *testing.T, svc Services) Model {
	t.Helper()
	m := New(context.Background(), svc)
	m = send(t, m, keyMsg(tea.KeyDown)) // WalletConnect is simulated
	m = send(t, m, keyMsg(tea.KeyEnter))
	require.Equal(t, ScreenApp, m.screen)
	return m
}

func focusOn(t *testing.T, m Model, target string) Model {
	t.Helper()
	for i := 0; i < 20 && m.focused() != target; i++ {
		m = send(t, m, keyMsg(tea.KeyTab))
	}
	require.Equal(t, target, m.focused())
	return m
}

func TestLogin_MetaMaskNotFound(t *testing.T) {
	m := New(context.Background(), testServices())
	assert.Equal(t, ScreenLogin, m.screen)

	m = send(t, m, keyMsg(tea.KeyEnter))
	assert.Equal(t, ScreenLogin, m.screen)
	assert.False(t, m.connecting)
	assert.Contains(t, m.View(), "MetaMask not found. Please install the extension.")
}

func TestLogin_SimulatedWalletOpensApp(t *testing.T) {
	svc := testServices()
	m := connected(t, svc)

	view := m.View()
	assert.Contains(t, view, "Arbitrage Parameters")
	assert.Contains(t, view, svc.Connector.State().DisplayAddress())
	assert.Contains(t, view, "Disclaimer: Trading cryptocurrencies involves significant risk.")
}

func TestApp_CycleSelection(t *testing.T) {
	svc := testServices()
	m := connected(t, svc)

	before := svc.Session.Snapshot().Form.Network
	m = send(t, m, keyMsg(tea.KeyRight))
	after := svc.Session.Snapshot().Form.Network

	assert.NotEqual(t, before, after)
	assert.Equal(t, svc.Registry.Cycle(catalog.KindNetwork, before, 1), after)

	send(t, m, keyMsg(tea.KeyLeft))
	assert.Equal(t, before, svc.Session.Snapshot().Form.Network)
}

func TestApp_GasBudgetFillsAmounts(t *testing.T) {
	svc := testServices()
	m := connected(t, svc)
	assert.Contains(t, m.focusTargets(), string(domain.FieldGasBudget))

	m = focusOn(t, m, string(domain.FieldGasBudget))
	m = send(t, m, runes("10"))
	m = send(t, m, keyMsg(tea.KeyEnter))

	form := svc.Session.Snapshot().Form
	assert.True(t, form.AmountFrom.Decimal.Equal(decimal.NewFromInt(500)))
	assert.True(t, form.AmountTo.Decimal.Equal(decimal.NewFromInt(500)))
	assert.NotContains(t, m.focusTargets(), string(domain.FieldGasBudget))
	assert.Equal(t, "500", m.inputs[domain.FieldAmountFrom].Value())
}

func TestApp_InvalidAmountShowsInlineError(t *testing.T) {
	svc := testServices()
	m := connected(t, svc)

	m = focusOn(t, m, string(domain.FieldAmountFrom))
	m = send(t, m, runes("abc"))
	m = send(t, m, keyMsg(tea.KeyEnter))

	_, hasErr := m.inputErrs[domain.FieldAmountFrom]
	assert.True(t, hasErr)
	assert.False(t, svc.Session.Snapshot().Form.AmountFrom.Valid)
}

func TestApp_ExecuteThenReset(t *testing.T) {
	svc := testServices()
	m := connected(t, svc)

	m = focusOn(t, m, string(domain.FieldAmountFrom))
	m = send(t, m, runes("1000"))
	m = focusOn(t, m, focusExecute)

	m = send(t, m, keyMsg(tea.KeyEnter))
	assert.Equal(t, domain.PhaseExecuted, svc.Session.Phase())
	require.NotNil(t, m.toast)
	assert.Equal(t, "Arbitrage Executed! (Simulated)", m.toast.Title)
	assert.Contains(t, m.View(), "Reset")

	m = send(t, m, runes("x"))
	assert.Equal(t, domain.PhaseIdle, svc.Session.Phase())
	require.NotNil(t, m.toast)
	assert.Equal(t, "Form Reset", m.toast.Title)
	assert.False(t, svc.Session.Snapshot().Form.AmountFrom.Valid)
}

func TestApp_SubmitInvalidShowsFieldErrors(t *testing.T) {
	svc := testServices()
	m := connected(t, svc)

	m = send(t, m, runes("x"))
	assert.Equal(t, domain.PhaseIdle, svc.Session.Phase())
	assert.Contains(t, m.View(), domain.MsgAmountOrBudget)
}

func TestApp_SuggestionFlow(t *testing.T) {
	svc := testServices()
	m := connected(t, svc)

	// no budget and no amount: the request is incomplete
	m = send(t, m, runes("s"))
	assert.False(t, m.suggesting)
	assert.Contains(t, m.suggestionErr, "Suggestion request is incomplete")

	m = send(t, m, keyMsg(tea.KeyEsc))
	assert.Empty(t, m.suggestionErr)

	require.NoError(t, svc.Session.SetAmountFrom(domain.Amount(decimal.NewFromInt(1000))))
	m = send(t, m, runes("s"))
	require.Empty(t, m.suggestionErr)

	snap := svc.Session.Snapshot()
	require.NotNil(t, snap.Suggestion)
	assert.True(t, snap.Display.FromSuggestion)
	assert.Contains(t, m.View(), "Smart Arbitrage Suggestion")
	assert.Equal(t, snap.Form.AmountFrom.Decimal.String(), m.inputs[domain.FieldAmountFrom].Value())
}

func TestHelpScreen(t *testing.T) {
	m := connected(t, testServices())

	m = send(t, m, runes("?"))
	assert.Equal(t, ScreenHelp, m.screen)
	assert.Contains(t, m.View(), "Smart Gas Fee System")

	m = send(t, m, keyMsg(tea.KeyEsc))
	assert.Equal(t, ScreenApp, m.screen)
}

func TestDisconnectReturnsToLogin(t *testing.T) {
	svc := testServices()
	m := connected(t, svc)

	m = send(t, m, runes("d"))
	assert.Equal(t, ScreenLogin, m.screen)
	assert.False(t, svc.Connector.State().Connected())
}
