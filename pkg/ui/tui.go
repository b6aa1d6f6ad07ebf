// Package ui provides the Bubble Tea TUI for the arbitrage planner.
package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	plannerApp "github.com/fd1az/dox-arbitrage/business/planner/app"
	"github.com/fd1az/dox-arbitrage/business/planner/domain"
	suggestionApp "github.com/fd1az/dox-arbitrage/business/suggestion/app"
	suggestionDomain "github.com/fd1az/dox-arbitrage/business/suggestion/domain"
	walletApp "github.com/fd1az/dox-arbitrage/business/wallet/app"
	"github.com/fd1az/dox-arbitrage/internal/apperror"
	"github.com/fd1az/dox-arbitrage/internal/catalog"
	"github.com/fd1az/dox-arbitrage/pkg/ui/components"
)

// Services are the application services the TUI drives.
type Services struct {
	Registry  *catalog.Registry
	Session   *plannerApp.Session
	Requester *suggestionApp.Requester
	Connector *walletApp.Connector
}

// Screen is the view currently shown.
type Screen string

const (
	ScreenLogin Screen = "login"
	ScreenApp   Screen = "app"
	ScreenHelp  Screen = "help"
)

// Focus targets after the form fields.
const (
	focusSuggest = "suggest"
	focusExecute = "execute"
)

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	ctx  context.Context
	svc  Services
	keys KeyMap
	help help.Model

	spinner spinner.Model
	inputs  map[domain.Field]textinput.Model
	// inputErrs holds parse errors of uncommitted text, per field.
	inputErrs map[domain.Field]string

	screen     Screen
	backScreen Screen
	width      int
	height     int
	quitting   bool

	// login
	walletIdx  int
	connecting bool

	// app
	focus         int
	suggesting    bool
	suggestionErr string
	toast         *components.Toast
}

// New creates a new TUI model.
func New(ctx context.Context, svc Services) Model {
	inputs := make(map[domain.Field]textinput.Model)
	for _, f := range domain.Fields {
		if !f.IsNumeric() {
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = "0.00"
		ti.CharLimit = 24
		ti.Width = 18
		inputs[f] = ti
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = MutedValue.Foreground(ColorPrimary)

	m := Model{
		ctx:       ctx,
		svc:       svc,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		inputs:    inputs,
		inputErrs: make(map[domain.Field]string),
		screen:    ScreenLogin,
	}
	if svc.Connector.State().Connected() {
		m.screen = ScreenApp
	}
	m.syncInputs()
	return m
}

// Init initializes the TUI model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.spinner.Tick)
}

// tickCmd returns a command that sends a tick every 100ms.
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// focusTargets lists what tab moves through, in order. The gas budget input only exists
// while no amount is set.
func (m Model) focusTargets() []string {
	snap := m.svc.Session.Snapshot()
	targets := make([]string, 0, len(domain.Fields)+2)
	for _, f := range domain.Fields {
		if f == domain.FieldGasBudget && !snap.Display.ShowGasInput {
			continue
		}
		targets = append(targets, string(f))
	}
	return append(targets, focusSuggest, focusExecute)
}

func (m Model) focused() string {
	targets := m.focusTargets()
	if m.focus >= len(targets) {
		return targets[len(targets)-1]
	}
	return targets[m.focus]
}

// focusedInput returns the numeric field with keyboard focus.
func (m Model) focusedInput() (domain.Field, bool) {
	f := domain.Field(m.focused())
	return f, f.IsNumeric()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.screen {
		case ScreenHelp:
			return m.updateHelp(msg)
		case ScreenLogin:
			return m.updateLogin(msg)
		default:
			return m.updateApp(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case TickMsg:
		if m.toast != nil && m.toast.Expired(time.Now()) {
			m.toast = nil
		}
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case WalletResultMsg:
		m.connecting = false
		if msg.Err == nil && msg.State.Connected() {
			m.screen = ScreenApp
		}

	case SuggestionResultMsg:
		m.suggesting = false
		if msg.Err != nil {
			m.suggestionErr = suggestionMessage(msg.Err)
			return m, nil
		}
		if err := m.svc.Session.ApplySuggestion(msg.Suggestion.Applied()); err != nil {
			m.suggestionErr = apperror.UserMessage(err)
			return m, nil
		}
		m.syncInputs()

	case ExecutionResultMsg:
		if msg.Err != nil {
			m.toast = components.NewToast("Execution Failed", apperror.UserMessage(msg.Err), true, time.Now())
			return m, nil
		}
		m.toast = components.NewToast("Arbitrage Executed! (Simulated)", msg.Execution.Message(), false, time.Now())
	}

	return m, nil
}

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Dismiss), key.Matches(msg, m.keys.Quit):
		m.screen = m.backScreen
	}
	return m, nil
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	wallets := m.svc.Registry.Wallets()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.backScreen, m.screen = m.screen, ScreenHelp
	case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Right):
		if len(wallets) > 0 {
			m.walletIdx = (m.walletIdx + 1) % len(wallets)
		}
	case key.Matches(msg, m.keys.Prev), key.Matches(msg, m.keys.Left):
		if len(wallets) > 0 {
			m.walletIdx = (m.walletIdx - 1 + len(wallets)) % len(wallets)
		}
	case key.Matches(msg, m.keys.Enter):
		if m.connecting || len(wallets) == 0 {
			return m, nil
		}
		m.connecting = true
		return m, m.connectCmd(wallets[m.walletIdx].ID)
	}
	return m, nil
}

func (m Model) updateApp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field, inInput := m.focusedInput()

	switch {
	case key.Matches(msg, m.keys.Next):
		m.commitFocused()
		return m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		m.commitFocused()
		return m.moveFocus(-1)
	case key.Matches(msg, m.keys.Dismiss):
		if inInput {
			m.resetInput(field)
			return m, nil
		}
		if m.suggestionErr != "" {
			m.suggestionErr = ""
		} else {
			m.svc.Session.ClearSuggestion()
		}
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		switch target := m.focused(); {
		case inInput:
			m.commitFocused()
			m.syncInputs()
		case target == focusSuggest:
			return m.startSuggestion()
		case target == focusExecute:
			return m.submit()
		}
		return m, nil
	}

	if inInput {
		var cmd tea.Cmd
		m.inputs[field], cmd = m.inputs[field].Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.backScreen, m.screen = m.screen, ScreenHelp
	case key.Matches(msg, m.keys.Left):
		m.cycle(-1)
	case key.Matches(msg, m.keys.Right):
		m.cycle(1)
	case key.Matches(msg, m.keys.Suggest):
		return m.startSuggestion()
	case key.Matches(msg, m.keys.Execute):
		return m.submit()
	case key.Matches(msg, m.keys.Disconnect):
		if m.svc.Session.Phase() != domain.PhaseSubmitting {
			m.svc.Connector.Disconnect()
			m.screen = ScreenLogin
		}
	}
	return m, nil
}

func (m Model) moveFocus(step int) (tea.Model, tea.Cmd) {
	targets := m.focusTargets()
	n := len(targets)
	m.focus = ((m.focus+step)%n + n) % n

	var cmd tea.Cmd
	for f, ti := range m.inputs {
		if string(f) == targets[m.focus] {
			cmd = ti.Focus()
		} else {
			ti.Blur()
		}
		m.inputs[f] = ti
	}
	return m, cmd
}

// cycle moves the focused selection to the neighbouring catalog option.
func (m *Model) cycle(step int) {
	field := domain.Field(m.focused())
	kind, ok := field.Kind()
	if !ok {
		return
	}
	current := m.svc.Session.Snapshot().Form.Selection(field)
	next := m.svc.Registry.Cycle(kind, current, step)
	if err := m.svc.Session.Set(field, next); err != nil {
		m.toast = components.NewToast("Edit Rejected", apperror.UserMessage(err), true, time.Now())
	}
}

// commitFocused sends the focused input's text through the session.
func (m *Model) commitFocused() {
	field, ok := m.focusedInput()
	if !ok {
		return
	}
	raw := m.inputs[field].Value()
	if raw == amountText(m.svc.Session.Snapshot().Form.AmountOf(field)) {
		return
	}
	if err := m.svc.Session.Set(field, raw); err != nil {
		m.inputErrs[field] = apperror.UserMessage(err)
		return
	}
	delete(m.inputErrs, field)
	m.syncInputs()
}

func (m *Model) resetInput(field domain.Field) {
	ti := m.inputs[field]
	ti.SetValue(amountText(m.svc.Session.Snapshot().Form.AmountOf(field)))
	m.inputs[field] = ti
	delete(m.inputErrs, field)
}

// syncInputs copies committed amounts into every input without focus.
func (m *Model) syncInputs() {
	form := m.svc.Session.Snapshot().Form
	focused, _ := m.focusedInput()
	for f, ti := range m.inputs {
		if f == focused && ti.Focused() {
			continue
		}
		ti.SetValue(amountText(form.AmountOf(f)))
		m.inputs[f] = ti
	}
	// the gas budget row may have disappeared
	if targets := m.focusTargets(); m.focus >= len(targets) {
		m.focus = len(targets) - 1
	}
}

func (m Model) startSuggestion() (tea.Model, tea.Cmd) {
	if m.suggesting || m.svc.Session.Phase() != domain.PhaseIdle {
		return m, nil
	}
	m.commitFocused()
	m.svc.Session.ClearSuggestion()
	m.suggestionErr = ""
	m.suggesting = true

	snap := m.svc.Session.Snapshot()
	ctx, requester := m.ctx, m.svc.Requester
	return m, func() tea.Msg {
		s, err := requester.RequestFor(ctx, snap.Form, snap.Display)
		return SuggestionResultMsg{Suggestion: s, Err: err}
	}
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.commitFocused()

	session := m.svc.Session
	wasExecuted := session.Phase() == domain.PhaseExecuted

	form, ok, err := session.BeginSubmit(m.ctx)
	switch {
	case err != nil:
		if apperror.GetCode(err) != apperror.CodeFormValidationFailed {
			m.toast = components.NewToast("Cannot Execute", apperror.UserMessage(err), true, time.Now())
		}
		return m, nil
	case !ok && wasExecuted:
		m.inputErrs = make(map[domain.Field]string)
		m.suggestionErr = ""
		m.focus = 0
		m.syncInputs()
		m.toast = components.NewToast("Form Reset", "Ready for new arbitrage configuration.", false, time.Now())
		return m, nil
	case !ok:
		return m, nil
	}

	ctx := m.ctx
	return m, func() tea.Msg {
		exec, err := session.Execute(ctx, form)
		return ExecutionResultMsg{Execution: exec, Err: err}
	}
}

func (m Model) connectCmd(walletID string) tea.Cmd {
	ctx, connector := m.ctx, m.svc.Connector
	return func() tea.Msg {
		st, err := connector.Connect(ctx, walletID)
		return WalletResultMsg{State: st, Err: err}
	}
}

// suggestionMessage is the text of the dismissible suggestion error.
func suggestionMessage(err error) string {
	var se *suggestionDomain.SuggestionError
	if errors.As(err, &se) {
		return se.Message
	}
	return suggestionDomain.DefaultErrorMessage
}

func amountText(n decimal.NullDecimal) string {
	if !n.Valid {
		return ""
	}
	return n.Decimal.String()
}

// Program holds the Bubble Tea program instance for external access.
var Program *tea.Program

// Run starts the Bubble Tea program and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, svc Services) error {
	p := tea.NewProgram(New(ctx, svc), tea.WithAltScreen())
	Program = p

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			p.Quit()
		case <-done:
		}
	}()

	_, err := p.Run()
	return err
}
