package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	plannerApp "github.com/fd1az/dox-arbitrage/business/planner/app"
	"github.com/fd1az/dox-arbitrage/business/planner/domain"
	walletDomain "github.com/fd1az/dox-arbitrage/business/wallet/domain"
	"github.com/fd1az/dox-arbitrage/internal/catalog"
	"github.com/fd1az/dox-arbitrage/pkg/ui/components"
)

const (
	appTitle   = "D-0-X Mobile"
	appTagline = "AI-Powered Decentralized Arbitrage Trading"
	disclaimer = "Disclaimer: Trading cryptocurrencies involves significant risk. Use this tool at your own discretion."
)

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return "\n  Goodbye!\n\n"
	}

	var body string
	switch m.screen {
	case ScreenHelp:
		body = m.renderHelp()
	case ScreenLogin:
		body = m.renderLogin()
	default:
		body = m.renderApp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	if m.toast != nil {
		b.WriteString(m.toast.View())
		b.WriteString("\n\n")
	}
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	title := TitleStyle.Render(" " + appTitle + " ")
	tagline := MutedValue.Render(appTagline)

	st := m.svc.Connector.State()
	wallet := StatusDisconnected.Render("○ Not connected")
	if st.Connected() {
		wallet = StatusConnected.Render("● " + st.DisplayAddress())
	}

	return title + "  " + tagline + "  │  " + wallet
}

func (m Model) renderFooter() string {
	var b strings.Builder
	if m.screen == ScreenApp {
		b.WriteString(m.help.View(m.keys))
		b.WriteString("\n")
	}
	b.WriteString(HelpStyle.Render(disclaimer))
	return b.String()
}

func (m Model) renderLogin() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Connect Your Wallet"))
	b.WriteString("\n")
	b.WriteString(MutedValue.Render("  Choose a wallet to start planning arbitrage trades."))
	b.WriteString("\n\n")

	for i, w := range m.svc.Registry.Wallets() {
		style := ButtonStyle
		marker := "  "
		if i == m.walletIdx {
			style = FocusedButtonStyle
			marker = "▸ "
		}
		if m.connecting {
			style = DisabledButtonStyle
		}
		b.WriteString(marker + style.Render(w.Name))
		b.WriteString("\n\n")
	}

	st := m.svc.Connector.State()
	line := components.StatusLine{Message: st.Message, Spinner: m.spinner.View()}
	switch st.Status {
	case walletDomain.StatusConnecting:
		line.Level = components.StatusPending
	case walletDomain.StatusConnected:
		line.Level = components.StatusOK
	case walletDomain.StatusError:
		line.Level = components.StatusFailed
	}
	if v := line.View(); v != "" {
		b.WriteString("  " + v + "\n\n")
	}

	b.WriteString(HelpStyle.Render("↑/↓ choose • enter connect • ? help • q quit"))
	return b.String()
}

func (m Model) renderApp() string {
	snap := m.svc.Session.Snapshot()
	focused := m.focused()

	var form strings.Builder
	form.WriteString(HeaderStyle.Render("Arbitrage Parameters"))
	form.WriteString("\n\n")

	for _, f := range domain.Fields {
		if f == domain.FieldGasBudget {
			continue
		}
		form.WriteString(m.renderField(snap, f, focused == string(f)))
	}

	form.WriteString("\n")
	form.WriteString(m.renderFees(snap, focused))
	form.WriteString("\n")
	form.WriteString(m.renderButtons(snap, focused))

	// width is unknown until the first WindowSizeMsg
	box := BoxStyle
	if m.width > 40 {
		box = box.Width(m.width - 4)
	}

	var b strings.Builder
	b.WriteString(box.Render(form.String()))

	card := components.SuggestionCard{
		Loading: m.suggesting,
		Spinner: m.spinner.View(),
		Error:   m.suggestionErr,
		Width:   m.width,
	}
	if sg := snap.Suggestion; sg != nil && !m.suggesting && m.suggestionErr == "" {
		card.Amount = sg.Amount.String()
		card.Coin = m.svc.Registry.Label(catalog.KindCoin, snap.Form.CoinFrom)
		card.Profit = domain.FormatUSD(sg.Profit)
		card.Profitable = sg.Profit.IsPositive()
		card.Explanation = sg.Explanation
	}
	if !card.Empty() {
		b.WriteString("\n")
		b.WriteString(card.View())
	}
	return b.String()
}

func (m Model) renderField(snap plannerApp.Snapshot, f domain.Field, focused bool) string {
	label := LabelStyle.Render(f.Label())
	if focused {
		label = FocusedLabelStyle.Render("▸ " + f.Label())
	}

	var value string
	if kind, ok := f.Kind(); ok {
		value = m.svc.Registry.Label(kind, snap.Form.Selection(f))
		if focused {
			value = "‹ " + value + " ›"
		}
	} else {
		value = m.inputs[f].View()
	}

	line := label + " " + value + "\n"
	if msg, ok := m.inputErrs[f]; ok {
		line += ErrorText.Render("    "+msg) + "\n"
	} else if msg, ok := snap.Errors.For(f); ok {
		line += ErrorText.Render("    "+msg) + "\n"
	}
	return line
}

// renderFees shows either the gas fee estimate or the budget input, then the profit readout.
func (m Model) renderFees(snap plannerApp.Snapshot, focused string) string {
	var b strings.Builder

	if snap.Display.ShowGasInput {
		b.WriteString(m.renderField(snap, domain.FieldGasBudget, focused == string(domain.FieldGasBudget)))
		b.WriteString(MutedValue.Render("    Enter a budget to get a suggested trade size."))
		b.WriteString("\n")
	} else {
		b.WriteString(LabelStyle.Render("Gas Fee Estimate"))
		b.WriteString(" " + domain.FormatUSD(snap.Display.GasFeeEstimate))
		b.WriteString("\n")
	}

	profit := NegativeValue.Render(domain.FormatUSD(snap.Display.ProfitEstimate))
	if snap.Display.Profitable() {
		profit = PositiveValue.Render(domain.FormatUSD(snap.Display.ProfitEstimate))
	}
	b.WriteString(LabelStyle.Render("Estimated Profit"))
	b.WriteString(" " + profit)
	if snap.Display.FromSuggestion {
		b.WriteString(MutedValue.Render("  (smart suggestion)"))
	}
	b.WriteString("\n")

	if msg, ok := snap.Errors.For(domain.FieldGasBudget); ok && !snap.Display.ShowGasInput {
		b.WriteString(ErrorText.Render("    " + msg))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderButtons(snap plannerApp.Snapshot, focused string) string {
	suggestLabel := "Get Smart Suggestion"
	suggest := ButtonStyle
	if focused == focusSuggest {
		suggest = FocusedButtonStyle
	}
	if m.suggesting || snap.Phase != domain.PhaseIdle {
		suggest = DisabledButtonStyle
	}
	if m.suggesting {
		suggestLabel = "Generating..."
	}

	execute := ButtonStyle
	if focused == focusExecute {
		execute = FocusedButtonStyle
	}
	action := snap.Phase.ActionLabel()
	if snap.Phase == domain.PhaseSubmitting {
		execute = DisabledButtonStyle
		action = m.spinner.View() + " " + action
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		suggest.Render(suggestLabel), "  ", execute.Render(action))
}

func (m Model) renderHelp() string {
	section := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(appTitle + " - DeFi Arbitrage Platform"))
	b.WriteString("\n\n")

	for _, s := range helpSections {
		b.WriteString(section.Render(s.title))
		b.WriteString("\n")
		for _, line := range s.lines {
			b.WriteString(fmt.Sprintf("  %s\n", line))
		}
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("esc or ? to go back"))
	return BoxStyle.Render(b.String())
}

var helpSections = []struct {
	title string
	lines []string
}{
	{"What is " + appTitle + "?", []string{
		"A planning tool for flash-loan arbitrage between decentralized exchanges.",
		"It estimates gas fees and profit for a trade before you commit to it.",
	}},
	{"How it works", []string{
		"1. Connect a wallet.",
		"2. Pick a network, a borrowing protocol and the two exchanges.",
		"3. Choose the token pair and an amount, or a gas fee budget.",
		"4. Review the estimated gas fee and profit, then execute (simulated).",
	}},
	{"Smart Gas Fee System", []string{
		"With no amount entered you can set a gas fee budget instead.",
		"The budget is turned into a suggested trade size: up to $10 → 500,",
		"up to $50 → 2000, above that → 5000.",
		"A smart suggestion asks the strategy assistant for an amount and explanation.",
	}},
	{"Wallet Connection", []string{
		"MetaMask uses an injected provider when one is configured.",
		"Other wallets are simulated and return a placeholder address.",
	}},
	{"Risk Warning", []string{
		"Estimates use a simplified fee model, not live prices or gas oracles.",
		"Nothing here is financial advice.",
	}},
}
