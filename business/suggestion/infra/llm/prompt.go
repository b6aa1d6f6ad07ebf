package llm

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/fd1az/dox-arbitrage/business/suggestion/domain"
)

const systemPrompt = `You are an arbitrage trading strategy assistant for DeFi flash-loan trades. ` +
	`You answer with a single JSON object and nothing else.`

var userPrompt = template.Must(template.New("suggestion").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`A user wants to run an arbitrage trade with these parameters:

Gas Budget (USD): {{.GasBudget}}
Available Liquidity: {{.AvailableLiquidity}}
Token Pair: {{.TokenPair}}
DEXs: {{join .DEXs ", "}}
Borrowing Protocol: {{.BorrowingProtocol}}
Network: {{.Network}}

Suggest a trade amount that maximizes potential profit within the gas budget. Consider the
trade-off between gas costs and profit potential. Also estimate the profit in USD and explain
the strategy briefly.

Respond with JSON only, using exactly these keys:
{"suggestedAmount": <number>, "estimatedProfit": <number>, "strategyExplanation": "<text>"}`))

func renderPrompt(req domain.Request) (string, error) {
	var buf bytes.Buffer
	if err := userPrompt.Execute(&buf, req); err != nil {
		return "", err
	}
	return buf.String(), nil
}
