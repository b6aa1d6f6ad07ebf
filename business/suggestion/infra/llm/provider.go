// Package llm implements the suggestion provider on top of an Anthropic-compatible messages API.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/fd1az/dox-arbitrage/business/suggestion/domain"
	"github.com/fd1az/dox-arbitrage/internal/apperror"
	"github.com/fd1az/dox-arbitrage/internal/circuitbreaker"
	"github.com/fd1az/dox-arbitrage/internal/httpclient"
	"github.com/fd1az/dox-arbitrage/internal/logger"
)

const (
	messagesPath     = "/v1/messages"
	anthropicVersion = "2023-06-01"

	// maxErrorRunes caps upstream error text shown to the user.
	maxErrorRunes = 200
)

// Config holds the provider settings.
type Config struct {
	Endpoint        string
	APIKey          string
	Model           string
	MaxTokens       int
	Timeout         time.Duration
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// Provider asks a language model for a suggestion.
type Provider struct {
	client  httpclient.Client
	cfg     Config
	breaker *circuitbreaker.Breaker[*domain.Suggestion]
	log     logger.LoggerInterface
}

// New creates a Provider. Extra client options are applied after the defaults.
func New(cfg Config, log logger.LoggerInterface, opts ...httpclient.ClientOption) (*Provider, error) {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}

	clientOpts := []httpclient.ClientOption{
		httpclient.WithProviderName("anthropic"),
		httpclient.WithBaseURL(cfg.Endpoint),
		httpclient.WithHeaders(map[string]string{
			"x-api-key":         cfg.APIKey,
			"anthropic-version": anthropicVersion,
		}),
	}
	if cfg.Timeout > 0 {
		clientOpts = append(clientOpts, httpclient.WithRequestTimeout(cfg.Timeout))
	}

	client, err := httpclient.NewInstrumentedClient(append(clientOpts, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create http client: %w", err)
	}

	bcfg := circuitbreaker.DefaultConfig("suggestion-llm")
	if cfg.BreakerFailures > 0 {
		bcfg.ConsecutiveFailures = cfg.BreakerFailures
	}
	if cfg.BreakerCooldown > 0 {
		bcfg.Timeout = cfg.BreakerCooldown
	}
	// a caller giving up is not the upstream's fault
	bcfg.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, context.Canceled)
	}
	bcfg.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn(context.Background(), "circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
	}

	return &Provider{
		client:  client,
		cfg:     cfg,
		breaker: circuitbreaker.New[*domain.Suggestion](bcfg),
		log:     log,
	}, nil
}

func (p *Provider) Name() string {
	return "anthropic"
}

// BreakerState exposes the circuit state for health checks.
func (p *Provider) BreakerState() gobreaker.State {
	return p.breaker.State()
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messagesResponse struct {
	ID         string         `json:"id"`
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Suggest renders the prompt, calls the model and parses its JSON answer.
func (p *Provider) Suggest(ctx context.Context, req domain.Request) (*domain.Suggestion, error) {
	prompt, err := renderPrompt(req)
	if err != nil {
		return nil, apperror.Internal(apperror.CodeInternalError, "render prompt", err)
	}

	return p.breaker.Execute(func() (*domain.Suggestion, error) {
		return p.call(ctx, prompt)
	})
}

func (p *Provider) call(ctx context.Context, prompt string) (*domain.Suggestion, error) {
	body := messagesRequest{
		Model:     p.cfg.Model,
		MaxTokens: p.cfg.MaxTokens,
		System:    systemPrompt,
		Messages:  []message{{Role: "user", Content: prompt}},
	}

	var out messagesResponse
	resp, err := p.client.NewRequest(
		httpclient.WithResponseErrorHandler(handleAPIError),
		httpclient.WithHeadersLogConfig(true, "x-api-key"),
		httpclient.WithLabels(httpclient.Label{Key: "model", Value: p.cfg.Model}),
		httpclient.WithErrorBodyEvent(),
	).
		SetBody(body).
		SetResult(&out).
		Post(ctx, messagesPath)
	if err != nil {
		return nil, err
	}

	text := joinText(out.Content)
	if text == "" {
		return nil, apperror.New(apperror.CodeInvalidSuggestion,
			apperror.WithContext(fmt.Sprintf("empty completion, status %d", resp.StatusCode)))
	}

	s, err := parseSuggestion(text)
	if err != nil {
		p.log.Debug(ctx, "unparseable model answer", "message_id", out.ID, "stop_reason", out.StopReason)
		return nil, apperror.New(apperror.CodeInvalidSuggestion, apperror.WithCause(err))
	}
	return s, nil
}

func handleAPIError(status int, body []byte) error {
	if status < 400 {
		return nil
	}
	var e apiError
	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		msg = e.Error.Message
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	if r := []rune(msg); len(r) > maxErrorRunes {
		msg = string(r[:maxErrorRunes])
	}
	return apperror.New(apperror.CodeModelAPIError,
		apperror.WithMessage("Model API error: "+msg),
		apperror.WithContext(fmt.Sprintf("status %d", status)))
}

func joinText(blocks []contentBlock) string {
	var b strings.Builder
	for _, c := range blocks {
		if c.Type == "text" {
			b.WriteString(c.Text)
		}
	}
	return strings.TrimSpace(b.String())
}

// parseSuggestion pulls the first JSON object out of the model text, tolerating code fences and prose.
func parseSuggestion(text string) (*domain.Suggestion, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, errors.New("no JSON object in model answer")
	}

	var s domain.Suggestion
	if err := json.Unmarshal([]byte(text[start:end+1]), &s); err != nil {
		return nil, fmt.Errorf("decode model answer: %w", err)
	}
	return &s, nil
}
