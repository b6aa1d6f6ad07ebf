// Package app contains the wallet connection use case.
package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/fd1az/dox-arbitrage/business/wallet/domain"
	"github.com/fd1az/dox-arbitrage/internal/apm"
	"github.com/fd1az/dox-arbitrage/internal/apperror"
	"github.com/fd1az/dox-arbitrage/internal/catalog"
	"github.com/fd1az/dox-arbitrage/internal/logger"
	"github.com/fd1az/dox-arbitrage/internal/metrics"
)

// Connector connects one wallet at a time and keeps the resulting state.
// Injected wallets go through the injected requester, every other wallet through the simulated one.
type Connector struct {
	reg       *catalog.Registry
	injected  AccountRequester
	simulated AccountRequester
	log       logger.LoggerInterface
	tracer    apm.Tracer

	mu         sync.RWMutex
	state      domain.State
	connecting atomic.Bool

	connects metric.Int64Counter
}

// NewConnector creates a Connector.
func NewConnector(reg *catalog.Registry, injected, simulated AccountRequester, log logger.LoggerInterface) *Connector {
	meter := otel.GetMeterProvider().Meter("wallet")
	return &Connector{
		reg:       reg,
		injected:  injected,
		simulated: simulated,
		log:       log,
		tracer:    apm.NewTracer("wallet"),
		connects:  metrics.Counter(meter, "wallet_connect_total", "Wallet connection attempts by provider and outcome"),
	}
}

// State returns the current connection state.
func (c *Connector) State() domain.State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// begin claims the single connection slot and publishes the connecting state.
func (c *Connector) begin(walletID string) (domain.State, error) {
	w, ok := c.reg.Wallet(walletID)
	if !ok {
		return c.State(), apperror.Validation(apperror.CodeWalletUnknown, walletID)
	}
	if !c.connecting.CompareAndSwap(false, true) {
		return c.State(), apperror.New(apperror.CodeWalletConnectionInFlight)
	}

	st := domain.Connecting(domain.ProviderName(w.Name))
	c.set(st)
	return st, nil
}

// Connect requests accounts from walletID and records the outcome. The returned error carries
// a wallet error code; the returned state always holds the message to show.
func (c *Connector) Connect(ctx context.Context, walletID string) (domain.State, error) {
	if _, err := c.begin(walletID); err != nil {
		return c.State(), err
	}
	defer c.connecting.Store(false)

	w, _ := c.reg.Wallet(walletID)
	name := domain.ProviderName(w.Name)

	requester := c.simulated
	if w.Injected {
		requester = c.injected
	}

	ctx, span := c.tracer.StartSpanFromContext(ctx, "wallet.connect")
	defer span.End()
	span.SetAttributes(
		attribute.String("provider", w.ID),
		attribute.Bool("injected", w.Injected),
	)

	c.log.Info(ctx, "connecting wallet", "provider", w.ID, "injected", w.Injected)

	accounts, err := requester.RequestAccounts(ctx)
	if err == nil && len(accounts) == 0 {
		err = domain.ErrNoAccounts
	}
	if err != nil {
		span.NoticeError(err)
		st := domain.Failed(name, err)
		c.set(st)
		c.record(ctx, w.ID, outcome(err))
		c.log.Warn(ctx, "wallet connection failed", "provider", w.ID, "error", err)
		return st, walletError(err)
	}

	st := domain.ConnectedTo(name, accounts[0])
	c.set(st)
	c.record(ctx, w.ID, "ok")
	c.log.Info(ctx, "wallet connected", "provider", w.ID, "address", st.DisplayAddress())
	return st, nil
}

// Disconnect forgets the connected account.
func (c *Connector) Disconnect() {
	c.set(domain.State{})
}

func (c *Connector) set(st domain.State) {
	c.mu.Lock()
	c.state = st
	c.mu.Unlock()
}

func (c *Connector) record(ctx context.Context, provider, result string) {
	c.connects.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("outcome", result),
	))
}

func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrProviderNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUserRejected):
		return "rejected"
	case errors.Is(err, domain.ErrNoAccounts):
		return "no_accounts"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "failed"
	}
}

func walletError(err error) error {
	code := apperror.CodeWalletConnectionFailed
	switch {
	case errors.Is(err, domain.ErrProviderNotFound):
		code = apperror.CodeWalletProviderNotFound
	case errors.Is(err, domain.ErrNoAccounts):
		code = apperror.CodeWalletNoAccounts
	}
	return apperror.New(code, apperror.WithCause(err))
}
