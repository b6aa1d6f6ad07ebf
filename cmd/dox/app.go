package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/fd1az/dox-arbitrage/business/planner"
	plannerDI "github.com/fd1az/dox-arbitrage/business/planner/di"
	"github.com/fd1az/dox-arbitrage/business/suggestion"
	suggestionDI "github.com/fd1az/dox-arbitrage/business/suggestion/di"
	"github.com/fd1az/dox-arbitrage/business/wallet"
	walletDI "github.com/fd1az/dox-arbitrage/business/wallet/di"
	"github.com/fd1az/dox-arbitrage/internal/apm"
	"github.com/fd1az/dox-arbitrage/internal/catalog"
	"github.com/fd1az/dox-arbitrage/internal/config"
	"github.com/fd1az/dox-arbitrage/internal/health"
	"github.com/fd1az/dox-arbitrage/internal/logger"
	"github.com/fd1az/dox-arbitrage/internal/metrics"
	"github.com/fd1az/dox-arbitrage/internal/monolith"
	"github.com/fd1az/dox-arbitrage/pkg/ui"
)

// application is the wired process: config, observability and the started modules.
type application struct {
	cfg    *config.Config
	log    *logger.Logger
	mono   *monolith.App
	health *health.Server

	traces  apm.TraceProvider
	metrics *metrics.Server
	logFile *os.File
}

// bootstrap loads configuration and starts every module. In TUI mode logs go to the
// configured log file, or nowhere, since the terminal belongs to the UI.
func bootstrap(ctx context.Context, configPath string, tuiMode bool) (*application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	app := &application{cfg: cfg}

	var out io.Writer = os.Stderr
	if tuiMode {
		out = io.Discard
		if cfg.App.LogFile != "" {
			f, err := os.OpenFile(cfg.App.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return nil, fmt.Errorf("failed to open log file: %w", err)
			}
			app.logFile = f
			out = f
		}
	}
	app.log = logger.New(out, logger.ParseLevel(cfg.App.LogLevel), cfg.App.Name, nil)

	app.log.Info(ctx, "starting dox arbitrage",
		"version", version,
		"environment", cfg.App.Environment,
	)

	if err := app.initTelemetry(ctx); err != nil {
		app.Close()
		return nil, err
	}

	app.health = health.NewServer(cfg.Health.Port, version)
	app.mono = monolith.New(cfg, app.log, catalog.DefaultRegistry(), app.health)

	modules := []monolith.Module{
		&planner.Module{},
		&suggestion.Module{},
		&wallet.Module{},
	}

	if err := app.mono.RegisterModules(modules...); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to register modules: %w", err)
	}
	if err := app.mono.StartModules(ctx, modules...); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to start modules: %w", err)
	}

	return app, nil
}

func (a *application) initTelemetry(ctx context.Context) error {
	tel := a.cfg.Telemetry
	if !tel.Enabled {
		return nil
	}

	headers := apm.ParseHeaders(tel.OTLPHeaders)

	traces, err := apm.NewTraceProvider(ctx, apm.TracerOptions{
		Provider:    apm.ProviderFromString(tel.TraceProvider),
		ServiceName: tel.ServiceName,
		Version:     version,
		Endpoint:    tel.OTLPEndpoint,
		Headers:     headers,
	})
	if err != nil {
		return fmt.Errorf("failed to init tracing: %w", err)
	}
	a.traces = traces
	a.log.Info(ctx, "tracing initialized", "provider", tel.TraceProvider, "endpoint", tel.OTLPEndpoint)

	opts := []metrics.OptionFn{metrics.WithServiceName(tel.ServiceName)}
	if tel.PrometheusPort > 0 {
		opts = append(opts, metrics.WithReader(metrics.NewPrometheusConfig()))
		a.metrics = metrics.NewServer(tel.PrometheusPort)
	}
	if tel.OTLPEndpoint != "" {
		opts = append(opts, metrics.WithReader(metrics.NewOTLPConfig(tel.OTLPEndpoint, headers)))
	}

	if _, err := metrics.NewMetricProvider(ctx, opts...); err != nil {
		return fmt.Errorf("failed to init metrics: %w", err)
	}
	a.log.Info(ctx, "metrics initialized", "prometheus_port", tel.PrometheusPort)

	return nil
}

// serve runs the health and metrics endpoints on g until ctx is done.
func (a *application) serve(ctx context.Context, g *errgroup.Group) {
	if a.cfg.Health.Enabled {
		g.Go(func() error {
			a.log.Info(ctx, "health server started", "port", a.cfg.Health.Port)
			return a.health.Run(ctx)
		})
	}
	if a.metrics != nil {
		g.Go(func() error {
			a.log.Info(ctx, "prometheus metrics server started", "port", a.cfg.Telemetry.PrometheusPort)
			return a.metrics.Run(ctx)
		})
	}
}

func (a *application) uiServices() ui.Services {
	sr := a.mono.Services()
	return ui.Services{
		Registry:  a.mono.Catalog(),
		Session:   plannerDI.GetSession(sr),
		Requester: suggestionDI.GetRequester(sr),
		Connector: walletDI.GetConnector(sr),
	}
}

// Close flushes telemetry and logs.
func (a *application) Close() {
	if a.traces != nil {
		if err := a.traces.Stop(); err != nil {
			a.log.Warn(context.Background(), "failed to stop trace provider", "error", err)
		}
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}
