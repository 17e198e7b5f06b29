package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mercator-hq/jikan/pkg/cli"
	"mercator-hq/jikan/pkg/config"
	"mercator-hq/jikan/pkg/jikan"
	"mercator-hq/jikan/pkg/telemetry/logging"
	"mercator-hq/jikan/pkg/telemetry/metrics"
	"mercator-hq/jikan/pkg/telemetry/tracing"
)

// app holds everything a command needs. Commands receive it from withApp so
// tests can build one around an httptest server.
type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	client  *jikan.Client

	format cli.OutputFormat
	out    io.Writer
	errOut io.Writer
}

// loadConfig reads the global configuration and applies flag overrides to a
// copy of it.
func loadConfig() (*config.Config, error) {
	if err := config.Initialize(cfgFile); err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	global := config.GetConfig()
	if global == nil {
		return nil, cli.NewConfigError("", "configuration not initialized")
	}

	cfg := *global
	if logLevel != "" {
		cfg.Telemetry.Logging.Level = logLevel
	}
	if noCache {
		cfg.Cache.Backend = "none"
	}
	if cfg.Client.UserAgent == config.DefaultUserAgent {
		cfg.Client.UserAgent = config.DefaultUserAgent + "/" + Version
	}
	return &cfg, nil
}

// newApp builds the logger, telemetry and client described by cfg.
func newApp(ctx context.Context, cfg *config.Config, out, errOut io.Writer) (*app, error) {
	format, err := cli.ParseFormat(outputFormat)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    errOut,
	})
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	client, err := jikan.NewFromConfig(ctx, cfg,
		jikan.WithLogger(logger),
		jikan.WithMetrics(collector),
		jikan.WithTracer(tracer),
	)
	if err != nil {
		_ = tracer.Shutdown(ctx)
		return nil, err
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		metrics: collector,
		tracer:  tracer,
		client:  client,
		format:  format,
		out:     out,
		errOut:  errOut,
	}, nil
}

// Close flushes spans and releases the client.
func (a *app) Close(ctx context.Context) {
	if err := a.tracer.Shutdown(ctx); err != nil {
		a.logger.Warn("failed to flush traces", "error", err)
	}
	if err := a.client.Close(); err != nil {
		a.logger.Warn("failed to close client", "error", err)
	}
}

// render writes value in the selected format. Text and CSV use table when
// it is non-nil.
func (a *app) render(value any, table cli.Tabular) error {
	data := value
	if table != nil && (a.format == cli.FormatText || a.format == cli.FormatCSV) {
		data = table
	}
	return cli.NewFormatter(a.format).FormatTo(a.out, data)
}

// runFunc is the body of a command that needs a client.
type runFunc func(ctx context.Context, a *app, args []string) error

// withApp adapts fn to a cobra RunE: it loads configuration, builds the
// app and closes it afterwards.
func withApp(fn runFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		a, err := newApp(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.Close(context.WithoutCancel(ctx))

		return fn(ctx, a, args)
	}
}
