package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/jikan/pkg/cli"
	"mercator-hq/jikan/pkg/config"
	"mercator-hq/jikan/pkg/jikan/models"
	"mercator-hq/jikan/pkg/poller"
	"mercator-hq/jikan/pkg/server"
	"mercator-hq/jikan/pkg/telemetry/health"
)

var pollFlags struct {
	once    bool
	noAdmin bool
}

var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Run the configured poll jobs",
	Long: `Run the jobs listed under poller.jobs on their cron schedules until
interrupted. All jobs share one client, so they queue on the same rate
windows as each other.

While running, an admin server on telemetry.metrics.address serves
/health, /ready and /version, plus Prometheus metrics when
telemetry.metrics.enabled is set.

The job list and log level are reloaded when the config file changes or
the process receives SIGHUP. Rate windows and cache settings need a
restart.

Examples:
  jikan poll --config jikan.yaml
  jikan poll --config jikan.yaml --once --output json`,
	Args: cobra.NoArgs,
	RunE: withApp(runPoll),
}

func init() {
	rootCmd.AddCommand(pollCmd)
	pollCmd.Flags().BoolVar(&pollFlags.once, "once", false, "run every job once and exit")
	pollCmd.Flags().BoolVar(&pollFlags.noAdmin, "no-admin", false, "do not start the admin server")
}

func runPoll(ctx context.Context, a *app, _ []string) error {
	p := poller.New(a.client,
		poller.WithLogger(a.logger.Slog()),
		poller.WithMetrics(a.metrics),
	)
	if err := p.SetJobs(a.cfg.Poller.Jobs); err != nil {
		return cli.NewConfigError("poller.jobs", err.Error())
	}

	if pollFlags.once {
		return pollOnce(ctx, a, p)
	}

	if len(p.Jobs()) == 0 {
		return cli.NewConfigError("poller.jobs", "no poll jobs configured")
	}

	if !pollFlags.noAdmin {
		admin, err := startAdmin(a, p)
		if err != nil {
			return err
		}
		defer admin.Shutdown(context.WithoutCancel(ctx))
	}

	p.Start(ctx)
	defer p.Stop()

	reload := func(cfg *config.Config) { applyReload(a, p, cfg) }

	if cfgFile != "" {
		w, err := config.NewWatcher(cfgFile, 0, a.logger.Slog())
		if err != nil {
			return err
		}
		go func() {
			if err := w.Watch(ctx, reload); err != nil {
				a.logger.Error("config watcher stopped", "error", err)
			}
		}()
	}

	hup, stopHup := cli.ReloadSignals()
	defer stopHup()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("shutting down poller")
			return nil
		case <-hup:
			if cfgFile == "" {
				a.logger.Warn("SIGHUP ignored: no config file")
				continue
			}
			if err := config.ReloadConfig(cfgFile); err != nil {
				a.logger.Error("config reload failed", "error", err)
				continue
			}
			reload(config.GetConfig())
		}
	}
}

// applyReload updates the parts of a running poll that can change without
// a restart.
func applyReload(a *app, p *poller.Poller, cfg *config.Config) {
	config.SetConfig(cfg)

	if err := p.SetJobs(cfg.Poller.Jobs); err != nil {
		a.logger.Error("keeping previous poll jobs", "error", err)
	}

	if logLevel == "" {
		if err := a.logger.SetLevel(cfg.Telemetry.Logging.Level); err != nil {
			a.logger.Warn("keeping previous log level", "error", err)
		}
	}

	if !reflect.DeepEqual(cfg.RateLimits, a.cfg.RateLimits) || (!noCache && !reflect.DeepEqual(cfg.Cache, a.cfg.Cache)) {
		a.logger.Warn("rate limit and cache changes take effect after restart")
	}
}

// pollResult is one --once run as printed.
type pollResult struct {
	Job      string  `json:"job" yaml:"job"`
	Endpoint string  `json:"endpoint" yaml:"endpoint"`
	OK       bool    `json:"ok" yaml:"ok"`
	Items    int     `json:"items" yaml:"items"`
	Seconds  float64 `json:"duration_seconds" yaml:"duration_seconds"`
	Error    string  `json:"error,omitempty" yaml:"error,omitempty"`
}

type pollResults []pollResult

func (r pollResults) Table() cli.Table {
	t := cli.Table{Headers: []string{"JOB", "ENDPOINT", "RESULT", "ITEMS", "DURATION"}}
	for _, res := range r {
		result := "ok"
		if !res.OK {
			result = res.Error
		}
		t.Rows = append(t.Rows, []string{
			res.Job,
			res.Endpoint,
			result,
			strconv.Itoa(res.Items),
			(time.Duration(res.Seconds * float64(time.Second))).Round(time.Millisecond).String(),
		})
	}
	return t
}

// pollOnce runs each job in name order and prints a summary. It fails if
// any job failed.
func pollOnce(ctx context.Context, a *app, p *poller.Poller) error {
	var results pollResults
	var failed int
	for _, job := range p.Jobs() {
		r, err := p.RunNow(ctx, job.Name)
		if err != nil {
			return err
		}
		res := pollResult{
			Job:      job.Name,
			Endpoint: job.Endpoint,
			OK:       r.Err == nil,
			Items:    itemCount(r.Data),
			Seconds:  r.Duration.Seconds(),
		}
		if r.Err != nil {
			res.Error = r.Err.Error()
			failed++
		}
		results = append(results, res)
	}

	if err := a.render(results, results); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d poll jobs failed", failed, len(results))
	}
	return nil
}

func itemCount(data any) int {
	switch v := data.(type) {
	case *models.Page[models.Anime]:
		if v != nil {
			return len(v.Data)
		}
	case *models.Anime:
		if v != nil {
			return 1
		}
	case *models.Manga:
		if v != nil {
			return 1
		}
	}
	return 0
}

// startAdmin serves health probes, version info and metrics.
func startAdmin(a *app, p *poller.Poller) (*server.Server, error) {
	checker := health.New(2 * time.Second)
	checker.Register("jikan", func(context.Context) error {
		h := a.client.Health()
		if !h.Healthy {
			return fmt.Errorf("%d consecutive upstream failures: %v", h.ConsecutiveFailures, h.LastError)
		}
		return nil
	})
	checker.Register("cache", func(ctx context.Context) error {
		_, _, err := a.client.Cache().Get(ctx, "health:probe")
		return err
	})
	checker.Register("poller", func(context.Context) error {
		if !p.IsRunning() {
			return errors.New("poller is not running")
		}
		return nil
	})

	mux := http.NewServeMux()
	health.Mount(mux, checker, health.VersionInfo{Version: Version, Commit: GitCommit, BuildDate: BuildDate})
	if a.metrics.Enabled() {
		mux.Handle(a.cfg.Telemetry.Metrics.Path, a.metrics.Handler())
	}

	srv := server.New(server.Config{Address: a.cfg.Telemetry.Metrics.Address}, mux, a.logger)
	if err := srv.Start(); err != nil {
		return nil, fmt.Errorf("failed to start admin server: %w", err)
	}
	return srv, nil
}
