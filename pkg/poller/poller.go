package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"mercator-hq/jikan/pkg/config"
	"mercator-hq/jikan/pkg/jikan/models"
	"mercator-hq/jikan/pkg/telemetry/metrics"
)

// Fetcher is the part of the Jikan client the poller calls.
// *jikan.Client implements it.
type Fetcher interface {
	GetAnime(ctx context.Context, id int) (*models.Anime, error)
	GetManga(ctx context.Context, id int) (*models.Manga, error)
	GetTopAnime(ctx context.Context, page int) (*models.Page[models.Anime], error)
	GetSchedules(ctx context.Context, day string, page int) (*models.Page[models.Anime], error)
}

// Result is the outcome of one job run.
type Result struct {
	Job      config.PollJob
	Data     any
	Err      error
	Started  time.Time
	Duration time.Duration
}

// Handler receives every Result. It is called from the cron goroutine and
// must not block for long.
type Handler func(ctx context.Context, r Result)

// Poller runs configured fetch jobs on cron schedules. Runs of the same job
// never overlap: a run that is still waiting for rate limit permits when its
// next tick arrives causes that tick to be skipped.
type Poller struct {
	fetcher Fetcher
	cron    *cron.Cron
	logger  *slog.Logger
	metrics *metrics.Collector
	handler Handler

	mu      sync.Mutex
	jobs    map[string]config.PollJob
	entries map[string]cron.EntryID
	running bool
	ctx     context.Context
}

// Option configures a Poller.
type Option func(*Poller)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Poller) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMetrics records run counts and durations.
func WithMetrics(collector *metrics.Collector) Option {
	return func(p *Poller) {
		p.metrics = collector
	}
}

// WithHandler sets the result handler.
func WithHandler(h Handler) Option {
	return func(p *Poller) {
		p.handler = h
	}
}

// New creates a poller with no jobs.
func New(fetcher Fetcher, opts ...Option) *Poller {
	p := &Poller{
		fetcher: fetcher,
		logger:  slog.Default(),
		jobs:    make(map[string]config.PollJob),
		entries: make(map[string]cron.EntryID),
		ctx:     context.Background(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("component", "poller")

	cronLogger := cron.PrintfLogger(slog.NewLogLogger(p.logger.Handler(), slog.LevelDebug))
	p.cron = cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	return p
}

// SetJobs replaces the scheduled jobs. Jobs whose definition is unchanged
// keep their schedule; removed jobs stop; new or changed jobs are added.
// On error nothing is changed.
func (p *Poller) SetJobs(jobs []config.PollJob) error {
	next := make(map[string]config.PollJob, len(jobs))
	schedules := make(map[string]cron.Schedule, len(jobs))
	for _, job := range jobs {
		if _, dup := next[job.Name]; dup {
			return fmt.Errorf("duplicate poll job %q", job.Name)
		}
		if job.Page == 0 {
			job.Page = config.DefaultPollJobPage
		}
		sched, err := cron.ParseStandard(job.Schedule)
		if err != nil {
			return fmt.Errorf("poll job %q: invalid cron schedule %q: %w", job.Name, job.Schedule, err)
		}
		next[job.Name] = job
		schedules[job.Name] = sched
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var added, removed int
	for name, old := range p.jobs {
		if job, ok := next[name]; ok && job == old {
			continue
		}
		p.cron.Remove(p.entries[name])
		delete(p.entries, name)
		delete(p.jobs, name)
		removed++
	}

	for name, job := range next {
		if _, ok := p.jobs[name]; ok {
			continue
		}
		job := job
		p.entries[name] = p.cron.Schedule(schedules[name], cron.FuncJob(func() {
			p.run(p.runContext(), job)
		}))
		p.jobs[name] = job
		added++
	}

	p.logger.Info("poll jobs updated", "jobs", len(p.jobs), "added", added, "removed", removed)
	return nil
}

// Start begins running jobs. Jobs stop when ctx is cancelled or Stop is
// called. Start on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return
	}
	p.ctx = ctx
	p.cron.Start()
	p.running = true
	p.logger.Info("poller started", "jobs", len(p.jobs))

	go func() {
		<-ctx.Done()
		p.Stop()
	}()
}

// Stop stops the scheduler and waits for running jobs to complete.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	<-p.cron.Stop().Done()
	p.logger.Info("poller stopped")
}

// IsRunning returns true if the poller is running.
func (p *Poller) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Jobs returns the scheduled jobs sorted by name.
func (p *Poller) Jobs() []config.PollJob {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]config.PollJob, 0, len(p.jobs))
	for _, job := range p.jobs {
		out = append(out, job)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// NextRun returns the next scheduled run of the named job, or nil if the
// job is unknown or the poller is not running.
func (p *Poller) NextRun(name string) *time.Time {
	p.mu.Lock()
	id, ok := p.entries[name]
	p.mu.Unlock()
	if !ok {
		return nil
	}

	entry := p.cron.Entry(id)
	if !entry.Valid() || entry.Next.IsZero() {
		return nil
	}
	next := entry.Next
	return &next
}

// RunNow runs the named job immediately in the caller's goroutine.
func (p *Poller) RunNow(ctx context.Context, name string) (Result, error) {
	p.mu.Lock()
	job, ok := p.jobs[name]
	p.mu.Unlock()
	if !ok {
		return Result{}, fmt.Errorf("unknown poll job %q", name)
	}
	return p.run(ctx, job), nil
}

func (p *Poller) runContext() context.Context {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctx
}

// run executes one job and reports the result.
func (p *Poller) run(ctx context.Context, job config.PollJob) Result {
	r := Result{Job: job, Started: time.Now()}
	r.Data, r.Err = p.fetch(ctx, job)
	r.Duration = time.Since(r.Started)

	p.metrics.RecordPollRun(job.Name, r.Err, r.Duration)

	if r.Err != nil {
		p.logger.Error("poll job failed", "job", job.Name, "endpoint", job.Endpoint, "error", r.Err)
	} else {
		p.logger.Info("poll job completed", "job", job.Name, "endpoint", job.Endpoint, "duration", r.Duration)
	}

	if p.handler != nil {
		p.handler(ctx, r)
	}
	return r
}

func (p *Poller) fetch(ctx context.Context, job config.PollJob) (any, error) {
	switch job.Endpoint {
	case "anime":
		return p.fetcher.GetAnime(ctx, job.ID)
	case "manga":
		return p.fetcher.GetManga(ctx, job.ID)
	case "top_anime":
		return p.fetcher.GetTopAnime(ctx, job.Page)
	case "schedules":
		return p.fetcher.GetSchedules(ctx, job.Day, job.Page)
	default:
		return nil, fmt.Errorf("unknown poll endpoint %q", job.Endpoint)
	}
}
