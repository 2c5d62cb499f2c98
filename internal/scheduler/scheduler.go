// Package scheduler drives a page's fetch-and-reconcile cycles: once on
// mount, on a fixed cadence while mounted, and immediately on user actions.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"MonitorBoard/internal/metrics"
	"MonitorBoard/internal/query"
	"MonitorBoard/internal/view"
)

var (
	ErrNotMounted = errors.New("page not mounted")
	ErrStopped    = errors.New("page unmounted")
)

// Phase is the poller's lifecycle state.
type Phase int

const (
	Idle Phase = iota
	Polling
	Stopped
)

func (p Phase) String() string {
	switch p {
	case Polling:
		return "polling"
	case Stopped:
		return "stopped"
	default:
		return "idle"
	}
}

// Cycle triggers, used as metric labels.
const (
	TriggerMount   = "mount"
	TriggerTick    = "tick"
	TriggerSearch  = "search"
	TriggerRefresh = "refresh"
	TriggerRetry   = "retry"
)

// FetchFunc loads one normalized result set for the given filters.
type FetchFunc[T any] func(ctx context.Context, f query.FilterSet) ([]T, error)

// Config is what distinguishes one page's poller from another's.
type Config struct {
	Page         string
	PollInterval time.Duration // 0 disables the timer; sub-second rounds up to 1s
	ErrorPolicy  view.ErrorPolicy
	Defaults     query.FilterSet
}

// Poller owns one page's timer and view state for the page's lifetime.
type Poller[T any] struct {
	Config   Config
	OnUpdate func(items []T) // called after each applied success

	fetch  FetchFunc[T]
	state  *view.State[T]
	logger *slog.Logger

	mu     sync.Mutex
	phase  Phase
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

// NewPoller creates an idle poller.
func NewPoller[T any](cfg Config, fetch FetchFunc[T], logger *slog.Logger) *Poller[T] {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("page", cfg.Page)
	return &Poller[T]{
		Config: cfg,
		fetch:  fetch,
		state:  view.New[T](cfg.ErrorPolicy, cfg.Defaults, logger),
		logger: logger,
	}
}

// Mount issues the first fetch and arms the timer.
func (p *Poller[T]) Mount() error {
	p.mu.Lock()
	switch p.phase {
	case Polling:
		p.mu.Unlock()
		return fmt.Errorf("mount %s: already mounted", p.Config.Page)
	case Stopped:
		p.mu.Unlock()
		return ErrStopped
	}
	p.ctx, p.cancel = context.WithCancel(context.Background())
	if p.Config.PollInterval > 0 {
		cronLog := cron.PrintfLogger(slog.NewLogLogger(p.logger.Handler(), slog.LevelWarn))
		p.cron = cron.New(cron.WithLogger(cronLog), cron.WithChain(cron.Recover(cronLog)))
		p.cron.Schedule(cron.Every(p.Config.PollInterval), cron.FuncJob(p.Tick))
		p.cron.Start()
	}
	p.phase = Polling
	ctx, f := p.ctx, p.state.LastQuery()
	p.mu.Unlock()

	metrics.MountedPages.WithLabelValues(p.Config.Page).Inc()
	p.logger.Info("page mounted", "interval", p.Config.PollInterval, "policy", p.Config.ErrorPolicy)
	go p.cycle(ctx, TriggerMount, f)
	return nil
}

// Unmount stops the timer and discards the state. A request still in flight
// is cancelled and its outcome ignored.
func (p *Poller[T]) Unmount() {
	p.mu.Lock()
	if p.phase == Stopped {
		p.mu.Unlock()
		return
	}
	wasPolling := p.phase == Polling
	p.phase = Stopped
	c, cancel := p.cron, p.cancel
	p.mu.Unlock()

	if c != nil {
		c.Stop()
	}
	p.state.Close()
	if cancel != nil {
		cancel()
	}
	if wasPolling {
		metrics.MountedPages.WithLabelValues(p.Config.Page).Dec()
		p.logger.Info("page unmounted")
	}
}

// Tick re-issues the last-used filters. The timer calls it; ticks are plain
// re-issues, so calling it by hand is harmless.
func (p *Poller[T]) Tick() {
	ctx, err := p.context()
	if err != nil {
		return
	}
	_ = p.cycle(ctx, TriggerTick, p.state.LastQuery())
}

// Search replaces the filter baseline and fetches immediately. Later ticks
// keep using f.
func (p *Poller[T]) Search(f query.FilterSet) error {
	ctx, err := p.context()
	if err != nil {
		return err
	}
	return p.cycle(ctx, TriggerSearch, f)
}

// Refresh fetches immediately with the current filters.
func (p *Poller[T]) Refresh() error {
	return p.reissue(TriggerRefresh)
}

// Retry re-issues exactly the last query, typically after an error.
func (p *Poller[T]) Retry() error {
	return p.reissue(TriggerRetry)
}

func (p *Poller[T]) reissue(trigger string) error {
	ctx, err := p.context()
	if err != nil {
		return err
	}
	return p.cycle(ctx, trigger, p.state.LastQuery())
}

// Snapshot returns the current view state.
func (p *Poller[T]) Snapshot() view.Snapshot[T] {
	return p.state.Snapshot()
}

// Phase returns the lifecycle state.
func (p *Poller[T]) Phase() Phase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase
}

func (p *Poller[T]) context() (context.Context, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.phase {
	case Idle:
		return nil, ErrNotMounted
	case Stopped:
		return nil, ErrStopped
	}
	return p.ctx, nil
}

// cycle runs one fetch-and-reconcile pass. Fetch failures end up in the view
// state, never in the returned error; only lifecycle errors come back.
func (p *Poller[T]) cycle(ctx context.Context, trigger string, f query.FilterSet) error {
	if !p.state.Begin(f) {
		return ErrStopped
	}
	metrics.PollCycles.WithLabelValues(p.Config.Page, trigger).Inc()

	items, err := p.fetch(ctx, f)
	var applied bool
	if err != nil {
		p.logger.Debug("fetch failed", "trigger", trigger, "error", err)
		applied = p.state.Fail(err)
	} else {
		applied = p.state.Succeed(items)
	}
	if !applied {
		metrics.DiscardedResponses.WithLabelValues(p.Config.Page).Inc()
		return ErrStopped
	}
	if err == nil && p.OnUpdate != nil {
		p.OnUpdate(items)
	}
	return nil
}
