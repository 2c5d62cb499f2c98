package board

import (
	"context"
	"time"

	"MonitorBoard/internal/collector"
	"MonitorBoard/internal/model"
	"MonitorBoard/internal/query"
	"MonitorBoard/internal/render"
	"MonitorBoard/internal/scheduler"
	"MonitorBoard/internal/view"
)

// Page kinds.
const (
	Dashboard     = "dashboard"
	Transfers     = "transfers"
	Notifications = "notifications"
	Tokens        = "tokens"
)

// Kinds lists the mountable pages in navigation order.
var Kinds = []string{Dashboard, Transfers, Notifications, Tokens}

// page is one mounted page instance, whatever its item type.
type page interface {
	mount() error
	unmount()
	search(f query.FilterSet) error
	searchField() query.Field
	defaults() query.FilterSet
	refresh() error
	retry() error
	render(session string, now time.Time) render.Page
}

// listPage adapts a typed poller to page.
type listPage[T any] struct {
	kind   string
	poller *scheduler.Poller[T]
	field  query.Field
	rows   func(items []T, now time.Time) any
}

func (p *listPage[T]) mount() error                   { return p.poller.Mount() }
func (p *listPage[T]) unmount()                       { p.poller.Unmount() }
func (p *listPage[T]) search(f query.FilterSet) error { return p.poller.Search(f) }
func (p *listPage[T]) searchField() query.Field       { return p.field }
func (p *listPage[T]) defaults() query.FilterSet      { return p.poller.Config.Defaults }
func (p *listPage[T]) refresh() error                 { return p.poller.Refresh() }
func (p *listPage[T]) retry() error                   { return p.poller.Retry() }

func (p *listPage[T]) render(session string, now time.Time) render.Page {
	snap := p.poller.Snapshot()
	return render.Snapshot(session, p.kind, snap, p.rows(snap.Items, now), now)
}

// notificationsPage is the notification list plus its best-effort stats
// tiles, each with its own poller and error policy.
type notificationsPage struct {
	*listPage[model.Notification]
	stats *scheduler.Poller[model.NotificationStats]
}

func (p *notificationsPage) mount() error {
	if err := p.listPage.mount(); err != nil {
		return err
	}
	return p.stats.Mount()
}

func (p *notificationsPage) unmount() {
	p.listPage.unmount()
	p.stats.Unmount()
}

// refresh reloads the list and, best-effort, the stats tiles.
func (p *notificationsPage) refresh() error {
	if err := p.listPage.refresh(); err != nil {
		return err
	}
	return p.stats.Refresh()
}

func (p *notificationsPage) render(session string, now time.Time) render.Page {
	out := p.listPage.render(session, now)
	if stats := p.stats.Snapshot().Items; len(stats) > 0 {
		tiles := render.NotificationStatsTiles(stats[len(stats)-1])
		out.Stats = &tiles
	}
	return out
}

// Options sizes the page catalogue.
type Options struct {
	DashboardInterval time.Duration
	ListInterval      time.Duration
	ListLimit         int
	TransferLimit     int
	// OnSummary receives every dashboard summary that was applied to a view.
	OnSummary func(s *model.Summary)
}

func (o Options) withDefaults() Options {
	if o.ListLimit <= 0 {
		o.ListLimit = 30
	}
	if o.TransferLimit <= 0 {
		o.TransferLimit = 5
	}
	return o
}

type factory func(b *Board) page

func (b *Board) catalogue() map[string]factory {
	return map[string]factory{
		Dashboard:     (*Board).newDashboard,
		Transfers:     (*Board).newTransfers,
		Notifications: (*Board).newNotifications,
		Tokens:        (*Board).newTokens,
	}
}

func (b *Board) newDashboard() page {
	col := collector.NewCollector(b.fetcher, b.opts.TransferLimit)
	if b.Now != nil {
		col.Now = b.Now
	}
	fetch := func(ctx context.Context, _ query.FilterSet) ([]model.Summary, error) {
		s, err := col.CollectSummary(ctx)
		if err != nil {
			return nil, err
		}
		return []model.Summary{*s}, nil
	}
	p := scheduler.NewPoller(scheduler.Config{
		Page:         Dashboard,
		PollInterval: b.opts.DashboardInterval,
		ErrorPolicy:  view.KeepOnError,
	}, fetch, b.logger)
	if b.opts.OnSummary != nil {
		p.OnUpdate = func(items []model.Summary) {
			for i := range items {
				b.opts.OnSummary(&items[i])
			}
		}
	}
	return &listPage[model.Summary]{
		kind:   Dashboard,
		poller: p,
		field:  query.FieldTxHash,
		rows: func(items []model.Summary, now time.Time) any {
			if len(items) == 0 {
				return nil
			}
			tiles := render.Summary(items[len(items)-1], now)
			return &tiles
		},
	}
}

func (b *Board) newTransfers() page {
	fetch := func(ctx context.Context, f query.FilterSet) ([]model.TransferRecord, error) {
		p, err := b.fetcher.GetTransferRecords(ctx, f)
		return collector.Normalize(p), err
	}
	p := scheduler.NewPoller(scheduler.Config{
		Page:         Transfers,
		PollInterval: b.opts.ListInterval,
		ErrorPolicy:  view.ReplaceOnError,
		Defaults:     query.FilterSet{Limit: b.opts.ListLimit},
	}, fetch, b.logger)
	return &listPage[model.TransferRecord]{
		kind:   Transfers,
		poller: p,
		field:  query.FieldTxHash,
		rows: func(items []model.TransferRecord, now time.Time) any {
			return render.TransferRows(items, now)
		},
	}
}

func (b *Board) newNotifications() page {
	fetch := func(ctx context.Context, f query.FilterSet) ([]model.Notification, error) {
		p, err := b.fetcher.GetNotifications(ctx, f)
		return collector.Normalize(p), err
	}
	list := scheduler.NewPoller(scheduler.Config{
		Page:         Notifications,
		PollInterval: b.opts.ListInterval,
		ErrorPolicy:  view.ReplaceOnError,
		Defaults:     query.FilterSet{Limit: b.opts.ListLimit},
	}, fetch, b.logger)

	fetchStats := func(ctx context.Context, _ query.FilterSet) ([]model.NotificationStats, error) {
		s, err := b.fetcher.GetNotificationStats(ctx)
		if err != nil {
			return nil, err
		}
		return []model.NotificationStats{s}, nil
	}
	stats := scheduler.NewPoller(scheduler.Config{
		Page:         Notifications + "_stats",
		PollInterval: b.opts.ListInterval,
		ErrorPolicy:  view.KeepOnError,
		Defaults:     query.FilterSet{Stats: true},
	}, fetchStats, b.logger)

	return &notificationsPage{
		listPage: &listPage[model.Notification]{
			kind:   Notifications,
			poller: list,
			field:  query.FieldTxHash,
			rows: func(items []model.Notification, now time.Time) any {
				return render.NotificationRows(items, now)
			},
		},
		stats: stats,
	}
}

func (b *Board) newTokens() page {
	fetch := func(ctx context.Context, f query.FilterSet) ([]model.TokenAnalysis, error) {
		p, err := b.fetcher.GetTokens(ctx, f)
		return collector.Normalize(p), err
	}
	p := scheduler.NewPoller(scheduler.Config{
		Page:         Tokens,
		PollInterval: b.opts.ListInterval,
		ErrorPolicy:  view.ReplaceOnError,
		Defaults:     query.FilterSet{Limit: b.opts.ListLimit},
	}, fetch, b.logger)
	return &listPage[model.TokenAnalysis]{
		kind:   Tokens,
		poller: p,
		field:  query.FieldAddress,
		rows: func(items []model.TokenAnalysis, now time.Time) any {
			return render.TokenRows(items, now)
		},
	}
}
