package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"MonitorBoard/internal/model"
	"MonitorBoard/internal/query"
)

// MockFetcher returns controllable fixed data for development and testing.
// Err, when set, is returned by every call; Hook runs before each call and can
// block or fail it.
type MockFetcher struct {
	Transfers     Payload[model.TransferRecord]
	Notifications Payload[model.Notification]
	NotifStats    model.NotificationStats
	Tokens        Payload[model.TokenAnalysis]
	TokenStats    model.TokenDailyStats
	Err           error
	Hook          func(ctx context.Context, call string, f query.FilterSet) error

	mu    sync.Mutex
	calls []Call
}

// Call is one recorded MockFetcher invocation.
type Call struct {
	Method string
	Filter query.FilterSet
}

func (m *MockFetcher) Name() string { return "mock" }

// Calls returns a copy of the recorded invocations.
func (m *MockFetcher) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// SetErr changes the error returned by subsequent calls.
func (m *MockFetcher) SetErr(err error) {
	m.mu.Lock()
	m.Err = err
	m.mu.Unlock()
}

func (m *MockFetcher) record(ctx context.Context, method string, f query.FilterSet) error {
	m.mu.Lock()
	m.calls = append(m.calls, Call{Method: method, Filter: f})
	hook, err := m.Hook, m.Err
	m.mu.Unlock()
	if hook != nil {
		if herr := hook(ctx, method, f); herr != nil {
			return herr
		}
	}
	return err
}

func (m *MockFetcher) GetTransferRecords(ctx context.Context, f query.FilterSet) (Payload[model.TransferRecord], error) {
	if err := m.record(ctx, "GetTransferRecords", f); err != nil {
		return Payload[model.TransferRecord]{}, err
	}
	return m.Transfers, nil
}

func (m *MockFetcher) GetNotifications(ctx context.Context, f query.FilterSet) (Payload[model.Notification], error) {
	if err := m.record(ctx, "GetNotifications", f); err != nil {
		return Payload[model.Notification]{}, err
	}
	return m.Notifications, nil
}

func (m *MockFetcher) GetNotificationStats(ctx context.Context) (model.NotificationStats, error) {
	if err := m.record(ctx, "GetNotificationStats", query.FilterSet{Stats: true}); err != nil {
		return model.NotificationStats{}, err
	}
	return m.NotifStats, nil
}

func (m *MockFetcher) GetTokens(ctx context.Context, f query.FilterSet) (Payload[model.TokenAnalysis], error) {
	if err := m.record(ctx, "GetTokens", f); err != nil {
		return Payload[model.TokenAnalysis]{}, err
	}
	return m.Tokens, nil
}

func (m *MockFetcher) GetTokenDailyStats(ctx context.Context, date time.Time) (model.TokenDailyStats, error) {
	if err := m.record(ctx, "GetTokenDailyStats", query.FilterSet{Date: date}); err != nil {
		return model.TokenDailyStats{}, err
	}
	return m.TokenStats, nil
}

// Collector orchestrates the fetches behind one dashboard refresh.
type Collector struct {
	Fetcher       Fetcher
	TransferLimit int
	Now           func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, transferLimit int) *Collector {
	return &Collector{Fetcher: fetcher, TransferLimit: transferLimit, Now: time.Now}
}

// CollectSummary fetches both aggregates for today and the latest transfers.
// Any failure fails the whole refresh.
func (c *Collector) CollectSummary(ctx context.Context) (*model.Summary, error) {
	today := c.Now()

	notif, err := c.Fetcher.GetNotificationStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch notification stats: %w", err)
	}
	tokens, err := c.Fetcher.GetTokenDailyStats(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("fetch token daily stats: %w", err)
	}
	transfers, err := c.Fetcher.GetTransferRecords(ctx, query.FilterSet{Limit: c.TransferLimit})
	if err != nil {
		return nil, fmt.Errorf("fetch recent transfers: %w", err)
	}

	return &model.Summary{
		Notifications:   notif,
		Tokens:          tokens,
		RecentTransfers: Normalize(transfers),
		Date:            today.Format(query.DateLayout),
	}, nil
}
