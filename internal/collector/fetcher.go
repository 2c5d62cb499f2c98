package collector

import (
	"context"
	"time"

	"MonitorBoard/internal/model"
	"MonitorBoard/internal/query"
)

// Backend resource paths, relative to the API base URL.
const (
	PathTransferRecords = "/transfer-records"
	PathNotifications   = "/notifications"
	PathTokens          = "/tokens"
)

// Fetcher defines the typed reads the pages need from the monitor backend.
type Fetcher interface {
	GetTransferRecords(ctx context.Context, f query.FilterSet) (Payload[model.TransferRecord], error)
	GetNotifications(ctx context.Context, f query.FilterSet) (Payload[model.Notification], error)
	GetNotificationStats(ctx context.Context) (model.NotificationStats, error)
	GetTokens(ctx context.Context, f query.FilterSet) (Payload[model.TokenAnalysis], error)
	GetTokenDailyStats(ctx context.Context, date time.Time) (model.TokenDailyStats, error)
	Name() string
}
