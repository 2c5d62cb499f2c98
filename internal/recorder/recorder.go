package recorder

import (
	"time"

	"MonitorBoard/internal/model"
)

// SummaryPoint is one recorded dashboard refresh.
type SummaryPoint struct {
	Timestamp       time.Time `json:"timestamp"`
	Date            string    `json:"date"`
	NotifTotal      int64     `json:"notif_total"`
	NotifSuccess    int64     `json:"notif_success"`
	NotifFailed     int64     `json:"notif_failed"`
	NotifToday      int64     `json:"notif_today"`
	TokensAnalyzed  int64     `json:"tokens_analyzed"`
	Honeypots       int64     `json:"honeypots"`
	RecentTransfers int       `json:"recent_transfers"`
}

// Recorder persists the history of dashboard aggregates.
type Recorder interface {
	RecordSummary(s *model.Summary) error
	History(limit int) ([]SummaryPoint, error)
	Close() error
}
