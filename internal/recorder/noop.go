package recorder

import "MonitorBoard/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSummary(_ *model.Summary) error  { return nil }
func (n *NoopRecorder) History(_ int) ([]SummaryPoint, error) { return []SummaryPoint{}, nil }
func (n *NoopRecorder) Close() error                          { return nil }
