package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MonitorBoard/internal/model"
)

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "board.db"), nil)
	require.NoError(t, err)
	defer r.Close()

	base := time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)
	r.Now = func() time.Time { return base }
	require.NoError(t, r.RecordSummary(&model.Summary{
		Date:          "2025-02-10",
		Notifications: model.NotificationStats{Total: 4, Success: 3, Failed: 1, ByType: []model.TypeCount{{Type: "USDT_ALERT", Count: 4}}},
		Tokens:        model.TokenDailyStats{Total: 7, HoneypotCount: 2, RiskDistribution: []model.RiskCount{{RiskLevel: "high", Count: 2}}},
	}))

	r.Now = func() time.Time { return base.Add(15 * time.Second) }
	require.NoError(t, r.RecordSummary(&model.Summary{
		Date:            "2025-02-10",
		Notifications:   model.NotificationStats{Total: 5, Success: 4, Failed: 1},
		RecentTransfers: []model.TransferRecord{{ID: 1}},
	}))

	hist, err := r.History(10)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, int64(5), hist[0].NotifTotal, "newest first")
	assert.Equal(t, 1, hist[0].RecentTransfers)
	assert.Equal(t, int64(7), hist[1].TokensAnalyzed)
	assert.Equal(t, int64(2), hist[1].Honeypots)
	assert.True(t, hist[1].Timestamp.Equal(base))

	one, err := r.History(1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestSQLiteRecorder_ReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.db")
	r, err := NewSQLiteRecorder(path, nil)
	require.NoError(t, err)
	require.NoError(t, r.RecordSummary(&model.Summary{Date: "2025-02-10"}))
	require.NoError(t, r.Close())

	r, err = NewSQLiteRecorder(path, nil)
	require.NoError(t, err)
	defer r.Close()
	hist, err := r.History(0)
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordSummary(&model.Summary{}))
	hist, err := r.History(5)
	assert.NoError(t, err)
	assert.Empty(t, hist)
	assert.NoError(t, r.Close())
}
