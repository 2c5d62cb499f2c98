package recorder

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"MonitorBoard/internal/model"
)

// SQLiteRecorder persists dashboard history to a SQLite database.
type SQLiteRecorder struct {
	Now func() time.Time

	db     *sql.DB
	mu     sync.Mutex
	logger *slog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *slog.Logger) (*SQLiteRecorder, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so external readers don't block the poller's inserts.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{Now: time.Now, db: db, logger: logger.With("component", "recorder")}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.logger.Info("sqlite recorder opened", "path", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS summary_snapshots (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			date             TEXT,
			notif_total      INTEGER,
			notif_success    INTEGER,
			notif_failed     INTEGER,
			notif_today      INTEGER,
			tokens_analyzed  INTEGER,
			honeypots        INTEGER,
			recent_transfers INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_summary_ts ON summary_snapshots(timestamp)`,

		`CREATE TABLE IF NOT EXISTS notification_types (
			snapshot_id INTEGER NOT NULL REFERENCES summary_snapshots(id),
			type        TEXT,
			count       INTEGER
		)`,

		`CREATE TABLE IF NOT EXISTS risk_distribution (
			snapshot_id INTEGER NOT NULL REFERENCES summary_snapshots(id),
			risk_level  TEXT,
			count       INTEGER
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordSummary stores one dashboard refresh with its breakdowns.
func (r *SQLiteRecorder) RecordSummary(s *model.Summary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO summary_snapshots
		(timestamp, date, notif_total, notif_success, notif_failed, notif_today,
		 tokens_analyzed, honeypots, recent_transfers)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		r.Now().Unix(), s.Date,
		s.Notifications.Total, s.Notifications.Success, s.Notifications.Failed, s.Notifications.Today,
		s.Tokens.Total, s.Tokens.HoneypotCount, len(s.RecentTransfers),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("snapshot id: %w", err)
	}

	for _, tc := range s.Notifications.ByType {
		if _, err := tx.Exec(`INSERT INTO notification_types (snapshot_id, type, count) VALUES (?,?,?)`,
			id, tc.Type, tc.Count); err != nil {
			return fmt.Errorf("insert notification type: %w", err)
		}
	}
	for _, rc := range s.Tokens.RiskDistribution {
		if _, err := tx.Exec(`INSERT INTO risk_distribution (snapshot_id, risk_level, count) VALUES (?,?,?)`,
			id, rc.RiskLevel, rc.Count); err != nil {
			return fmt.Errorf("insert risk level: %w", err)
		}
	}
	return tx.Commit()
}

// History returns the most recent snapshots, newest first.
func (r *SQLiteRecorder) History(limit int) ([]SummaryPoint, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(`SELECT timestamp, date, notif_total, notif_success, notif_failed,
		notif_today, tokens_analyzed, honeypots, recent_transfers
		FROM summary_snapshots ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	out := []SummaryPoint{}
	for rows.Next() {
		var p SummaryPoint
		var ts int64
		if err := rows.Scan(&ts, &p.Date, &p.NotifTotal, &p.NotifSuccess, &p.NotifFailed,
			&p.NotifToday, &p.TokensAnalyzed, &p.Honeypots, &p.RecentTransfers); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		p.Timestamp = time.Unix(ts, 0)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}
