// Package render derives display values from view snapshots. Nothing here is
// stored: every value is recomputed from its source on each render.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"MonitorBoard/internal/model"
)

const explorerURL = "https://etherscan.io"

// ShortAddr truncates long addresses and hashes to 0x1234...abcd.
func ShortAddr(addr string) string {
	if addr == "" {
		return "-"
	}
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}

// TimeAgo formats the age of t relative to now: 42s ago, 5m ago, 3h ago, 2d ago.
func TimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	s := int64(now.Sub(t) / time.Second)
	if s < 0 {
		s = 0
	}
	if s < 60 {
		return fmt.Sprintf("%ds ago", s)
	}
	m := s / 60
	if m < 60 {
		return fmt.Sprintf("%dm ago", m)
	}
	h := m / 60
	if h < 24 {
		return fmt.Sprintf("%dh ago", h)
	}
	return fmt.Sprintf("%dd ago", h/24)
}

// SuccessRate is the delivered share of all notifications, in percent.
func SuccessRate(s model.NotificationStats) float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Success) / float64(s.Total) * 100
}

// FormatAmount trims trailing zeros from a decimal amount and appends the
// currency. Unparseable amounts are shown as-is.
func FormatAmount(amount, currency string) string {
	out := amount
	if d, err := decimal.NewFromString(strings.TrimSpace(amount)); err == nil {
		out = d.String()
	}
	if out == "" {
		out = "-"
	}
	if currency != "" {
		out += " " + currency
	}
	return out
}

// Percent formats a percentage with one decimal.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

var tokenStatusLabels = map[string]string{
	"PENDING_LIQUIDITY": "Pending liquidity",
	"ANALYZING":         "Analyzing",
	"MONITORING":        "Monitoring",
	"POTENTIAL":         "Potential",
	"REJECTED":          "Rejected",
	"RUGGED":            "Rugged",
	"EXPIRED":           "Expired",
}

// TokenStatusLabel maps a token status to its display label.
func TokenStatusLabel(status string) string {
	if l, ok := tokenStatusLabels[status]; ok {
		return l
	}
	return status
}

// RiskClass normalizes a risk level to the badge classes the UI styles.
func RiskClass(level string) string {
	switch strings.ToLower(level) {
	case "low", "medium", "high", "critical":
		return strings.ToLower(level)
	default:
		return "unknown"
	}
}

func TxURL(hash string) string      { return explorerURL + "/tx/" + hash }
func AddressURL(addr string) string { return explorerURL + "/address/" + addr }
