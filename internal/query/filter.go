// Package query turns page filters into the backend's query strings.
package query

import (
	"net/url"
	"strconv"
	"time"
)

// Layouts accepted by the backend.
const (
	TimeLayout = time.RFC3339
	DateLayout = "2006-01-02"
)

// FilterSet holds the optional filters of a request. Zero values are absent
// and never reach the query string; MaxRiskScore is a pointer because 0 is a
// meaningful bound.
type FilterSet struct {
	Limit            int       `json:"limit,omitempty"`
	Address          string    `json:"address,omitempty"`
	TxHash           string    `json:"tx_hash,omitempty"`
	Type             string    `json:"type,omitempty"`
	Status           string    `json:"status,omitempty"`
	RiskLevel        string    `json:"risk_level,omitempty"`
	MaxRiskScore     *float64  `json:"max_risk_score,omitempty"`
	PendingLiquidity bool      `json:"pending_liquidity,omitempty"`
	Start            time.Time `json:"start,omitzero"`
	End              time.Time `json:"end,omitzero"`
	Date             time.Time `json:"date,omitzero"`
	Stats            bool      `json:"stats,omitempty"`
}

// Mode is what shape a request asks for.
type Mode int

const (
	ModeList Mode = iota
	ModeStats
)

func (m Mode) String() string {
	if m == ModeStats {
		return "stats"
	}
	return "list"
}

// Mode reports whether the filters select the aggregate shape. Tokens switch
// to daily stats when a date is present.
func (f FilterSet) Mode() Mode {
	if f.Stats || !f.Date.IsZero() {
		return ModeStats
	}
	return ModeList
}

// Values returns the defined fields as url.Values.
func (f FilterSet) Values() url.Values {
	v := url.Values{}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	setString(v, "address", f.Address)
	setString(v, "tx_hash", f.TxHash)
	setString(v, "type", f.Type)
	setString(v, "status", f.Status)
	setString(v, "risk_level", f.RiskLevel)
	if f.MaxRiskScore != nil {
		v.Set("max_risk_score", strconv.FormatFloat(*f.MaxRiskScore, 'f', -1, 64))
	}
	setFlag(v, "pending_liquidity", f.PendingLiquidity)
	if !f.Start.IsZero() {
		v.Set("start", f.Start.Format(TimeLayout))
	}
	if !f.End.IsZero() {
		v.Set("end", f.End.Format(TimeLayout))
	}
	if !f.Date.IsZero() {
		v.Set("date", f.Date.Format(DateLayout))
	}
	setFlag(v, "stats", f.Stats)
	return v
}

// Encode returns the canonical query string, keys sorted. Empty filters
// encode to "".
func Encode(f FilterSet) string {
	return f.Values().Encode()
}

// Float is a convenience for building MaxRiskScore.
func Float(v float64) *float64 { return &v }

func setString(v url.Values, key, val string) {
	if val != "" {
		v.Set(key, val)
	}
}

func setFlag(v url.Values, key string, on bool) {
	if on {
		v.Set(key, "1")
	}
}
