package render

import (
	"fmt"
	"time"

	"MonitorBoard/internal/model"
	"MonitorBoard/internal/query"
	"MonitorBoard/internal/view"
)

// Page is what a viewer receives for one mounted page.
type Page struct {
	Session    string          `json:"session"`
	Page       string          `json:"page"`
	Status     view.Status     `json:"status"`
	Loading    bool            `json:"loading"`
	Error      string          `json:"error,omitempty"`
	Retry      bool            `json:"retry"`
	Query      query.FilterSet `json:"query"`
	UpdatedAgo string          `json:"updated_ago"`
	Count      int             `json:"count"`
	Rows       any             `json:"rows"`
	Stats      any             `json:"stats,omitempty"`
}

// Snapshot fills the fields every page shares. rows is the page's rendered
// item list.
func Snapshot[T any](session, page string, snap view.Snapshot[T], rows any, now time.Time) Page {
	p := Page{
		Session:    session,
		Page:       page,
		Status:     snap.Status(),
		Loading:    snap.Loading,
		Query:      snap.LastQuery,
		UpdatedAgo: TimeAgo(snap.UpdatedAt, now),
		Count:      len(snap.Items),
		Rows:       rows,
	}
	if snap.Err != nil {
		p.Error = snap.Err.Error()
		p.Retry = true
	}
	return p
}

type TransferRow struct {
	ID        int64  `json:"id"`
	Label     string `json:"label"`
	Direction string `json:"direction"`
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    string `json:"amount"`
	TxHash    string `json:"tx_hash"`
	TxShort   string `json:"tx_short"`
	TxURL     string `json:"tx_url"`
	Block     int64  `json:"block"`
	Notify    string `json:"notify"`
	Age       string `json:"age"`
}

func TransferRows(items []model.TransferRecord, now time.Time) []TransferRow {
	rows := make([]TransferRow, 0, len(items))
	for _, r := range items {
		rows = append(rows, TransferRow{
			ID:        r.ID,
			Label:     r.MonitorLabel,
			Direction: r.Direction,
			From:      ShortAddr(r.FromAddress),
			To:        ShortAddr(r.ToAddress),
			Amount:    FormatAmount(r.Amount, r.Currency),
			TxHash:    r.TxHash,
			TxShort:   ShortAddr(r.TxHash),
			TxURL:     TxURL(r.TxHash),
			Block:     r.BlockNumber,
			Notify:    r.NotifyStatus,
			Age:       TimeAgo(r.CreatedAt, now),
		})
	}
	return rows
}

type NotificationRow struct {
	ID      int64  `json:"id"`
	Type    string `json:"type"`
	OK      bool   `json:"ok"`
	From    string `json:"from"`
	To      string `json:"to"`
	Amount  string `json:"amount"`
	TxShort string `json:"tx_short"`
	TxURL   string `json:"tx_url"`
	Channel string `json:"channel"`
	Error   string `json:"error,omitempty"`
	Age     string `json:"age"`
}

func NotificationRows(items []model.Notification, now time.Time) []NotificationRow {
	rows := make([]NotificationRow, 0, len(items))
	for _, n := range items {
		rows = append(rows, NotificationRow{
			ID:      n.ID,
			Type:    n.Type,
			OK:      n.Status == "success",
			From:    ShortAddr(n.FromAddress),
			To:      ShortAddr(n.ToAddress),
			Amount:  FormatAmount(n.Amount, n.Currency),
			TxShort: ShortAddr(n.TxHash),
			TxURL:   TxURL(n.TxHash),
			Channel: n.PublishType,
			Error:   n.ErrorMsg,
			Age:     TimeAgo(n.CreatedAt, now),
		})
	}
	return rows
}

type TokenRow struct {
	ID         int64  `json:"id"`
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	AddressURL string `json:"address_url"`
	Risk       string `json:"risk"`
	RiskClass  string `json:"risk_class"`
	Honeypot   bool   `json:"honeypot"`
	Taxes      string `json:"taxes"`
	Liquidity  bool   `json:"liquidity"`
	Status     string `json:"status"`
	Age        string `json:"age"`
}

func TokenRows(items []model.TokenAnalysis, now time.Time) []TokenRow {
	rows := make([]TokenRow, 0, len(items))
	for _, t := range items {
		level := t.RiskLevel
		if level == "" {
			level = "-"
		}
		rows = append(rows, TokenRow{
			ID:         t.ID,
			Symbol:     t.Symbol,
			Name:       t.Name,
			Address:    ShortAddr(t.TokenAddress),
			AddressURL: AddressURL(t.TokenAddress),
			Risk:       fmt.Sprintf("%.0f · %s", t.RiskScore, level),
			RiskClass:  RiskClass(t.RiskLevel),
			Honeypot:   t.IsHoneypot,
			Taxes:      Percent(t.BuyTax) + " / " + Percent(t.SellTax),
			Liquidity:  t.HasLiquidity,
			Status:     TokenStatusLabel(t.Status),
			Age:        TimeAgo(t.CreatedAt, now),
		})
	}
	return rows
}

// NotificationTiles are the stats cards above the notification list.
type NotificationTiles struct {
	Total       int64             `json:"total"`
	Success     int64             `json:"success"`
	Failed      int64             `json:"failed"`
	Today       int64             `json:"today"`
	SuccessRate string            `json:"success_rate"`
	ByType      []model.TypeCount `json:"by_type"`
}

func NotificationStatsTiles(s model.NotificationStats) NotificationTiles {
	return NotificationTiles{
		Total:       s.Total,
		Success:     s.Success,
		Failed:      s.Failed,
		Today:       s.Today,
		SuccessRate: Percent(SuccessRate(s)),
		ByType:      s.ByType,
	}
}

// SummaryTiles are the dashboard cards.
type SummaryTiles struct {
	Date             string            `json:"date"`
	Notifications    NotificationTiles `json:"notifications"`
	TokensAnalyzed   int64             `json:"tokens_analyzed"`
	Honeypots        int64             `json:"honeypots"`
	RiskDistribution []model.RiskCount `json:"risk_distribution"`
	TransferCount    int               `json:"transfer_count"`
	Transfers        []TransferRow     `json:"transfers"`
}

func Summary(s model.Summary, now time.Time) SummaryTiles {
	return SummaryTiles{
		Date:             s.Date,
		Notifications:    NotificationStatsTiles(s.Notifications),
		TokensAnalyzed:   s.Tokens.Total,
		Honeypots:        s.Tokens.HoneypotCount,
		RiskDistribution: s.Tokens.RiskDistribution,
		TransferCount:    len(s.RecentTransfers),
		Transfers:        TransferRows(s.RecentTransfers, now),
	}
}
