package model

import "time"

// Notification is a delivered (or failed) alert.
type Notification struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"` // USDT_ALERT, MEV_DETECTION, ETH_ALERT ...
	Direction   string    `json:"direction"`
	FromAddress string    `json:"from_address"`
	ToAddress   string    `json:"to_address"`
	Amount      string    `json:"amount"`
	Currency    string    `json:"currency"`
	TxHash      string    `json:"tx_hash"`
	BlockNum    int64     `json:"block_num"`
	MevType     string    `json:"mev_type"`
	Confidence  float64   `json:"confidence"`
	Content     string    `json:"content"`
	Status      string    `json:"status"` // success, failed
	ErrorMsg    string    `json:"error_msg"`
	PublishType string    `json:"publish_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdateAt    time.Time `json:"update_at"`
}

// TypeCount is one row of the per-type breakdown.
type TypeCount struct {
	Type  string `json:"Type"`
	Count int64  `json:"Count"`
}

// NotificationStats is the aggregate returned by /notifications?stats=1.
type NotificationStats struct {
	Total   int64       `json:"total"`
	Success int64       `json:"success"`
	Failed  int64       `json:"failed"`
	Today   int64       `json:"today"`
	ByType  []TypeCount `json:"by_type"`
}
