package model

import "time"

// TransferRecord is one wallet transfer that triggered a notification.
type TransferRecord struct {
	ID           int64     `json:"id"`
	MonitorLabel string    `json:"monitor_label"`
	Direction    string    `json:"direction"`
	FromAddress  string    `json:"from_address"`
	ToAddress    string    `json:"to_address"`
	Amount       string    `json:"amount"`
	Currency     string    `json:"currency"`
	TxHash       string    `json:"tx_hash"`
	BlockNumber  int64     `json:"block_number"`
	Notified     bool      `json:"notified"`
	NotifyStatus string    `json:"notify_status"` // success / failed
	CreatedAt    time.Time `json:"created_at"`
}
