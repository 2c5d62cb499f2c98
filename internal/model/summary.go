package model

// Summary is one dashboard refresh: both aggregates plus the latest transfers.
type Summary struct {
	Notifications   NotificationStats `json:"notifications"`
	Tokens          TokenDailyStats   `json:"tokens"`
	RecentTransfers []TransferRecord  `json:"recent_transfers"`
	Date            string            `json:"date"`
}
