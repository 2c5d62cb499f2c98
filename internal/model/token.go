package model

import "time"

// TokenAnalysis is the risk analysis of a newly deployed token.
type TokenAnalysis struct {
	ID           int64  `json:"id"`
	TokenAddress string `json:"token_address"`

	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    uint8  `json:"decimals"`
	TotalSupply string `json:"total_supply"`

	HasLiquidity     bool    `json:"has_liquidity"`
	LiquidityUSD     float64 `json:"liquidity_usd"`
	InitialMarketCap float64 `json:"initial_market_cap"`
	PairAddress      string  `json:"pair_address"`

	IsVerified     bool    `json:"is_verified"`
	IsHoneypot     bool    `json:"is_honeypot"`
	HoneypotReason string  `json:"honeypot_reason"`
	BuyTax         float64 `json:"buy_tax"`
	SellTax        float64 `json:"sell_tax"`

	HolderCount     int     `json:"holder_count"`
	Top10HoldingPct float64 `json:"top10_holding_pct"`

	OwnerAddress         string `json:"owner_address"`
	IsOwnershipRenounced bool   `json:"is_ownership_renounced"`

	RiskScore    float64 `json:"risk_score"` // 0-100, lower is safer
	RiskLevel    string  `json:"risk_level"` // low, medium, high, critical
	RiskFlags    string  `json:"risk_flags"`
	Status       string  `json:"status"`
	SafetyStatus string  `json:"safety_status"`

	Website  string `json:"website"`
	Twitter  string `json:"twitter"`
	Telegram string `json:"telegram"`

	PairCreatedAt    *time.Time `json:"pair_created_at,omitempty"`
	LiquidityAddedAt *time.Time `json:"liquidity_added_at,omitempty"`
	LastCheckAt      *time.Time `json:"last_check_at,omitempty"`
	AnalyzedAt       time.Time  `json:"analyzed_at"`
	CreatedAt        time.Time  `json:"created_at"`
}

// RiskCount is one row of the daily risk-level distribution.
type RiskCount struct {
	RiskLevel string `json:"RiskLevel"`
	Count     int64  `json:"Count"`
}

// TokenDailyStats is the aggregate returned by /tokens?date=YYYY-MM-DD.
type TokenDailyStats struct {
	Total            int64       `json:"total"`
	HoneypotCount    int64       `json:"honeypot_count"`
	RiskDistribution []RiskCount `json:"risk_distribution"`
}
