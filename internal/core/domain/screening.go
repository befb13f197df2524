package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddressScreening is one entry of the address screening history.
type AddressScreening struct {
	ID         string    `json:"id"`
	Address    string    `json:"address"`
	Chain      Chain     `json:"chain"`
	ScreenedAt time.Time `json:"screened_at"`
}

// ScreeningResult is the derived risk profile shown for a screened address.
type ScreeningResult struct {
	Address       string           `json:"address"`
	Chain         Chain            `json:"chain"`
	ScreenedAt    time.Time        `json:"screened_at"`
	Risk          RiskLevel        `json:"risk"`
	Asset         string           `json:"asset"`
	DigitalAssets []string         `json:"digital_assets"`
	OpenAlerts    int              `json:"open_alerts"`
	BalanceNative decimal.Decimal  `json:"balance_native"`
	BalanceUSD    decimal.Decimal  `json:"balance_usd"`
	OwnerName     string           `json:"owner_name"`
	OwnerType     string           `json:"owner_type"`
	UserLabel     string           `json:"user_label"`
	UserType      string           `json:"user_type"`
	EarliestTx    time.Time        `json:"earliest_tx"`
	LatestTx      time.Time        `json:"latest_tx"`
	Alerts        []ScreeningAlert `json:"alerts"`
}

// ScreeningAlert is an alert raised on a screened address.
type ScreeningAlert struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	PolicyName  string         `json:"policy_name"`
	RuleName    string         `json:"rule_name"`
	Direction   AlertDirection `json:"direction"`
	Status      AlertStatus    `json:"status"`
	Level       RiskLevel      `json:"level"`
	Description string         `json:"description"`
	OpenedAt    time.Time      `json:"opened_at"`
}
