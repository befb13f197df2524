package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a monitored blockchain transfer.
type Transaction struct {
	ID              string          `json:"id"`
	Hash            string          `json:"hash"`
	Chain           Chain           `json:"chain"`
	Asset           Asset           `json:"asset"`
	Amount          decimal.Decimal `json:"amount"`
	USDValue        decimal.Decimal `json:"usd_value"`
	FeeNative       decimal.Decimal `json:"fee_native"`
	FeeUSD          decimal.Decimal `json:"fee_usd"`
	Timestamp       time.Time       `json:"timestamp"`
	DateAdded       time.Time       `json:"date_added"`
	LastScreenedAt  time.Time       `json:"last_screened_at"`
	RiskLevel       RiskLevel       `json:"risk_level"`
	RiskScore       int             `json:"risk_score"`
	Originator      Entity          `json:"originator"`
	Beneficiary     Entity          `json:"beneficiary"`
	RulesTriggered  []string        `json:"rules_triggered"`
	Status          TxStatus        `json:"status"`
	OpenAlertsCount int             `json:"open_alerts_count"`
	Alerts          []Alert         `json:"alerts"`
}

type TxStatus string

const (
	TxStatusCleared  TxStatus = "CLEARED"
	TxStatusAlert    TxStatus = "ALERT"
	TxStatusCaseOpen TxStatus = "CASE_OPEN"
	TxStatusBlocked  TxStatus = "BLOCKED"
)

// TxStatuses lists every transaction status in display order.
var TxStatuses = []TxStatus{TxStatusCleared, TxStatusAlert, TxStatusCaseOpen, TxStatusBlocked}

// Valid reports whether s is a known status.
func (s TxStatus) Valid() bool {
	for _, v := range TxStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Label returns the chart label for the status.
func (s TxStatus) Label() string {
	switch s {
	case TxStatusCleared:
		return "Cleared"
	case TxStatusAlert:
		return "Alert"
	case TxStatusCaseOpen:
		return "Case"
	case TxStatusBlocked:
		return "Blocked"
	}
	return string(s)
}
