package domain

import "time"

// Alert is a rule-triggered flag attached to a transaction or screening result.
type Alert struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	PolicyCategory string         `json:"policy_category"`
	Direction      AlertDirection `json:"direction"`
	Status         AlertStatus    `json:"status"`
	Assignee       *string        `json:"assignee"`
	RiskLevel      RiskLevel      `json:"risk_level"`
	CreatedAt      time.Time      `json:"created_at"`
	SourceOfFunds  string         `json:"source_of_funds,omitempty"`
}

type AlertDirection string

const (
	DirectionIncoming AlertDirection = "Incoming"
	DirectionOutgoing AlertDirection = "Outgoing"
	DirectionBoth     AlertDirection = "Incoming/Outgoing"
)

type AlertStatus string

const (
	AlertStatusOpen       AlertStatus = "Open"
	AlertStatusInProgress AlertStatus = "In Progress"
	AlertStatusClosed     AlertStatus = "Closed"
	AlertStatusUnassigned AlertStatus = "Unassigned"
	AlertStatusNew        AlertStatus = "New"
)

// AlertStatuses lists statuses in generator draw order.
var AlertStatuses = []AlertStatus{
	AlertStatusOpen,
	AlertStatusInProgress,
	AlertStatusClosed,
	AlertStatusUnassigned,
	AlertStatusNew,
}
