package domain

import "time"

// Case is an investigation record, optionally linked to an on-chain transaction.
type Case struct {
	ID           string       `json:"id"`
	Type         CaseType     `json:"type"`
	Status       CaseStatus   `json:"status"`
	Priority     CasePriority `json:"priority"`
	Bucket       string       `json:"bucket"`
	Assignee     *string      `json:"assignee"`
	CreatedDate  time.Time    `json:"created_date"`
	Ageing       int          `json:"ageing"`
	AlertCount   int          `json:"alert_count"`
	CustomerName string       `json:"customer_name"`
	CustomerID   string       `json:"customer_id"`
	Description  string       `json:"description"`
	LinkedTxIDs  []string     `json:"linked_tx_ids"`
	Notes        []string     `json:"notes"`

	// Crypto-only fields. Nil for FIAT cases.
	TxHash    *string    `json:"tx_hash,omitempty"`
	Chain     *Chain     `json:"chain,omitempty"`
	Policy    *string    `json:"policy,omitempty"`
	RuleName  *string    `json:"rule_name,omitempty"`
	RiskLevel *RiskLevel `json:"risk_level,omitempty"`
}

// HasCryptoFields reports whether any crypto-only field is populated.
func (c *Case) HasCryptoFields() bool {
	return c.TxHash != nil || c.Chain != nil || c.Policy != nil ||
		c.RuleName != nil || c.RiskLevel != nil
}

// AssigneeName returns the assignee or "" when unassigned.
func (c *Case) AssigneeName() string {
	if c.Assignee == nil {
		return ""
	}
	return *c.Assignee
}

type CaseType string

const (
	CaseTypeFiat   CaseType = "FIAT"
	CaseTypeCrypto CaseType = "CRYPTO"
)

// Valid reports whether t is a known case type.
func (t CaseType) Valid() bool {
	return t == CaseTypeFiat || t == CaseTypeCrypto
}

type CasePriority string

const (
	PriorityLow      CasePriority = "LOW"
	PriorityMedium   CasePriority = "MEDIUM"
	PriorityHigh     CasePriority = "HIGH"
	PriorityCritical CasePriority = "CRITICAL"
)

// CasePriorities lists priorities in generator draw order.
var CasePriorities = []CasePriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// IsHigh reports whether the priority counts as high on the case summary.
func (p CasePriority) IsHigh() bool {
	return p == PriorityHigh || p == PriorityCritical
}

// Valid reports whether p is a known priority.
func (p CasePriority) Valid() bool {
	for _, v := range CasePriorities {
		if v == p {
			return true
		}
	}
	return false
}
