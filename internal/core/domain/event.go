package domain

import "time"

// AuditEntry records a mutation performed on the demo state.
type AuditEntry struct {
	ID        string         `json:"id"`
	Type      AuditEntryType `json:"type"`
	CaseID    string         `json:"case_id,omitempty"`
	TxID      string         `json:"tx_id,omitempty"`
	Action    string         `json:"action"`
	User      string         `json:"user"`
	Details   string         `json:"details"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type AuditEntryType string

const (
	AuditStatusChange AuditEntryType = "status_change"
	AuditComment      AuditEntryType = "comment"
	AuditAssignment   AuditEntryType = "assignment"
	AuditAlert        AuditEntryType = "alert"
)
