package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Dr-Boom/KYT-Demo/internal/core/domain"
)

func TestHistoryKey(t *testing.T) {
	if got := historyKey(DefaultChannel); got != "kyt:audit:history" {
		t.Errorf("expected kyt:audit:history, got %s", got)
	}
}

func TestNewAuditPublisher_DefaultChannel(t *testing.T) {
	p := NewAuditPublisher(nil, "")
	if p.channel != DefaultChannel {
		t.Errorf("expected %s, got %s", DefaultChannel, p.channel)
	}
}

func TestEncodeEntry(t *testing.T) {
	entry := &domain.AuditEntry{
		ID:        "AUD-1",
		Type:      domain.AuditStatusChange,
		CaseID:    "CASE-1234",
		Action:    "Status changed",
		User:      "Alice Chen",
		Details:   "New -> True Hit",
		Timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	payload, err := encodeEntry(entry)
	if err != nil {
		t.Fatalf("encodeEntry failed: %v", err)
	}

	var decoded domain.AuditEntry
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.CaseID != entry.CaseID || decoded.Type != entry.Type {
		t.Errorf("decoded entry mismatch: %+v", decoded)
	}
	if !decoded.Timestamp.Equal(entry.Timestamp) {
		t.Errorf("timestamp mismatch: %v", decoded.Timestamp)
	}
}

func TestDecodeEntries(t *testing.T) {
	first, _ := encodeEntry(&domain.AuditEntry{ID: "AUD-2", CaseID: "CASE-1234"})
	second, _ := encodeEntry(&domain.AuditEntry{ID: "AUD-1", CaseID: "CASE-5678"})

	entries, err := decodeEntries([]string{string(first), string(second)})
	if err != nil {
		t.Fatalf("decodeEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "AUD-2" || entries[1].CaseID != "CASE-5678" {
		t.Errorf("entries out of order: %+v", entries)
	}

	if _, err := decodeEntries([]string{"{not json"}); err == nil {
		t.Error("expected error for malformed entry")
	}
}

func TestRecent_NonPositiveLimit(t *testing.T) {
	p := NewAuditPublisher(nil, "")
	entries, err := p.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}
