package emitter

import (
	"context"
	"sync"

	"github.com/Dr-Boom/KYT-Demo/internal/core/domain"
)

// DefaultLogCapacity bounds the in-memory audit log.
const DefaultLogCapacity = 1000

// MemoryLog keeps the most recent audit entries in a ring buffer.
type MemoryLog struct {
	mu      sync.RWMutex
	entries []domain.AuditEntry
	next    int
	full    bool
}

// NewMemoryLog creates a log holding at most capacity entries.
func NewMemoryLog(capacity int) *MemoryLog {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &MemoryLog{entries: make([]domain.AuditEntry, capacity)}
}

func (m *MemoryLog) Emit(_ context.Context, entry *domain.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[m.next] = *entry
	m.next = (m.next + 1) % len(m.entries)
	if m.next == 0 {
		m.full = true
	}
	return nil
}

func (m *MemoryLog) Close() error { return nil }

// Len returns the number of retained entries.
func (m *MemoryLog) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.full {
		return len(m.entries)
	}
	return m.next
}

// Entries returns retained entries newest first. When caseID is non-empty only
// entries for that case are returned.
func (m *MemoryLog) Entries(caseID string) []domain.AuditEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := m.next
	if m.full {
		n = len(m.entries)
	}
	out := make([]domain.AuditEntry, 0, n)
	for i := 1; i <= n; i++ {
		idx := (m.next - i + len(m.entries)) % len(m.entries)
		e := m.entries[idx]
		if caseID != "" && e.CaseID != caseID {
			continue
		}
		out = append(out, e)
	}
	return out
}
