package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dr-Boom/KYT-Demo/internal/core/domain"
	"github.com/Dr-Boom/KYT-Demo/internal/emitter"
	"github.com/Dr-Boom/KYT-Demo/internal/mockdata"
)

var fixedNow = time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)

// ============================================================================
// Test helpers
// ============================================================================

type failingEmitter struct{}

func (failingEmitter) Emit(context.Context, *domain.AuditEntry) error { return errors.New("down") }
func (failingEmitter) Close() error                                  { return nil }

func newTestStore(t *testing.T) (*Store, *emitter.MemoryLog) {
	t.Helper()
	log := emitter.NewMemoryLog(100)
	s := New(mockdata.Generate(mockdata.DefaultOptions()), Options{
		Emitter: log,
		Clock:   func() time.Time { return fixedNow },
	})
	return s, log
}

func firstCase(t *testing.T, s *Store, status domain.CaseStatus) domain.Case {
	t.Helper()
	for _, c := range s.Cases() {
		if c.Status == status {
			return c
		}
	}
	t.Fatalf("no case with status %s", status)
	return domain.Case{}
}

// ============================================================================
// Case status
// ============================================================================

func TestUpdateCaseStatus(t *testing.T) {
	s, log := newTestStore(t)
	ctx := context.Background()
	c := firstCase(t, s, domain.CaseStatusNew)

	before := s.Snapshot()
	require.NoError(t, s.UpdateCaseStatus(ctx, c.ID, domain.CaseStatusTrueHit, "Alice Chen"))

	got, err := s.Case(c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CaseStatusTrueHit, got.Status)

	// The earlier snapshot is untouched.
	for _, old := range before.Cases {
		if old.ID == c.ID {
			assert.Equal(t, domain.CaseStatusNew, old.Status)
		}
	}

	entries := log.Entries(c.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditStatusChange, entries[0].Type)
	assert.Equal(t, "New -> True Hit", entries[0].Details)
	assert.Equal(t, fixedNow, entries[0].Timestamp)
}

func TestUpdateCaseStatus_Errors(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	c := firstCase(t, s, domain.CaseStatusNew)

	err := s.UpdateCaseStatus(ctx, "CASE-0", domain.CaseStatusTrueHit, "")
	assert.ErrorIs(t, err, ErrCaseNotFound)

	err = s.UpdateCaseStatus(ctx, c.ID, domain.CaseStatus("Escalated"), "")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	require.NoError(t, s.UpdateCaseStatus(ctx, c.ID, domain.CaseStatusFalseHit, ""))
	err = s.UpdateCaseStatus(ctx, c.ID, domain.CaseStatusNew, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	got, _ := s.Case(c.ID)
	assert.Equal(t, domain.CaseStatusFalseHit, got.Status)
}

func TestUpdateCaseAssignee(t *testing.T) {
	s, log := newTestStore(t)
	ctx := context.Background()
	c := s.Cases()[0]

	name := "Diana Prince"
	require.NoError(t, s.UpdateCaseAssignee(ctx, c.ID, &name, ""))
	got, _ := s.Case(c.ID)
	assert.Equal(t, "Diana Prince", got.AssigneeName())

	blank := "   "
	require.NoError(t, s.UpdateCaseAssignee(ctx, c.ID, &blank, ""))
	got, _ = s.Case(c.ID)
	assert.Nil(t, got.Assignee)

	entries := log.Entries(c.ID)
	require.Len(t, entries, 2)
	assert.Equal(t, "Diana Prince -> Unassigned", entries[0].Details)
	assert.Equal(t, DefaultAuthor, entries[0].User)
}

// ============================================================================
// AddCase
// ============================================================================

func TestAddCase(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	tx := s.Transactions()[0]
	hash := tx.Hash
	chain := tx.Chain
	c, err := s.AddCase(ctx, domain.Case{
		Type:         domain.CaseTypeCrypto,
		CustomerName: "Customer 101",
		TxHash:       &hash,
		Chain:        &chain,
	}, "Bob Smith")
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, domain.CaseStatusNew, c.Status)
	assert.Equal(t, domain.PriorityMedium, c.Priority)
	assert.Equal(t, fixedNow, c.CreatedDate)
	assert.Equal(t, c.ID, s.Cases()[0].ID, "new case is prepended")

	updated, err := s.Transaction(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TxStatusCaseOpen, updated.Status)
}

func TestAddCase_Validation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	hash := "0xabc"

	tests := []struct {
		name string
		c    domain.Case
	}{
		{"missing type", domain.Case{}},
		{"fiat with crypto field", domain.Case{Type: domain.CaseTypeFiat, TxHash: &hash}},
		{"fiat with linked tx", domain.Case{Type: domain.CaseTypeFiat, LinkedTxIDs: []string{hash}}},
		{"bad priority", domain.Case{Type: domain.CaseTypeFiat, Priority: "URGENT"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddCase(ctx, tt.c, "")
			assert.ErrorIs(t, err, ErrInvalidCase)
		})
	}
}

func TestNextCaseID(t *testing.T) {
	cases := []domain.Case{{ID: "CASE-1200"}, {ID: "CASE-9999"}, {ID: "custom"}}
	assert.Equal(t, "CASE-10000", nextCaseID(cases))
	assert.Equal(t, "CASE-1000", nextCaseID(nil))
}

// ============================================================================
// Transactions
// ============================================================================

func TestUpdateTransactionStatus(t *testing.T) {
	s, log := newTestStore(t)
	ctx := context.Background()
	tx := s.Transactions()[3]

	require.NoError(t, s.UpdateTransactionStatus(ctx, tx.ID, domain.TxStatusBlocked, "Evan Wright"))
	got, err := s.Transaction(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TxStatusBlocked, got.Status)

	byHash, err := s.Transaction(tx.Hash)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, byHash.ID)

	assert.ErrorIs(t, s.UpdateTransactionStatus(ctx, "TX-0", domain.TxStatusBlocked, ""), ErrTransactionNotFound)
	assert.ErrorIs(t, s.UpdateTransactionStatus(ctx, tx.ID, "FROZEN", ""), ErrInvalidStatus)

	entries := log.Entries("")
	require.NotEmpty(t, entries)
	assert.Equal(t, tx.ID, entries[0].TxID)
}

// ============================================================================
// Findings
// ============================================================================

func TestFindings(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	c := s.Cases()[0]

	first, err := s.AddFinding(ctx, c.ID, "", "  wallet linked to mixer  ")
	require.NoError(t, err)
	assert.Equal(t, "wallet linked to mixer", first.Content)
	assert.Equal(t, DefaultAuthor, first.Author)
	assert.Regexp(t, `^FND-[0-9a-f]{8}$`, first.ID)

	second, err := s.AddFinding(ctx, c.ID, "Alice Chen", "escalated")
	require.NoError(t, err)

	list := s.Findings(c.ID)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")

	require.NoError(t, s.DeleteFinding(ctx, c.ID, first.ID, ""))
	after := s.Findings(c.ID)
	require.Len(t, after, 1)
	assert.Equal(t, second.ID, after[0].ID)
	assert.Len(t, list, 2, "old snapshot unchanged")

	assert.ErrorIs(t, s.DeleteFinding(ctx, c.ID, first.ID, ""), ErrFindingNotFound)
}

func TestAddFinding_Rejects(t *testing.T) {
	s, log := newTestStore(t)
	ctx := context.Background()
	c := s.Cases()[0]

	_, err := s.AddFinding(ctx, c.ID, "", "   \n\t")
	assert.ErrorIs(t, err, ErrEmptyFinding)
	assert.Empty(t, s.Findings(c.ID))

	_, err = s.AddFinding(ctx, "CASE-0", "", "note")
	assert.ErrorIs(t, err, ErrCaseNotFound)

	assert.Zero(t, log.Len())
}

// ============================================================================
// Screenings
// ============================================================================

func TestAddScreening(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	entry, result, err := s.AddScreening(ctx, " 0xdeadbeef ", domain.ChainETH, "")
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", entry.Address)
	assert.Equal(t, fixedNow, entry.ScreenedAt)
	assert.Equal(t, domain.RiskCritical, result.Risk)

	_, _, err = s.AddScreening(ctx, "T123", domain.ChainTRX, "")
	require.NoError(t, err)

	history := s.Screenings()
	require.Len(t, history, 2)
	assert.Equal(t, "T123", history[0].Address)

	_, _, err = s.AddScreening(ctx, "  ", domain.ChainETH, "")
	assert.ErrorIs(t, err, ErrEmptyAddress)
	_, _, err = s.AddScreening(ctx, "0x1", "DOGE", "")
	assert.ErrorIs(t, err, ErrInvalidChain)
}

func TestEmitterFailureDoesNotFailMutation(t *testing.T) {
	s := New(mockdata.Generate(mockdata.DefaultOptions()), Options{Emitter: failingEmitter{}})
	c := s.Cases()[0]

	_, err := s.AddFinding(context.Background(), c.ID, "", "still saved")
	require.NoError(t, err)
	assert.Len(t, s.Findings(c.ID), 1)
}
