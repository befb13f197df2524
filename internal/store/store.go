// Package store holds the in-memory demo state and its mutation actions.
//
// Collections are copy-on-write: a mutation builds a new slice (or map) and
// swaps it in under the write lock, so a snapshot handed to a reader never
// changes underneath it. Callers must treat returned slices as read-only.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Dr-Boom/KYT-Demo/internal/core/domain"
	"github.com/Dr-Boom/KYT-Demo/internal/emitter"
	"github.com/Dr-Boom/KYT-Demo/internal/metrics"
	"github.com/Dr-Boom/KYT-Demo/internal/mockdata"
)

// DefaultAuthor is used for findings created without an author.
const DefaultAuthor = "HAONAN"

var (
	ErrCaseNotFound        = errors.New("case not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrFindingNotFound     = errors.New("finding not found")
	ErrEmptyFinding        = errors.New("finding content is empty")
	ErrInvalidCase         = errors.New("invalid case")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrEmptyAddress        = errors.New("address is empty")
	ErrInvalidChain        = errors.New("invalid chain")
)

// Options configures a Store.
type Options struct {
	// Emitter receives an audit entry for every mutation. Defaults to a no-op.
	Emitter emitter.Emitter
	// DefaultAuthor is the finding author when none is given.
	DefaultAuthor string
	// Clock stamps findings, screenings and audit entries. Defaults to time.Now.
	Clock func() time.Time
}

// Snapshot is an immutable view of the store at one instant.
type Snapshot struct {
	Reference    time.Time
	Transactions []domain.Transaction
	Cases        []domain.Case
	Rules        []domain.Rule
	Screenings   []domain.AddressScreening
}

// Store is the explicit state container for the demo.
type Store struct {
	mu           sync.RWMutex
	reference    time.Time
	transactions []domain.Transaction
	cases        []domain.Case
	rules        []domain.Rule
	findings     map[string][]domain.Finding
	screenings   []domain.AddressScreening

	emitter       emitter.Emitter
	defaultAuthor string
	now           func() time.Time
}

// New creates a store seeded with ds.
func New(ds mockdata.Dataset, opts Options) *Store {
	if opts.Emitter == nil {
		opts.Emitter = emitter.Nop{}
	}
	if opts.DefaultAuthor == "" {
		opts.DefaultAuthor = DefaultAuthor
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	s := &Store{
		reference:     ds.Reference,
		transactions:  slices.Clone(ds.Transactions),
		cases:         slices.Clone(ds.Cases),
		rules:         slices.Clone(ds.Rules),
		findings:      make(map[string][]domain.Finding),
		emitter:       opts.Emitter,
		defaultAuthor: opts.DefaultAuthor,
		now:           opts.Clock,
	}
	s.recordSizes()
	return s
}

// -----------------------------------------------------------------------------
// Reads
// -----------------------------------------------------------------------------

// Snapshot returns the current collections.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Reference:    s.reference,
		Transactions: s.transactions,
		Cases:        s.cases,
		Rules:        s.rules,
		Screenings:   s.screenings,
	}
}

// Transactions returns the current transaction list.
func (s *Store) Transactions() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transactions
}

// Cases returns the current case list.
func (s *Store) Cases() []domain.Case {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cases
}

// Rules returns the rule catalog.
func (s *Store) Rules() []domain.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rules
}

// Case returns the first case with id.
func (s *Store) Case(id string) (domain.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cases {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Case{}, fmt.Errorf("%w: %s", ErrCaseNotFound, id)
}

// Transaction returns the transaction with id or hash.
func (s *Store) Transaction(idOrHash string) (domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.transactions {
		if t.ID == idOrHash || t.Hash == idOrHash {
			return t, nil
		}
	}
	return domain.Transaction{}, fmt.Errorf("%w: %s", ErrTransactionNotFound, idOrHash)
}

// Findings returns the findings of a case, newest first.
func (s *Store) Findings(caseID string) []domain.Finding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findings[caseID]
}

// Screenings returns the screening history, newest first.
func (s *Store) Screenings() []domain.AddressScreening {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.screenings
}

// -----------------------------------------------------------------------------
// Case actions
// -----------------------------------------------------------------------------

// AddCase prepends c to the case list. An empty id is assigned the next free
// case number. Transactions referenced by a crypto case are marked CASE_OPEN.
func (s *Store) AddCase(ctx context.Context, c domain.Case, user string) (domain.Case, error) {
	if !c.Type.Valid() {
		return domain.Case{}, fmt.Errorf("%w: type %q", ErrInvalidCase, c.Type)
	}
	if c.Type == domain.CaseTypeFiat && (c.HasCryptoFields() || len(c.LinkedTxIDs) > 0) {
		return domain.Case{}, fmt.Errorf("%w: fiat case carries crypto fields", ErrInvalidCase)
	}
	if c.Status == "" {
		c.Status = domain.CaseStatusNew
	}
	if !c.Status.Valid() {
		return domain.Case{}, fmt.Errorf("%w: status %q", ErrInvalidCase, c.Status)
	}
	if c.Priority == "" {
		c.Priority = domain.PriorityMedium
	}
	if !c.Priority.Valid() {
		return domain.Case{}, fmt.Errorf("%w: priority %q", ErrInvalidCase, c.Priority)
	}
	if c.LinkedTxIDs == nil {
		c.LinkedTxIDs = []string{}
	}
	if c.Notes == nil {
		c.Notes = []string{}
	}

	s.mu.Lock()
	if c.ID == "" {
		c.ID = nextCaseID(s.cases)
	}
	if c.CreatedDate.IsZero() {
		c.CreatedDate = s.now().UTC()
	}
	c.Ageing = mockdata.AgeInDays(c.CreatedDate, s.now())
	if c.Ageing < 0 {
		c.Ageing = 0
	}

	next := make([]domain.Case, 0, len(s.cases)+1)
	next = append(next, c)
	next = append(next, s.cases...)
	s.cases = next

	linked := make(map[string]bool)
	for _, h := range c.LinkedTxIDs {
		linked[h] = true
	}
	if c.TxHash != nil {
		linked[*c.TxHash] = true
	}
	var opened []string
	if len(linked) > 0 {
		txs := slices.Clone(s.transactions)
		for i := range txs {
			if linked[txs[i].Hash] && txs[i].Status != domain.TxStatusCaseOpen {
				txs[i].Status = domain.TxStatusCaseOpen
				opened = append(opened, txs[i].ID)
			}
		}
		if len(opened) > 0 {
			s.transactions = txs
		}
	}
	s.mu.Unlock()

	s.recordMutation(ctx, "add_case", &domain.AuditEntry{
		Type:    domain.AuditAlert,
		CaseID:  c.ID,
		Action:  "Case created",
		User:    user,
		Details: fmt.Sprintf("%s case for %s", c.Type, c.CustomerName),
		Metadata: map[string]any{
			"priority":     c.Priority,
			"opened_tx_id": opened,
		},
	})
	return c, nil
}

// UpdateCaseStatus sets the status of every case with id. Decisions can be
// revised but never returned to New.
func (s *Store) UpdateCaseStatus(ctx context.Context, id string, status domain.CaseStatus, user string) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var from domain.CaseStatus
	err := s.mutateCases(id, func(c *domain.Case) error {
		if !domain.CanTransitionCase(c.Status, status) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, c.Status, status)
		}
		from = c.Status
		c.Status = status
		return nil
	})
	if err != nil {
		return err
	}

	s.recordMutation(ctx, "update_case_status", &domain.AuditEntry{
		Type:    domain.AuditStatusChange,
		CaseID:  id,
		Action:  "Status changed",
		User:    user,
		Details: fmt.Sprintf("%s -> %s", from, status),
	})
	return nil
}

// UpdateCaseAssignee sets or clears (nil) the assignee of every case with id.
func (s *Store) UpdateCaseAssignee(ctx context.Context, id string, assignee *string, user string) error {
	if assignee != nil {
		name := strings.TrimSpace(*assignee)
		if name == "" {
			assignee = nil
		} else {
			assignee = &name
		}
	}

	var from string
	err := s.mutateCases(id, func(c *domain.Case) error {
		from = c.AssigneeName()
		c.Assignee = assignee
		return nil
	})
	if err != nil {
		return err
	}

	to := "Unassigned"
	if assignee != nil {
		to = *assignee
	}
	if from == "" {
		from = "Unassigned"
	}
	s.recordMutation(ctx, "update_case_assignee", &domain.AuditEntry{
		Type:    domain.AuditAssignment,
		CaseID:  id,
		Action:  "Assignee changed",
		User:    user,
		Details: fmt.Sprintf("%s -> %s", from, to),
	})
	return nil
}

func (s *Store) mutateCases(id string, fn func(*domain.Case) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.cases)
	found := false
	for i := range next {
		if next[i].ID != id {
			continue
		}
		found = true
		if err := fn(&next[i]); err != nil {
			return err
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrCaseNotFound, id)
	}
	s.cases = next
	return nil
}

// -----------------------------------------------------------------------------
// Transaction actions
// -----------------------------------------------------------------------------

// UpdateTransactionStatus sets the status of the transaction with id.
func (s *Store) UpdateTransactionStatus(ctx context.Context, id string, status domain.TxStatus, user string) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	next := slices.Clone(s.transactions)
	var from domain.TxStatus
	found := false
	for i := range next {
		if next[i].ID == id {
			from = next[i].Status
			next[i].Status = status
			found = true
		}
	}
	if found {
		s.transactions = next
	}
	s.mu.Unlock()

	if !found {
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}

	s.recordMutation(ctx, "update_transaction_status", &domain.AuditEntry{
		Type:    domain.AuditStatusChange,
		TxID:    id,
		Action:  "Transaction status changed",
		User:    user,
		Details: fmt.Sprintf("%s -> %s", from, status),
	})
	return nil
}

// -----------------------------------------------------------------------------
// Findings
// -----------------------------------------------------------------------------

// AddFinding trims content and prepends it to the case's findings.
func (s *Store) AddFinding(ctx context.Context, caseID, author, content string) (domain.Finding, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Finding{}, ErrEmptyFinding
	}
	author = strings.TrimSpace(author)
	if author == "" {
		author = s.defaultAuthor
	}
	if _, err := s.Case(caseID); err != nil {
		return domain.Finding{}, err
	}

	f := domain.Finding{
		ID:        "FND-" + shortID(),
		CaseID:    caseID,
		Author:    author,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	current := s.findings[caseID]
	list := make([]domain.Finding, 0, len(current)+1)
	list = append(list, f)
	list = append(list, current...)
	s.findings = withFindings(s.findings, caseID, list)
	s.mu.Unlock()

	s.recordMutation(ctx, "add_finding", &domain.AuditEntry{
		Type:    domain.AuditComment,
		CaseID:  caseID,
		Action:  "Finding added",
		User:    author,
		Details: content,
	})
	return f, nil
}

// DeleteFinding removes a finding from a case.
func (s *Store) DeleteFinding(ctx context.Context, caseID, findingID, user string) error {
	s.mu.Lock()
	current := s.findings[caseID]
	idx := slices.IndexFunc(current, func(f domain.Finding) bool { return f.ID == findingID })
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrFindingNotFound, findingID)
	}
	list := slices.Delete(slices.Clone(current), idx, idx+1)
	s.findings = withFindings(s.findings, caseID, list)
	s.mu.Unlock()

	s.recordMutation(ctx, "delete_finding", &domain.AuditEntry{
		Type:    domain.AuditComment,
		CaseID:  caseID,
		Action:  "Finding deleted",
		User:    user,
		Details: findingID,
	})
	return nil
}

func withFindings(m map[string][]domain.Finding, caseID string, list []domain.Finding) map[string][]domain.Finding {
	next := make(map[string][]domain.Finding, len(m)+1)
	for k, v := range m {
		next[k] = v
	}
	next[caseID] = list
	return next
}

// -----------------------------------------------------------------------------
// Screenings
// -----------------------------------------------------------------------------

// AddScreening records an address screening and returns its derived result.
func (s *Store) AddScreening(ctx context.Context, address string, chain domain.Chain, user string) (domain.AddressScreening, domain.ScreeningResult, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return domain.AddressScreening{}, domain.ScreeningResult{}, ErrEmptyAddress
	}
	if !chain.Valid() {
		return domain.AddressScreening{}, domain.ScreeningResult{}, fmt.Errorf("%w: %q", ErrInvalidChain, chain)
	}

	entry := domain.AddressScreening{
		ID:         "AS-" + shortID(),
		Address:    address,
		Chain:      chain,
		ScreenedAt: s.now().UTC(),
	}
	result := mockdata.Screen(address, chain, entry.ScreenedAt)

	s.mu.Lock()
	next := make([]domain.AddressScreening, 0, len(s.screenings)+1)
	next = append(next, entry)
	next = append(next, s.screenings...)
	s.screenings = next
	s.mu.Unlock()

	s.recordMutation(ctx, "add_screening", &domain.AuditEntry{
		Type:    domain.AuditAlert,
		Action:  "Address screened",
		User:    user,
		Details: fmt.Sprintf("%s on %s: %s", address, chain, result.Risk),
	})
	return entry, result, nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func (s *Store) recordMutation(ctx context.Context, action string, entry *domain.AuditEntry) {
	metrics.StoreMutations.WithLabelValues(action).Inc()
	s.recordSizes()

	entry.ID = "AUD-" + shortID()
	entry.Timestamp = s.now().UTC()
	if entry.User == "" {
		entry.User = s.defaultAuthor
	}
	if err := s.emitter.Emit(ctx, entry); err != nil {
		metrics.AuditPublishErrors.Inc()
		slog.Warn("Failed to emit audit entry", "action", action, "error", err)
	}
}

func (s *Store) recordSizes() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	metrics.DatasetItems.WithLabelValues("transactions").Set(float64(len(s.transactions)))
	metrics.DatasetItems.WithLabelValues("cases").Set(float64(len(s.cases)))
	metrics.DatasetItems.WithLabelValues("screenings").Set(float64(len(s.screenings)))
}

func nextCaseID(cases []domain.Case) string {
	highest := 999
	for _, c := range cases {
		n, err := strconv.Atoi(strings.TrimPrefix(c.ID, "CASE-"))
		if err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("CASE-%d", highest+1)
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
