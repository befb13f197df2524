package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Dr-Boom/KYT-Demo/internal/core/domain"
	"github.com/Dr-Boom/KYT-Demo/internal/emitter"
	"github.com/Dr-Boom/KYT-Demo/internal/mockdata"
	"github.com/Dr-Boom/KYT-Demo/internal/store"
	"github.com/Dr-Boom/KYT-Demo/internal/view"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	store   *store.Store
	audit   *emitter.MemoryLog
	history emitter.History
	loc     *time.Location
}

// NewHandlers creates new handlers. history may be nil.
func NewHandlers(st *store.Store, audit *emitter.MemoryLog, history emitter.History, loc *time.Location) *Handlers {
	return &Handlers{store: st, audit: audit, history: history, loc: loc}
}

// HealthCheck handles health check requests
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	respond(w, http.StatusOK, map[string]any{
		"status":       "healthy",
		"service":      "kyt",
		"transactions": len(snap.Transactions),
		"cases":        len(snap.Cases),
		"reference":    snap.Reference.Format(time.RFC3339),
	})
}

// Transaction handlers

func (h *Handlers) filteredTransactions(w http.ResponseWriter, r *http.Request) ([]domain.Transaction, bool) {
	q := r.URL.Query()
	keys, err := view.ParseSort(q.Get("sort"), view.TransactionFields)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	f := transactionFilterFrom(q, h.loc)
	return view.FilterAndSort(h.store.Transactions(), f.Match, keys, view.TransactionFields), true
}

// ListTransactions lists transactions matching the query filters
func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, ok := h.filteredTransactions(w, r)
	if !ok {
		return
	}
	respond(w, http.StatusOK, newList(txs))
}

// ExportTransactions streams the filtered transactions as CSV
func (h *Handlers) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	txs, ok := h.filteredTransactions(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions_export.csv"`)
	w.WriteHeader(http.StatusOK)
	if err := view.WriteTransactionsCSV(w, txs); err != nil {
		slog.Warn("CSV export interrupted", "rows", len(txs), "error", err)
	}
}

// GetTransaction gets a transaction by id or hash
func (h *Handlers) GetTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := h.store.Transaction(chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, tx)
}

// GetAlertSummary counts a transaction's alerts by status
func (h *Handlers) GetAlertSummary(w http.ResponseWriter, r *http.Request) {
	tx, err := h.store.Transaction(chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, view.SummarizeAlerts(tx.Alerts))
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateTransactionStatus sets a transaction's status
func (h *Handlers) UpdateTransactionStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.store.UpdateTransactionStatus(r.Context(), id, domain.TxStatus(req.Status), userFrom(r)); err != nil {
		respondErr(w, err)
		return
	}
	tx, err := h.store.Transaction(id)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, tx)
}

// GetDashboard computes the KPI row for the filtered transactions
func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	f := transactionFilterFrom(r.URL.Query(), h.loc)
	snap := h.store.Snapshot()
	txs := view.Filter(snap.Transactions, f.Match)
	respond(w, http.StatusOK, view.BuildDashboard(txs, snap.Rules))
}

// Case handlers

func (h *Handlers) filteredCases(w http.ResponseWriter, r *http.Request) ([]domain.Case, bool) {
	q := r.URL.Query()
	keys, err := view.ParseSort(q.Get("sort"), view.CaseFields)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	f := caseFilterFrom(q, h.loc)
	return view.FilterAndSort(h.store.Cases(), f.Match, keys, view.CaseFields), true
}

// ListCases lists cases matching the query filters
func (h *Handlers) ListCases(w http.ResponseWriter, r *http.Request) {
	cases, ok := h.filteredCases(w, r)
	if !ok {
		return
	}
	respond(w, http.StatusOK, newList(cases))
}

// GetCaseSummary computes counters over the filtered cases
func (h *Handlers) GetCaseSummary(w http.ResponseWriter, r *http.Request) {
	cases, ok := h.filteredCases(w, r)
	if !ok {
		return
	}
	respond(w, http.StatusOK, view.SummarizeCases(cases))
}

// GetCase gets a case by id
func (h *Handlers) GetCase(w http.ResponseWriter, r *http.Request) {
	c, err := h.store.Case(chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

type createCaseRequest struct {
	Type         domain.CaseType     `json:"type"`
	Priority     domain.CasePriority `json:"priority"`
	Bucket       string              `json:"bucket"`
	Assignee     *string             `json:"assignee"`
	AlertCount   int                 `json:"alert_count"`
	CustomerName string              `json:"customer_name"`
	CustomerID   string              `json:"customer_id"`
	Description  string              `json:"description"`
	LinkedTxIDs  []string            `json:"linked_tx_ids"`
	TxHash       *string             `json:"tx_hash"`
	Chain        *domain.Chain       `json:"chain"`
	Policy       *string             `json:"policy"`
	RuleName     *string             `json:"rule_name"`
	RiskLevel    *domain.RiskLevel   `json:"risk_level"`
}

func (req createCaseRequest) toCase() domain.Case {
	return domain.Case{
		Type:         req.Type,
		Priority:     req.Priority,
		Bucket:       req.Bucket,
		Assignee:     req.Assignee,
		AlertCount:   req.AlertCount,
		CustomerName: req.CustomerName,
		CustomerID:   req.CustomerID,
		Description:  req.Description,
		LinkedTxIDs:  req.LinkedTxIDs,
		TxHash:       req.TxHash,
		Chain:        req.Chain,
		Policy:       req.Policy,
		RuleName:     req.RuleName,
		RiskLevel:    req.RiskLevel,
	}
}

// CreateCase opens a new case
func (h *Handlers) CreateCase(w http.ResponseWriter, r *http.Request) {
	var req createCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	c, err := h.store.AddCase(r.Context(), req.toCase(), userFrom(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, c)
}

// UpdateCaseStatus records an analyst decision
func (h *Handlers) UpdateCaseStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.store.UpdateCaseStatus(r.Context(), id, domain.CaseStatus(req.Status), userFrom(r)); err != nil {
		respondErr(w, err)
		return
	}
	h.GetCase(w, r)
}

type assigneeRequest struct {
	Assignee *string `json:"assignee"`
}

// UpdateCaseAssignee assigns or unassigns a case
func (h *Handlers) UpdateCaseAssignee(w http.ResponseWriter, r *http.Request) {
	var req assigneeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.store.UpdateCaseAssignee(r.Context(), id, req.Assignee, userFrom(r)); err != nil {
		respondErr(w, err)
		return
	}
	h.GetCase(w, r)
}

// ListFindings lists a case's findings, newest first
func (h *Handlers) ListFindings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.store.Case(id); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, newList(h.store.Findings(id)))
}

type findingRequest struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

// AddFinding attaches an analyst note to a case
func (h *Handlers) AddFinding(w http.ResponseWriter, r *http.Request) {
	var req findingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	author := req.Author
	if author == "" {
		author = userFrom(r)
	}
	f, err := h.store.AddFinding(r.Context(), chi.URLParam(r, "id"), author, req.Content)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, f)
}

// DeleteFinding removes a finding
func (h *Handlers) DeleteFinding(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteFinding(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "findingID"), userFrom(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListRules lists the rule catalog
func (h *Handlers) ListRules(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, newList(h.store.Rules()))
}

// Screening handlers

// ListScreenings lists the screening history, newest first
func (h *Handlers) ListScreenings(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, newList(h.store.Screenings()))
}

type screenRequest struct {
	Address string       `json:"address"`
	Chain   domain.Chain `json:"chain"`
}

type screenResponse struct {
	Screening domain.AddressScreening `json:"screening"`
	Result    domain.ScreeningResult  `json:"result"`
}

// ScreenAddress screens an address and records it in the history
func (h *Handlers) ScreenAddress(w http.ResponseWriter, r *http.Request) {
	var req screenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Chain == "" {
		req.Chain = domain.ChainETH
	}
	entry, result, err := h.store.AddScreening(r.Context(), req.Address, req.Chain, userFrom(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, screenResponse{Screening: entry, Result: result})
}

// GetScreening re-derives the result of a past screening
func (h *Handlers) GetScreening(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, s := range h.store.Screenings() {
		if s.ID == id {
			respond(w, http.StatusOK, screenResponse{
				Screening: s,
				Result:    mockdata.Screen(s.Address, s.Chain, s.ScreenedAt),
			})
			return
		}
	}
	respondError(w, http.StatusNotFound, "Screening not found")
}

// GetExposure totals counterparty exposure for an address
func (h *Handlers) GetExposure(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	respond(w, http.StatusOK, view.CounterpartyExposure(address, h.store.Transactions()))
}

// defaultAuditLimit caps entries read back from the redis history.
const defaultAuditLimit = 100

// ListAudit lists recent audit entries, optionally for one case. source=redis
// reads the published history instead of the in-memory log.
func (h *Handlers) ListAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	caseID := q.Get("case_id")

	switch q.Get("source") {
	case "", "memory":
		if h.audit == nil {
			respond(w, http.StatusOK, newList([]domain.AuditEntry{}))
			return
		}
		respond(w, http.StatusOK, newList(h.audit.Entries(caseID)))
	case "redis":
		if h.history == nil {
			respondError(w, http.StatusBadRequest, "Redis audit history is not configured")
			return
		}
		limit := int64(defaultAuditLimit)
		if v := q.Get("limit"); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil || n <= 0 {
				respondError(w, http.StatusBadRequest, "Invalid limit")
				return
			}
			limit = n
		}
		entries, err := h.history.Recent(r.Context(), limit)
		if err != nil {
			slog.Warn("Failed to read audit history", "error", err)
			respondError(w, http.StatusBadGateway, "Audit history unavailable")
			return
		}
		if caseID != "" {
			entries = view.Filter(entries, func(e domain.AuditEntry) bool { return e.CaseID == caseID })
		}
		respond(w, http.StatusOK, newList(entries))
	default:
		respondError(w, http.StatusBadRequest, "Unknown audit source")
	}
}

func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, map[string]string{"error": message})
}

// respondErr maps store errors to HTTP status codes.
func respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrCaseNotFound),
		errors.Is(err, store.ErrTransactionNotFound),
		errors.Is(err, store.ErrFindingNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrInvalidCase),
		errors.Is(err, store.ErrInvalidStatus),
		errors.Is(err, store.ErrEmptyFinding),
		errors.Is(err, store.ErrEmptyAddress),
		errors.Is(err, store.ErrInvalidChain):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
