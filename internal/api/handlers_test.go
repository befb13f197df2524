package api

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dr-Boom/KYT-Demo/internal/core/domain"
	"github.com/Dr-Boom/KYT-Demo/internal/emitter"
	"github.com/Dr-Boom/KYT-Demo/internal/mockdata"
	"github.com/Dr-Boom/KYT-Demo/internal/store"
	"github.com/Dr-Boom/KYT-Demo/internal/view"
)

// ============================================================================
// Test helpers
// ============================================================================

type testEnv struct {
	store  *store.Store
	audit  *emitter.MemoryLog
	router http.Handler
}

type fakeHistory struct {
	entries []domain.AuditEntry
	err     error
	limit   int64
}

func (f *fakeHistory) Recent(_ context.Context, n int64) ([]domain.AuditEntry, error) {
	f.limit = n
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithHistory(t, nil)
}

func newTestEnvWithHistory(t *testing.T, history emitter.History) *testEnv {
	t.Helper()
	audit := emitter.NewMemoryLog(100)
	st := store.New(mockdata.Generate(mockdata.DefaultOptions()), store.Options{
		Emitter: audit,
		Clock:   func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) },
	})
	srv := NewServer(Config{Port: 0, Location: time.UTC, History: history}, st, audit)
	return &testEnv{store: st, audit: audit, router: srv.Router()}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(userHeader, "Alice Chen")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// ============================================================================
// Transactions
// ============================================================================

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.EqualValues(t, 300, body["transactions"])
}

func TestListTransactions_Filter(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/v1/transactions?chain=eth&risk=all", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	list := decode[listResponse[domain.Transaction]](t, rec)
	assert.Equal(t, len(list.Items), list.Total)
	assert.False(t, list.Empty)
	for _, tx := range list.Items {
		assert.Equal(t, domain.ChainETH, tx.Chain)
	}
}

func TestListTransactions_Empty(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/v1/transactions?search=no-such-hash", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	list := decode[listResponse[domain.Transaction]](t, rec)
	assert.True(t, list.Empty)
	assert.NotNil(t, list.Items)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
}

func TestListTransactions_Sort(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/v1/transactions?sort=riskScore:desc", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	list := decode[listResponse[domain.Transaction]](t, rec)
	for i := 1; i < len(list.Items); i++ {
		assert.GreaterOrEqual(t, list.Items[i-1].RiskScore, list.Items[i].RiskScore)
	}

	bad := env.do(t, http.MethodGet, "/api/v1/transactions?sort=nope", nil)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestExportTransactions(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/v1/transactions/export?asset=BTC", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, view.ExportHeaders, records[0])
	for _, r := range records[1:] {
		assert.Equal(t, "BTC", r[2])
	}
}

func TestTransactionStatusAndSummary(t *testing.T) {
	env := newTestEnv(t)
	var target domain.Transaction
	for _, tx := range env.store.Transactions() {
		if len(tx.Alerts) > 0 {
			target = tx
			break
		}
	}
	require.NotEmpty(t, target.Hash)

	rec := env.do(t, http.MethodGet, "/api/v1/transactions/"+target.Hash+"/alerts/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[view.AlertSummary](t, rec)
	assert.Equal(t, len(target.Alerts), summary.All)

	rec = env.do(t, http.MethodPut, "/api/v1/transactions/"+target.Hash+"/status", map[string]string{"status": "BLOCKED"})
	assert.Equal(t, http.StatusNotFound, rec.Code, "status updates address transactions by id")

	rec = env.do(t, http.MethodPut, "/api/v1/transactions/"+target.ID+"/status", map[string]string{"status": "BLOCKED"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.TxStatusBlocked, decode[domain.Transaction](t, rec).Status)

	rec = env.do(t, http.MethodPut, "/api/v1/transactions/"+target.ID+"/status", map[string]string{"status": "FROZEN"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetDashboard(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/v1/dashboard?chain=BTC", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	d := decode[view.Dashboard](t, rec)
	count := 0
	for _, tx := range env.store.Transactions() {
		if tx.Chain == domain.ChainBTC {
			count++
		}
	}
	assert.Equal(t, count, d.Total)
}

// ============================================================================
// Cases
// ============================================================================

func TestCaseLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/cases", map[string]any{
		"type":          "FIAT",
		"priority":      "HIGH",
		"customer_name": "Customer 321",
		"customer_id":   "CUST-55555",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[domain.Case](t, rec)
	assert.Equal(t, domain.CaseStatusNew, created.Status)

	path := "/api/v1/cases/" + created.ID
	rec = env.do(t, http.MethodPut, path+"/status", map[string]string{"status": "True Hit"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.CaseStatusTrueHit, decode[domain.Case](t, rec).Status)

	rec = env.do(t, http.MethodPut, path+"/status", map[string]string{"status": "New"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPut, path+"/assignee", map[string]any{"assignee": "Bob Smith"})
	require.Equal(t, http.StatusOK, rec.Code)
	assigned := decode[domain.Case](t, rec)
	assert.Equal(t, "Bob Smith", assigned.AssigneeName())

	rec = env.do(t, http.MethodPut, path+"/assignee", map[string]any{"assignee": nil})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[domain.Case](t, rec).Assignee)

	rec = env.do(t, http.MethodGet, "/api/v1/audit?case_id="+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	audit := decode[listResponse[domain.AuditEntry]](t, rec)
	assert.Equal(t, 4, audit.Total)
	assert.Equal(t, "Alice Chen", audit.Items[0].User)
}

func TestCreateCase_Invalid(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/cases", map[string]any{
		"type":    "FIAT",
		"tx_hash": "0xabc",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cases", strings.NewReader("{"))
	bad := httptest.NewRecorder()
	env.router.ServeHTTP(bad, req)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestListCases_FilterSortSummary(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/cases?type=crypto&sort=caseId:asc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[listResponse[domain.Case]](t, rec)
	for _, c := range list.Items {
		assert.Equal(t, domain.CaseTypeCrypto, c.Type)
	}
	for i := 1; i < len(list.Items); i++ {
		assert.LessOrEqual(t, list.Items[i-1].ID[5:], list.Items[i].ID[5:])
	}

	rec = env.do(t, http.MethodGet, "/api/v1/cases/summary?type=crypto", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[view.CaseSummary](t, rec)
	assert.Equal(t, list.Total, summary.Total)
}

func TestGetCase_NotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/v1/cases/CASE-0", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "case not found")
}

func TestFindingsEndpoints(t *testing.T) {
	env := newTestEnv(t)
	c := env.store.Cases()[0]
	path := "/api/v1/cases/" + c.ID + "/findings"

	rec := env.do(t, http.MethodPost, path, map[string]string{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, path, map[string]string{"content": " traced to exchange "})
	require.Equal(t, http.StatusCreated, rec.Code)
	f := decode[domain.Finding](t, rec)
	assert.Equal(t, "traced to exchange", f.Content)
	assert.Equal(t, "Alice Chen", f.Author)

	rec = env.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[listResponse[domain.Finding]](t, rec).Total)

	rec = env.do(t, http.MethodDelete, path+"/"+f.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodDelete, path+"/"+f.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ============================================================================
// Screening, exposure, rules
// ============================================================================

func TestScreeningEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/screenings", map[string]string{
		"address": "TXyz123",
		"chain":   "TRX",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[screenResponse](t, rec)
	assert.Equal(t, domain.RiskCritical, created.Result.Risk)
	assert.Len(t, created.Result.Alerts, 4)

	rec = env.do(t, http.MethodGet, "/api/v1/screenings/"+created.Screening.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	again := decode[screenResponse](t, rec)
	assert.Equal(t, created.Result.DigitalAssets, again.Result.DigitalAssets)

	rec = env.do(t, http.MethodGet, "/api/v1/screenings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[listResponse[domain.AddressScreening]](t, rec).Total)

	rec = env.do(t, http.MethodPost, "/api/v1/screenings", map[string]string{"address": " "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/screenings/AS-missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetExposure(t *testing.T) {
	env := newTestEnv(t)
	tx := env.store.Transactions()[0]

	rec := env.do(t, http.MethodGet, "/api/v1/exposures/"+tx.Beneficiary.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	exp := decode[view.Exposure](t, rec)
	assert.GreaterOrEqual(t, exp.Transactions, 1)
	assert.NotEmpty(t, exp.ByType)
}

func TestListRules(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/v1/rules", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, len(domain.RuleCatalog), decode[listResponse[domain.Rule]](t, rec).Total)
}

// ============================================================================
// Audit
// ============================================================================

func TestListAudit_RedisSource(t *testing.T) {
	history := &fakeHistory{entries: []domain.AuditEntry{
		{ID: "AUD-3", CaseID: "CASE-2000"},
		{ID: "AUD-2", CaseID: "CASE-1000"},
		{ID: "AUD-1", CaseID: "CASE-2000"},
	}}
	env := newTestEnvWithHistory(t, history)

	rec := env.do(t, http.MethodGet, "/api/v1/audit?source=redis", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decode[listResponse[domain.AuditEntry]](t, rec).Total)
	assert.EqualValues(t, defaultAuditLimit, history.limit)

	rec = env.do(t, http.MethodGet, "/api/v1/audit?source=redis&case_id=CASE-2000&limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[listResponse[domain.AuditEntry]](t, rec)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, "AUD-3", list.Items[0].ID)
	assert.EqualValues(t, 10, history.limit)

	rec = env.do(t, http.MethodGet, "/api/v1/audit?source=redis&limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	history.err = errors.New("connection refused")
	rec = env.do(t, http.MethodGet, "/api/v1/audit?source=redis", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestListAudit_SourceErrors(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/audit?source=redis", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/audit?source=kafka", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/audit?source=memory", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
