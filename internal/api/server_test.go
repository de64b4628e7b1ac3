package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgermatch/ledgermatch/internal/domain/recon"
	"github.com/ledgermatch/ledgermatch/internal/infrastructure/config"
)

const testStatement = `<OFX>
<ORG>BB
<STMTTRN>
<TRNAMT>150.00
<DTPOSTED>20240304
<NAME>PIX RECEBIDO MARIA JOSE
</STMTTRN>
<STMTTRN>
<TRNAMT>-80.00
<DTPOSTED>20240305
<NAME>TRANSFERENCIA FORNECEDOR
</STMTTRN>
</OFX>`

const testReport = `<html><body>
<div style="top:100px; left:80px;">MARIA JOSE</div>
<div style="top:100px; left:150px;">12345678901</div>
<div style="top:100px; left:210px;">150,00</div>
<div style="top:100px; left:500px;">04/03/2024</div>
<div style="top:100px; left:560px;">PIX</div>
<div style="top:100px; left:730px;">4101</div>
</body></html>`

func newTestServer(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.LoadFromEnv()
	srv := NewServer(recon.NewSession(nil, nil), nil, cfg, nil)
	return srv, srv.Router(nil)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func importFixtures(t *testing.T, router *gin.Engine) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/import/statement", gin.H{
		"filename": "extrato_bb.ofx", "content": testStatement,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/import/report", gin.H{
		"filename": "recebimentos.html", "content": testReport,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestHealth(t *testing.T) {
	_, router := newTestServer(t)
	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestImportAndList(t *testing.T) {
	_, router := newTestServer(t)
	importFixtures(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/bank", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bank []BankTransactionResponse
	decode(t, w, &bank)
	require.Len(t, bank, 2)
	assert.Equal(t, "001", bank[0].BankCode)
	assert.Equal(t, "150.00", bank[0].Amount)
	assert.Equal(t, "PIX", bank[0].PaymentType)

	w = doJSON(t, router, http.MethodGet, "/api/system", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var system []LedgerEntryResponse
	decode(t, w, &system)
	require.Len(t, system, 1)
	assert.Equal(t, "MARIA JOSE", system[0].Client)
	assert.Equal(t, "4101", system[0].InvoiceNumber)

	// Same file again conflicts.
	w = doJSON(t, router, http.MethodPost, "/api/import/statement", gin.H{
		"filename": "extrato_bb.ofx", "content": testStatement,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListFilters(t *testing.T) {
	_, router := newTestServer(t)
	importFixtures(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/bank?kind=pagar", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bank []BankTransactionResponse
	decode(t, w, &bank)
	require.Len(t, bank, 1)
	assert.Equal(t, "-80.00", bank[0].Amount)

	w = doJSON(t, router, http.MethodGet, "/api/bank?search=maria", nil)
	decode(t, w, &bank)
	require.Len(t, bank, 1)
	assert.Equal(t, "150.00", bank[0].Amount)
}

func TestSuggestReconcileCancelFlow(t *testing.T) {
	_, router := newTestServer(t)
	importFixtures(t, router)

	var bank []BankTransactionResponse
	w := doJSON(t, router, http.MethodGet, "/api/bank", nil)
	decode(t, w, &bank)
	bankID := bank[0].ID

	var system []LedgerEntryResponse
	w = doJSON(t, router, http.MethodGet, "/api/system", nil)
	decode(t, w, &system)
	ledgerID := system[0].ID

	w = doJSON(t, router, http.MethodGet, "/api/suggestions?bank_id="+bankID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var set SuggestionSetResponse
	decode(t, w, &set)
	require.Len(t, set.SameValueSameDate, 1)
	assert.Equal(t, ledgerID, set.SameValueSameDate[0].ID)

	w = doJSON(t, router, http.MethodPost, "/api/reconcile", gin.H{
		"bank_ids": []string{bankID}, "ledger_ids": []string{ledgerID},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var res map[string]string
	decode(t, w, &res)
	pairKey := res["pair_key"]
	require.NotEmpty(t, pairKey)

	w = doJSON(t, router, http.MethodGet, "/api/bank", nil)
	decode(t, w, &bank)
	assert.True(t, bank[0].Reconciled)
	assert.Equal(t, []string{"4101"}, bank[0].InvoiceNumbers)
	require.NotNil(t, bank[0].Counterparty)
	assert.Equal(t, "MARIA JOSE", bank[0].Counterparty.Name)

	w = doJSON(t, router, http.MethodPost, "/api/cancel", gin.H{"pair_key": pairKey})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/cancel", gin.H{"pair_key": pairKey})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReconcileErrors(t *testing.T) {
	_, router := newTestServer(t)
	importFixtures(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/reconcile", gin.H{
		"bank_ids": []string{}, "ledger_ids": []string{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/reconcile", gin.H{
		"bank_ids": []string{"missing"}, "ledger_ids": []string{"also-missing"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestManualEntryEndpoints(t *testing.T) {
	_, router := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/manual-entry", gin.H{
		"client": "MARIA", "amount": "80.50", "date": "2024-03-04",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var entry LedgerEntryResponse
	decode(t, w, &entry)
	assert.True(t, entry.Manual)

	w = doJSON(t, router, http.MethodPut, "/api/manual-entry/"+entry.ID, gin.H{
		"client": "MARIA JOSE", "amount": "90.00", "date": "2024-03-05",
	})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &entry)
	assert.Equal(t, "MARIA JOSE", entry.Client)

	// Missing required fields.
	w = doJSON(t, router, http.MethodPost, "/api/manual-entry", gin.H{
		"client": "", "amount": "10.00", "date": "2024-03-04",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/manual-entry/"+entry.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/manual-entry/"+entry.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestManualReconcileEndpoint(t *testing.T) {
	_, router := newTestServer(t)
	importFixtures(t, router)

	var system []LedgerEntryResponse
	w := doJSON(t, router, http.MethodGet, "/api/system", nil)
	decode(t, w, &system)

	w = doJSON(t, router, http.MethodPost, "/api/reconcile/manual", gin.H{
		"ledger_id": system[0].ID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var placeholder BankTransactionResponse
	decode(t, w, &placeholder)
	assert.Equal(t, "999", placeholder.BankCode)
	assert.True(t, placeholder.Reconciled)

	// Second attempt conflicts.
	w = doJSON(t, router, http.MethodPost, "/api/reconcile/manual", gin.H{
		"ledger_id": system[0].ID,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestToggleDisabledEndpoint(t *testing.T) {
	_, router := newTestServer(t)
	importFixtures(t, router)

	var bank []BankTransactionResponse
	w := doJSON(t, router, http.MethodGet, "/api/bank", nil)
	decode(t, w, &bank)

	w = doJSON(t, router, http.MethodPost, "/api/toggle-disabled", gin.H{"id": bank[0].ID})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/bank", nil)
	decode(t, w, &bank)
	assert.True(t, bank[0].Disabled)

	w = doJSON(t, router, http.MethodPost, "/api/toggle-disabled", gin.H{"id": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportEndpoint(t *testing.T) {
	_, router := newTestServer(t)
	importFixtures(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "conciliado_")
	assert.Contains(t, w.Body.String(), "DATA;CONCILIADO;VALOR;NF;DOC;CLIENTE;DESCRICAO;ARQUIVO")
	assert.Contains(t, w.Body.String(), "2024-03-04;N;150.00")
}

func TestPixEndpoint(t *testing.T) {
	_, router := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/pix", gin.H{
		"key": "chave@exemplo.com", "amount": "123.45", "txid": "NF4101",
	})
	// The test config has no receiver identity configured.
	assert.Equal(t, http.StatusBadRequest, w.Code)

	srv, _ := newTestServer(t)
	srv.pix.ReceiverName = "Loja Teste"
	srv.pix.ReceiverCity = "FORTALEZA"
	router = srv.Router(nil)

	w = doJSON(t, router, http.MethodPost, "/api/pix", gin.H{
		"key": "chave@exemplo.com", "amount": "123.45", "txid": "NF4101",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res map[string]string
	decode(t, w, &res)
	assert.Contains(t, res["payload"], "BR.GOV.BCB.PIX")
	assert.Equal(t, "NF4101", res["txid"])
}

func TestTotalsEndpoint(t *testing.T) {
	_, router := newTestServer(t)
	importFixtures(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/totals", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Bank              TotalsResponse `json:"bank"`
		System            TotalsResponse `json:"system"`
		UnreconciledCount int            `json:"unreconciled_count"`
	}
	decode(t, w, &res)
	assert.Equal(t, 2, res.Bank.Count)
	assert.Equal(t, "150.00", res.Bank.Inflows)
	assert.Equal(t, "-80.00", res.Bank.Outflows)
	assert.Equal(t, "70.00", res.Bank.Balance)
	assert.Equal(t, 1, res.System.Count)
	assert.Equal(t, 2, res.UnreconciledCount)
}

func TestStateEndpointsWithoutStore(t *testing.T) {
	_, router := newTestServer(t)

	for _, path := range []string{"/api/state/save", "/api/state/load"} {
		w := doJSON(t, router, http.MethodPost, path, nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, fmt.Sprintf("path %s", path))
	}
}
