package client

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/DefiantLabs/pnl-export-cli/accounting"
	"github.com/DefiantLabs/pnl-export-cli/csv"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testReport = `{
	"events": [
		{"type": "trade", "notes": "Amount in", "location": "kraken", "timestamp": 1609459200,
		 "asset": "ETH", "free_amount": "0", "taxable_amount": "1", "price": "100",
		 "pnl": {"free": "0", "taxable": "0"}},
		{"type": "trade", "notes": "Amount out", "location": "kraken", "timestamp": 1609462800,
		 "asset": "ETH", "free_amount": "0", "taxable_amount": "1", "price": "110",
		 "pnl": {"free": "0", "taxable": "10"}, "tx_hash": "0xabc",
		 "cost_basis": {"taxable_bought_cost": "100", "taxfree_bought_cost": "0", "is_complete": true,
		   "matched_acquisitions": [{"event_index": 0, "amount": "1", "taxable": true}]}}
	],
	"pnls": [{"category": "trade", "free": "0", "taxable": "10"}]
}`

func testServer(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	exporter := csv.NewExporter("", func() string { return "v0.0.1" })
	exporter.TempRoot = t.TempDir()
	server := NewServer(exporter, accounting.DefaultSettings())
	return server, server.Router()
}

func post(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestExportPnl(t *testing.T) {
	server, router := testServer(t)

	w := post(t, router, "/pnl/export", map[string]interface{}{
		"directory": "out",
		"settings":  map[string]interface{}{"pnl_csv_have_summary": true},
		"report":    json.RawMessage(testReport),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response ExportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, "", response.Message)

	content, err := os.ReadFile(filepath.Join(server.ExportRoot, "out", csv.FilenameAllCSV))
	require.NoError(t, err)
	assert.Contains(t, string(content), "=G3*H3-J3")
	assert.Contains(t, string(content), "=1*H2")
	assert.Contains(t, string(content), "https://etherscan.io/tx/0xabc")
	assert.Contains(t, string(content), "app version,v0.0.1")
}

func TestExportPnlBadRequests(t *testing.T) {
	_, router := testServer(t)

	w := post(t, router, "/pnl/export", map[string]interface{}{"report": json.RawMessage(testReport)})
	assert.Equal(t, http.StatusBadRequest, w.Code, "directory is required")

	w = post(t, router, "/pnl/export", map[string]interface{}{
		"directory": "out",
		"report":    map[string]interface{}{"events": []map[string]interface{}{{"type": "no such type"}}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/pnl/export", bytes.NewReader([]byte("{")))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportPnlRejectsPathsOutsideRoot(t *testing.T) {
	server, router := testServer(t)
	outside := t.TempDir()

	for _, dir := range []string{"../escape", "a/../../b", ".", outside} {
		w := post(t, router, "/pnl/export", map[string]interface{}{
			"directory": dir,
			"report":    json.RawMessage(testReport),
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, dir)
	}

	_, err := os.Stat(filepath.Join(filepath.Dir(server.ExportRoot), "escape"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(outside, csv.FilenameAllCSV))
	assert.True(t, os.IsNotExist(err))
}

func TestResolveExportDirectory(t *testing.T) {
	root := t.TempDir()

	resolved, err := resolveExportDirectory(root, "2023/q1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "2023", "q1"), resolved)

	resolved, err = resolveExportDirectory(root, "a/../b")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "b"), resolved)

	_, err = resolveExportDirectory(root, "..")
	assert.Error(t, err)
	_, err = resolveExportDirectory(root, "")
	assert.Error(t, err)
}

func TestSettingsDefaultsAreNotShared(t *testing.T) {
	server, _ := testServer(t)
	settings, err := server.settings(json.RawMessage(`{"taxfree_after_period": 5}`))
	require.NoError(t, err)
	assert.Equal(t, int64(5), *settings.TaxfreeAfterPeriod)
	assert.Equal(t, accounting.DefaultTaxfreeAfterPeriod, *server.Defaults.TaxfreeAfterPeriod)
	assert.True(t, settings.IncludeFormulas, "keys missing from the request keep the defaults")
}

func TestDownloadPnl(t *testing.T) {
	_, router := testServer(t)

	w := post(t, router, "/pnl/download", map[string]interface{}{"report": json.RawMessage(testReport)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), csv.FilenameZip)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	archive, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	require.Len(t, archive.File, 1)
	assert.Equal(t, csv.FilenameAllCSV, archive.File[0].Name)
}

func TestMetrics(t *testing.T) {
	_, router := testServer(t)
	post(t, router, "/pnl/export", map[string]interface{}{"directory": "out", "report": json.RawMessage(testReport)})
	post(t, router, "/pnl/export", map[string]interface{}{"report": json.RawMessage(testReport)})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `pnl_exports_total{endpoint="export",result="success"} 1`)
	assert.Contains(t, w.Body.String(), `pnl_exports_total{endpoint="export",result="failure"} 1`)
}

func TestPickleContract(t *testing.T) {
	_, router := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/contracts/pickle/0xb4ebc2c371182deea04b2264b9ff5ac4f0159c69", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"address": "0xb4EBc2C371182DeEa04B2264B9ff5AC4F0159C69", "pickle": true}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/contracts/pickle/nope", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	_, router := testServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/pnl/export", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
