package payrollhandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"paycalc/internal/domain/payroll"
	"paycalc/internal/domain/taxtable"
	"paycalc/internal/transport/http/middleware"
)

const testTable = `{
  "version": "2024_v1",
  "federal": {
    "allowance": 2600,
    "single": [
      {"upTo": 1000, "rate": 0.1},
      {"upTo": 4000, "rate": 0.2}
    ]
  },
  "states": {
    "CA": {
      "allowance": 1000,
      "single": [
        {"upTo": 800, "rate": 0.05},
        {"upTo": 3000, "rate": 0.08}
      ]
    }
  },
  "employerTaxes": {
    "medicare": {"rate": 0.0145}
  }
}`

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "2024_v1.json"), []byte(testTable), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	tables := taxtable.NewStore(taxtable.NewFileRepository(dir))
	calc := payroll.NewCalculator(tables, "2024_v1", 26)
	agg := payroll.NewAggregator(calc, 2)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	handler := NewHandler(calc, agg, tables)
	handler.RegisterRoutes(router)
	return router
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const calculateBody = `{
  "employeeId": "emp1",
  "earnings": [{"category": "regular", "hours": 80, "rate": 25}],
  "deductions": [
    {"priority": 1, "name": "401k", "amount": 0.05, "calculation": "percent", "appliesPreTax": true, "limit": 300},
    {"priority": 2, "name": "garnishment", "amount": 50, "calculation": "flat"}
  ],
  "taxProfile": {"filingStatus": "single", "allowances": 1, "state": "CA"}
}`

func TestHandleCalculate(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/payroll/calculate", calculateBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if !env.Success {
		t.Fatalf("expected success envelope: %s", rec.Body.String())
	}

	var result payroll.Result
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.GrossPay != 2000 || result.TaxableWages != 1900 {
		t.Fatalf("unexpected result: gross %v taxable %v", result.GrossPay, result.TaxableWages)
	}
	if result.NetPay != 1465.08 {
		t.Fatalf("expected net 1465.08, got %v", result.NetPay)
	}
}

func TestHandleCalculateUnknownVersion(t *testing.T) {
	router := newTestRouter(t)

	body := strings.Replace(calculateBody, `"employeeId"`, `"taxTableVersion": "1999_v9", "employeeId"`, 1)
	rec := postJSON(t, router, "/payroll/calculate", body)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Error == nil || env.Error.Code != "table_not_found" {
		t.Fatalf("expected table_not_found error, got %s", rec.Body.String())
	}
}

func TestHandleCalculateInvalidRequest(t *testing.T) {
	router := newTestRouter(t)

	body := `{"employeeId": "", "earnings": [], "taxProfile": {"filingStatus": "single"}}`
	rec := postJSON(t, router, "/payroll/calculate", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

const previewBody = `{
  "requests": [
    {
      "employeeId": "emp1",
      "earnings": [{"category": "regular", "hours": 40, "rate": 20}],
      "taxProfile": {"filingStatus": "single", "state": "CA"}
    },
    {
      "employeeId": "emp2",
      "earnings": [{"category": "regular", "hours": 45, "rate": 22}],
      "taxProfile": {"filingStatus": "single", "allowances": 1, "state": "CA"}
    }
  ]
}`

func TestHandlePreview(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/payroll/preview", previewBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	var preview payroll.Preview
	if err := json.Unmarshal(env.Data, &preview); err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	if len(preview.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(preview.Results))
	}
	if preview.TotalGross != 1790 {
		t.Fatalf("expected total gross 1790, got %v", preview.TotalGross)
	}
}

func TestHandlePreviewBatchMemberFails(t *testing.T) {
	router := newTestRouter(t)

	body := strings.Replace(previewBody, `"hours": 45`, `"hours": -45`, 1)
	rec := postJSON(t, router, "/payroll/preview", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Error == nil || env.Error.Code != "batch_member_failed" {
		t.Fatalf("expected batch_member_failed, got %s", rec.Body.String())
	}
	if !strings.Contains(env.Error.Message, "emp2") {
		t.Fatalf("expected failing employee named in message, got %q", env.Error.Message)
	}
}

func TestHandlePreviewExport(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/payroll/preview/export", previewBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("expected text/csv, got %q", ct)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 2 rows + totals, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "emp1,800.00") {
		t.Fatalf("unexpected first row: %s", lines[1])
	}
}

func TestHandlePayStub(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/payroll/paystub", calculateBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Fatal("expected PDF body")
	}
}

func TestHandleListVersions(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/taxtables/versions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "2024_v1") {
		t.Fatalf("expected 2024_v1 in versions: %s", rec.Body.String())
	}
}
