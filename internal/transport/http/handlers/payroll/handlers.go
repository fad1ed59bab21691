package payrollhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"paycalc/internal/domain/payroll"
	"paycalc/internal/domain/taxtable"
	"paycalc/internal/reports"
	"paycalc/internal/transport/http/api"
	"paycalc/internal/transport/http/middleware"
)

type Handler struct {
	Calc   *payroll.Calculator
	Agg    *payroll.Aggregator
	Tables *taxtable.Store
}

func NewHandler(calc *payroll.Calculator, agg *payroll.Aggregator, tables *taxtable.Store) *Handler {
	return &Handler{Calc: calc, Agg: agg, Tables: tables}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/taxtables/versions", h.handleListVersions)
	r.Route("/payroll", func(r chi.Router) {
		r.Post("/calculate", h.handleCalculate)
		r.Post("/preview", h.handlePreview)
		r.Post("/preview/export", h.handlePreviewExport)
		r.Post("/paystub", h.handlePayStub)
	})
}

type calculatePayload struct {
	TaxTableVersion string `json:"taxTableVersion,omitempty"`
	payroll.Request
}

type previewPayload struct {
	TaxTableVersion string            `json:"taxTableVersion,omitempty"`
	Requests        []payroll.Request `json:"requests"`
}

func (h *Handler) handleListVersions(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	versions, err := h.Tables.AvailableVersions(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "could not list tax table versions", reqID)
		return
	}
	api.Success(w, map[string]any{"versions": versions}, reqID)
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload calculatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid JSON body", reqID)
		return
	}

	result, err := h.calculate(r, payload)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	api.Success(w, result, reqID)
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload previewPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid JSON body", reqID)
		return
	}

	preview, err := h.Agg.Run(r.Context(), payload.TaxTableVersion, payload.Requests)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	api.Success(w, preview, reqID)
}

func (h *Handler) handlePreviewExport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload previewPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid JSON body", reqID)
		return
	}

	preview, err := h.Agg.Run(r.Context(), payload.TaxTableVersion, payload.Requests)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	filename := fmt.Sprintf("payroll_register_%s.csv", uuid.NewString())
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := reports.WriteRegister(w, preview); err != nil {
		// Headers are already out; nothing useful left to send.
		return
	}
}

func (h *Handler) handlePayStub(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload calculatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid JSON body", reqID)
		return
	}

	result, err := h.calculate(r, payload)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	filename := fmt.Sprintf("paystub_%s.pdf", result.EmployeeID)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := reports.WritePayStub(w, result, time.Now().UTC()); err != nil {
		return
	}
}

func (h *Handler) calculate(r *http.Request, payload calculatePayload) (*payroll.Result, error) {
	if payload.TaxTableVersion != "" {
		return h.Calc.CalculateVersion(r.Context(), payload.TaxTableVersion, payload.Request)
	}
	return h.Calc.Calculate(r.Context(), payload.Request)
}

// writeDomainError maps the calculation error taxonomy onto HTTP
// statuses. A batch failure reports the failing employee but keeps the
// status of the underlying cause.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())

	code := "internal"
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, payroll.ErrInvalidRequest):
		code, status = "invalid_request", http.StatusBadRequest
	case errors.Is(err, taxtable.ErrTableNotFound):
		code, status = "table_not_found", http.StatusNotFound
	case errors.Is(err, taxtable.ErrJurisdictionNotFound):
		code, status = "jurisdiction_not_found", http.StatusUnprocessableEntity
	}

	var batchErr *payroll.BatchError
	if errors.As(err, &batchErr) {
		code = "batch_member_failed"
	}

	api.Fail(w, status, code, err.Error(), reqID)
}
