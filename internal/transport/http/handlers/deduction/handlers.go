package deductionhandler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"cardcredit/internal/domain/deduction"
	"cardcredit/internal/platform/metrics"
	"cardcredit/internal/requestctx"
	"cardcredit/internal/transport/http/api"
	"cardcredit/internal/transport/http/middleware"
	"cardcredit/internal/transport/http/shared"
)

type Options struct {
	BatchMaxItems int
	BatchWorkers  int
}

type Handler struct {
	Calc    *deduction.Calculator
	Metrics *metrics.Collector
	opts    Options
}

func NewHandler(calc *deduction.Calculator, collector *metrics.Collector, opts Options) *Handler {
	if opts.BatchWorkers <= 0 {
		opts.BatchWorkers = 1
	}
	return &Handler{Calc: calc, Metrics: collector, opts: opts}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/deductions", func(r chi.Router) {
		r.Get("/policy", h.handlePolicy)
		r.Post("/calculate", h.handleCalculate)
		r.Post("/calculate/batch", h.handleCalculateBatch)
		r.Post("/calculate/pdf", h.handleCalculatePDF)
	})
}

type calculatePayload struct {
	Salary         deduction.Amount `json:"salary"`
	CreditSpend    deduction.Amount `json:"creditSpend"`
	CheckSpend     deduction.Amount `json:"checkSpend"`
	CashSpend      deduction.Amount `json:"cashSpend"`
	MarketSpend    deduction.Amount `json:"marketSpend"`
	TransportSpend deduction.Amount `json:"transportSpend"`
	CultureSpend   deduction.Amount `json:"cultureSpend"`
}

func (p calculatePayload) input() deduction.Input {
	return deduction.Input{
		Salary:    p.Salary.Int64(),
		Credit:    p.CreditSpend.Int64(),
		Check:     p.CheckSpend.Int64(),
		Cash:      p.CashSpend.Int64(),
		Market:    p.MarketSpend.Int64(),
		Transport: p.TransportSpend.Int64(),
		Culture:   p.CultureSpend.Int64(),
	}
}

type batchPayload struct {
	Items []calculatePayload `json:"items" validate:"required,min=1"`
}

type BreakdownRow struct {
	Category       string `json:"category"`
	Label          string `json:"label"`
	Spend          int64  `json:"spend"`
	EligibleAmount int64  `json:"eligibleAmount"`
	Rate           string `json:"rate"`
	CreditAmount   int64  `json:"creditAmount"`
}

type Calculation struct {
	Salary         int64          `json:"salary"`
	Threshold      int64          `json:"threshold"`
	Bracket        string         `json:"bracket"`
	BasicLimit     int64          `json:"basicLimit"`
	ExtraLimit     int64          `json:"extraLimit"`
	BasicDeduction int64          `json:"basicDeduction"`
	ExtraDeduction int64          `json:"extraDeduction"`
	TotalDeduction int64          `json:"totalDeduction"`
	Breakdown      []BreakdownRow `json:"breakdown"`
}

type BatchResult struct {
	ID     string       `json:"id"`
	Index  int          `json:"index"`
	Result *Calculation `json:"result,omitempty"`
	Error  *api.Error   `json:"error,omitempty"`
}

func toCalculation(res deduction.Result) Calculation {
	rows := make([]BreakdownRow, 0, len(res.Breakdown))
	for _, row := range res.Breakdown {
		rows = append(rows, BreakdownRow{
			Category:       string(row.Category),
			Label:          row.Label,
			Spend:          row.Spend,
			EligibleAmount: row.Eligible,
			Rate:           row.Rate.String(),
			CreditAmount:   row.Credit,
		})
	}
	return Calculation{
		Salary:         res.Salary,
		Threshold:      res.Threshold,
		Bracket:        string(res.Bracket),
		BasicLimit:     res.Limits.Basic,
		ExtraLimit:     res.Limits.Extra,
		BasicDeduction: res.Basic,
		ExtraDeduction: res.Extra,
		TotalDeduction: res.Total,
		Breakdown:      rows,
	}
}

var missingSalaryError = api.Error{Code: "missing_salary", Message: "salary is required"}

func (h *Handler) handlePolicy(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Calc.Policy(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var payload calculatePayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	res, ok := h.compute(w, r, payload.input())
	if !ok {
		return
	}
	api.Success(w, toCalculation(res), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCalculatePDF(w http.ResponseWriter, r *http.Request) {
	var payload calculatePayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	res, ok := h.compute(w, r, payload.input())
	if !ok {
		return
	}

	requestID := middleware.GetRequestID(r.Context())
	doc, err := renderBreakdownPDF(res, requestID)
	if err != nil {
		requestctx.Logger(r.Context()).Error("render breakdown pdf failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "pdf_failed", "failed to render report", requestID)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="deduction-breakdown.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		requestctx.Logger(r.Context()).Warn("write pdf failed", "err", err)
	}
}

func (h *Handler) handleCalculateBatch(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload batchPayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	validator := shared.NewValidator()
	validator.Struct(payload)
	validator.MaxItems("items", len(payload.Items), h.opts.BatchMaxItems)
	if validator.Reject(w, requestID) {
		return
	}

	inputs := make([]deduction.Input, len(payload.Items))
	for i, item := range payload.Items {
		inputs[i] = item.input()
	}
	items, err := h.Calc.ComputeBatch(r.Context(), inputs, h.opts.BatchWorkers)
	if err != nil {
		requestctx.Logger(r.Context()).Warn("batch calculation aborted", "err", err)
		api.Fail(w, http.StatusServiceUnavailable, "batch_aborted", "batch calculation aborted", requestID)
		return
	}

	out := make([]BatchResult, 0, len(items))
	for _, item := range items {
		entry := BatchResult{ID: uuid.NewString(), Index: item.Index}
		h.Metrics.RecordCalculation(item.Err == nil)
		if item.Err != nil {
			apiErr := missingSalaryError
			entry.Error = &apiErr
		} else {
			calc := toCalculation(item.Result)
			entry.Result = &calc
		}
		out = append(out, entry)
	}
	api.Success(w, map[string]any{"items": out}, requestID)
}

func (h *Handler) compute(w http.ResponseWriter, r *http.Request, in deduction.Input) (deduction.Result, bool) {
	res, err := h.Calc.Compute(in)
	h.Metrics.RecordCalculation(err == nil)
	if errors.Is(err, deduction.ErrMissingSalary) {
		api.Fail(w, http.StatusUnprocessableEntity, missingSalaryError.Code, missingSalaryError.Message, middleware.GetRequestID(r.Context()))
		return deduction.Result{}, false
	}
	if err != nil {
		requestctx.Logger(r.Context()).Error("calculation failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "calculation failed", middleware.GetRequestID(r.Context()))
		return deduction.Result{}, false
	}
	return res, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	requestID := middleware.GetRequestID(r.Context())
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", requestID)
		case errors.Is(err, io.EOF):
			api.Fail(w, http.StatusBadRequest, "invalid_json", "request body is empty", requestID)
		default:
			api.Fail(w, http.StatusBadRequest, "invalid_json", "invalid json payload", requestID)
		}
		return false
	}
	return true
}
