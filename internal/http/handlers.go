package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"infogastos/internal/core"
	"infogastos/internal/report"
)

type expenseRequest struct {
	Date        string  `json:"date"`
	GrossAmount float64 `json:"gross_amount"`
	VATAmount   float64 `json:"vat_amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`

	ExpenseType string `json:"expense_type"`
	Responsible string `json:"responsible"`
	Client      string `json:"client"`
	Province    string `json:"province"`
	Carrier     string `json:"carrier"`

	ExpenseTypeID string `json:"expense_type_id"`
	ResponsibleID string `json:"responsible_id"`
	ClientID      string `json:"client_id"`
	ProvinceID    string `json:"province_id"`
	CarrierID     string `json:"carrier_id"`
}

type exportRequest struct {
	Title       string `json:"title"`
	From        string `json:"from"`
	To          string `json:"to"`
	Granularity string `json:"granularity"`

	ExpenseTypeID string `json:"expense_type_id"`
	ResponsibleID string `json:"responsible_id"`
	ClientID      string `json:"client_id"`
	ProvinceID    string `json:"province_id"`
	CarrierID     string `json:"carrier_id"`
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
		return
	}

	rec := core.ExpenseRecord{
		Date:        date,
		GrossAmount: req.GrossAmount,
		VATAmount:   req.VATAmount,
		Currency:    req.Currency,
		Description: req.Description,
		ExpenseType: req.ExpenseType,
		Responsible: req.Responsible,
		Client:      req.Client,
		Province:    req.Province,
		Carrier:     req.Carrier,
	}
	filters := core.DimensionFilters{
		ExpenseTypeID: req.ExpenseTypeID,
		ResponsibleID: req.ResponsibleID,
		ClientID:      req.ClientID,
		ProvinceID:    req.ProvinceID,
		CarrierID:     req.CarrierID,
	}

	ref, err := s.api.CreateExpense(r.Context(), rec, filters)
	if err != nil {
		slog.ErrorContext(r.Context(), "Expense create error", "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	// Any new record can change any cached report.
	s.reportCache.Purge()

	writeJSON(w, http.StatusCreated, map[string]string{"id": ref})
}

func (s *Server) handleExpenseByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", "DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/expenses/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	if err := s.api.DeleteExpense(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Expense delete error", "error", err, "id", id)
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}

	s.reportCache.Purge()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	cfg, err := s.parseReportConfig(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := reportCacheKey(cfg)
	if res, found := s.reportCache.Get(key); found {
		slog.DebugContext(r.Context(), "Report cache hit", "key", key)
		writeJSON(w, http.StatusOK, reportResponse(cfg, res))
		return
	}

	res, err := s.api.GenerateReport(r.Context(), cfg)
	if err != nil {
		slog.ErrorContext(r.Context(), "Report generation error", "error", err)
		writeError(w, http.StatusBadGateway, "could not generate report")
		return
	}

	s.reportCache.Set(key, res)
	writeJSON(w, http.StatusOK, reportResponse(cfg, res))
}

func (s *Server) handleReportExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg, err := buildReportConfig(req.From, req.To, req.Granularity, core.DimensionFilters{
		ExpenseTypeID: req.ExpenseTypeID,
		ResponsibleID: req.ResponsibleID,
		ClientID:      req.ClientID,
		ProvinceID:    req.ProvinceID,
		CarrierID:     req.CarrierID,
	}, s.defaultRangeDays)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.api.RequestExport(r.Context(), req.Title, cfg); err != nil {
		slog.ErrorContext(r.Context(), "Export request error", "error", err)
		writeError(w, http.StatusBadGateway, "could not enqueue export")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (s *Server) parseReportConfig(r *http.Request) (report.Config, error) {
	q := r.URL.Query()
	return buildReportConfig(
		q.Get("from"), q.Get("to"), q.Get("granularity"),
		core.DimensionFilters{
			ExpenseTypeID: strings.TrimSpace(q.Get("expense_type_id")),
			ResponsibleID: strings.TrimSpace(q.Get("responsible_id")),
			ClientID:      strings.TrimSpace(q.Get("client_id")),
			ProvinceID:    strings.TrimSpace(q.Get("province_id")),
			CarrierID:     strings.TrimSpace(q.Get("carrier_id")),
		},
		s.defaultRangeDays,
	)
}

// buildReportConfig fills defaults: missing range means the trailing N days
// ending today, missing granularity means daily.
func buildReportConfig(fromStr, toStr, granularity string, f core.DimensionFilters, defaultRangeDays int) (report.Config, error) {
	now := time.Now().UTC()
	to := core.NewDate(now.Year(), int(now.Month()), now.Day())
	from := to.AddDate(0, 0, -(defaultRangeDays - 1))

	if v := strings.TrimSpace(fromStr); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return report.Config{}, fmt.Errorf("invalid from date %q, expected YYYY-MM-DD", v)
		}
		from = d
	}
	if v := strings.TrimSpace(toStr); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return report.Config{}, fmt.Errorf("invalid to date %q, expected YYYY-MM-DD", v)
		}
		to = d
	}

	cfg := report.Config{
		Range:       core.DateRange{From: from, To: to},
		Granularity: core.Daily,
		Filters:     f,
	}
	if v := strings.TrimSpace(granularity); v != "" {
		cfg.Granularity = core.Granularity(v)
		if err := cfg.Granularity.Validate(); err != nil {
			return report.Config{}, fmt.Errorf("invalid granularity %q", v)
		}
	}
	if err := cfg.Range.Validate(); err != nil {
		return report.Config{}, fmt.Errorf("invalid date range: from must not be after to")
	}
	return cfg, nil
}

func reportCacheKey(cfg report.Config) string {
	f := cfg.Filters
	return strings.Join([]string{
		cfg.Range.From.Format("2006-01-02"),
		cfg.Range.To.Format("2006-01-02"),
		string(cfg.Granularity),
		f.ExpenseTypeID, f.ResponsibleID, f.ClientID, f.ProvinceID, f.CarrierID,
	}, "|")
}

func reportResponse(cfg report.Config, res *report.Result) map[string]interface{} {
	return map[string]interface{}{
		"from":   cfg.Range.From.Format("2006-01-02"),
		"to":     cfg.Range.To.Format("2006-01-02"),
		"report": res,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
