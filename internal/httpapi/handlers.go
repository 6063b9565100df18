package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/report"
	"fintrack/internal/schemes"
)

// expenseRequest is the wire shape of an add. Amount arrives as text
// and is coerced here; a value that does not parse is the caller's
// error, not the ledger's.
type expenseRequest struct {
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"` // "2006-01-02", defaults to today
}

// expensePatchRequest carries a partial update; absent fields are not
// touched.
type expensePatchRequest struct {
	Amount      *string `json:"amount"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		records := s.ledger.Snapshot().Records
		if records == nil {
			records = []core.ExpenseRecord{}
		}
		writeJSON(w, http.StatusOK, records)
	case http.MethodPost:
		s.handleAddExpense(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	date := core.DateOf(time.Now().UTC())
	if req.Date != "" {
		parsed, perr := parseDate(req.Date)
		if perr != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid date, want YYYY-MM-DD")
			return
		}
		date = parsed
	}

	rec, err := s.ledger.AddExpense(r.Context(), ledger.ExpenseInput{
		Amount:      amount,
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Date:        date,
	})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleExpenseByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/expenses/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodDelete:
		// Deleting an unknown id is a no-op; both outcomes are 204.
		s.ledger.DeleteExpense(r.Context(), id)
		w.WriteHeader(http.StatusNoContent)
	case http.MethodPut, http.MethodPatch:
		s.handleUpdateExpense(w, r, id)
	default:
		w.Header().Set("Allow", "PUT, PATCH, DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request, id string) {
	var req expensePatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var patch core.ExpensePatch
	if req.Amount != nil {
		amount, err := core.ParseAmount(*req.Amount)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		patch.Amount = &amount
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		patch.Category = &category
	}
	if req.Description != nil {
		patch.Description = req.Description
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid date, want YYYY-MM-DD")
			return
		}
		patch.Date = &date
	}

	rec, found, err := s.ledger.UpdateExpense(r.Context(), id, patch)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if !found {
		// Unknown ids are a no-op, same as delete.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	now := time.Now().UTC()
	day := now.Format("2006-01-02")
	version := s.ledger.Version()

	if snap, ok := s.statsCache.get(version, day); ok {
		writeJSON(w, http.StatusOK, snap)
		return
	}

	snap := s.ledger.Stats(now)
	s.statsCache.put(version, day, snap)
	writeJSON(w, http.StatusOK, snap)
}

type settingsResponse struct {
	MonthlyExpenseTarget core.Money         `json:"monthlyExpenseTarget"`
	CurrentSavings       core.Money         `json:"currentSavings"`
	FinancialGoal        core.FinancialGoal `json:"financialGoal"`
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	snap := s.ledger.Snapshot()
	writeJSON(w, http.StatusOK, settingsResponse{
		MonthlyExpenseTarget: snap.MonthlyExpenseTarget,
		CurrentSavings:       snap.CurrentSavings,
		FinancialGoal:        snap.FinancialGoal,
	})
}

type amountRequest struct {
	Amount string `json:"amount"`
}

func (s *Server) handleMonthlyTarget(w http.ResponseWriter, r *http.Request) {
	s.handleScalar(w, r, s.ledger.SetMonthlyExpenseTarget)
}

func (s *Server) handleSavings(w http.ResponseWriter, r *http.Request) {
	s.handleScalar(w, r, s.ledger.SetCurrentSavings)
}

func (s *Server) handleScalar(w http.ResponseWriter, r *http.Request, set func(context.Context, core.Money) error) {
	if r.Method != http.MethodPut {
		w.Header().Set("Allow", "PUT")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := set(r.Context(), amount); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type goalRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

func (s *Server) handleGoal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.Header().Set("Allow", "PUT")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := s.ledger.UpdateFinancialGoal(r.Context(), core.FinancialGoal{
		Description: strings.TrimSpace(req.Description),
		Amount:      amount,
	}); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSchemeMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.schemes == nil {
		writeError(w, http.StatusServiceUnavailable, "scheme service not configured")
		return
	}

	var req schemes.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := s.schemes.Match(r.Context(), req)
	if err != nil {
		if errors.Is(err, schemes.ErrMissingField) ||
			errors.Is(err, schemes.ErrInvalidAge) ||
			errors.Is(err, schemes.ErrInvalidIncome) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.logger.Error("scheme match failed", "error", err)
		writeError(w, http.StatusBadGateway, "scheme service unavailable")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// reportRequest is the proxy's wire shape. Savings is a pointer so an
// explicit zero is distinguishable from an omitted field.
type reportRequest struct {
	Income   float64            `json:"income"`
	Expenses map[string]float64 `json:"expenses"`
	Savings  *float64           `json:"savings"`
	Goals    []string           `json:"goals"`
}

// handleGenerateReport proxies to the report service. The ledger's
// category totals and current savings fill in whatever the caller
// leaves out.
func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.report == nil {
		writeError(w, http.StatusServiceUnavailable, "report service not configured")
		return
	}

	var body reportRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req := report.Request{
		Income:   body.Income,
		Expenses: body.Expenses,
		Goals:    body.Goals,
	}
	if len(req.Expenses) == 0 {
		totals := s.ledger.Stats(time.Now().UTC()).CategoryTotals
		req.Expenses = make(map[string]float64, len(totals))
		for category, amount := range totals {
			req.Expenses[category] = amount.Float()
		}
	}
	if body.Savings != nil {
		req.Savings = *body.Savings
	} else {
		req.Savings = s.ledger.Snapshot().CurrentSavings.Float()
	}

	resp, err := s.report.Generate(r.Context(), req)
	if err != nil {
		if errors.Is(err, report.ErrNoExpenses) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.logger.Error("report generation failed", "error", err)
		writeError(w, http.StatusBadGateway, "report service unavailable")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseDate(s string) (core.Date, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return core.Date{}, err
	}
	return core.DateOf(t), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
