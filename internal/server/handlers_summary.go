package server

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

type summaryResponse struct {
	Period  string          `json:"period"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

func (s *Server) writeSummary(w http.ResponseWriter, r *http.Request, period string, start, end time.Time) {
	summary, err := s.transactions.SummarizeRange(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		Period:  period,
		Income:  summary.Income,
		Expense: summary.Expense,
		Net:     summary.Income.Sub(summary.Expense),
	})
}

// handleDailySummary sums one day's income and expense (?date=YYYY-MM-DD,
// default today).
func (s *Server) handleDailySummary(w http.ResponseWriter, r *http.Request) {
	day, err := dateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	start, end := dayRange(day)
	s.writeSummary(w, r, start.Format(dateLayout), start, end)
}

// handleMonthlySummary sums one month's income and expense
// (?year=&month=, default current month).
func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonthParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	start, end := monthRange(year, month)
	s.writeSummary(w, r, start.Format("2006-01"), start, end)
}

// handleYearlySummary sums one year's income and expense (?year=, default
// current year).
func (s *Server) handleYearlySummary(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	start, end := yearRange(year)
	s.writeSummary(w, r, start.Format("2006"), start, end)
}
