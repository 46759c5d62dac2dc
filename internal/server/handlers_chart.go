package server

import (
	"net/http"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/moneybook/internal/chart"
)

type breakdownResponse struct {
	Period string          `json:"period"`
	Total  decimal.Decimal `json:"total"`
	Slices []chart.Slice   `json:"slices"`
}

// handleBreakdown returns the period's expenses grouped by category, with
// pie-chart percentages and colors. The period selector works like the
// summaries: ?period=daily|monthly|yearly with date/year/month parameters,
// defaulting to the current month.
func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	start, end, label, err := periodRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	totals, err := s.transactions.ExpenseByCategory(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	total := decimal.Zero
	for _, ca := range totals {
		total = total.Add(ca.Amount)
	}

	writeJSON(w, http.StatusOK, breakdownResponse{
		Period: label,
		Total:  total,
		Slices: chart.BuildSlices(totals),
	})
}

// handleBreakdownChart renders the period's breakdown as a PNG pie chart.
// A period with no expenses is a 404 rather than an empty image.
func (s *Server) handleBreakdownChart(w http.ResponseWriter, r *http.Request) {
	start, end, label, err := periodRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	totals, err := s.transactions.ExpenseByCategory(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if len(totals) == 0 {
		writeError(w, http.StatusNotFound, "no expenses in this period")
		return
	}

	png, err := chart.RenderPie(totals, label)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
