package server

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"gitlab.com/yelinaung/moneybook/internal/models"
)

// buildTransactionsCSV renders transactions as a CSV document.
func buildTransactionsCSV(transactions []models.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"ID", "Date", "Type", "Amount", "Category"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range transactions {
		row := []string{
			strconv.Itoa(transactions[i].ID),
			transactions[i].OccurredAt.UTC().Format(dateLayout),
			transactions[i].Type,
			transactions[i].Amount.StringFixed(2),
			transactions[i].CategoryName(),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// handleExportCSV downloads one month's transactions as a CSV file
// (?year=&month=, default current month).
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonthParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	start, end := monthRange(year, month)

	list, err := s.transactions.ListByRange(r.Context(), start, end, 0)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	data, err := buildTransactionsCSV(list)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	filename := fmt.Sprintf("transactions_%s.csv", start.Format("2006-01"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
