package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/moneybook/internal/models"
	"gitlab.com/yelinaung/moneybook/internal/repository"
)

type createTransactionRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	Type       string          `json:"type"`
	CategoryID *int            `json:"category_id"`
	Date       string          `json:"date"`
	Time       string          `json:"time"`
}

type updateTransactionRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	CategoryID *int            `json:"category_id"`
}

type transactionResponse struct {
	ID         int             `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Type       string          `json:"type"`
	CategoryID *int            `json:"category_id"`
	Category   string          `json:"category"`
	Date       string          `json:"date"`
}

func toTransactionResponse(t models.Transaction) transactionResponse {
	return transactionResponse{
		ID:         t.ID,
		Amount:     t.Amount,
		Type:       t.Type,
		CategoryID: t.CategoryID,
		Category:   t.CategoryName(),
		Date:       t.OccurredAt.UTC().Format(dateLayout),
	}
}

func toTransactionResponses(list []models.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTransactionResponse(t))
	}
	return out
}

// checkCategory verifies that the referenced category exists and belongs
// to the transaction's entry type. A nil id is fine: the entry is simply
// uncategorized.
func (s *Server) checkCategory(r *http.Request, categoryID *int, entryType string) (int, string) {
	if categoryID == nil {
		return 0, ""
	}
	cat, err := s.categories.GetByID(r.Context(), *categoryID)
	if err != nil {
		return http.StatusBadRequest, "unknown category"
	}
	if cat.Type != entryType {
		return http.StatusBadRequest, "category type does not match transaction type"
	}
	return 0, ""
}

// handleCreateTransaction records a money movement on a calendar day.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !req.Amount.IsPositive() {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	if !models.ValidEntryType(req.Type) {
		writeError(w, http.StatusBadRequest, "type must be income or expense")
		return
	}
	occurredAt, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}
	if req.Time != "" {
		clock, err := time.Parse("15:04:05", req.Time)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid time, want HH:MM:SS")
			return
		}
		occurredAt = occurredAt.Add(time.Duration(clock.Hour())*time.Hour +
			time.Duration(clock.Minute())*time.Minute +
			time.Duration(clock.Second())*time.Second)
	}
	if status, msg := s.checkCategory(r, req.CategoryID, req.Type); status != 0 {
		writeError(w, status, msg)
		return
	}

	tr := &models.Transaction{
		Amount:     req.Amount,
		Type:       req.Type,
		CategoryID: req.CategoryID,
		OccurredAt: occurredAt,
	}
	if err := s.transactions.Create(r.Context(), tr); err != nil {
		writeDomainError(w, err)
		return
	}

	created, err := s.transactions.GetByID(r.Context(), tr.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(*created))
}

// handleListTransactions lists entries for one day (?date=YYYY-MM-DD,
// optionally ?recent=true for the dashboard's short list) or for a month
// (?year=&month=, optionally filtered with ?type=).
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("date") != "" {
		day, err := dateParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		limit := 0
		if q.Get("recent") == "true" {
			limit = repository.RecentLimit
		}
		start, end := dayRange(day)
		list, err := s.transactions.ListByRange(r.Context(), start, end, limit)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTransactionResponses(list))
		return
	}

	year, month, err := yearMonthParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	start, end := monthRange(year, month)

	if entryType := q.Get("type"); entryType != "" {
		if !models.ValidEntryType(entryType) {
			writeError(w, http.StatusBadRequest, "type must be income or expense")
			return
		}
		list, err := s.transactions.ListByRangeAndType(r.Context(), start, end, entryType)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTransactionResponses(list))
		return
	}

	list, err := s.transactions.ListByRange(r.Context(), start, end, 0)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponses(list))
}

// handleGetTransaction returns a single entry by ID.
func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	tr, err := s.transactions.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(*tr))
}

// handleUpdateTransaction edits an entry's amount and category. The type
// and date are fixed at creation, matching the mobile app's edit screen.
func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	var req updateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.Amount.IsPositive() {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	existing, err := s.transactions.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if status, msg := s.checkCategory(r, req.CategoryID, existing.Type); status != 0 {
		writeError(w, status, msg)
		return
	}

	if err := s.transactions.Update(r.Context(), id, req.Amount, req.CategoryID); err != nil {
		writeDomainError(w, err)
		return
	}

	updated, err := s.transactions.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(*updated))
}

// handleDeleteTransaction removes an entry.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := s.transactions.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
