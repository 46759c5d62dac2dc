package server

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/moneybook/internal/logger"
)

type updateProfileRequest struct {
	Name string `json:"name"`
}

type profileSummaryResponse struct {
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	TopCategory  string          `json:"top_category"`
	Count        int             `json:"count"`
}

// handleGetProfile returns the authenticated account.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserResponse(userFrom(r.Context())))
}

// handleUpdateProfile changes the display name.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	user := userFrom(r.Context())
	if err := s.users.UpdateName(r.Context(), user.Username, req.Name); err != nil {
		writeDomainError(w, err)
		return
	}

	user.Name = req.Name
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// handleDeleteProfile removes the account together with all recorded
// transactions, then invalidates the cookie.
func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	if err := s.users.Delete(r.Context(), user.Username); err != nil {
		writeDomainError(w, err)
		return
	}

	logger.Log.Info().
		Str("username_hash", logger.HashUsername(user.Username)).
		Msg("Account deleted")

	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleProfileSummary returns the month's expense activity for the
// profile screen: total spent, busiest category and transaction count.
func (s *Server) handleProfileSummary(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonthParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	start, end := monthRange(year, month)

	summary, err := s.transactions.ProfileSummary(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileSummaryResponse{
		Year:         year,
		Month:        int(month),
		TotalExpense: summary.TotalExpense,
		TopCategory:  summary.TopCategory,
		Count:        summary.Count,
	})
}
