package server

import (
	"net/http"
	"strconv"
	"strings"

	"gitlab.com/yelinaung/moneybook/internal/models"
)

type createCategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type renameCategoryRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

func toCategoryResponse(c models.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, Type: c.Type}
}

// validCategoryName trims and validates a category name, returning the
// cleaned value.
func validCategoryName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > models.MaxCategoryNameLength {
		return "", false
	}
	return name, true
}

// handleListCategories lists one entry type's categories. The type comes
// from the "type" query parameter and defaults to expense.
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	entryType := r.URL.Query().Get("type")
	if entryType == "" {
		entryType = models.TypeExpense
	}
	if !models.ValidEntryType(entryType) {
		writeError(w, http.StatusBadRequest, "type must be income or expense")
		return
	}

	if err := s.categories.EnsureDefaults(r.Context(), entryType); err != nil {
		writeDomainError(w, err)
		return
	}

	categories, err := s.categories.ListByType(r.Context(), entryType)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleCreateCategory adds a category. Names are unique within an entry
// type only; the same name may exist on both sides.
func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	name, ok := validCategoryName(req.Name)
	if !ok {
		writeError(w, http.StatusBadRequest, "category name must be 1-50 characters")
		return
	}
	if !models.ValidEntryType(req.Type) {
		writeError(w, http.StatusBadRequest, "type must be income or expense")
		return
	}

	cat, err := s.categories.Create(r.Context(), name, req.Type)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCategoryResponse(*cat))
}

// handleRenameCategory changes a category's name. Its type is fixed at
// creation.
func (s *Server) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	var req renameCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	name, ok := validCategoryName(req.Name)
	if !ok {
		writeError(w, http.StatusBadRequest, "category name must be 1-50 characters")
		return
	}

	if err := s.categories.Rename(r.Context(), id, name); err != nil {
		writeDomainError(w, err)
		return
	}

	cat, err := s.categories.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(*cat))
}

// handleDeleteCategory removes a category. Its transactions survive and
// show up as "Uncategorized" from then on.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := s.categories.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
