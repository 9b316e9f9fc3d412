package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/trucklog/backend/internal/middleware"
)

// createEntry handles POST /api/entries.
func (s *Server) createEntry(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var req entryRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	entry, err := s.entries.Create(r.Context(), user.ID, req.toDomain())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

// listEntries handles GET /api/entries with optional ?from= and ?to= bounds.
func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	filter, err := dateRangeFilter(r)
	if err != nil {
		respondError(w, err)
		return
	}

	entries, err := s.entries.List(r.Context(), user.ID, filter)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// listEntriesByMonth handles GET /api/entries/month/{ym} where ym is
// "YYYY-MM" (an unpadded month like "2024-3" is accepted).
func (s *Server) listEntriesByMonth(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	year, month, err := parseYearMonth(chi.URLParam(r, "ym"))
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	entries, err := s.entries.ListMonth(r.Context(), user.ID, year, month)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// summarizeEntries handles GET /api/entries/summary with optional ?from=/?to=.
func (s *Server) summarizeEntries(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	filter, err := dateRangeFilter(r)
	if err != nil {
		respondError(w, err)
		return
	}

	summary, err := s.entries.Summarize(r.Context(), user.ID, filter)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// updateEntry handles PUT /api/entries/{id}.
func (s *Server) updateEntry(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid entry id")
		return
	}

	var req entryRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	entry := req.toDomain()
	entry.ID = id

	updated, err := s.entries.Update(r.Context(), user.ID, entry)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// deleteEntry handles DELETE /api/entries/{id}.
func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid entry id")
		return
	}

	if err := s.entries.Delete(r.Context(), user.ID, id); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// errInvalidMonth is returned for a malformed month path token.
var errInvalidMonth = errors.New("invalid month, want YYYY-MM")

// parseYearMonth splits a "YYYY-MM" path token into its parts.
func parseYearMonth(ym string) (int, time.Month, error) {
	yearStr, monthStr, ok := strings.Cut(ym, "-")
	if !ok {
		return 0, 0, errInvalidMonth
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return 0, 0, errInvalidMonth
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, errInvalidMonth
	}
	return year, time.Month(month), nil
}
