package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/trucklog/backend/internal/middleware"
)

// createTransport handles POST /api/transports.
func (s *Server) createTransport(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var req transportRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	transport, err := s.transports.Create(r.Context(), user.ID, req.toDomain())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, transport)
}

// listTransports handles GET /api/transports.
func (s *Server) listTransports(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	transports, err := s.transports.List(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, transports)
}

// updateTransport handles PUT /api/transports/{id}.
func (s *Server) updateTransport(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid transport id")
		return
	}

	var req transportRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	transport := req.toDomain()
	transport.ID = id

	updated, err := s.transports.Update(r.Context(), user.ID, transport)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// deleteTransport handles DELETE /api/transports/{id}.
func (s *Server) deleteTransport(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid transport id")
		return
	}

	if err := s.transports.Delete(r.Context(), user.ID, id); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
