// Package handler implements the HTTP surface of the truck logbook API.
// All handlers are methods on Server; they decode requests, call a service
// interface, and map domain errors to HTTP responses. Methods are split into
// resource-specific files (auth.go, entry.go, transport.go) but all share the
// same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/trucklog/backend/internal/domain"
	"github.com/trucklog/backend/internal/middleware"
)

// EntryServicer defines the business operations the entry handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type EntryServicer interface {
	Create(ctx context.Context, userID uuid.UUID, entry domain.Entry) (domain.Entry, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.EntryFilter) ([]domain.Entry, error)
	ListMonth(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]domain.Entry, error)
	Summarize(ctx context.Context, userID uuid.UUID, filter domain.EntryFilter) (domain.Summary, error)
	Update(ctx context.Context, userID uuid.UUID, entry domain.Entry) (domain.Entry, error)
	Delete(ctx context.Context, userID, entryID uuid.UUID) error
}

// TransportServicer defines the business operations the transport handlers depend on.
type TransportServicer interface {
	Create(ctx context.Context, userID uuid.UUID, transport domain.Transport) (domain.Transport, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Transport, error)
	Update(ctx context.Context, userID uuid.UUID, transport domain.Transport) (domain.Transport, error)
	Delete(ctx context.Context, userID, transportID uuid.UUID) error
}

// AuthServicer defines the account and session operations the auth handlers
// and the auth gate depend on.
type AuthServicer interface {
	Signup(ctx context.Context, username, password, name string) (domain.PublicUser, error)
	Login(ctx context.Context, username, password string) (string, domain.PublicUser, error)
	Logout(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (domain.PublicUser, error)
}

// Server holds the service dependencies for all API endpoints.
type Server struct {
	auth       AuthServicer
	entries    EntryServicer
	transports TransportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(auth AuthServicer, entries EntryServicer, transports TransportServicer) *Server {
	return &Server{auth: auth, entries: entries, transports: transports}
}

// Routes mounts every endpoint on a fresh chi router.
//
// Logout is deliberately outside the auth gate: it removes whatever token the
// request carries, and removing an already-removed token must succeed.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", s.signup)
		r.Post("/login", s.login)
		r.Post("/logout", s.logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.NewAuthGate(s.auth))

			r.Route("/entries", func(r chi.Router) {
				r.Post("/", s.createEntry)
				r.Get("/", s.listEntries)
				r.Get("/summary", s.summarizeEntries)
				r.Get("/month/{ym}", s.listEntriesByMonth)
				r.Put("/{id}", s.updateEntry)
				r.Delete("/{id}", s.deleteEntry)
			})

			r.Route("/transports", func(r chi.Router) {
				r.Post("/", s.createTransport)
				r.Get("/", s.listTransports)
				r.Put("/{id}", s.updateTransport)
				r.Delete("/{id}", s.deleteTransport)
			})
		})
	})

	return r
}

// health handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
