package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/trucklog/backend/internal/domain"
	"github.com/trucklog/backend/internal/handler"
	"github.com/trucklog/backend/internal/middleware"
)

// mockAuthServicer is a test double for handler.AuthServicer.
// Set only the method fields your test needs; resolve defaults to accepting
// any token as testUser, so authenticated endpoints work out of the box.
type mockAuthServicer struct {
	signup  func(ctx context.Context, username, password, name string) (domain.PublicUser, error)
	login   func(ctx context.Context, username, password string) (string, domain.PublicUser, error)
	logout  func(ctx context.Context, token string) error
	resolve func(ctx context.Context, token string) (domain.PublicUser, error)
}

func (m *mockAuthServicer) Signup(ctx context.Context, username, password, name string) (domain.PublicUser, error) {
	return m.signup(ctx, username, password, name)
}

func (m *mockAuthServicer) Login(ctx context.Context, username, password string) (string, domain.PublicUser, error) {
	return m.login(ctx, username, password)
}

func (m *mockAuthServicer) Logout(ctx context.Context, token string) error {
	return m.logout(ctx, token)
}

func (m *mockAuthServicer) Resolve(ctx context.Context, token string) (domain.PublicUser, error) {
	if m.resolve != nil {
		return m.resolve(ctx, token)
	}
	if token == "" {
		return domain.PublicUser{}, domain.ErrUnauthorized
	}
	return testUser, nil
}

var _ handler.AuthServicer = (*mockAuthServicer)(nil)

// mockEntryServicer is a test double for handler.EntryServicer.
type mockEntryServicer struct {
	create    func(ctx context.Context, userID uuid.UUID, entry domain.Entry) (domain.Entry, error)
	list      func(ctx context.Context, userID uuid.UUID, filter domain.EntryFilter) ([]domain.Entry, error)
	listMonth func(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]domain.Entry, error)
	summarize func(ctx context.Context, userID uuid.UUID, filter domain.EntryFilter) (domain.Summary, error)
	update    func(ctx context.Context, userID uuid.UUID, entry domain.Entry) (domain.Entry, error)
	delete    func(ctx context.Context, userID, entryID uuid.UUID) error
}

func (m *mockEntryServicer) Create(ctx context.Context, userID uuid.UUID, entry domain.Entry) (domain.Entry, error) {
	return m.create(ctx, userID, entry)
}

func (m *mockEntryServicer) List(ctx context.Context, userID uuid.UUID, filter domain.EntryFilter) ([]domain.Entry, error) {
	return m.list(ctx, userID, filter)
}

func (m *mockEntryServicer) ListMonth(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]domain.Entry, error) {
	return m.listMonth(ctx, userID, year, month)
}

func (m *mockEntryServicer) Summarize(ctx context.Context, userID uuid.UUID, filter domain.EntryFilter) (domain.Summary, error) {
	return m.summarize(ctx, userID, filter)
}

func (m *mockEntryServicer) Update(ctx context.Context, userID uuid.UUID, entry domain.Entry) (domain.Entry, error) {
	return m.update(ctx, userID, entry)
}

func (m *mockEntryServicer) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	return m.delete(ctx, userID, entryID)
}

var _ handler.EntryServicer = (*mockEntryServicer)(nil)

// mockTransportServicer is a test double for handler.TransportServicer.
type mockTransportServicer struct {
	create func(ctx context.Context, userID uuid.UUID, transport domain.Transport) (domain.Transport, error)
	list   func(ctx context.Context, userID uuid.UUID) ([]domain.Transport, error)
	update func(ctx context.Context, userID uuid.UUID, transport domain.Transport) (domain.Transport, error)
	delete func(ctx context.Context, userID, transportID uuid.UUID) error
}

func (m *mockTransportServicer) Create(ctx context.Context, userID uuid.UUID, t domain.Transport) (domain.Transport, error) {
	return m.create(ctx, userID, t)
}

func (m *mockTransportServicer) List(ctx context.Context, userID uuid.UUID) ([]domain.Transport, error) {
	return m.list(ctx, userID)
}

func (m *mockTransportServicer) Update(ctx context.Context, userID uuid.UUID, t domain.Transport) (domain.Transport, error) {
	return m.update(ctx, userID, t)
}

func (m *mockTransportServicer) Delete(ctx context.Context, userID, transportID uuid.UUID) error {
	return m.delete(ctx, userID, transportID)
}

var _ handler.TransportServicer = (*mockTransportServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// testUser is the identity the default mock resolver attaches to any request
// carrying a non-empty session header.
var testUser = domain.PublicUser{
	ID:       uuid.MustParse("11111111-1111-1111-1111-111111111111"),
	Username: "bob",
	Name:     "Bob",
	Role:     "driver",
}

const testToken = "session-token"

// newHTTPHandler wires a Server with the given mocks into its chi router,
// exactly how main.go wires it in production. Nil mocks get zero-value
// doubles whose default resolve accepts testToken.
func newHTTPHandler(auth handler.AuthServicer, entries handler.EntryServicer, transports handler.TransportServicer) http.Handler {
	if auth == nil {
		auth = &mockAuthServicer{}
	}
	if entries == nil {
		entries = &mockEntryServicer{}
	}
	if transports == nil {
		transports = &mockTransportServicer{}
	}
	return handler.NewServer(auth, entries, transports).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// authedRequest builds a request that passes the auth gate via testToken.
func authedRequest(method, target string, body *bytes.Buffer) *http.Request {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionHeader, testToken)
	return req
}

// decodeResponse decodes the recorder body into dst.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(dst))
}
