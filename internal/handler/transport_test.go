package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trucklog/backend/internal/domain"
)

func transportFixture() domain.Transport {
	return domain.Transport{
		ID:            uuid.New(),
		UserID:        testUser.ID,
		Name:          "ACME Haulage",
		Location:      "Salem",
		DieselRate:    92.5,
		TransportRate: 1500,
		LabourCost:    400,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
}

// ---- POST /api/transports --------------------------------------------------

func TestCreateTransport_200(t *testing.T) {
	fixture := transportFixture()
	transports := &mockTransportServicer{
		create: func(_ context.Context, userID uuid.UUID, tr domain.Transport) (domain.Transport, error) {
			assert.Equal(t, testUser.ID, userID)
			assert.Equal(t, "ACME Haulage", tr.Name)
			assert.Equal(t, 92.5, tr.DieselRate)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"name":       "ACME Haulage",
		"location":   "Salem",
		"dieselRate": "92.5",
	})
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, nil, transports).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/transports/", body))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.Transport
	decodeResponse(t, rec, &resp)
	assert.Equal(t, fixture.ID, resp.ID)
}

func TestCreateTransport_400_NameRequired(t *testing.T) {
	transports := &mockTransportServicer{
		create: func(_ context.Context, _ uuid.UUID, _ domain.Transport) (domain.Transport, error) {
			return domain.Transport{}, fmt.Errorf("service.TransportService.Create: %w: name is required", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{"location": "Salem"})
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, nil, transports).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/transports/", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error string `json:"error"`
	}
	decodeResponse(t, rec, &resp)
	assert.Equal(t, "name is required", resp.Error)
}

// ---- GET /api/transports ---------------------------------------------------

func TestListTransports_200(t *testing.T) {
	fixture := transportFixture()
	transports := &mockTransportServicer{
		list: func(_ context.Context, userID uuid.UUID) ([]domain.Transport, error) {
			assert.Equal(t, testUser.ID, userID)
			return []domain.Transport{fixture}, nil
		},
	}

	rec := httptest.NewRecorder()
	newHTTPHandler(nil, nil, transports).ServeHTTP(rec, authedRequest(http.MethodGet, "/api/transports/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []domain.Transport
	decodeResponse(t, rec, &resp)
	require.Len(t, resp, 1)
	assert.Equal(t, fixture.Name, resp[0].Name)
}

// ---- PUT /api/transports/{id} ----------------------------------------------

func TestUpdateTransport_200(t *testing.T) {
	fixture := transportFixture()
	transports := &mockTransportServicer{
		update: func(_ context.Context, userID uuid.UUID, tr domain.Transport) (domain.Transport, error) {
			assert.Equal(t, fixture.ID, tr.ID)
			assert.Equal(t, "ACME Logistics", tr.Name)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{"name": "ACME Logistics"})
	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPut, "/api/transports/"+fixture.ID.String(), body)
	newHTTPHandler(nil, nil, transports).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateTransport_404_NotFound(t *testing.T) {
	transports := &mockTransportServicer{
		update: func(_ context.Context, _ uuid.UUID, _ domain.Transport) (domain.Transport, error) {
			return domain.Transport{}, fmt.Errorf("service.TransportService.Update: %w", domain.ErrNotFound)
		},
	}

	body := jsonBody(t, map[string]any{"name": "Ghost"})
	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPut, "/api/transports/"+uuid.NewString(), body)
	newHTTPHandler(nil, nil, transports).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- DELETE /api/transports/{id} -------------------------------------------

func TestDeleteTransport_204(t *testing.T) {
	fixture := transportFixture()
	transports := &mockTransportServicer{
		delete: func(_ context.Context, userID, transportID uuid.UUID) error {
			assert.Equal(t, testUser.ID, userID)
			assert.Equal(t, fixture.ID, transportID)
			return nil
		},
	}

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodDelete, "/api/transports/"+fixture.ID.String(), nil)
	newHTTPHandler(nil, nil, transports).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteTransport_400_BadID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodDelete, "/api/transports/not-a-uuid", nil)
	newHTTPHandler(nil, nil, &mockTransportServicer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
