package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trucklog/backend/internal/domain"
	"github.com/trucklog/backend/internal/repo"
	"github.com/trucklog/backend/internal/service"
)

// mockTransportRepo is a hand-written test double for repo.TransportRepo.
type mockTransportRepo struct {
	create  func(ctx context.Context, transport domain.Transport) (domain.Transport, error)
	getByID func(ctx context.Context, userID, transportID uuid.UUID) (domain.Transport, error)
	list    func(ctx context.Context, userID uuid.UUID) ([]domain.Transport, error)
	update  func(ctx context.Context, transport domain.Transport) (domain.Transport, error)
	delete  func(ctx context.Context, userID, transportID uuid.UUID) error
}

func (m *mockTransportRepo) Create(ctx context.Context, transport domain.Transport) (domain.Transport, error) {
	return m.create(ctx, transport)
}
func (m *mockTransportRepo) GetByID(ctx context.Context, userID, transportID uuid.UUID) (domain.Transport, error) {
	return m.getByID(ctx, userID, transportID)
}
func (m *mockTransportRepo) List(ctx context.Context, userID uuid.UUID) ([]domain.Transport, error) {
	return m.list(ctx, userID)
}
func (m *mockTransportRepo) Update(ctx context.Context, transport domain.Transport) (domain.Transport, error) {
	return m.update(ctx, transport)
}
func (m *mockTransportRepo) Delete(ctx context.Context, userID, transportID uuid.UUID) error {
	return m.delete(ctx, userID, transportID)
}

var _ repo.TransportRepo = (*mockTransportRepo)(nil)

func TestTransportService_Create_OK(t *testing.T) {
	userID := uuid.New()
	var captured domain.Transport

	svc := service.NewTransportService(&mockTransportRepo{
		create: func(_ context.Context, tr domain.Transport) (domain.Transport, error) {
			captured = tr
			tr.ID = uuid.New()
			return tr, nil
		},
	})

	got, err := svc.Create(context.Background(), userID, domain.Transport{
		Name:       "ACME Haulage",
		Location:   "Depot",
		DieselRate: 80,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, userID, captured.UserID)
}

func TestTransportService_Create_NameRequired(t *testing.T) {
	svc := service.NewTransportService(&mockTransportRepo{})

	_, err := svc.Create(context.Background(), uuid.New(), domain.Transport{Name: "  "})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTransportService_Create_CoercesRates(t *testing.T) {
	var captured domain.Transport
	svc := service.NewTransportService(&mockTransportRepo{
		create: func(_ context.Context, tr domain.Transport) (domain.Transport, error) {
			captured = tr
			return tr, nil
		},
	})

	_, err := svc.Create(context.Background(), uuid.New(), domain.Transport{
		Name:          "ACME <Haulage>",
		DieselRate:    -5,
		TransportRate: 1200,
	})

	require.NoError(t, err)
	assert.Equal(t, "ACME Haulage", captured.Name)
	assert.Zero(t, captured.DieselRate)
	assert.Equal(t, 1200.0, captured.TransportRate)
}

func TestTransportService_List_NilBecomesEmptySlice(t *testing.T) {
	svc := service.NewTransportService(&mockTransportRepo{
		list: func(_ context.Context, _ uuid.UUID) ([]domain.Transport, error) {
			return nil, nil
		},
	})

	got, err := svc.List(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTransportService_Update_NotFound(t *testing.T) {
	svc := service.NewTransportService(&mockTransportRepo{
		update: func(_ context.Context, _ domain.Transport) (domain.Transport, error) {
			return domain.Transport{}, domain.ErrNotFound
		},
	})

	_, err := svc.Update(context.Background(), uuid.New(), domain.Transport{ID: uuid.New(), Name: "X"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransportService_Delete(t *testing.T) {
	userID, transportID := uuid.New(), uuid.New()
	svc := service.NewTransportService(&mockTransportRepo{
		delete: func(_ context.Context, u, id uuid.UUID) error {
			assert.Equal(t, userID, u)
			assert.Equal(t, transportID, id)
			return nil
		},
	})

	require.NoError(t, svc.Delete(context.Background(), userID, transportID))
}
