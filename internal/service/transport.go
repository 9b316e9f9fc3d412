package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/trucklog/backend/internal/domain"
	"github.com/trucklog/backend/internal/repo"
)

// TransportService implements business logic for Transport preset operations.
// The contract mirrors EntryService over the transport collection.
type TransportService struct {
	transports repo.TransportRepo
}

// NewTransportService constructs a TransportService backed by the provided repo.
func NewTransportService(transports repo.TransportRepo) *TransportService {
	return &TransportService{transports: transports}
}

// Create validates and persists a new transport preset owned by userID.
// Name uniqueness is not enforced — duplicates are a user convention, not a
// constraint, matching the system this replaces.
func (s *TransportService) Create(ctx context.Context, userID uuid.UUID, transport domain.Transport) (domain.Transport, error) {
	transport = coerceTransport(transport)
	if err := validateTransport(transport); err != nil {
		return domain.Transport{}, err
	}
	transport.UserID = userID

	result, err := s.transports.Create(ctx, transport)
	if err != nil {
		return domain.Transport{}, fmt.Errorf("service.TransportService.Create: %w", err)
	}
	return result, nil
}

// List returns all transports owned by the user.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TransportService) List(ctx context.Context, userID uuid.UUID) ([]domain.Transport, error) {
	transports, err := s.transports.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.TransportService.List: %w", err)
	}
	if transports == nil {
		return []domain.Transport{}, nil
	}
	return transports, nil
}

// Update replaces all mutable fields of a transport owned by userID.
func (s *TransportService) Update(ctx context.Context, userID uuid.UUID, transport domain.Transport) (domain.Transport, error) {
	transport = coerceTransport(transport)
	if err := validateTransport(transport); err != nil {
		return domain.Transport{}, err
	}
	transport.UserID = userID

	result, err := s.transports.Update(ctx, transport)
	if err != nil {
		return domain.Transport{}, fmt.Errorf("service.TransportService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a transport owned by userID. Entries created from the
// preset are untouched — they copied its values at creation time.
func (s *TransportService) Delete(ctx context.Context, userID, transportID uuid.UUID) error {
	if err := s.transports.Delete(ctx, userID, transportID); err != nil {
		return fmt.Errorf("service.TransportService.Delete: %w", err)
	}
	return nil
}

// validateTransport enforces the presence checks shared by Create and Update.
func validateTransport(transport domain.Transport) error {
	if strings.TrimSpace(transport.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	return nil
}

// coerceTransport normalizes a transport before persistence, with the same
// sanitize-and-clamp policy as entries.
func coerceTransport(transport domain.Transport) domain.Transport {
	transport.Name = sanitize(transport.Name)
	transport.Location = sanitize(transport.Location)
	transport.DieselRate = coerceAmount(transport.DieselRate)
	transport.TransportRate = coerceAmount(transport.TransportRate)
	transport.LabourCost = coerceAmount(transport.LabourCost)
	return transport
}
