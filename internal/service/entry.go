// Package service contains the business logic for the truck logbook API.
// Services validate inputs, enforce ownership scoping, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trucklog/backend/internal/domain"
	"github.com/trucklog/backend/internal/repo"
)

// EntryService implements business logic for Entry operations.
type EntryService struct {
	entries repo.EntryRepo
}

// NewEntryService constructs an EntryService backed by the provided EntryRepo.
func NewEntryService(entries repo.EntryRepo) *EntryService {
	return &EntryService{entries: entries}
}

// Create validates and persists a new entry owned by userID.
// Free-text fields are sanitized and numeric fields coerced before the write,
// so nothing invalid ever reaches storage.
func (s *EntryService) Create(ctx context.Context, userID uuid.UUID, entry domain.Entry) (domain.Entry, error) {
	entry = coerceEntry(entry)
	if err := validateEntry(entry); err != nil {
		return domain.Entry{}, err
	}
	entry.UserID = userID

	result, err := s.entries.Create(ctx, entry)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("service.EntryService.Create: %w", err)
	}
	return result, nil
}

// List returns the user's entries matching the filter.
// Always returns a non-nil slice so callers can safely range over it.
func (s *EntryService) List(ctx context.Context, userID uuid.UUID, filter domain.EntryFilter) ([]domain.Entry, error) {
	entries, err := s.entries.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("service.EntryService.List: %w", err)
	}
	if entries == nil {
		return []domain.Entry{}, nil
	}
	return entries, nil
}

// ListMonth returns the user's entries within one calendar month.
// The month range respects variable month lengths and leap years.
func (s *EntryService) ListMonth(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]domain.Entry, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", domain.ErrValidation)
	}
	return s.List(ctx, userID, domain.MonthFilter(year, month))
}

// Summarize reduces the user's filtered entries to a count and two sums.
func (s *EntryService) Summarize(ctx context.Context, userID uuid.UUID, filter domain.EntryFilter) (domain.Summary, error) {
	entries, err := s.entries.List(ctx, userID, filter)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("service.EntryService.Summarize: %w", err)
	}
	return domain.Summarize(entries), nil
}

// Update replaces all mutable fields of an entry owned by userID.
// An entry that does not exist and one owned by another user both return
// domain.ErrNotFound.
func (s *EntryService) Update(ctx context.Context, userID uuid.UUID, entry domain.Entry) (domain.Entry, error) {
	entry = coerceEntry(entry)
	if err := validateEntry(entry); err != nil {
		return domain.Entry{}, err
	}
	entry.UserID = userID

	result, err := s.entries.Update(ctx, entry)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("service.EntryService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an entry owned by userID.
func (s *EntryService) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	if err := s.entries.Delete(ctx, userID, entryID); err != nil {
		return fmt.Errorf("service.EntryService.Delete: %w", err)
	}
	return nil
}

// validateEntry enforces the presence checks shared by Create and Update.
func validateEntry(entry domain.Entry) error {
	if entry.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if strings.TrimSpace(entry.TruckNo) == "" {
		return fmt.Errorf("%w: truckNo is required", domain.ErrValidation)
	}
	if strings.TrimSpace(entry.LoadLocation) == "" {
		return fmt.Errorf("%w: loadLocation is required", domain.ErrValidation)
	}
	return nil
}

// coerceEntry normalizes an entry before persistence: angle brackets are
// stripped from free text and numeric fields are clamped to non-negative
// finite values, with anything invalid becoming 0.
func coerceEntry(entry domain.Entry) domain.Entry {
	entry.TruckNo = sanitize(entry.TruckNo)
	entry.LoadLocation = sanitize(entry.LoadLocation)
	entry.TransportName = sanitize(entry.TransportName)
	entry.Notes = sanitize(entry.Notes)
	entry.DieselLiters = coerceAmount(entry.DieselLiters)
	entry.AmountPaid = coerceAmount(entry.AmountPaid)
	entry.TransportCost = coerceAmount(entry.TransportCost)
	entry.LabourCost = coerceAmount(entry.LabourCost)
	return entry
}

// sanitizer strips the characters the original logbook refused to store.
var sanitizer = strings.NewReplacer("<", "", ">", "")

// sanitize removes angle brackets from free-text input.
func sanitize(s string) string {
	return sanitizer.Replace(s)
}

// coerceAmount clamps a numeric quantity to a non-negative finite value.
func coerceAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
