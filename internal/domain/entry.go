package domain

import (
	"time"

	"github.com/google/uuid"
)

// Entry represents one logged truck trip.
// Every entry belongs to exactly one user; UserID is set at creation from the
// authenticated caller and never reassigned.
type Entry struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	Date          Date      `json:"date"`
	TruckNo       string    `json:"truckNo"`
	LoadLocation  string    `json:"loadLocation"`
	TransportName string    `json:"transportName,omitempty"`
	DieselLiters  float64   `json:"dieselLiters"`
	AmountPaid    float64   `json:"amountPaid"`
	TransportCost float64   `json:"transportCost"`
	LabourCost    float64   `json:"labourCost"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// EntryFilter narrows an entry listing to an inclusive date range.
// A zero From/To means unbounded on that side; the zero filter matches everything.
type EntryFilter struct {
	From Date
	To   Date
}

// MonthFilter builds an EntryFilter covering one calendar month.
func MonthFilter(year int, month time.Month) EntryFilter {
	first, last := MonthRange(year, month)
	return EntryFilter{From: first, To: last}
}

// IsZero reports whether the filter has no constraints.
func (f EntryFilter) IsZero() bool {
	return f.From.IsZero() && f.To.IsZero()
}

// Matches reports whether d falls within the filter's inclusive range.
// Comparison is by date value, not string, so it is safe regardless of how
// the date was originally formatted.
func (f EntryFilter) Matches(d Date) bool {
	if !f.From.IsZero() && d.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && d.After(f.To) {
		return false
	}
	return true
}
