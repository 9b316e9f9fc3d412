package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trucklog/backend/internal/domain"
)

func TestSummarize_Empty(t *testing.T) {
	got := domain.Summarize(nil)

	assert.Equal(t, domain.Summary{}, got)
}

func TestSummarize_SumsDieselAndAmount(t *testing.T) {
	entries := []domain.Entry{
		{DieselLiters: 50, AmountPaid: 2000},
		{DieselLiters: 12.5, AmountPaid: 300.25},
		{DieselLiters: 0, AmountPaid: 0},
	}

	got := domain.Summarize(entries)

	assert.Equal(t, 3, got.Count)
	assert.InDelta(t, 62.5, got.TotalDiesel, 1e-9)
	assert.InDelta(t, 2300.25, got.TotalAmount, 1e-9)
}

// Labour and transport costs are deliberately not part of the summary —
// only diesel volume and amount paid are aggregated.
func TestSummarize_IgnoresOtherCosts(t *testing.T) {
	entries := []domain.Entry{
		{DieselLiters: 10, AmountPaid: 100, LabourCost: 999, TransportCost: 999},
	}

	got := domain.Summarize(entries)

	assert.Equal(t, domain.Summary{Count: 1, TotalDiesel: 10, TotalAmount: 100}, got)
}
