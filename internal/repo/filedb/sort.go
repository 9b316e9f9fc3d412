package filedb

import (
	"sort"

	"github.com/trucklog/backend/internal/domain"
)

// sortEntries orders entries newest date first, breaking ties by creation
// time descending — the same ordering the Postgres store produces.
func sortEntries(entries []domain.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}

// sortTransports orders transports by name ascending.
func sortTransports(transports []domain.Transport) {
	sort.SliceStable(transports, func(i, j int) bool {
		return transports[i].Name < transports[j].Name
	})
}
