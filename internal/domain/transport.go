package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transport is a reusable preset of default cost and rate values for the
// entry form. Deleting a transport does not touch entries created from it —
// entries copy the name and values at creation time, there is no foreign key.
type Transport struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	Name          string    `json:"name"`
	Location      string    `json:"location,omitempty"`
	DieselRate    float64   `json:"dieselRate"`
	TransportRate float64   `json:"transportRate"`
	LabourCost    float64   `json:"labourCost"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
