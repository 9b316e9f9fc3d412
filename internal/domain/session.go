package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session maps an opaque token to a user. Sessions do not expire — they live
// until an explicit logout. A session whose user no longer exists must be
// treated as invalid on lookup.
type Session struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
