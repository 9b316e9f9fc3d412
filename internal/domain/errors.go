package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// record does not exist, or exists but is owned by a different user.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, malformed date).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized is returned when a session token is missing or unknown, or
// when login credentials do not match. The same sentinel covers both unknown
// username and wrong password so callers cannot enumerate usernames.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict is returned when a create collides with an existing record
// (e.g. signup with a taken username). Handlers map this to HTTP 400 to match
// the wire contract of the system this replaces.
var ErrConflict = errors.New("conflict")
