// Package filedb implements the repo store interfaces on top of a single
// JSON document on disk, the layout used by the paper-logbook replacement
// this system grew out of: one file with top-level users, sessions, entries,
// and transports arrays.
//
// All mutations take a single store-wide mutex and are flushed to disk before
// returning, so there is never acknowledged-but-unpersisted state. The flush
// writes to a temp file and renames it into place, which keeps the document
// intact if the process dies mid-write.
package filedb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trucklog/backend/internal/domain"
	"github.com/trucklog/backend/internal/repo"
)

// document is the on-disk shape of the whole database.
type document struct {
	Users      []domain.User      `json:"users"`
	Sessions   []domain.Session   `json:"sessions"`
	Entries    []domain.Entry     `json:"entries"`
	Transports []domain.Transport `json:"transports"`
}

// Store is a file-backed database holding all four collections.
// It is safe for concurrent use; one mutation is in flight at a time.
type Store struct {
	mu   sync.Mutex
	path string
	doc  document
}

// Open loads the JSON document at path, creating an empty one if the file
// does not exist. A file that exists but cannot be parsed is an error — the
// caller should treat that as fatal rather than silently starting empty.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := s.flushLocked(); err != nil {
			return nil, fmt.Errorf("filedb.Open: init %s: %w", path, err)
		}
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("filedb.Open: read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("filedb.Open: parse %s: %w", path, err)
	}
	return s, nil
}

// Entries returns the entry collection as a repo.EntryRepo.
func (s *Store) Entries() repo.EntryRepo { return &entryStore{s} }

// Transports returns the transport collection as a repo.TransportRepo.
func (s *Store) Transports() repo.TransportRepo { return &transportStore{s} }

// Users returns the user collection as a repo.UserRepo.
func (s *Store) Users() repo.UserRepo { return &userStore{s} }

// Sessions returns the session collection as a repo.SessionRepo.
func (s *Store) Sessions() repo.SessionRepo { return &sessionStore{s} }

// flushLocked writes the whole document to disk. Callers must hold s.mu
// (or be the only goroutine with access, as in Open).
func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// now returns the current UTC time truncated to milliseconds, so timestamps
// round-trip through the JSON file without drifting in precision.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// --- entries ----------------------------------------------------------------

type entryStore struct {
	s *Store
}

func (r *entryStore) Create(_ context.Context, entry domain.Entry) (domain.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	entry.ID = uuid.New()
	entry.CreatedAt = now()
	entry.UpdatedAt = entry.CreatedAt

	r.s.doc.Entries = append(r.s.doc.Entries, entry)
	if err := r.s.flushLocked(); err != nil {
		return domain.Entry{}, fmt.Errorf("filedb.entryStore.Create: %w", err)
	}
	return entry, nil
}

func (r *entryStore) GetByID(_ context.Context, userID, entryID uuid.UUID) (domain.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.doc.Entries {
		if e.ID == entryID && e.UserID == userID {
			return e, nil
		}
	}
	return domain.Entry{}, fmt.Errorf("filedb.entryStore.GetByID: %w", domain.ErrNotFound)
}

func (r *entryStore) List(_ context.Context, userID uuid.UUID, filter domain.EntryFilter) ([]domain.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var entries []domain.Entry
	for _, e := range r.s.doc.Entries {
		if e.UserID == userID && filter.Matches(e.Date) {
			entries = append(entries, e)
		}
	}

	// Match the Postgres ordering: newest date first, then newest created.
	sortEntries(entries)
	return entries, nil
}

func (r *entryStore) Update(_ context.Context, entry domain.Entry) (domain.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, e := range r.s.doc.Entries {
		if e.ID != entry.ID || e.UserID != entry.UserID {
			continue
		}
		entry.CreatedAt = e.CreatedAt
		entry.UpdatedAt = now()
		r.s.doc.Entries[i] = entry
		if err := r.s.flushLocked(); err != nil {
			return domain.Entry{}, fmt.Errorf("filedb.entryStore.Update: %w", err)
		}
		return entry, nil
	}
	return domain.Entry{}, fmt.Errorf("filedb.entryStore.Update: %w", domain.ErrNotFound)
}

func (r *entryStore) Delete(_ context.Context, userID, entryID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, e := range r.s.doc.Entries {
		if e.ID != entryID || e.UserID != userID {
			continue
		}
		r.s.doc.Entries = append(r.s.doc.Entries[:i], r.s.doc.Entries[i+1:]...)
		if err := r.s.flushLocked(); err != nil {
			return fmt.Errorf("filedb.entryStore.Delete: %w", err)
		}
		return nil
	}
	return fmt.Errorf("filedb.entryStore.Delete: %w", domain.ErrNotFound)
}

// --- transports -------------------------------------------------------------

type transportStore struct {
	s *Store
}

func (r *transportStore) Create(_ context.Context, transport domain.Transport) (domain.Transport, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	transport.ID = uuid.New()
	transport.CreatedAt = now()
	transport.UpdatedAt = transport.CreatedAt

	r.s.doc.Transports = append(r.s.doc.Transports, transport)
	if err := r.s.flushLocked(); err != nil {
		return domain.Transport{}, fmt.Errorf("filedb.transportStore.Create: %w", err)
	}
	return transport, nil
}

func (r *transportStore) GetByID(_ context.Context, userID, transportID uuid.UUID) (domain.Transport, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, t := range r.s.doc.Transports {
		if t.ID == transportID && t.UserID == userID {
			return t, nil
		}
	}
	return domain.Transport{}, fmt.Errorf("filedb.transportStore.GetByID: %w", domain.ErrNotFound)
}

func (r *transportStore) List(_ context.Context, userID uuid.UUID) ([]domain.Transport, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var transports []domain.Transport
	for _, t := range r.s.doc.Transports {
		if t.UserID == userID {
			transports = append(transports, t)
		}
	}
	sortTransports(transports)
	return transports, nil
}

func (r *transportStore) Update(_ context.Context, transport domain.Transport) (domain.Transport, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, t := range r.s.doc.Transports {
		if t.ID != transport.ID || t.UserID != transport.UserID {
			continue
		}
		transport.CreatedAt = t.CreatedAt
		transport.UpdatedAt = now()
		r.s.doc.Transports[i] = transport
		if err := r.s.flushLocked(); err != nil {
			return domain.Transport{}, fmt.Errorf("filedb.transportStore.Update: %w", err)
		}
		return transport, nil
	}
	return domain.Transport{}, fmt.Errorf("filedb.transportStore.Update: %w", domain.ErrNotFound)
}

func (r *transportStore) Delete(_ context.Context, userID, transportID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, t := range r.s.doc.Transports {
		if t.ID != transportID || t.UserID != userID {
			continue
		}
		r.s.doc.Transports = append(r.s.doc.Transports[:i], r.s.doc.Transports[i+1:]...)
		if err := r.s.flushLocked(); err != nil {
			return fmt.Errorf("filedb.transportStore.Delete: %w", err)
		}
		return nil
	}
	return fmt.Errorf("filedb.transportStore.Delete: %w", domain.ErrNotFound)
}

// --- users ------------------------------------------------------------------

type userStore struct {
	s *Store
}

func (r *userStore) Create(_ context.Context, user domain.User) (domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.doc.Users {
		if u.Username == user.Username {
			return domain.User{}, fmt.Errorf("filedb.userStore.Create: %w", domain.ErrConflict)
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = now()

	r.s.doc.Users = append(r.s.doc.Users, user)
	if err := r.s.flushLocked(); err != nil {
		return domain.User{}, fmt.Errorf("filedb.userStore.Create: %w", err)
	}
	return user, nil
}

func (r *userStore) GetByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.doc.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("filedb.userStore.GetByID: %w", domain.ErrNotFound)
}

func (r *userStore) GetByUsername(_ context.Context, username string) (domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.doc.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("filedb.userStore.GetByUsername: %w", domain.ErrNotFound)
}

// --- sessions ---------------------------------------------------------------

type sessionStore struct {
	s *Store
}

func (r *sessionStore) Create(_ context.Context, session domain.Session) (domain.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	session.CreatedAt = now()
	r.s.doc.Sessions = append(r.s.doc.Sessions, session)
	if err := r.s.flushLocked(); err != nil {
		return domain.Session{}, fmt.Errorf("filedb.sessionStore.Create: %w", err)
	}
	return session, nil
}

func (r *sessionStore) Get(_ context.Context, token string) (domain.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, sess := range r.s.doc.Sessions {
		if sess.Token == token {
			return sess, nil
		}
	}
	return domain.Session{}, fmt.Errorf("filedb.sessionStore.Get: %w", domain.ErrNotFound)
}

func (r *sessionStore) Delete(_ context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, sess := range r.s.doc.Sessions {
		if sess.Token != token {
			continue
		}
		r.s.doc.Sessions = append(r.s.doc.Sessions[:i], r.s.doc.Sessions[i+1:]...)
		if err := r.s.flushLocked(); err != nil {
			return fmt.Errorf("filedb.sessionStore.Delete: %w", err)
		}
		return nil
	}
	// Unknown token: logout is idempotent, nothing to do.
	return nil
}
