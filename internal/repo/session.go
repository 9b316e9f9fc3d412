package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/trucklog/backend/internal/domain"
)

// SessionRepo defines the persistence operations for the session registry.
// Tokens are opaque strings minted by the service layer; the repo only stores
// the token → user mapping.
type SessionRepo interface {
	// Create stores a new session.
	Create(ctx context.Context, session domain.Session) (domain.Session, error)

	// Get retrieves a session by token.
	// Returns domain.ErrNotFound if the token is unknown.
	Get(ctx context.Context, token string) (domain.Session, error)

	// Delete removes a session by token. Deleting an unknown token is not an
	// error — logout is idempotent.
	Delete(ctx context.Context, token string) error
}

// pgSessionRepo is the Postgres implementation of SessionRepo.
// Sessions persisted here survive process restarts, matching the persisted
// variant of the system this replaces.
type pgSessionRepo struct {
	db db
}

// NewSessionRepo constructs a SessionRepo backed by the provided db connection.
func NewSessionRepo(db db) SessionRepo {
	return &pgSessionRepo{db: db}
}

func (r *pgSessionRepo) Create(ctx context.Context, session domain.Session) (domain.Session, error) {
	const q = `
		INSERT INTO sessions (token, user_id)
		VALUES (@token, @user_id)
		RETURNING token, user_id, created_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"token": session.Token, "user_id": session.UserID})
	result, err := scanSession(row)
	if err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgSessionRepo) Get(ctx context.Context, token string) (domain.Session, error) {
	const q = `SELECT token, user_id, created_at FROM sessions WHERE token = @token`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"token": token})
	result, err := scanSession(row)
	if err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Get: %w", err)
	}
	return result, nil
}

// Delete removes a session. RowsAffected is deliberately not checked —
// logging out twice must succeed.
func (r *pgSessionRepo) Delete(ctx context.Context, token string) error {
	const q = `DELETE FROM sessions WHERE token = @token`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"token": token}); err != nil {
		return fmt.Errorf("repo.SessionRepo.Delete: %w", err)
	}
	return nil
}

// scanSession maps a single database row into a domain.Session.
func scanSession(s scanner) (domain.Session, error) {
	var (
		sess   domain.Session
		userID pgtype.UUID
	)
	err := s.Scan(&sess.Token, &userID, &sess.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Session{}, domain.ErrNotFound
		}
		return domain.Session{}, err
	}
	sess.UserID = uuid.UUID(userID.Bytes)
	return sess, nil
}
