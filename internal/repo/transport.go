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

// TransportRepo defines the persistence operations for Transport presets.
// The contract mirrors EntryRepo: every operation is scoped by userID.
type TransportRepo interface {
	// Create inserts a new transport and returns the persisted record.
	Create(ctx context.Context, transport domain.Transport) (domain.Transport, error)

	// GetByID retrieves a single transport by ID, scoped to the given userID.
	// Returns domain.ErrNotFound if no transport with that ID is owned by that user.
	GetByID(ctx context.Context, userID, transportID uuid.UUID) (domain.Transport, error)

	// List returns all transports owned by the user, ordered by name.
	List(ctx context.Context, userID uuid.UUID) ([]domain.Transport, error)

	// Update overwrites the mutable fields of a transport, scoped to transport.UserID.
	// Returns domain.ErrNotFound if no transport with that ID is owned by that user.
	Update(ctx context.Context, transport domain.Transport) (domain.Transport, error)

	// Delete removes a transport by ID, scoped to the given userID.
	// Returns domain.ErrNotFound if no transport with that ID is owned by that user.
	Delete(ctx context.Context, userID, transportID uuid.UUID) error
}

// pgTransportRepo is the Postgres implementation of TransportRepo.
type pgTransportRepo struct {
	db db
}

// NewTransportRepo constructs a TransportRepo backed by the provided db connection.
func NewTransportRepo(db db) TransportRepo {
	return &pgTransportRepo{db: db}
}

const transportColumns = `id, user_id, name, location, diesel_rate, transport_rate,
	labour_cost, created_at, updated_at`

func (r *pgTransportRepo) Create(ctx context.Context, transport domain.Transport) (domain.Transport, error) {
	const q = `
		INSERT INTO transports (user_id, name, location, diesel_rate, transport_rate, labour_cost)
		VALUES (@user_id, @name, @location, @diesel_rate, @transport_rate, @labour_cost)
		RETURNING ` + transportColumns

	row := r.db.QueryRow(ctx, q, transportArgs(transport))
	result, err := scanTransport(row)
	if err != nil {
		return domain.Transport{}, fmt.Errorf("repo.TransportRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTransportRepo) GetByID(ctx context.Context, userID, transportID uuid.UUID) (domain.Transport, error) {
	const q = `
		SELECT ` + transportColumns + `
		FROM transports
		WHERE id = @id AND user_id = @user_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": transportID, "user_id": userID})
	result, err := scanTransport(row)
	if err != nil {
		return domain.Transport{}, fmt.Errorf("repo.TransportRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTransportRepo) List(ctx context.Context, userID uuid.UUID) ([]domain.Transport, error) {
	const q = `
		SELECT ` + transportColumns + `
		FROM transports
		WHERE user_id = @user_id
		ORDER BY name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TransportRepo.List: %w", err)
	}
	defer rows.Close()

	var transports []domain.Transport
	for rows.Next() {
		tr, err := scanTransport(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TransportRepo.List: scan: %w", err)
		}
		transports = append(transports, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TransportRepo.List: rows: %w", err)
	}

	return transports, nil
}

func (r *pgTransportRepo) Update(ctx context.Context, transport domain.Transport) (domain.Transport, error) {
	const q = `
		UPDATE transports
		SET name           = @name,
		    location       = @location,
		    diesel_rate    = @diesel_rate,
		    transport_rate = @transport_rate,
		    labour_cost    = @labour_cost,
		    updated_at     = now()
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + transportColumns

	args := transportArgs(transport)
	args["id"] = transport.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTransport(row)
	if err != nil {
		return domain.Transport{}, fmt.Errorf("repo.TransportRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTransportRepo) Delete(ctx context.Context, userID, transportID uuid.UUID) error {
	const q = `DELETE FROM transports WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": transportID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.TransportRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TransportRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// transportArgs maps the mutable transport fields to named SQL arguments.
func transportArgs(t domain.Transport) pgx.NamedArgs {
	return pgx.NamedArgs{
		"user_id":        t.UserID,
		"name":           t.Name,
		"location":       t.Location,
		"diesel_rate":    t.DieselRate,
		"transport_rate": t.TransportRate,
		"labour_cost":    t.LabourCost,
	}
}

// scanTransport maps a single database row into a domain.Transport.
func scanTransport(s scanner) (domain.Transport, error) {
	var (
		t      domain.Transport
		id     pgtype.UUID
		userID pgtype.UUID
	)

	err := s.Scan(&id, &userID, &t.Name, &t.Location, &t.DieselRate, &t.TransportRate,
		&t.LabourCost, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Transport{}, domain.ErrNotFound
		}
		return domain.Transport{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.UserID = uuid.UUID(userID.Bytes)

	return t, nil
}
