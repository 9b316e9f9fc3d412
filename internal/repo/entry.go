package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/trucklog/backend/internal/domain"
)

// EntryRepo defines the persistence operations for Entries.
// All reads and writes are scoped by userID so one user can never observe or
// mutate another user's records, even with a known record ID.
type EntryRepo interface {
	// Create inserts a new entry and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, entry domain.Entry) (domain.Entry, error)

	// GetByID retrieves a single entry by ID, scoped to the given userID.
	// Returns domain.ErrNotFound if no entry with that ID is owned by that user.
	GetByID(ctx context.Context, userID, entryID uuid.UUID) (domain.Entry, error)

	// List returns the user's entries matching the filter, most recent date
	// first. A zero filter returns everything the user owns.
	List(ctx context.Context, userID uuid.UUID, filter domain.EntryFilter) ([]domain.Entry, error)

	// Update overwrites the mutable fields of an entry, scoped to entry.UserID.
	// Returns domain.ErrNotFound if no entry with that ID is owned by that user.
	Update(ctx context.Context, entry domain.Entry) (domain.Entry, error)

	// Delete removes an entry by ID, scoped to the given userID.
	// Returns domain.ErrNotFound if no entry with that ID is owned by that user.
	Delete(ctx context.Context, userID, entryID uuid.UUID) error
}

// pgEntryRepo is the Postgres implementation of EntryRepo.
type pgEntryRepo struct {
	db db
}

// NewEntryRepo constructs an EntryRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewEntryRepo(db db) EntryRepo {
	return &pgEntryRepo{db: db}
}

const entryColumns = `id, user_id, date, truck_no, load_location, transport_name,
	diesel_liters, amount_paid, transport_cost, labour_cost, notes, created_at, updated_at`

// Create inserts a new entry row and returns the full persisted record.
func (r *pgEntryRepo) Create(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	const q = `
		INSERT INTO entries (user_id, date, truck_no, load_location, transport_name,
		                     diesel_liters, amount_paid, transport_cost, labour_cost, notes)
		VALUES (@user_id, @date, @truck_no, @load_location, @transport_name,
		        @diesel_liters, @amount_paid, @transport_cost, @labour_cost, @notes)
		RETURNING ` + entryColumns

	row := r.db.QueryRow(ctx, q, entryArgs(entry))
	result, err := scanEntry(row)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("repo.EntryRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves an entry by primary key, scoped to its owner.
func (r *pgEntryRepo) GetByID(ctx context.Context, userID, entryID uuid.UUID) (domain.Entry, error) {
	const q = `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE id = @id AND user_id = @user_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": entryID, "user_id": userID})
	result, err := scanEntry(row)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("repo.EntryRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns the user's entries in the inclusive date range, newest first.
// Nil range bounds are passed as NULL and disable that side of the filter.
func (r *pgEntryRepo) List(ctx context.Context, userID uuid.UUID, filter domain.EntryFilter) ([]domain.Entry, error) {
	const q = `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE user_id = @user_id
		  AND (@from::date IS NULL OR date >= @from)
		  AND (@to::date IS NULL OR date <= @to)
		ORDER BY date DESC, created_at DESC`

	args := pgx.NamedArgs{
		"user_id": userID,
		"from":    dateArg(filter.From),
		"to":      dateArg(filter.To),
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.EntryRepo.List: %w", err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.EntryRepo.List: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.EntryRepo.List: rows: %w", err)
	}

	return entries, nil
}

// Update overwrites the mutable fields of an entry and returns the updated record.
// The WHERE clause matches both id and user_id, so an id owned by another user
// behaves exactly like a missing id.
func (r *pgEntryRepo) Update(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	const q = `
		UPDATE entries
		SET date           = @date,
		    truck_no       = @truck_no,
		    load_location  = @load_location,
		    transport_name = @transport_name,
		    diesel_liters  = @diesel_liters,
		    amount_paid    = @amount_paid,
		    transport_cost = @transport_cost,
		    labour_cost    = @labour_cost,
		    notes          = @notes,
		    updated_at     = now()
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + entryColumns

	args := entryArgs(entry)
	args["id"] = entry.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanEntry(row)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("repo.EntryRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes an entry by primary key, scoped to its owner.
func (r *pgEntryRepo) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	const q = `DELETE FROM entries WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": entryID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.EntryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.EntryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// entryArgs maps the mutable entry fields to named SQL arguments.
func entryArgs(e domain.Entry) pgx.NamedArgs {
	return pgx.NamedArgs{
		"user_id":        e.UserID,
		"date":           e.Date.Time(),
		"truck_no":       e.TruckNo,
		"load_location":  e.LoadLocation,
		"transport_name": e.TransportName,
		"diesel_liters":  e.DieselLiters,
		"amount_paid":    e.AmountPaid,
		"transport_cost": e.TransportCost,
		"labour_cost":    e.LabourCost,
		"notes":          e.Notes,
	}
}

// dateArg converts a domain.Date to a nullable SQL date argument.
func dateArg(d domain.Date) *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time()
	return &t
}

// scanEntry maps a single database row into a domain.Entry.
// It handles the UUID and DATE conversions.
func scanEntry(s scanner) (domain.Entry, error) {
	var (
		e      domain.Entry
		id     pgtype.UUID
		userID pgtype.UUID
		date   pgtype.Date
	)

	err := s.Scan(&id, &userID, &date, &e.TruckNo, &e.LoadLocation, &e.TransportName,
		&e.DieselLiters, &e.AmountPaid, &e.TransportCost, &e.LabourCost, &e.Notes,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Entry{}, domain.ErrNotFound
		}
		return domain.Entry{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.UserID = uuid.UUID(userID.Bytes)
	e.Date = domain.DateOf(date.Time)

	return e, nil
}
