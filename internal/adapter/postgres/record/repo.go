// Package record implements the movement ledger repository using
// PostgreSQL. The detail snapshot is stored as jsonb and never modified
// after insert; the only mutable column is the committed flag.
package record

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson/primitive"

	postgres "cargoledger/internal/adapter/postgres"
	"cargoledger/internal/domain"
)

// Repo provides ledger record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new record repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const recordColumns = `id, type, committed, detail, created_at, updated_at`

const createSQL = `
INSERT INTO records (id, type, committed, detail)
VALUES ($1, $2, $3, $4::jsonb)
RETURNING ` + recordColumns

const getByIDSQL = `
SELECT ` + recordColumns + `
FROM records WHERE id = $1`

const getForUpdateSQL = `
SELECT ` + recordColumns + `
FROM records WHERE id = $1
FOR UPDATE`

const listSQL = `
SELECT ` + recordColumns + `
FROM records
ORDER BY created_at DESC, id`

const markCommittedSQL = `
UPDATE records
SET committed = true, updated_at = now()
WHERE id = $1 AND committed = false
RETURNING ` + recordColumns

const deleteDraftSQL = `DELETE FROM records WHERE id = $1 AND committed = false`

// Create inserts a new record with its immutable detail snapshot.
func (r *Repo) Create(ctx context.Context, rec *domain.Record) (*domain.Record, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	id := primitive.NewObjectID()
	detail, err := json.Marshal(rec.Detail)
	if err != nil {
		return nil, fmt.Errorf("marshal record detail: %w", err)
	}

	row := q.QueryRow(ctx, createSQL, id.Hex(), rec.Type.String(), rec.Committed, detail)
	out, err := scanRecord(row)
	if err != nil {
		return nil, postgres.MapError(err, "record", id)
	}
	return out, nil
}

// GetByID returns a record by primary key.
func (r *Repo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Record, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	out, err := scanRecord(q.QueryRow(ctx, getByIDSQL, id.Hex()))
	if err != nil {
		return nil, postgres.MapError(err, "record", id)
	}
	return out, nil
}

// GetForUpdate loads a record with a row lock, serializing concurrent
// finalize attempts on the same draft. Must run inside a transaction.
func (r *Repo) GetForUpdate(ctx context.Context, id primitive.ObjectID) (*domain.Record, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	out, err := scanRecord(q.QueryRow(ctx, getForUpdateSQL, id.Hex()))
	if err != nil {
		return nil, postgres.MapError(err, "record", id)
	}
	return out, nil
}

// List returns all records, newest first.
// Returns an empty slice (not nil) when the ledger is empty.
func (r *Repo) List(ctx context.Context) ([]*domain.Record, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return out, nil
}

// MarkCommitted flips committed false→true and bumps updated_at.
// Returns domain.ErrInvalidTransition when the record is already committed,
// domain.ErrNotFound when it does not exist.
func (r *Repo) MarkCommitted(ctx context.Context, id primitive.ObjectID) (*domain.Record, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	out, err := scanRecord(q.QueryRow(ctx, markCommittedSQL, id.Hex()))
	if err == nil {
		return out, nil
	}

	// Distinguish "absent" from "already committed" for a precise error.
	mapped := postgres.MapError(err, "record", id)
	if _, getErr := r.GetByID(ctx, id); getErr == nil {
		return nil, fmt.Errorf("record %s: %w", id.Hex(), domain.ErrInvalidTransition)
	}
	return nil, mapped
}

// DeleteDraft removes an uncommitted record. Drafts never touched stock, so
// this is a pure removal. Deleting a committed record is rejected:
// committed entries are the append-only history.
func (r *Repo) DeleteDraft(ctx context.Context, id primitive.ObjectID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteDraftSQL, id.Hex())
	if err != nil {
		return postgres.MapError(err, "record", id)
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr == nil {
			return fmt.Errorf("record %s is committed: %w", id.Hex(), domain.ErrInvalidTransition)
		}
		return fmt.Errorf("record %s: %w", id.Hex(), domain.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.Record, error) {
	var (
		rec     domain.Record
		idHex   string
		typ     string
		detail  []byte
		created time.Time
		updated time.Time
	)
	if err := row.Scan(&idHex, &typ, &rec.Committed, &detail, &created, &updated); err != nil {
		return nil, err
	}

	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, fmt.Errorf("parse record id %q: %w", idHex, err)
	}
	rec.ID = id
	rec.Type = domain.RecordType(typ)

	if err := json.Unmarshal(detail, &rec.Detail); err != nil {
		return nil, fmt.Errorf("unmarshal record %s detail: %w", idHex, err)
	}

	rec.CreatedAt = created
	rec.UpdatedAt = updated
	return &rec, nil
}
