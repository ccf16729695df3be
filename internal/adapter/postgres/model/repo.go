// Package model implements the Model (specification variant) repository
// using PostgreSQL. Quantity mutations go through GetForUpdate and
// AdjustQuantity only, always inside a movement transaction.
package model

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson/primitive"

	postgres "cargoledger/internal/adapter/postgres"
	"cargoledger/internal/domain"
)

// Repo provides model persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new model repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const modelColumns = `id, cargo_id, name, spec_value, description, quantity, created_at, updated_at`

const createSQL = `
INSERT INTO models (id, cargo_id, name, spec_value, description, quantity)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + modelColumns

const getByIDSQL = `
SELECT ` + modelColumns + `
FROM models WHERE cargo_id = $1 AND id = $2`

const getForUpdateSQL = `
SELECT ` + modelColumns + `
FROM models WHERE id = $1
FOR UPDATE`

const listByCargoIDSQL = `
SELECT ` + modelColumns + `
FROM models WHERE cargo_id = $1
ORDER BY created_at, id`

const updateSQL = `
UPDATE models
SET name        = COALESCE($2, name),
    spec_value  = COALESCE($3, spec_value),
    description = COALESCE($4, description),
    updated_at  = now()
WHERE id = $1
RETURNING ` + modelColumns

const adjustQuantitySQL = `
UPDATE models
SET quantity   = quantity + $2,
    updated_at = now()
WHERE id = $1
RETURNING quantity`

const deleteSQL = `DELETE FROM models WHERE id = $1`

const specValueExistsSQL = `
SELECT EXISTS (
    SELECT 1 FROM models
    WHERE cargo_id = $1 AND spec_value = $2 AND id <> $3
)`

// Create inserts a new model row.
func (r *Repo) Create(ctx context.Context, m *domain.Model) (*domain.Model, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	id := primitive.NewObjectID()
	row := q.QueryRow(ctx, createSQL,
		id.Hex(), m.CargoID.Hex(), m.Name, m.SpecValue, m.Description, m.Quantity)

	out, err := scanModel(row)
	if err != nil {
		return nil, postgres.MapError(err, "model", id)
	}
	return out, nil
}

// GetByID returns a model scoped to its owning cargo.
func (r *Repo) GetByID(ctx context.Context, cargoID, modelID primitive.ObjectID) (*domain.Model, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	out, err := scanModel(q.QueryRow(ctx, getByIDSQL, cargoID.Hex(), modelID.Hex()))
	if err != nil {
		return nil, postgres.MapError(err, "model", modelID)
	}
	return out, nil
}

// GetForUpdate loads a model by id with a row lock. Must be called inside
// a transaction; the lock is held until commit or rollback.
func (r *Repo) GetForUpdate(ctx context.Context, modelID primitive.ObjectID) (*domain.Model, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	out, err := scanModel(q.QueryRow(ctx, getForUpdateSQL, modelID.Hex()))
	if err != nil {
		return nil, postgres.MapError(err, "model", modelID)
	}
	return out, nil
}

// ListByCargoID returns the cargo's models in creation order.
// Returns an empty slice (not nil) when the cargo has no models.
func (r *Repo) ListByCargoID(ctx context.Context, cargoID primitive.ObjectID) ([]domain.Model, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByCargoIDSQL, cargoID.Hex())
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Model, 0)
	for rows.Next() {
		m, err := scanModel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan model: %w", err)
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return out, nil
}

// Update applies catalog params (never quantity) and bumps updated_at.
func (r *Repo) Update(ctx context.Context, modelID primitive.ObjectID, params domain.ModelUpdateParams) (*domain.Model, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, updateSQL,
		modelID.Hex(), params.Name, params.SpecValue, params.Description)

	out, err := scanModel(row)
	if err != nil {
		return nil, postgres.MapError(err, "model", modelID)
	}
	return out, nil
}

// AdjustQuantity adds delta (which may be negative) to the model's quantity
// and refreshes updated_at, returning the new quantity. The commit protocol
// validates availability before calling this; the quantity >= 0 check
// constraint is the last line of defense.
func (r *Repo) AdjustQuantity(ctx context.Context, modelID primitive.ObjectID, delta int64) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var quantity int64
	if err := q.QueryRow(ctx, adjustQuantitySQL, modelID.Hex(), delta).Scan(&quantity); err != nil {
		return 0, postgres.MapError(err, "model", modelID)
	}
	return quantity, nil
}

// Delete removes a model.
func (r *Repo) Delete(ctx context.Context, modelID primitive.ObjectID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteSQL, modelID.Hex())
	if err != nil {
		return postgres.MapError(err, "model", modelID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("model %s: %w", modelID.Hex(), domain.ErrNotFound)
	}
	return nil
}

// SpecValueExists reports whether another model of the same cargo already
// carries the canonical spec value. Pass primitive.NilObjectID for exclude
// when creating.
func (r *Repo) SpecValueExists(ctx context.Context, cargoID primitive.ObjectID, specValue string, exclude primitive.ObjectID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := q.QueryRow(ctx, specValueExistsSQL, cargoID.Hex(), specValue, exclude.Hex()).Scan(&exists); err != nil {
		return false, fmt.Errorf("spec value exists: %w", err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanModel(row rowScanner) (*domain.Model, error) {
	var (
		m        domain.Model
		idHex    string
		cargoHex string
		created  time.Time
		updated  time.Time
	)
	if err := row.Scan(&idHex, &cargoHex, &m.Name, &m.SpecValue, &m.Description,
		&m.Quantity, &created, &updated); err != nil {
		return nil, err
	}

	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, fmt.Errorf("parse model id %q: %w", idHex, err)
	}
	cargoID, err := primitive.ObjectIDFromHex(cargoHex)
	if err != nil {
		return nil, fmt.Errorf("parse model cargo id %q: %w", cargoHex, err)
	}

	m.ID = id
	m.CargoID = cargoID
	m.CreatedAt = created
	m.UpdatedAt = updated
	return &m, nil
}
