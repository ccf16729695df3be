// Package refdata implements the repositories for the simple named
// reference entities (categories, units, brands) using PostgreSQL.
// All three tables share one shape, so a single Repo is instantiated per
// kind with its table name fixed at construction.
package refdata

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson/primitive"

	postgres "cargoledger/internal/adapter/postgres"
	"cargoledger/internal/domain"
)

var tables = map[domain.RefKind]string{
	domain.RefKindCategory: "categories",
	domain.RefKindUnit:     "units",
	domain.RefKindBrand:    "brands",
}

// Repo provides persistence for one reference entity kind.
type Repo struct {
	pool  *pgxpool.Pool
	kind  domain.RefKind
	table string
}

// New creates a reference repository for the given kind.
// Panics on an unknown kind: the set of kinds is fixed at compile time.
func New(pool *pgxpool.Pool, kind domain.RefKind) *Repo {
	table, ok := tables[kind]
	if !ok {
		panic(fmt.Sprintf("refdata: unknown kind %q", kind))
	}
	return &Repo{pool: pool, kind: kind, table: table}
}

// Create inserts a new reference entity and returns it with timestamps set.
func (r *Repo) Create(ctx context.Context, entity *domain.RefEntity) (*domain.RefEntity, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	id := primitive.NewObjectID()
	sql := fmt.Sprintf(`
INSERT INTO %s (id, name, description)
VALUES ($1, $2, $3)
RETURNING id, name, description, created_at, updated_at`, r.table)

	row := q.QueryRow(ctx, sql, id.Hex(), entity.Name, entity.Description)
	out, err := r.scan(row)
	if err != nil {
		return nil, postgres.MapError(err, r.kind.String(), id)
	}
	return out, nil
}

// GetByID returns a reference entity by primary key.
func (r *Repo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.RefEntity, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql := fmt.Sprintf(`
SELECT id, name, description, created_at, updated_at
FROM %s WHERE id = $1`, r.table)

	out, err := r.scan(q.QueryRow(ctx, sql, id.Hex()))
	if err != nil {
		return nil, postgres.MapError(err, r.kind.String(), id)
	}
	return out, nil
}

// List returns all entities of this kind ordered by name.
// Returns an empty slice (not nil) when the table is empty.
func (r *Repo) List(ctx context.Context) ([]*domain.RefEntity, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql := fmt.Sprintf(`
SELECT id, name, description, created_at, updated_at
FROM %s ORDER BY name`, r.table)

	rows, err := q.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table, err)
	}
	defer rows.Close()

	out := make([]*domain.RefEntity, 0)
	for rows.Next() {
		e, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.kind, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table, err)
	}
	return out, nil
}

// Update applies the non-nil fields of params and bumps updated_at.
func (r *Repo) Update(ctx context.Context, id primitive.ObjectID, params domain.RefUpdateParams) (*domain.RefEntity, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql := fmt.Sprintf(`
UPDATE %s
SET name        = COALESCE($2, name),
    description = COALESCE($3, description),
    updated_at  = now()
WHERE id = $1
RETURNING id, name, description, created_at, updated_at`, r.table)

	out, err := r.scan(q.QueryRow(ctx, sql, id.Hex(), params.Name, params.Description))
	if err != nil {
		return nil, postgres.MapError(err, r.kind.String(), id)
	}
	return out, nil
}

// Delete removes the entity. Referencing cargo keeps existing via
// ON DELETE SET NULL and becomes unclassified.
func (r *Repo) Delete(ctx context.Context, id primitive.ObjectID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	tag, err := q.Exec(ctx, sql, id.Hex())
	if err != nil {
		return postgres.MapError(err, r.kind.String(), id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", r.kind, id.Hex(), domain.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *Repo) scan(row rowScanner) (*domain.RefEntity, error) {
	var (
		e         domain.RefEntity
		idHex     string
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&idHex, &e.Name, &e.Description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, fmt.Errorf("parse %s id %q: %w", r.kind, idHex, err)
	}
	e.ID = id
	e.Kind = r.kind
	e.CreatedAt = createdAt
	e.UpdatedAt = updatedAt
	return &e, nil
}
