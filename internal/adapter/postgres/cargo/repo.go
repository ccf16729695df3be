// Package cargo implements the Cargo repository using PostgreSQL.
// Fixed-shape queries use raw SQL; the filtered listing is built dynamically
// with squirrel.
package cargo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	postgres "cargoledger/internal/adapter/postgres"
	"cargoledger/internal/domain"
)

// Repo provides cargo persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new cargo repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const cargoColumns = `id, name, category_id, unit_id, brand_id, price::text, description, created_at, updated_at`

const createSQL = `
INSERT INTO cargo (id, name, category_id, unit_id, brand_id, price, description)
VALUES ($1, $2, $3, $4, $5, $6::numeric, $7)
RETURNING ` + cargoColumns

const getByIDSQL = `
SELECT ` + cargoColumns + `
FROM cargo WHERE id = $1`

const updateSQL = `
UPDATE cargo
SET name        = COALESCE($2, name),
    category_id = CASE WHEN $4 THEN NULL ELSE COALESCE($3, category_id) END,
    unit_id     = CASE WHEN $6 THEN NULL ELSE COALESCE($5, unit_id) END,
    brand_id    = CASE WHEN $8 THEN NULL ELSE COALESCE($7, brand_id) END,
    price       = CASE WHEN $10 THEN NULL ELSE COALESCE($9::numeric, price) END,
    description = COALESCE($11, description),
    updated_at  = now()
WHERE id = $1
RETURNING ` + cargoColumns

const deleteSQL = `DELETE FROM cargo WHERE id = $1`

// Create inserts a new cargo row.
func (r *Repo) Create(ctx context.Context, c *domain.Cargo) (*domain.Cargo, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	id := primitive.NewObjectID()
	row := q.QueryRow(ctx, createSQL,
		id.Hex(),
		c.Name,
		hexOrNil(c.CategoryID),
		hexOrNil(c.UnitID),
		hexOrNil(c.BrandID),
		priceOrNil(c.Price),
		c.Description,
	)

	out, err := scanCargo(row)
	if err != nil {
		return nil, postgres.MapError(err, "cargo", id)
	}
	return out, nil
}

// GetByID returns a cargo by primary key. Models are NOT loaded here;
// callers compose with the model repository when they need variants.
func (r *Repo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Cargo, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	out, err := scanCargo(q.QueryRow(ctx, getByIDSQL, id.Hex()))
	if err != nil {
		return nil, postgres.MapError(err, "cargo", id)
	}
	return out, nil
}

// List returns cargo matching the filter, ordered by name.
// Returns an empty slice (not nil) when nothing matches.
func (r *Repo) List(ctx context.Context, filter domain.CargoFilter) ([]*domain.Cargo, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := sq.Select("id", "name", "category_id", "unit_id", "brand_id",
		"price::text", "description", "created_at", "updated_at").
		From("cargo").
		OrderBy("name").
		PlaceholderFormat(sq.Dollar)

	if filter.NameContains != "" {
		builder = builder.Where(sq.ILike{"name": "%" + filter.NameContains + "%"})
	}
	if filter.CategoryID != nil {
		builder = builder.Where(sq.Eq{"category_id": filter.CategoryID.Hex()})
	}
	if filter.UnitID != nil {
		builder = builder.Where(sq.Eq{"unit_id": filter.UnitID.Hex()})
	}
	if filter.BrandID != nil {
		builder = builder.Where(sq.Eq{"brand_id": filter.BrandID.Hex()})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build cargo list query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list cargo: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Cargo, 0)
	for rows.Next() {
		c, err := scanCargo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cargo: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cargo: %w", err)
	}
	return out, nil
}

// Update applies params and bumps updated_at.
func (r *Repo) Update(ctx context.Context, id primitive.ObjectID, params domain.CargoUpdateParams) (*domain.Cargo, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, updateSQL,
		id.Hex(),
		params.Name,
		hexOrNil(params.CategoryID), params.ClearCategory,
		hexOrNil(params.UnitID), params.ClearUnit,
		hexOrNil(params.BrandID), params.ClearBrand,
		priceOrNil(params.Price), params.ClearPrice,
		params.Description,
	)

	out, err := scanCargo(row)
	if err != nil {
		return nil, postgres.MapError(err, "cargo", id)
	}
	return out, nil
}

// Delete removes the cargo; its models go with it (ON DELETE CASCADE).
func (r *Repo) Delete(ctx context.Context, id primitive.ObjectID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteSQL, id.Hex())
	if err != nil {
		return postgres.MapError(err, "cargo", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cargo %s: %w", id.Hex(), domain.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCargo(row rowScanner) (*domain.Cargo, error) {
	var (
		c          domain.Cargo
		idHex      string
		categoryID *string
		unitID     *string
		brandID    *string
		price      *string
		createdAt  time.Time
		updatedAt  time.Time
	)
	if err := row.Scan(&idHex, &c.Name, &categoryID, &unitID, &brandID,
		&price, &c.Description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, fmt.Errorf("parse cargo id %q: %w", idHex, err)
	}
	c.ID = id

	if c.CategoryID, err = objectIDOrNil(categoryID); err != nil {
		return nil, fmt.Errorf("cargo %s category: %w", idHex, err)
	}
	if c.UnitID, err = objectIDOrNil(unitID); err != nil {
		return nil, fmt.Errorf("cargo %s unit: %w", idHex, err)
	}
	if c.BrandID, err = objectIDOrNil(brandID); err != nil {
		return nil, fmt.Errorf("cargo %s brand: %w", idHex, err)
	}
	if price != nil {
		d, err := decimal.NewFromString(*price)
		if err != nil {
			return nil, fmt.Errorf("cargo %s price %q: %w", idHex, *price, err)
		}
		c.Price = &d
	}

	c.CreatedAt = createdAt
	c.UpdatedAt = updatedAt
	return &c, nil
}

func hexOrNil(id *primitive.ObjectID) *string {
	if id == nil {
		return nil
	}
	h := id.Hex()
	return &h
}

func priceOrNil(p *decimal.Decimal) *string {
	if p == nil {
		return nil
	}
	s := p.String()
	return &s
}

func objectIDOrNil(hex *string) (*primitive.ObjectID, error) {
	if hex == nil {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(*hex)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
