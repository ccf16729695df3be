package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cargoledger/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return primitive.NewObjectID().Hex()[18:]
}

// SeedRef inserts a reference entity of the given kind and returns it.
func SeedRef(t *testing.T, pool *pgxpool.Pool, kind domain.RefKind) domain.RefEntity {
	t.Helper()
	ctx := context.Background()

	table := map[domain.RefKind]string{
		domain.RefKindCategory: "categories",
		domain.RefKindUnit:     "units",
		domain.RefKindBrand:    "brands",
	}[kind]
	if table == "" {
		t.Fatalf("testhelper: SeedRef unknown kind %q", kind)
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	entity := domain.RefEntity{
		ID:        primitive.NewObjectID(),
		Kind:      kind,
		Name:      string(kind) + "-" + uniqueSuffix(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO `+table+` (id, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)`,
		entity.ID.Hex(), entity.Name, entity.CreatedAt, entity.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRef insert %s: %v", table, err)
	}

	return entity
}

// SeedCargo inserts a cargo row without reference links or price.
func SeedCargo(t *testing.T, pool *pgxpool.Pool) domain.Cargo {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	cargo := domain.Cargo{
		ID:        primitive.NewObjectID(),
		Name:      "cargo-" + uniqueSuffix(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO cargo (id, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)`,
		cargo.ID.Hex(), cargo.Name, cargo.CreatedAt, cargo.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCargo insert: %v", err)
	}

	return cargo
}

// SeedModel inserts a model for the given cargo with the given stock level.
func SeedModel(t *testing.T, pool *pgxpool.Pool, cargoID primitive.ObjectID, quantity int64) domain.Model {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	model := domain.Model{
		ID:        primitive.NewObjectID(),
		CargoID:   cargoID,
		Name:      "model-" + uniqueSuffix(),
		SpecValue: `{"size":"` + uniqueSuffix() + `"}`,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO models (id, cargo_id, name, spec_value, quantity, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		model.ID.Hex(), model.CargoID.Hex(), model.Name, model.SpecValue,
		model.Quantity, model.CreatedAt, model.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedModel insert: %v", err)
	}

	return model
}
