package model_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson/primitive"

	postgres "cargoledger/internal/adapter/postgres"
	"cargoledger/internal/adapter/postgres/model"
	"cargoledger/internal/adapter/postgres/testhelper"
	"cargoledger/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*model.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return model.New(pool), pool
}

func uniqueName(prefix string) string {
	return prefix + "-" + primitive.NewObjectID().Hex()[12:]
}

func TestRepo_Create_AndGetByID(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	cargo := testhelper.SeedCargo(t, pool)

	name := uniqueName("M8x40")
	created, err := repo.Create(ctx, &domain.Model{
		CargoID:   cargo.ID,
		Name:      name,
		SpecValue: `{"length":"40","thread":"M8"}`,
		Quantity:  12,
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if created.ID.IsZero() {
		t.Error("expected non-zero model ID")
	}
	if created.CargoID != cargo.ID {
		t.Errorf("CargoID mismatch: got %s, want %s", created.CargoID.Hex(), cargo.ID.Hex())
	}
	if created.Name != name {
		t.Errorf("Name mismatch: got %q, want %q", created.Name, name)
	}
	if created.SpecValue != `{"length":"40","thread":"M8"}` {
		t.Errorf("SpecValue mismatch: got %q", created.SpecValue)
	}
	if created.Quantity != 12 {
		t.Errorf("Quantity mismatch: got %d, want 12", created.Quantity)
	}

	got, err := repo.GetByID(ctx, cargo.ID, created.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID mismatch: got %s, want %s", got.ID.Hex(), created.ID.Hex())
	}
}

func TestRepo_GetByID_WrongCargo(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	cargo1 := testhelper.SeedCargo(t, pool)
	cargo2 := testhelper.SeedCargo(t, pool)
	m := testhelper.SeedModel(t, pool, cargo1.ID, 1)

	// Models are scoped to their owning cargo.
	_, err := repo.GetByID(ctx, cargo2.ID, m.ID)
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_Create_DuplicateSpecValue(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	cargo := testhelper.SeedCargo(t, pool)

	spec := `{"color":"red"}`
	if _, err := repo.Create(ctx, &domain.Model{CargoID: cargo.ID, Name: uniqueName("First"), SpecValue: spec}); err != nil {
		t.Fatalf("Create first: %v", err)
	}

	_, err := repo.Create(ctx, &domain.Model{CargoID: cargo.ID, Name: uniqueName("Second"), SpecValue: spec})
	assertIsDomainError(t, err, domain.ErrAlreadyExists)
}

func TestRepo_Create_EmptySpecNotUnique(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	cargo := testhelper.SeedCargo(t, pool)

	// The partial unique index skips empty spec values.
	if _, err := repo.Create(ctx, &domain.Model{CargoID: cargo.ID, Name: uniqueName("PlainA")}); err != nil {
		t.Fatalf("Create first: %v", err)
	}
	if _, err := repo.Create(ctx, &domain.Model{CargoID: cargo.ID, Name: uniqueName("PlainB")}); err != nil {
		t.Fatalf("Create second: expected success, got: %v", err)
	}
}

func TestRepo_Create_SameSpecDifferentCargo(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	cargo1 := testhelper.SeedCargo(t, pool)
	cargo2 := testhelper.SeedCargo(t, pool)

	spec := `{"grade":"8.8"}`
	if _, err := repo.Create(ctx, &domain.Model{CargoID: cargo1.ID, Name: uniqueName("A"), SpecValue: spec}); err != nil {
		t.Fatalf("Create cargo1 model: %v", err)
	}
	if _, err := repo.Create(ctx, &domain.Model{CargoID: cargo2.ID, Name: uniqueName("B"), SpecValue: spec}); err != nil {
		t.Fatalf("Create cargo2 model: expected success, got: %v", err)
	}
}

func TestRepo_ListByCargoID_CreationOrder(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	cargo := testhelper.SeedCargo(t, pool)

	first, err := repo.Create(ctx, &domain.Model{CargoID: cargo.ID, Name: uniqueName("First")})
	if err != nil {
		t.Fatalf("Create first: %v", err)
	}
	second, err := repo.Create(ctx, &domain.Model{CargoID: cargo.ID, Name: uniqueName("Second")})
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}

	got, err := repo.ListByCargoID(ctx, cargo.ID)
	if err != nil {
		t.Fatalf("ListByCargoID: unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 models, got %d", len(got))
	}
	if got[0].ID != first.ID {
		t.Errorf("expected first model %s, got %s", first.ID.Hex(), got[0].ID.Hex())
	}
	if got[1].ID != second.ID {
		t.Errorf("expected second model %s, got %s", second.ID.Hex(), got[1].ID.Hex())
	}
}

func TestRepo_ListByCargoID_Empty(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	cargo := testhelper.SeedCargo(t, pool)

	got, err := repo.ListByCargoID(ctx, cargo.ID)
	if err != nil {
		t.Fatalf("ListByCargoID: unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Errorf("expected 0 models, got %d", len(got))
	}
}

func TestRepo_Update_NeverTouchesQuantity(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	cargo := testhelper.SeedCargo(t, pool)
	m := testhelper.SeedModel(t, pool, cargo.ID, 42)

	newName := uniqueName("Renamed")
	newSpec := `{"finish":"zinc"}`
	got, err := repo.Update(ctx, m.ID, domain.ModelUpdateParams{Name: &newName, SpecValue: &newSpec})
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}

	if got.Name != newName {
		t.Errorf("Name mismatch: got %q, want %q", got.Name, newName)
	}
	if got.SpecValue != newSpec {
		t.Errorf("SpecValue mismatch: got %q, want %q", got.SpecValue, newSpec)
	}
	if got.Quantity != 42 {
		t.Errorf("Quantity must be untouched by catalog updates: got %d, want 42", got.Quantity)
	}
}

func TestRepo_Update_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	name := "name"
	_, err := repo.Update(context.Background(), primitive.NewObjectID(), domain.ModelUpdateParams{Name: &name})
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_AdjustQuantity(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	cargo := testhelper.SeedCargo(t, pool)
	m := testhelper.SeedModel(t, pool, cargo.ID, 10)

	got, err := repo.AdjustQuantity(ctx, m.ID, 5)
	if err != nil {
		t.Fatalf("AdjustQuantity +5: unexpected error: %v", err)
	}
	if got != 15 {
		t.Errorf("expected quantity 15, got %d", got)
	}

	got, err = repo.AdjustQuantity(ctx, m.ID, -15)
	if err != nil {
		t.Fatalf("AdjustQuantity -15: unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("expected quantity 0, got %d", got)
	}
}

func TestRepo_AdjustQuantity_BelowZero(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	cargo := testhelper.SeedCargo(t, pool)
	m := testhelper.SeedModel(t, pool, cargo.ID, 3)

	// The check constraint is the backstop behind the availability check.
	_, err := repo.AdjustQuantity(ctx, m.ID, -4)
	assertIsDomainError(t, err, domain.ErrConflict)

	var quantity int64
	if err := pool.QueryRow(ctx, `SELECT quantity FROM models WHERE id = $1`, m.ID.Hex()).Scan(&quantity); err != nil {
		t.Fatalf("read quantity: %v", err)
	}
	if quantity != 3 {
		t.Errorf("expected quantity unchanged at 3, got %d", quantity)
	}
}

func TestRepo_GetForUpdate_InTx(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	cargo := testhelper.SeedCargo(t, pool)
	m := testhelper.SeedModel(t, pool, cargo.ID, 8)

	txm := postgres.NewTxManager(pool)
	err := txm.RunInTx(ctx, func(ctx context.Context) error {
		locked, err := repo.GetForUpdate(ctx, m.ID)
		if err != nil {
			return err
		}
		if locked.Quantity != 8 {
			t.Errorf("expected quantity 8, got %d", locked.Quantity)
		}
		_, err = repo.AdjustQuantity(ctx, m.ID, -3)
		return err
	})
	if err != nil {
		t.Fatalf("RunInTx: unexpected error: %v", err)
	}

	var quantity int64
	if err := pool.QueryRow(ctx, `SELECT quantity FROM models WHERE id = $1`, m.ID.Hex()).Scan(&quantity); err != nil {
		t.Fatalf("read quantity: %v", err)
	}
	if quantity != 5 {
		t.Errorf("expected quantity 5 after commit, got %d", quantity)
	}
}

func TestRepo_GetForUpdate_NotFound(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	txm := postgres.NewTxManager(pool)
	err := txm.RunInTx(ctx, func(ctx context.Context) error {
		_, err := repo.GetForUpdate(ctx, primitive.NewObjectID())
		return err
	})
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	cargo := testhelper.SeedCargo(t, pool)
	m := testhelper.SeedModel(t, pool, cargo.ID, 0)

	if err := repo.Delete(ctx, m.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}

	_, err := repo.GetByID(ctx, cargo.ID, m.ID)
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_Delete_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	err := repo.Delete(context.Background(), primitive.NewObjectID())
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_SpecValueExists(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	cargo := testhelper.SeedCargo(t, pool)

	spec := `{"voltage":"220"}`
	created, err := repo.Create(ctx, &domain.Model{CargoID: cargo.ID, Name: uniqueName("Spec"), SpecValue: spec})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	exists, err := repo.SpecValueExists(ctx, cargo.ID, spec, primitive.NilObjectID)
	if err != nil {
		t.Fatalf("SpecValueExists: unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected spec value to exist")
	}

	// Excluding the owning model itself reports no duplicate.
	exists, err = repo.SpecValueExists(ctx, cargo.ID, spec, created.ID)
	if err != nil {
		t.Fatalf("SpecValueExists with exclude: unexpected error: %v", err)
	}
	if exists {
		t.Error("expected no duplicate when excluding the model itself")
	}

	exists, err = repo.SpecValueExists(ctx, cargo.ID, `{"voltage":"110"}`, primitive.NilObjectID)
	if err != nil {
		t.Fatalf("SpecValueExists other spec: unexpected error: %v", err)
	}
	if exists {
		t.Error("expected no match for a different spec value")
	}
}

func assertIsDomainError(t *testing.T, err error, target error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error wrapping %v, got nil", target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected error wrapping %v, got: %v", target, err)
	}
}
