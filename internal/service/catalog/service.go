// Package catalog implements catalog maintenance: cargo, their
// specification models and the category/unit/brand reference data.
package catalog

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cargoledger/internal/domain"
	"cargoledger/internal/speccodec"
)

type cargoRepo interface {
	Create(ctx context.Context, c *domain.Cargo) (*domain.Cargo, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Cargo, error)
	List(ctx context.Context, filter domain.CargoFilter) ([]*domain.Cargo, error)
	Update(ctx context.Context, id primitive.ObjectID, params domain.CargoUpdateParams) (*domain.Cargo, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type modelRepo interface {
	Create(ctx context.Context, m *domain.Model) (*domain.Model, error)
	GetByID(ctx context.Context, cargoID, modelID primitive.ObjectID) (*domain.Model, error)
	ListByCargoID(ctx context.Context, cargoID primitive.ObjectID) ([]domain.Model, error)
	Update(ctx context.Context, modelID primitive.ObjectID, params domain.ModelUpdateParams) (*domain.Model, error)
	Delete(ctx context.Context, modelID primitive.ObjectID) error
	SpecValueExists(ctx context.Context, cargoID primitive.ObjectID, specValue string, exclude primitive.ObjectID) (bool, error)
}

// RefRepo is the persistence contract shared by the three reference
// catalogs. Exported because callers assemble the per-kind map themselves.
type RefRepo interface {
	Create(ctx context.Context, entity *domain.RefEntity) (*domain.RefEntity, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.RefEntity, error)
	List(ctx context.Context) ([]*domain.RefEntity, error)
	Update(ctx context.Context, id primitive.ObjectID, params domain.RefUpdateParams) (*domain.RefEntity, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Service provides catalog operations.
type Service struct {
	cargo  cargoRepo
	models modelRepo
	refs   map[domain.RefKind]RefRepo
	codec  *speccodec.Codec
	log    *slog.Logger
}

// NewService creates a new catalog service. refs must carry one repository
// per RefKind.
func NewService(
	log *slog.Logger,
	cargo cargoRepo,
	models modelRepo,
	refs map[domain.RefKind]RefRepo,
	codec *speccodec.Codec,
) *Service {
	return &Service{
		cargo:  cargo,
		models: models,
		refs:   refs,
		codec:  codec,
		log:    log.With("service", "catalog"),
	}
}
