// Package movement implements the stock-movement ledger: draft
// accumulation, the atomic commit protocol, and draft finalization.
package movement

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cargoledger/internal/domain"
)

type modelRepo interface {
	GetForUpdate(ctx context.Context, modelID primitive.ObjectID) (*domain.Model, error)
	AdjustQuantity(ctx context.Context, modelID primitive.ObjectID, delta int64) (int64, error)
}

type recordRepo interface {
	Create(ctx context.Context, rec *domain.Record) (*domain.Record, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Record, error)
	GetForUpdate(ctx context.Context, id primitive.ObjectID) (*domain.Record, error)
	List(ctx context.Context) ([]*domain.Record, error)
	MarkCommitted(ctx context.Context, id primitive.ObjectID) (*domain.Record, error)
	DeleteDraft(ctx context.Context, id primitive.ObjectID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides ledger operations. All multi-step mutations run inside
// one transaction: either the record write and every model update succeed,
// or none do.
type Service struct {
	models  modelRepo
	records recordRepo
	tx      txManager
	log     *slog.Logger
}

// NewService creates a new movement service.
func NewService(log *slog.Logger, models modelRepo, records recordRepo, tx txManager) *Service {
	return &Service{
		models:  models,
		records: records,
		tx:      tx,
		log:     log.With("service", "movement"),
	}
}

// GetRecord returns a single ledger record.
func (s *Service) GetRecord(ctx context.Context, id primitive.ObjectID) (*domain.Record, error) {
	return s.records.GetByID(ctx, id)
}

// ListRecords returns the ledger, newest first.
func (s *Service) ListRecords(ctx context.Context) ([]*domain.Record, error) {
	return s.records.List(ctx)
}
