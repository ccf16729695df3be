package movement

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cargoledger/internal/domain"
)

// Commit flushes a draft into the ledger.
//
// With persist == false the draft is saved as a pending record
// (committed=false) and no stock changes. With persist == true the record
// is created committed and every referenced model's quantity is mutated in
// the same transaction; a missing model or insufficient stock rolls the
// whole transaction back, leaving neither a record nor any quantity change.
func (s *Service) Commit(ctx context.Context, recordType domain.RecordType, draft *Draft, persist bool) (*domain.Record, error) {
	if !recordType.IsValid() {
		return nil, domain.NewValidationError("type", fmt.Sprintf("unknown record type %q", recordType))
	}
	if draft == nil || draft.IsEmpty() {
		return nil, domain.NewValidationError("draft", "no lines to record")
	}

	detail := draft.Flatten()

	if !persist {
		rec, err := s.records.Create(ctx, &domain.Record{
			Type:      recordType,
			Committed: false,
			Detail:    detail,
		})
		if err != nil {
			return nil, fmt.Errorf("save draft record: %w", err)
		}

		s.log.InfoContext(ctx, "draft record saved",
			slog.String("record_id", rec.ID.Hex()),
			slog.String("type", recordType.String()),
			slog.Int("cargo_count", len(detail)),
		)
		return rec, nil
	}

	var rec *domain.Record
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		created, err := s.records.Create(txCtx, &domain.Record{
			Type:      recordType,
			Committed: true,
			Detail:    detail,
		})
		if err != nil {
			return fmt.Errorf("create record: %w", err)
		}

		if err := s.applyDetail(txCtx, recordType, detail); err != nil {
			return err
		}

		rec = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "record committed",
		slog.String("record_id", rec.ID.Hex()),
		slog.String("type", recordType.String()),
		slog.Int("cargo_count", len(detail)),
	)
	return rec, nil
}

// applyDetail runs the per-line quantity mutation protocol. Lines are
// processed strictly in snapshot order so failures reference a
// deterministic state. Must run inside a transaction.
func (s *Service) applyDetail(ctx context.Context, recordType domain.RecordType, detail []domain.RecordDetail) error {
	for _, d := range detail {
		for _, line := range d.Models {
			modelID, err := primitive.ObjectIDFromHex(line.ModelID)
			if err != nil {
				return domain.NewValidationError("model_id", fmt.Sprintf("%q is not an object id", line.ModelID))
			}

			m, err := s.models.GetForUpdate(ctx, modelID)
			if err != nil {
				return fmt.Errorf("resolve model %s: %w", line.ModelID, err)
			}

			delta := line.QuantityDelta(recordType)
			if delta < 0 && m.Quantity < -delta {
				return &domain.InsufficientStockError{
					ModelName: m.Name,
					Available: m.Quantity,
					Requested: -delta,
				}
			}

			if _, err := s.models.AdjustQuantity(ctx, modelID, delta); err != nil {
				return fmt.Errorf("adjust model %s quantity: %w", line.ModelID, err)
			}
		}
	}
	return nil
}
