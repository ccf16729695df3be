package movement

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cargoledger/internal/domain"
)

// Finalize promotes a previously saved draft record to committed, applying
// the same per-line quantity mutation protocol as a direct commit. The
// quantities are read from the record's persisted detail, not from any
// live draft. A record that is already committed is rejected with
// ErrInvalidTransition and nothing is mutated, so the deltas are applied
// exactly once over the record's lifetime.
func (s *Service) Finalize(ctx context.Context, recordID primitive.ObjectID) (*domain.Record, error) {
	var rec *domain.Record
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		draft, err := s.records.GetForUpdate(txCtx, recordID)
		if err != nil {
			return fmt.Errorf("load record: %w", err)
		}
		if draft.Committed {
			return fmt.Errorf("record %s already committed: %w", recordID.Hex(), domain.ErrInvalidTransition)
		}

		if err := s.applyDetail(txCtx, draft.Type, draft.Detail); err != nil {
			return err
		}

		rec, err = s.records.MarkCommitted(txCtx, recordID)
		if err != nil {
			return fmt.Errorf("mark committed: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "draft record finalized",
		slog.String("record_id", rec.ID.Hex()),
		slog.String("type", rec.Type.String()),
	)
	return rec, nil
}

// DeleteRecord removes a draft record. Drafts never affected stock, so no
// quantity mutation happens. Committed records are append-only history and
// cannot be deleted.
func (s *Service) DeleteRecord(ctx context.Context, recordID primitive.ObjectID) error {
	if err := s.records.DeleteDraft(ctx, recordID); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "draft record deleted",
		slog.String("record_id", recordID.Hex()),
	)
	return nil
}
