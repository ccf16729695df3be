package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cargoledger/internal/domain"
)

// CreateRefInput carries the fields for a new reference entity.
type CreateRefInput struct {
	Name        string
	Description *string
}

func (in CreateRefInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.NewValidationError("name", "required")
	}
	return nil
}

// CreateRef adds a category, unit or brand.
func (s *Service) CreateRef(ctx context.Context, kind domain.RefKind, input CreateRefInput) (*domain.RefEntity, error) {
	repo, err := s.refRepo(kind)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	entity, err := repo.Create(ctx, &domain.RefEntity{
		Kind:        kind,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", kind, err)
	}

	s.log.InfoContext(ctx, "reference created",
		slog.String("kind", kind.String()),
		slog.String("id", entity.ID.Hex()),
	)
	return entity, nil
}

// GetRef returns one reference entity by id.
func (s *Service) GetRef(ctx context.Context, kind domain.RefKind, id primitive.ObjectID) (*domain.RefEntity, error) {
	repo, err := s.refRepo(kind)
	if err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, id)
}

// ListRefs returns all reference entities of a kind, ordered by name.
func (s *Service) ListRefs(ctx context.Context, kind domain.RefKind) ([]*domain.RefEntity, error) {
	repo, err := s.refRepo(kind)
	if err != nil {
		return nil, err
	}
	return repo.List(ctx)
}

// UpdateRefInput carries partial reference updates.
type UpdateRefInput struct {
	Name        *string
	Description *string
}

func (in UpdateRefInput) Validate() error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return domain.NewValidationError("name", "must not be empty")
	}
	return nil
}

// UpdateRef applies a partial update to a reference entity.
func (s *Service) UpdateRef(ctx context.Context, kind domain.RefKind, id primitive.ObjectID, input UpdateRefInput) (*domain.RefEntity, error) {
	repo, err := s.refRepo(kind)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		input.Name = &trimmed
	}

	entity, err := repo.Update(ctx, id, domain.RefUpdateParams{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", kind, err)
	}

	s.log.InfoContext(ctx, "reference updated",
		slog.String("kind", kind.String()),
		slog.String("id", id.Hex()),
	)
	return entity, nil
}

// DeleteRef removes a reference entity. Cargo pointing at it keep working
// with the link nulled out (ON DELETE SET NULL).
func (s *Service) DeleteRef(ctx context.Context, kind domain.RefKind, id primitive.ObjectID) error {
	repo, err := s.refRepo(kind)
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "reference deleted",
		slog.String("kind", kind.String()),
		slog.String("id", id.Hex()),
	)
	return nil
}

func (s *Service) refRepo(kind domain.RefKind) (RefRepo, error) {
	repo, ok := s.refs[kind]
	if !ok {
		return nil, domain.NewValidationError("kind", fmt.Sprintf("unknown reference kind %q", kind))
	}
	return repo, nil
}
