package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cargoledger/internal/domain"
	"cargoledger/internal/speccodec"
)

// CreateModelInput carries the fields for a new specification model.
// Spec is the raw key/value list as entered; the service canonicalizes it
// before storing. An empty Spec means the model has no specification.
type CreateModelInput struct {
	CargoID     primitive.ObjectID
	Name        string
	Spec        []speccodec.Pair
	Description *string
	Quantity    int64
}

func (in CreateModelInput) Validate() error {
	var errs []domain.FieldError
	if in.CargoID.IsZero() {
		errs = append(errs, domain.FieldError{Field: "cargo_id", Message: "required"})
	}
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if in.Quantity < 0 {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CreateModel adds a specification model to a cargo. The spec list is
// encoded into its canonical form so that two models differing only in
// key order or array order collide, and a duplicate canonical spec within
// the same cargo is rejected with ErrAlreadyExists.
func (s *Service) CreateModel(ctx context.Context, input CreateModelInput) (*domain.Model, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	specValue, err := s.encodeSpec(input.Spec)
	if err != nil {
		return nil, err
	}

	if specValue != "" {
		exists, err := s.models.SpecValueExists(ctx, input.CargoID, specValue, primitive.NilObjectID)
		if err != nil {
			return nil, fmt.Errorf("check spec uniqueness: %w", err)
		}
		if exists {
			return nil, fmt.Errorf("model with equal specification: %w", domain.ErrAlreadyExists)
		}
	}

	m, err := s.models.Create(ctx, &domain.Model{
		CargoID:     input.CargoID,
		Name:        strings.TrimSpace(input.Name),
		SpecValue:   specValue,
		Description: input.Description,
		Quantity:    input.Quantity,
	})
	if err != nil {
		return nil, fmt.Errorf("create model: %w", err)
	}

	s.log.InfoContext(ctx, "model created",
		slog.String("cargo_id", input.CargoID.Hex()),
		slog.String("model_id", m.ID.Hex()),
	)
	return m, nil
}

// GetModel returns a model scoped to its owning cargo.
func (s *Service) GetModel(ctx context.Context, cargoID, modelID primitive.ObjectID) (*domain.Model, error) {
	return s.models.GetByID(ctx, cargoID, modelID)
}

// UpdateModelInput carries partial model updates. Spec replaces the whole
// specification when non-nil. Quantity cannot be updated here; stock
// levels change only through ledger records.
type UpdateModelInput struct {
	Name        *string
	Spec        []speccodec.Pair
	ReplaceSpec bool
	Description *string
}

func (in UpdateModelInput) Validate() error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return domain.NewValidationError("name", "must not be empty")
	}
	return nil
}

// UpdateModel applies a partial update and returns the updated model.
// When ReplaceSpec is set the new spec is canonicalized and checked for
// duplicates against the cargo's other models.
func (s *Service) UpdateModel(ctx context.Context, cargoID, modelID primitive.ObjectID, input UpdateModelInput) (*domain.Model, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := domain.ModelUpdateParams{
		Name:        input.Name,
		Description: input.Description,
	}

	if input.ReplaceSpec {
		specValue, err := s.encodeSpec(input.Spec)
		if err != nil {
			return nil, err
		}
		if specValue != "" {
			exists, err := s.models.SpecValueExists(ctx, cargoID, specValue, modelID)
			if err != nil {
				return nil, fmt.Errorf("check spec uniqueness: %w", err)
			}
			if exists {
				return nil, fmt.Errorf("model with equal specification: %w", domain.ErrAlreadyExists)
			}
		}
		params.SpecValue = &specValue
	}

	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		params.Name = &trimmed
	}

	m, err := s.models.Update(ctx, modelID, params)
	if err != nil {
		return nil, fmt.Errorf("update model: %w", err)
	}

	s.log.InfoContext(ctx, "model updated", slog.String("model_id", modelID.Hex()))
	return m, nil
}

// DeleteModel removes a model along with its stock level.
func (s *Service) DeleteModel(ctx context.Context, modelID primitive.ObjectID) error {
	if err := s.models.Delete(ctx, modelID); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "model deleted", slog.String("model_id", modelID.Hex()))
	return nil
}

// encodeSpec canonicalizes a spec list, translating codec failures into
// field-level validation errors. An empty list encodes to the empty
// string, not to "{}".
func (s *Service) encodeSpec(spec []speccodec.Pair) (string, error) {
	if len(spec) == 0 {
		return "", nil
	}

	specValue, err := s.codec.Encode(spec)
	if err != nil {
		if errors.Is(err, speccodec.ErrNotSerializable) ||
			errors.Is(err, speccodec.ErrRecursionLimit) ||
			errors.Is(err, speccodec.ErrInvalidValue) {
			return "", domain.NewValidationError("spec", err.Error())
		}
		return "", fmt.Errorf("encode spec: %w", err)
	}
	return specValue, nil
}
