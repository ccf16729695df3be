package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cargoledger/internal/domain"
)

// CreateCargoInput carries the fields for a new cargo. Reference ids are
// optional; a dangling id is rejected by the database and surfaces as
// ErrNotFound.
type CreateCargoInput struct {
	Name        string
	CategoryID  *primitive.ObjectID
	UnitID      *primitive.ObjectID
	BrandID     *primitive.ObjectID
	Price       *decimal.Decimal
	Description *string
}

func (in CreateCargoInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if in.Price != nil && in.Price.IsNegative() {
		errs = append(errs, domain.FieldError{Field: "price", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CreateCargo adds a new cargo to the catalog. It starts with no models.
func (s *Service) CreateCargo(ctx context.Context, input CreateCargoInput) (*domain.Cargo, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	c, err := s.cargo.Create(ctx, &domain.Cargo{
		Name:        strings.TrimSpace(input.Name),
		CategoryID:  input.CategoryID,
		UnitID:      input.UnitID,
		BrandID:     input.BrandID,
		Price:       input.Price,
		Description: input.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("create cargo: %w", err)
	}

	s.log.InfoContext(ctx, "cargo created", slog.String("cargo_id", c.ID.Hex()))
	return c, nil
}

// GetCargo returns a cargo with its models loaded.
func (s *Service) GetCargo(ctx context.Context, id primitive.ObjectID) (*domain.Cargo, error) {
	c, err := s.cargo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	models, err := s.models.ListByCargoID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load cargo models: %w", err)
	}
	c.Models = models
	return c, nil
}

// ListCargo returns catalog entries matching the filter, without models.
func (s *Service) ListCargo(ctx context.Context, filter domain.CargoFilter) ([]*domain.Cargo, error) {
	return s.cargo.List(ctx, filter)
}

// UpdateCargoInput carries partial cargo updates. Nil pointers leave
// fields untouched; Clear flags null them out.
type UpdateCargoInput struct {
	Name          *string
	CategoryID    *primitive.ObjectID
	ClearCategory bool
	UnitID        *primitive.ObjectID
	ClearUnit     bool
	BrandID       *primitive.ObjectID
	ClearBrand    bool
	Price         *decimal.Decimal
	ClearPrice    bool
	Description   *string
}

func (in UpdateCargoInput) Validate() error {
	var errs []domain.FieldError
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "must not be empty"})
	}
	if in.Price != nil && in.Price.IsNegative() {
		errs = append(errs, domain.FieldError{Field: "price", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateCargo applies a partial update and returns the updated cargo.
func (s *Service) UpdateCargo(ctx context.Context, id primitive.ObjectID, input UpdateCargoInput) (*domain.Cargo, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		input.Name = &trimmed
	}

	c, err := s.cargo.Update(ctx, id, domain.CargoUpdateParams{
		Name:          input.Name,
		CategoryID:    input.CategoryID,
		ClearCategory: input.ClearCategory,
		UnitID:        input.UnitID,
		ClearUnit:     input.ClearUnit,
		BrandID:       input.BrandID,
		ClearBrand:    input.ClearBrand,
		Price:         input.Price,
		ClearPrice:    input.ClearPrice,
		Description:   input.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("update cargo: %w", err)
	}

	s.log.InfoContext(ctx, "cargo updated", slog.String("cargo_id", id.Hex()))
	return c, nil
}

// DeleteCargo removes a cargo and all of its models. Ledger records that
// reference it keep their denormalized snapshot and stay readable.
func (s *Service) DeleteCargo(ctx context.Context, id primitive.ObjectID) error {
	if err := s.cargo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "cargo deleted", slog.String("cargo_id", id.Hex()))
	return nil
}
