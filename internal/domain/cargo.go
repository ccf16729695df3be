package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cargo is a catalog item. Reference links and price are optional; a
// cargo without a category, unit or brand is perfectly valid.
type Cargo struct {
	ID          primitive.ObjectID
	Name        string
	CategoryID  *primitive.ObjectID
	UnitID      *primitive.ObjectID
	BrandID     *primitive.ObjectID
	Price       *decimal.Decimal
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Models is populated only by operations that load variants
	// alongside the cargo; repositories leave it nil.
	Models []Model
}

// Model is a specification variant of a cargo. Quantity is the current
// stock level and is mutated exclusively by ledger commits. SpecValue is
// the canonical serialized specification; the empty string means the
// model carries no specification.
type Model struct {
	ID          primitive.ObjectID
	CargoID     primitive.ObjectID
	Name        string
	SpecValue   string
	Description *string
	Quantity    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CargoUpdateParams holds partial cargo updates. A nil pointer leaves the
// field untouched; the Clear flags override the matching pointer and
// null the column out.
type CargoUpdateParams struct {
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

// ModelUpdateParams holds partial model updates. Quantity is deliberately
// absent: stock levels change only through ledger records.
type ModelUpdateParams struct {
	Name        *string
	SpecValue   *string
	Description *string
}
