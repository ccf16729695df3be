package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RefKind names one of the simple reference catalogs a Cargo points at.
type RefKind string

const (
	RefKindCategory RefKind = "category"
	RefKindUnit     RefKind = "unit"
	RefKindBrand    RefKind = "brand"
)

func (k RefKind) String() string { return string(k) }

func (k RefKind) IsValid() bool {
	switch k {
	case RefKindCategory, RefKindUnit, RefKindBrand:
		return true
	}
	return false
}

// RefEntity is a named reference entity (category, unit or brand).
// All three share the same shape and lifecycle; deleting one orphans the
// referencing cargo instead of cascading.
type RefEntity struct {
	ID          primitive.ObjectID
	Kind        RefKind
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RefUpdateParams holds the mutable fields of a RefEntity.
type RefUpdateParams struct {
	Name        *string
	Description *string
}
