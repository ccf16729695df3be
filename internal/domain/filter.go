package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// CargoFilter narrows a cargo listing. Zero-valued fields are ignored.
type CargoFilter struct {
	NameContains string
	CategoryID   *primitive.ObjectID
	UnitID       *primitive.ObjectID
	BrandID      *primitive.ObjectID
}

// IsZero reports whether no filter criteria are set.
func (f CargoFilter) IsZero() bool {
	return f.NameContains == "" && f.CategoryID == nil && f.UnitID == nil && f.BrandID == nil
}
