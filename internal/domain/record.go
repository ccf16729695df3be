package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record is one entry of the stock-movement ledger. Detail is an
// immutable snapshot of the moved lines, taken when the record is
// created; it denormalizes cargo and model names so history reads stay
// meaningful after catalog edits or deletions. Committed records are
// append-only: the only state change a record ever sees is a draft being
// finalized.
type Record struct {
	ID        primitive.ObjectID
	Type      RecordType
	Committed bool
	Detail    []RecordDetail
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordDetail is one cargo bucket of a record's snapshot.
type RecordDetail struct {
	CargoID   string              `json:"cargo_id"`
	CargoName string              `json:"cargo_name"`
	Unit      string              `json:"unit"`
	Models    []RecordDetailModel `json:"models"`
}

// RecordDetailModel is one model line inside a cargo bucket. For inbound
// and outbound records Quantity is non-negative; transfer records carry
// signed quantities, negative for the outgoing leg.
type RecordDetailModel struct {
	ModelID   string `json:"model_id"`
	ModelName string `json:"model_name"`
	Quantity  int64  `json:"quantity"`
}

// QuantityDelta converts the stored line quantity into the stock delta to
// apply for the given record type: outbound negates, inbound and transfer
// apply the quantity as stored.
func (m RecordDetailModel) QuantityDelta(t RecordType) int64 {
	if t == RecordTypeOutbound {
		return -m.Quantity
	}
	return m.Quantity
}
