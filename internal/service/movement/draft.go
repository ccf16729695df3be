package movement

import (
	"fmt"
	"regexp"
	"strconv"

	"cargoledger/internal/domain"
)

// quantityPattern accepts an optionally signed decimal integer with no
// leading zeros (a bare "0" is allowed). Quantities arrive as user-entered
// strings and are parsed before any arithmetic happens.
var quantityPattern = regexp.MustCompile(`^[+-]?(0|[1-9][0-9]*)$`)

// Draft accumulates the working set of an in-progress movement session:
// one bucket per cargo, each holding the model lines to move. It lives
// purely in memory, has no persistence side effects, and is owned by a
// single session; there is no concurrent-access contract.
type Draft struct {
	order   []string // cargo ids in insertion order
	entries map[string]*draftEntry
}

type draftEntry struct {
	cargoName string
	unit      string
	lines     []*draftLine // insertion order
}

type draftLine struct {
	modelID   string
	modelName string
	quantity  int64
}

// NewDraft creates an empty draft.
func NewDraft() *Draft {
	return &Draft{entries: make(map[string]*draftEntry)}
}

// AddLine appends a model line to the draft. quantity must match the
// integer pattern or a ValidationError is returned. Adding the same
// cargo+model twice merges into one line whose quantity is the numeric sum.
func (d *Draft) AddLine(cargoID, cargoName, unit, modelID, modelName, quantity string) error {
	qty, err := parseQuantity(quantity)
	if err != nil {
		return err
	}
	if cargoID == "" {
		return domain.NewValidationError("cargo_id", "required")
	}
	if modelID == "" {
		return domain.NewValidationError("model_id", "required")
	}

	entry, ok := d.entries[cargoID]
	if !ok {
		entry = &draftEntry{cargoName: cargoName, unit: unit}
		d.entries[cargoID] = entry
		d.order = append(d.order, cargoID)
	}

	for _, line := range entry.lines {
		if line.modelID == modelID {
			line.quantity += qty
			return nil
		}
	}

	entry.lines = append(entry.lines, &draftLine{
		modelID:   modelID,
		modelName: modelName,
		quantity:  qty,
	})
	return nil
}

// UpdateLineQuantity finds the line with the given model id across all
// cargo buckets and overwrites its quantity. Returns ErrNotFound when no
// such line exists.
func (d *Draft) UpdateLineQuantity(modelID, quantity string) error {
	qty, err := parseQuantity(quantity)
	if err != nil {
		return err
	}

	for _, cargoID := range d.order {
		for _, line := range d.entries[cargoID].lines {
			if line.modelID == modelID {
				line.quantity = qty
				return nil
			}
		}
	}
	return fmt.Errorf("draft line %s: %w", modelID, domain.ErrNotFound)
}

// RemoveLine deletes the line with the given model id. When it was the
// cargo's last line, the cargo bucket itself is removed.
func (d *Draft) RemoveLine(modelID string) error {
	for i, cargoID := range d.order {
		entry := d.entries[cargoID]
		for j, line := range entry.lines {
			if line.modelID != modelID {
				continue
			}
			entry.lines = append(entry.lines[:j], entry.lines[j+1:]...)
			if len(entry.lines) == 0 {
				delete(d.entries, cargoID)
				d.order = append(d.order[:i], d.order[i+1:]...)
			}
			return nil
		}
	}
	return fmt.Errorf("draft line %s: %w", modelID, domain.ErrNotFound)
}

// IsEmpty reports whether the draft holds no cargo buckets. Submit actions
// are gated on this.
func (d *Draft) IsEmpty() bool {
	return len(d.order) == 0
}

// Flatten produces the record detail snapshot: one RecordDetail per cargo
// in insertion order, model lines in their insertion order. The result is
// what commits persist and what quantity mutation iterates over, so the
// ordering here is the deterministic processing order of the whole ledger.
func (d *Draft) Flatten() []domain.RecordDetail {
	detail := make([]domain.RecordDetail, 0, len(d.order))
	for _, cargoID := range d.order {
		entry := d.entries[cargoID]
		models := make([]domain.RecordDetailModel, 0, len(entry.lines))
		for _, line := range entry.lines {
			models = append(models, domain.RecordDetailModel{
				ModelID:   line.modelID,
				ModelName: line.modelName,
				Quantity:  line.quantity,
			})
		}
		detail = append(detail, domain.RecordDetail{
			CargoID:   cargoID,
			CargoName: entry.cargoName,
			Unit:      entry.unit,
			Models:    models,
		})
	}
	return detail
}

func parseQuantity(s string) (int64, error) {
	if !quantityPattern.MatchString(s) {
		return 0, domain.NewValidationError("quantity", fmt.Sprintf("%q is not an integer", s))
	}
	qty, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError("quantity", fmt.Sprintf("%q is out of range", s))
	}
	return qty, nil
}
