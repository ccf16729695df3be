package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cargoledger/internal/domain"
	"cargoledger/internal/service/movement"
)

// movementService is the slice of the movement service the handlers need.
type movementService interface {
	Commit(ctx context.Context, recordType domain.RecordType, draft *movement.Draft, persist bool) (*domain.Record, error)
	Finalize(ctx context.Context, recordID primitive.ObjectID) (*domain.Record, error)
	DeleteRecord(ctx context.Context, recordID primitive.ObjectID) error
	GetRecord(ctx context.Context, id primitive.ObjectID) (*domain.Record, error)
	ListRecords(ctx context.Context) ([]*domain.Record, error)
}

// RecordHandler serves the movement-ledger endpoints.
type RecordHandler struct {
	svc      movementService
	log      *slog.Logger
	maxLines int
}

// NewRecordHandler creates a RecordHandler. maxLines caps how many model
// lines one record may carry; zero disables the cap.
func NewRecordHandler(svc movementService, log *slog.Logger, maxLines int) *RecordHandler {
	return &RecordHandler{svc: svc, log: log, maxLines: maxLines}
}

type recordLine struct {
	CargoID   string `json:"cargo_id"`
	CargoName string `json:"cargo_name"`
	Unit      string `json:"unit"`
	ModelID   string `json:"model_id"`
	ModelName string `json:"model_name"`
	Quantity  string `json:"quantity"`
}

type createRecordRequest struct {
	Type    string       `json:"type"`
	Persist bool         `json:"persist"`
	Lines   []recordLine `json:"lines"`
}

type recordResponse struct {
	ID        string                `json:"id"`
	Type      string                `json:"type"`
	Committed bool                  `json:"committed"`
	Detail    []domain.RecordDetail `json:"detail"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

func toRecordResponse(rec *domain.Record) recordResponse {
	return recordResponse{
		ID:        rec.ID.Hex(),
		Type:      rec.Type.String(),
		Committed: rec.Committed,
		Detail:    rec.Detail,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

// Create builds a draft from the submitted lines and either commits it
// immediately (persist=true) or saves it as a pending record.
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if h.maxLines > 0 && len(req.Lines) > h.maxLines {
		writeError(w, r, h.log, domain.NewValidationError("lines",
			fmt.Sprintf("at most %d lines per record", h.maxLines)))
		return
	}

	draft := movement.NewDraft()
	for _, line := range req.Lines {
		if err := draft.AddLine(line.CargoID, line.CargoName, line.Unit,
			line.ModelID, line.ModelName, line.Quantity); err != nil {
			writeError(w, r, h.log, err)
			return
		}
	}

	rec, err := h.svc.Commit(r.Context(), domain.RecordType(req.Type), draft, req.Persist)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRecordResponse(rec))
}

// List returns the ledger, newest first.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.ListRecords(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	out := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toRecordResponse(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get returns one record.
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	rec, err := h.svc.GetRecord(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordResponse(rec))
}

// Commit finalizes a draft record, applying its stock deltas.
func (h *RecordHandler) Commit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	rec, err := h.svc.Finalize(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordResponse(rec))
}

// Delete removes a draft record.
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.svc.DeleteRecord(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
