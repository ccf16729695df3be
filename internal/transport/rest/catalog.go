package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cargoledger/internal/domain"
	"cargoledger/internal/service/catalog"
	"cargoledger/internal/speccodec"
)

// catalogService is the slice of the catalog service the handlers need.
type catalogService interface {
	CreateCargo(ctx context.Context, input catalog.CreateCargoInput) (*domain.Cargo, error)
	GetCargo(ctx context.Context, id primitive.ObjectID) (*domain.Cargo, error)
	ListCargo(ctx context.Context, filter domain.CargoFilter) ([]*domain.Cargo, error)
	UpdateCargo(ctx context.Context, id primitive.ObjectID, input catalog.UpdateCargoInput) (*domain.Cargo, error)
	DeleteCargo(ctx context.Context, id primitive.ObjectID) error

	CreateModel(ctx context.Context, input catalog.CreateModelInput) (*domain.Model, error)
	GetModel(ctx context.Context, cargoID, modelID primitive.ObjectID) (*domain.Model, error)
	UpdateModel(ctx context.Context, cargoID, modelID primitive.ObjectID, input catalog.UpdateModelInput) (*domain.Model, error)
	DeleteModel(ctx context.Context, modelID primitive.ObjectID) error

	CreateRef(ctx context.Context, kind domain.RefKind, input catalog.CreateRefInput) (*domain.RefEntity, error)
	GetRef(ctx context.Context, kind domain.RefKind, id primitive.ObjectID) (*domain.RefEntity, error)
	ListRefs(ctx context.Context, kind domain.RefKind) ([]*domain.RefEntity, error)
	UpdateRef(ctx context.Context, kind domain.RefKind, id primitive.ObjectID, input catalog.UpdateRefInput) (*domain.RefEntity, error)
	DeleteRef(ctx context.Context, kind domain.RefKind, id primitive.ObjectID) error
}

// CatalogHandler serves cargo, model and reference-data endpoints.
type CatalogHandler struct {
	svc catalogService
	log *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc catalogService, log *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: log}
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// specPair mirrors speccodec.Pair on the wire. Specs travel as ordered
// key/value lists, not JSON objects, so the client controls duplicates.
type specPair struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

func toSpecPairs(in []specPair) []speccodec.Pair {
	if len(in) == 0 {
		return nil
	}
	out := make([]speccodec.Pair, 0, len(in))
	for _, p := range in {
		out = append(out, speccodec.Pair{Key: p.Key, Value: p.Value})
	}
	return out
}

type cargoResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	CategoryID  *string         `json:"category_id,omitempty"`
	UnitID      *string         `json:"unit_id,omitempty"`
	BrandID     *string         `json:"brand_id,omitempty"`
	Price       *string         `json:"price,omitempty"`
	Description *string         `json:"description,omitempty"`
	Models      []modelResponse `json:"models,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type modelResponse struct {
	ID          string    `json:"id"`
	CargoID     string    `json:"cargo_id"`
	Name        string    `json:"name"`
	SpecValue   string    `json:"spec_value,omitempty"`
	Description *string   `json:"description,omitempty"`
	Quantity    int64     `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type refResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCargoResponse(c *domain.Cargo) cargoResponse {
	resp := cargoResponse{
		ID:          c.ID.Hex(),
		Name:        c.Name,
		CategoryID:  hexPtr(c.CategoryID),
		UnitID:      hexPtr(c.UnitID),
		BrandID:     hexPtr(c.BrandID),
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.Price != nil {
		s := c.Price.String()
		resp.Price = &s
	}
	for _, m := range c.Models {
		resp.Models = append(resp.Models, toModelResponse(&m))
	}
	return resp
}

func toModelResponse(m *domain.Model) modelResponse {
	return modelResponse{
		ID:          m.ID.Hex(),
		CargoID:     m.CargoID.Hex(),
		Name:        m.Name,
		SpecValue:   m.SpecValue,
		Description: m.Description,
		Quantity:    m.Quantity,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toRefResponse(e *domain.RefEntity) refResponse {
	return refResponse{
		ID:          e.ID.Hex(),
		Name:        e.Name,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func hexPtr(id *primitive.ObjectID) *string {
	if id == nil {
		return nil
	}
	h := id.Hex()
	return &h
}

// parseOptionalID converts an optional hex string into an ObjectID pointer.
func parseOptionalID(field string, raw *string) (*primitive.ObjectID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(*raw)
	if err != nil {
		return nil, domain.NewValidationError(field, "malformed id")
	}
	return &id, nil
}

func parseOptionalPrice(raw *string) (*decimal.Decimal, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, domain.NewValidationError("price", "malformed decimal")
	}
	return &d, nil
}

// ---------------------------------------------------------------------------
// Cargo endpoints
// ---------------------------------------------------------------------------

type createCargoRequest struct {
	Name        string  `json:"name"`
	CategoryID  *string `json:"category_id"`
	UnitID      *string `json:"unit_id"`
	BrandID     *string `json:"brand_id"`
	Price       *string `json:"price"`
	Description *string `json:"description"`
}

func (h *CatalogHandler) CreateCargo(w http.ResponseWriter, r *http.Request) {
	var req createCargoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	input := catalog.CreateCargoInput{Name: req.Name, Description: req.Description}
	var err error
	if input.CategoryID, err = parseOptionalID("category_id", req.CategoryID); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if input.UnitID, err = parseOptionalID("unit_id", req.UnitID); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if input.BrandID, err = parseOptionalID("brand_id", req.BrandID); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if input.Price, err = parseOptionalPrice(req.Price); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	c, err := h.svc.CreateCargo(r.Context(), input)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCargoResponse(c))
}

func (h *CatalogHandler) GetCargo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	c, err := h.svc.GetCargo(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toCargoResponse(c))
}

func (h *CatalogHandler) ListCargo(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.CargoFilter{NameContains: q.Get("name")}

	for field, dst := range map[string]**primitive.ObjectID{
		"category_id": &filter.CategoryID,
		"unit_id":     &filter.UnitID,
		"brand_id":    &filter.BrandID,
	} {
		if raw := q.Get(field); raw != "" {
			id, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				writeError(w, r, h.log, domain.NewValidationError(field, "malformed id"))
				return
			}
			*dst = &id
		}
	}

	list, err := h.svc.ListCargo(r.Context(), filter)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	out := make([]cargoResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCargoResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

type updateCargoRequest struct {
	Name          *string `json:"name"`
	CategoryID    *string `json:"category_id"`
	ClearCategory bool    `json:"clear_category"`
	UnitID        *string `json:"unit_id"`
	ClearUnit     bool    `json:"clear_unit"`
	BrandID       *string `json:"brand_id"`
	ClearBrand    bool    `json:"clear_brand"`
	Price         *string `json:"price"`
	ClearPrice    bool    `json:"clear_price"`
	Description   *string `json:"description"`
}

func (h *CatalogHandler) UpdateCargo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var req updateCargoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	input := catalog.UpdateCargoInput{
		Name:          req.Name,
		ClearCategory: req.ClearCategory,
		ClearUnit:     req.ClearUnit,
		ClearBrand:    req.ClearBrand,
		ClearPrice:    req.ClearPrice,
		Description:   req.Description,
	}
	if input.CategoryID, err = parseOptionalID("category_id", req.CategoryID); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if input.UnitID, err = parseOptionalID("unit_id", req.UnitID); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if input.BrandID, err = parseOptionalID("brand_id", req.BrandID); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if input.Price, err = parseOptionalPrice(req.Price); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	c, err := h.svc.UpdateCargo(r.Context(), id, input)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toCargoResponse(c))
}

func (h *CatalogHandler) DeleteCargo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.svc.DeleteCargo(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Model endpoints
// ---------------------------------------------------------------------------

type createModelRequest struct {
	Name        string     `json:"name"`
	Spec        []specPair `json:"spec"`
	Description *string    `json:"description"`
	Quantity    int64      `json:"quantity"`
}

func (h *CatalogHandler) CreateModel(w http.ResponseWriter, r *http.Request) {
	cargoID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var req createModelRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	m, err := h.svc.CreateModel(r.Context(), catalog.CreateModelInput{
		CargoID:     cargoID,
		Name:        req.Name,
		Spec:        toSpecPairs(req.Spec),
		Description: req.Description,
		Quantity:    req.Quantity,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toModelResponse(m))
}

func (h *CatalogHandler) GetModel(w http.ResponseWriter, r *http.Request) {
	cargoID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	modelID, err := pathID(r, "modelID")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	m, err := h.svc.GetModel(r.Context(), cargoID, modelID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toModelResponse(m))
}

type updateModelRequest struct {
	Name        *string    `json:"name"`
	Spec        []specPair `json:"spec"`
	ReplaceSpec bool       `json:"replace_spec"`
	Description *string    `json:"description"`
}

func (h *CatalogHandler) UpdateModel(w http.ResponseWriter, r *http.Request) {
	cargoID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	modelID, err := pathID(r, "modelID")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var req updateModelRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	m, err := h.svc.UpdateModel(r.Context(), cargoID, modelID, catalog.UpdateModelInput{
		Name:        req.Name,
		Spec:        toSpecPairs(req.Spec),
		ReplaceSpec: req.ReplaceSpec,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toModelResponse(m))
}

func (h *CatalogHandler) DeleteModel(w http.ResponseWriter, r *http.Request) {
	modelID, err := pathID(r, "modelID")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.svc.DeleteModel(r.Context(), modelID); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Reference endpoints (categories, units, brands share one handler set)
// ---------------------------------------------------------------------------

type refRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type refUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CreateRef handles POST for a given reference kind.
func (h *CatalogHandler) CreateRef(kind domain.RefKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, h.log, err)
			return
		}

		entity, err := h.svc.CreateRef(r.Context(), kind, catalog.CreateRefInput{
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}
		writeJSON(w, http.StatusCreated, toRefResponse(entity))
	}
}

// GetRef handles GET of one entity for a given reference kind.
func (h *CatalogHandler) GetRef(kind domain.RefKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}

		entity, err := h.svc.GetRef(r.Context(), kind, id)
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, toRefResponse(entity))
	}
}

// ListRefs handles GET of the full list for a given reference kind.
func (h *CatalogHandler) ListRefs(kind domain.RefKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := h.svc.ListRefs(r.Context(), kind)
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}

		out := make([]refResponse, 0, len(list))
		for _, e := range list {
			out = append(out, toRefResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// UpdateRef handles PATCH for a given reference kind.
func (h *CatalogHandler) UpdateRef(kind domain.RefKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}

		var req refUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, h.log, err)
			return
		}

		entity, err := h.svc.UpdateRef(r.Context(), kind, id, catalog.UpdateRefInput{
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, toRefResponse(entity))
	}
}

// DeleteRef handles DELETE for a given reference kind.
func (h *CatalogHandler) DeleteRef(kind domain.RefKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}

		if err := h.svc.DeleteRef(r.Context(), kind, id); err != nil {
			writeError(w, r, h.log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
