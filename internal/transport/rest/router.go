package rest

import (
	"net/http"

	"cargoledger/internal/domain"
)

// NewRouter builds the HTTP route table.
func NewRouter(health *HealthHandler, cat *CatalogHandler, rec *RecordHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	mux.HandleFunc("GET /api/v1/cargo", cat.ListCargo)
	mux.HandleFunc("POST /api/v1/cargo", cat.CreateCargo)
	mux.HandleFunc("GET /api/v1/cargo/{id}", cat.GetCargo)
	mux.HandleFunc("PATCH /api/v1/cargo/{id}", cat.UpdateCargo)
	mux.HandleFunc("DELETE /api/v1/cargo/{id}", cat.DeleteCargo)
	mux.HandleFunc("POST /api/v1/cargo/{id}/models", cat.CreateModel)
	mux.HandleFunc("GET /api/v1/cargo/{id}/models/{modelID}", cat.GetModel)
	mux.HandleFunc("PATCH /api/v1/cargo/{id}/models/{modelID}", cat.UpdateModel)
	mux.HandleFunc("DELETE /api/v1/cargo/{id}/models/{modelID}", cat.DeleteModel)

	refRoutes := map[string]domain.RefKind{
		"categories": domain.RefKindCategory,
		"units":      domain.RefKindUnit,
		"brands":     domain.RefKindBrand,
	}
	for path, kind := range refRoutes {
		mux.HandleFunc("GET /api/v1/"+path, cat.ListRefs(kind))
		mux.HandleFunc("POST /api/v1/"+path, cat.CreateRef(kind))
		mux.HandleFunc("GET /api/v1/"+path+"/{id}", cat.GetRef(kind))
		mux.HandleFunc("PATCH /api/v1/"+path+"/{id}", cat.UpdateRef(kind))
		mux.HandleFunc("DELETE /api/v1/"+path+"/{id}", cat.DeleteRef(kind))
	}

	mux.HandleFunc("GET /api/v1/records", rec.List)
	mux.HandleFunc("POST /api/v1/records", rec.Create)
	mux.HandleFunc("GET /api/v1/records/{id}", rec.Get)
	mux.HandleFunc("POST /api/v1/records/{id}/commit", rec.Commit)
	mux.HandleFunc("DELETE /api/v1/records/{id}", rec.Delete)

	return mux
}
