package records

import (
	"net/http"

	recordsdomain "cepip-app-go/internal/domain/records"
	"github.com/go-chi/chi/v5"
)

type tablesResponse struct {
	Tables []recordsdomain.TableInfo `json:"tables"`
}

func (h *Handlers) Lookup(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "lookup")
	lookup, err := recordsdomain.ParseLookup(name)
	if err != nil {
		h.writeServiceError(w, "records.lookup", err, "lookup", name)
		return
	}

	items, err := h.Records.Lookup(r.Context(), lookup)
	if err != nil {
		h.writeServiceError(w, "records.lookup", err, "lookup", name)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]recordsdomain.LookupItem{lookup.Key(): items})
}

func (h *Handlers) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.Records.Tables(r.Context())
	if err != nil {
		h.writeServiceError(w, "tables.list", err)
		return
	}
	writeJSON(w, http.StatusOK, tablesResponse{Tables: tables})
}

func (h *Handlers) TableSchema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "table")
	entity, err := recordsdomain.ParseEntity(name)
	if err != nil {
		h.writeServiceError(w, "tables.schema", err, "table", name)
		return
	}

	info, err := h.Records.Schema(r.Context(), entity)
	if err != nil {
		h.writeServiceError(w, "tables.schema", err, "table", name)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Records.Stats(r.Context())
	if err != nil {
		h.writeServiceError(w, "stats.get", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.Records.Dashboard(r.Context())
	if err != nil {
		h.writeServiceError(w, "stats.dashboard", err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}
