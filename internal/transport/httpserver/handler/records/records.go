package records

import (
	"bytes"
	"net/http"
	"strconv"

	recordsdomain "cepip-app-go/internal/domain/records"
	"github.com/go-chi/chi/v5"
)

type recordResponse struct {
	Message string               `json:"message"`
	Data    recordsdomain.Record `json:"data"`
}

type deleteResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

func (h *Handlers) ListRecords(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "entity")
	entity, err := recordsdomain.ParseEntity(name)
	if err != nil {
		h.writeServiceError(w, "records.list", err, "entity", name)
		return
	}

	query := r.URL.Query()
	req, err := pageRequest(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	page, err := h.Records.List(r.Context(), entity, filterParams(query), req)
	if err != nil {
		h.writeServiceError(w, "records.list", err, "entity", name)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *Handlers) ExportRecords(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "entity")
	entity, err := recordsdomain.ParseEntity(name)
	if err != nil {
		h.writeServiceError(w, "records.export", err, "entity", name)
		return
	}

	var buf bytes.Buffer
	if err := h.Records.Export(r.Context(), entity, filterParams(r.URL.Query()), &buf); err != nil {
		h.writeServiceError(w, "records.export", err, "entity", name)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+entity.String()+`.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handlers) GetRecord(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "entity")
	entity, err := recordsdomain.ParseEntity(name)
	if err != nil {
		h.writeServiceError(w, "records.get", err, "entity", name)
		return
	}
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	record, err := h.Records.Get(r.Context(), entity, id)
	if err != nil {
		h.writeServiceError(w, "records.get", err, "entity", name, "id", id)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *Handlers) CreateRecord(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "entity")
	entity, err := recordsdomain.ParseEntity(name)
	if err != nil {
		h.writeServiceError(w, "records.create", err, "entity", name)
		return
	}

	values, err := decodeValues(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	input := recordsdomain.CreateInput{Entity: entity, Values: values}
	if raw, ok := values["parcela_ids"]; ok {
		delete(values, "parcela_ids")
		ids, err := recordsdomain.ParseIDList(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		input.ParcelIDs = ids
	}

	record, err := h.Records.Create(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, "records.create", err, "entity", name)
		return
	}

	h.log.Info("records.create: created", "entity", name)
	writeJSON(w, http.StatusCreated, recordResponse{Message: "Record created successfully", Data: record})
}

func (h *Handlers) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "entity")
	entity, err := recordsdomain.ParseEntity(name)
	if err != nil {
		h.writeServiceError(w, "records.update", err, "entity", name)
		return
	}
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	values, err := decodeValues(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	record, err := h.Records.Update(r.Context(), recordsdomain.UpdateInput{Entity: entity, ID: id, Values: values})
	if err != nil {
		h.writeServiceError(w, "records.update", err, "entity", name, "id", id)
		return
	}

	writeJSON(w, http.StatusOK, recordResponse{Message: "Record updated successfully", Data: record})
}

func (h *Handlers) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "entity")
	entity, err := recordsdomain.ParseEntity(name)
	if err != nil {
		h.writeServiceError(w, "records.delete", err, "entity", name)
		return
	}
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.Records.Delete(r.Context(), entity, id); err != nil {
		h.writeServiceError(w, "records.delete", err, "entity", name, "id", id)
		return
	}

	h.log.Info("records.delete: deleted", "entity", name, "id", id)
	writeJSON(w, http.StatusOK, deleteResponse{Message: "Record deleted successfully", ID: id})
}
