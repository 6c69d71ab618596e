package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	recordsdomain "cepip-app-go/internal/domain/records"
	commonhandler "cepip-app-go/internal/transport/httpserver/handler/common"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	commonhandler.WriteError(w, status, code, message)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	commonhandler.WriteJSON(w, status, payload)
}

func parseID(value string) (int64, error) {
	return commonhandler.ParseID(value)
}

func parseIntParam(value string, fallback int) (int, error) {
	return commonhandler.ParseIntParam(value, fallback)
}

// decodeValues reads a JSON object body keeping numbers as json.Number.
func decodeValues(r *http.Request) (map[string]interface{}, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var values map[string]interface{}
	if err := dec.Decode(&values); err != nil {
		return nil, err
	}
	if values == nil {
		return nil, fmt.Errorf("body must be a json object")
	}
	return values, nil
}

// filterParams flattens the query string, dropping pagination keys.
func filterParams(query url.Values) map[string]string {
	params := make(map[string]string, len(query))
	for key, values := range query {
		if key == "page" || key == "limit" || len(values) == 0 {
			continue
		}
		params[key] = values[0]
	}
	return params
}

func pageRequest(query url.Values) (recordsdomain.PageRequest, error) {
	page, err := parseIntParam(query.Get("page"), recordsdomain.DefaultPage)
	if err != nil || page < 1 {
		return recordsdomain.PageRequest{}, fmt.Errorf("page must be a positive integer")
	}
	limit, err := parseIntParam(query.Get("limit"), recordsdomain.DefaultLimit)
	if err != nil || limit < 1 || limit > recordsdomain.MaxLimit {
		return recordsdomain.PageRequest{}, fmt.Errorf("limit must be between 1 and %d", recordsdomain.MaxLimit)
	}
	return recordsdomain.PageRequest{Page: page, Limit: limit}, nil
}

// writeServiceError maps record service errors onto the error envelope and
// logs them. op names the handler in log lines.
func (h *Handlers) writeServiceError(w http.ResponseWriter, op string, err error, args ...any) {
	switch {
	case errors.Is(err, recordsdomain.ErrEntityNotFound):
		h.log.BusinessError(op+": entity not found", err, args...)
		writeError(w, http.StatusNotFound, "entity_not_found", "table not found")
	case errors.Is(err, recordsdomain.ErrLookupNotFound):
		h.log.BusinessError(op+": lookup not found", err, args...)
		writeError(w, http.StatusNotFound, "lookup_not_found", "lookup not found")
	case errors.Is(err, recordsdomain.ErrRecordNotFound):
		h.log.BusinessError(op+": record not found", err, args...)
		writeError(w, http.StatusNotFound, "record_not_found", "record not found")
	case errors.Is(err, recordsdomain.ErrReadOnlyEntity):
		h.log.BusinessError(op+": read only entity", err, args...)
		writeError(w, http.StatusBadRequest, "read_only_entity", err.Error())
	case errors.Is(err, recordsdomain.ErrUnknownField),
		errors.Is(err, recordsdomain.ErrInvalidField),
		errors.Is(err, recordsdomain.ErrMissingField),
		errors.Is(err, recordsdomain.ErrEmptyUpdate):
		h.log.BusinessError(op+": invalid input", err, args...)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		h.log.InternalError(op+": failed", err, args...)
		commonhandler.WriteInternalError(w, err)
	}
}
