package relations

import (
	"errors"
	"net/http"

	relationsdomain "cepip-app-go/internal/domain/relations"
	commonhandler "cepip-app-go/internal/transport/httpserver/handler/common"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	commonhandler.WriteError(w, status, code, message)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	commonhandler.WriteJSON(w, status, payload)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	commonhandler.WriteMessage(w, status, message)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return commonhandler.DecodeJSON(r, dst)
}

func parseID(value string) (int64, error) {
	return commonhandler.ParseID(value)
}

func (h *Handlers) writeServiceError(w http.ResponseWriter, op string, err error, args ...any) {
	var code string
	switch {
	case errors.Is(err, relationsdomain.ErrPersonNotFound):
		code = "person_not_found"
	case errors.Is(err, relationsdomain.ErrCompanyNotFound):
		code = "company_not_found"
	case errors.Is(err, relationsdomain.ErrMemberNotFound):
		code = "member_not_found"
	case errors.Is(err, relationsdomain.ErrParcelNotFound):
		code = "parcel_not_found"
	case errors.Is(err, relationsdomain.ErrLinkNotFound):
		code = "relation_not_found"
	case errors.Is(err, relationsdomain.ErrInvalidID):
		h.log.BusinessError(op+": invalid id", err, args...)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	default:
		h.log.InternalError(op+": failed", err, args...)
		commonhandler.WriteInternalError(w, err)
		return
	}

	h.log.BusinessError(op+": not found", err, args...)
	writeError(w, http.StatusNotFound, code, err.Error())
}
