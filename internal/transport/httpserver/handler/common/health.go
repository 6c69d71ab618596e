package common

import (
	"context"
	"net/http"
	"time"
)

const (
	serviceName   = "CEPIP API"
	healthTimeout = 2 * time.Second
)

type healthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Database string `json:"database,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Service: serviceName})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.log.Error("health: database ping failed", "err", err)
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:  "unhealthy",
			Service: serviceName,
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Service: serviceName, Database: "connected"})
}
