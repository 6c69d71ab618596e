package httpserver

import (
	"net/http"
	"time"

	"cepip-app-go/internal/config"
)

func New(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		// Longer than the router timeout so handlers can still answer.
		WriteTimeout: requestTimeout + 5*time.Second,
		IdleTimeout:  2 * time.Minute,
	}
}
