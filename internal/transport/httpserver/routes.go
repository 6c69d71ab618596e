package httpserver

import (
	"net/http"
	"time"

	"cepip-app-go/internal/config"
	"cepip-app-go/internal/transport/httpserver/handler"
	"cepip-app-go/internal/transport/httpserver/middleware"
	"cepip-app-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 30 * time.Second

func NewRouter(cfg config.Config, handlers *handler.Handlers, tokens middleware.TokenVerifier, metrics *middleware.Metrics, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))
	r.Use(middleware.NewCORS(cfg.CORS.AllowedOrigins))
	if metrics != nil {
		r.Use(metrics.Middleware)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)
		if metrics != nil {
			r.Method(http.MethodGet, "/metrics", metrics.Handler())
		}

		r.Post("/auth/google", handlers.Common.GoogleLogin)
		r.Post("/auth/logout", handlers.Common.Logout)
		r.Get("/auth/status", handlers.Common.AuthStatus)
		r.Get("/auth/config", handlers.Common.AuthConfig)

		bearer := middleware.NewBearerAuth(cfg.Auth, tokens, log)
		r.Group(func(r chi.Router) {
			r.Use(bearer.Middleware)

			r.Get("/auth/me", handlers.Common.AuthMe)

			r.Get("/records/lookup/{lookup}", handlers.Records.Lookup)

			r.Get("/records/persona/{id}/relaciones", handlers.Relations.ListPersonCompanies)
			r.Post("/records/persona/{id}/relaciones", handlers.Relations.LinkPersonCompany)
			r.Delete("/records/persona/{id}/relaciones/{relationID}", handlers.Relations.UnlinkPersonCompany)
			r.Put("/records/parcela/{id}/consorcista", handlers.Relations.AssignParcel)
			r.Get("/records/consorcista/{id}/parcelas", handlers.Relations.ListMemberParcels)

			r.Get("/records/{entity}", handlers.Records.ListRecords)
			r.Post("/records/{entity}", handlers.Records.CreateRecord)
			r.Get("/records/{entity}/export", handlers.Records.ExportRecords)
			r.Get("/records/{entity}/{id}", handlers.Records.GetRecord)
			r.Put("/records/{entity}/{id}", handlers.Records.UpdateRecord)
			r.Delete("/records/{entity}/{id}", handlers.Records.DeleteRecord)

			r.Get("/tables", handlers.Records.ListTables)
			r.Get("/tables/{table}/schema", handlers.Records.TableSchema)
			r.Get("/stats", handlers.Records.Stats)
			r.Get("/stats/dashboard", handlers.Records.Dashboard)

			r.Get("/settings", handlers.Common.GetSettings)
			r.Put("/settings", handlers.Common.UpdateSettings)
		})
	})

	return r
}
