package app

import (
	"fmt"
	"net/http"
	"time"

	"cepip-app-go/internal/auth"
	"cepip-app-go/internal/config"
	"cepip-app-go/internal/db"
	recordsdomain "cepip-app-go/internal/domain/records"
	relationsdomain "cepip-app-go/internal/domain/relations"
	settingsdomain "cepip-app-go/internal/domain/settings"
	userdomain "cepip-app-go/internal/domain/user"
	"cepip-app-go/internal/repository/inmemory"
	recordsrepo "cepip-app-go/internal/repository/postgres/records"
	relationsrepo "cepip-app-go/internal/repository/postgres/relations"
	settingsrepo "cepip-app-go/internal/repository/postgres/settings"
	userrepo "cepip-app-go/internal/repository/postgres/user"
	"cepip-app-go/internal/transport/httpserver"
	"cepip-app-go/internal/transport/httpserver/handler"
	commonhandler "cepip-app-go/internal/transport/httpserver/handler/common"
	recordshandler "cepip-app-go/internal/transport/httpserver/handler/records"
	relationshandler "cepip-app-go/internal/transport/httpserver/handler/relations"
	"cepip-app-go/internal/transport/httpserver/middleware"
	"cepip-app-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log.Info("app: config loaded",
		"env", cfg.Env,
		"http_port", cfg.HTTPPort,
		"db_migrate", cfg.DB.Migrate,
		"auth_skip", cfg.Auth.SkipAuth,
		"google_login", cfg.Auth.GoogleClientID != "",
		"cors_origins", len(cfg.CORS.AllowedOrigins),
		"lookup_cache_ttl", cfg.LookupCacheTTL.String(),
	)
	if cfg.Auth.SkipAuth {
		log.Warn("app: bearer auth disabled, requests run as mock user", "email", cfg.Auth.MockUserEmail)
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	if cfg.DB.Migrate {
		if err := db.Migrate(dbConn, log); err != nil {
			closeDB(dbConn)
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	sqlDB, err := dbConn.DB()
	if err != nil {
		closeDB(dbConn)
		return nil, fmt.Errorf("db handle: %w", err)
	}

	recordsService := recordsdomain.NewServiceWithLookupCache(recordsrepo.NewPostgres(dbConn), inmemory.NewLookupCache(), cfg.LookupCacheTTL)
	relationsService := relationsdomain.NewService(relationsrepo.NewPostgres(dbConn))
	settingsService := settingsdomain.NewService(settingsrepo.NewPostgres(dbConn))
	userService := userdomain.NewService(userrepo.NewPostgres(dbConn))

	login := commonhandler.Login{
		Provider:         auth.NewGoogleVerifier(cfg.Auth.GoogleClientID, cfg.Auth.CertsURL),
		ClientID:         cfg.Auth.GoogleClientID,
		SecretConfigured: cfg.Auth.JWTSecret != "",
	}
	var verifier middleware.TokenVerifier
	if cfg.Auth.JWTSecret != "" {
		tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		login.Tokens = tokens
		verifier = tokens
	}
	if cfg.Auth.GoogleClientID == "" {
		log.Warn("app: GOOGLE_CLIENT_ID not set, google login disabled")
	}

	log.Info("app: initializing router")
	handlers := handler.New(
		commonhandler.New(userService, settingsService, login, sqlDB, log),
		recordshandler.New(recordsService, log),
		relationshandler.New(relationsService, log),
	)
	router := httpserver.NewRouter(cfg, handlers, verifier, middleware.NewMetrics(), log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

// ShutdownTimeout bounds how long in-flight requests may run after a stop
// signal.
func (a *App) ShutdownTimeout() time.Duration {
	return a.cfg.ShutdownTimeout
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func closeDB(conn *gorm.DB) {
	if sqlDB, err := conn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
