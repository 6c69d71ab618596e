package common

import (
	"context"
	"time"

	"cepip-app-go/internal/auth"
	settingsdomain "cepip-app-go/internal/domain/settings"
	userdomain "cepip-app-go/internal/domain/user"
	"cepip-app-go/pkg/logger"
)

type UserService interface {
	RecordLogin(ctx context.Context, identity userdomain.Identity) (*userdomain.User, error)
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
}

type SettingsService interface {
	Get(ctx context.Context) (settingsdomain.Settings, error)
	Update(ctx context.Context, input settingsdomain.UpdateInput) (settingsdomain.Settings, error)
}

type TokenIssuer interface {
	Issue(claims auth.Claims) (string, time.Time, error)
}

// Pinger reports database reachability for the health check.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Login groups what the identity exchange endpoints need.
type Login struct {
	Tokens           TokenIssuer
	Provider         auth.IdentityProvider
	ClientID         string
	SecretConfigured bool
}

type Handlers struct {
	Users    UserService
	Settings SettingsService
	login    Login
	db       Pinger
	log      logger.Logger
}

func New(users UserService, settings SettingsService, login Login, db Pinger, log logger.Logger) *Handlers {
	return &Handlers{
		Users:    users,
		Settings: settings,
		login:    login,
		db:       db,
		log:      log,
	}
}
