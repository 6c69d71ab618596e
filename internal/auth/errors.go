package auth

import "errors"

var (
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrInvalidIdentityToken  = errors.New("invalid identity token")
	ErrProviderNotConfigured = errors.New("identity provider not configured")
	ErrProviderUnavailable   = errors.New("identity provider unavailable")
)
