package common

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"cepip-app-go/internal/auth"
	userdomain "cepip-app-go/internal/domain/user"
	"cepip-app-go/internal/transport/httpserver/middleware"
)

type googleLoginRequest struct {
	Token string `json:"token"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        userResponse `json:"user"`
}

type userResponse struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Picture   *string    `json:"picture"`
	IsActive  bool       `json:"is_active"`
	IsAdmin   bool       `json:"is_admin"`
	LastLogin *time.Time `json:"last_login"`
}

type authStatusResponse struct {
	GoogleClientConfigured bool    `json:"google_client_configured"`
	GoogleClientID         *string `json:"google_client_id"`
	SecretKeyConfigured    bool    `json:"secret_key_configured"`
}

type authConfigResponse struct {
	GoogleClientID string `json:"google_client_id"`
}

func toUserResponse(user userdomain.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Picture:   user.Picture,
		IsActive:  user.IsActive,
		IsAdmin:   user.IsAdmin,
		LastLogin: user.LastLogin,
	}
}

func (h *Handlers) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "token is required")
		return
	}

	if h.login.Provider == nil || !h.login.Provider.Configured() || h.login.Tokens == nil {
		writeError(w, http.StatusServiceUnavailable, "provider_not_configured", "google oauth not configured")
		return
	}

	identity, err := h.login.Provider.Verify(r.Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrProviderNotConfigured):
			writeError(w, http.StatusServiceUnavailable, "provider_not_configured", "google oauth not configured")
		case errors.Is(err, auth.ErrInvalidIdentityToken):
			h.log.BusinessError("auth.google: identity token rejected", err)
			writeError(w, http.StatusUnauthorized, "invalid_identity_token", "invalid google token")
		case errors.Is(err, auth.ErrProviderUnavailable):
			h.log.InternalError("auth.google: provider unavailable", err)
			writeError(w, http.StatusServiceUnavailable, "provider_unavailable", "google token verification unavailable")
		default:
			h.log.InternalError("auth.google: verify failed", err)
			writeInternalError(w, err)
		}
		return
	}

	user, err := h.Users.RecordLogin(r.Context(), userdomain.Identity{
		Subject: identity.Subject,
		Email:   identity.Email,
		Name:    identity.Name,
		Picture: identity.Picture,
	})
	if err != nil {
		switch {
		case errors.Is(err, userdomain.ErrEmailRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", "email is required")
		case errors.Is(err, userdomain.ErrUserInactive):
			h.log.BusinessError("auth.google: inactive user", err, "email", identity.Email)
			writeError(w, http.StatusUnauthorized, "user_inactive", "inactive user")
		default:
			h.log.InternalError("auth.google: record login failed", err, "email", identity.Email)
			writeInternalError(w, err)
		}
		return
	}

	token, expiresAt, err := h.login.Tokens.Issue(auth.Claims{Email: user.Email, Name: user.Name, UserID: user.ID})
	if err != nil {
		h.log.InternalError("auth.google: issue token failed", err, "user_id", user.ID)
		writeInternalError(w, err)
		return
	}

	h.log.Info("auth.google: login", "user_id", user.ID, "email", user.Email)
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        toUserResponse(*user),
	})
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), current.Email)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			// Mock users in development have no row.
			writeJSON(w, http.StatusOK, userResponse{
				ID:       current.ID,
				Email:    current.Email,
				Name:     current.Name,
				IsActive: true,
			})
			return
		}
		h.log.InternalError("auth.me: get user failed", err, "email", current.Email)
		writeInternalError(w, err)
		return
	}
	if !user.IsActive {
		writeError(w, http.StatusUnauthorized, "user_inactive", "inactive user")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(*user))
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Successfully logged out"})
}

func (h *Handlers) AuthStatus(w http.ResponseWriter, r *http.Request) {
	response := authStatusResponse{
		GoogleClientConfigured: h.login.ClientID != "",
		SecretKeyConfigured:    h.login.SecretConfigured,
	}
	if h.login.ClientID != "" {
		clientID := h.login.ClientID
		response.GoogleClientID = &clientID
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) AuthConfig(w http.ResponseWriter, r *http.Request) {
	if h.login.ClientID == "" {
		writeError(w, http.StatusServiceUnavailable, "provider_not_configured", "google oauth not configured")
		return
	}
	writeJSON(w, http.StatusOK, authConfigResponse{GoogleClientID: h.login.ClientID})
}
