package common

import (
	"errors"
	"net/http"
	"time"

	settingsdomain "cepip-app-go/internal/domain/settings"
)

type settingsResponse struct {
	AppName        string     `json:"appName"`
	RecordsPerPage int        `json:"recordsPerPage"`
	Theme          string     `json:"theme"`
	Language       string     `json:"language"`
	Notifications  bool       `json:"notifications"`
	LastUpdated    *time.Time `json:"lastUpdated"`
}

type updateSettingsRequest struct {
	AppName        *string `json:"appName"`
	RecordsPerPage *int    `json:"recordsPerPage"`
	Theme          *string `json:"theme"`
	Language       *string `json:"language"`
	Notifications  *bool   `json:"notifications"`
	// Sent back by clients that echo the GET body; ignored.
	LastUpdated *string `json:"lastUpdated"`
}

type updateSettingsResponse struct {
	Message  string           `json:"message"`
	Settings settingsResponse `json:"settings"`
}

func toSettingsResponse(settings settingsdomain.Settings) settingsResponse {
	response := settingsResponse{
		AppName:        settings.AppName,
		RecordsPerPage: settings.RecordsPerPage,
		Theme:          settings.Theme,
		Language:       settings.Language,
		Notifications:  settings.Notifications,
	}
	if !settings.UpdatedAt.IsZero() {
		updated := settings.UpdatedAt
		response.LastUpdated = &updated
	}
	return response
}

func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.Get(r.Context())
	if err != nil {
		h.log.InternalError("settings.get: load failed", err)
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}

func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	updated, err := h.Settings.Update(r.Context(), settingsdomain.UpdateInput{
		AppName:        req.AppName,
		RecordsPerPage: req.RecordsPerPage,
		Theme:          req.Theme,
		Language:       req.Language,
		Notifications:  req.Notifications,
	})
	if err != nil {
		if errors.Is(err, settingsdomain.ErrInvalidSettings) {
			h.log.BusinessError("settings.update: invalid settings", err)
			writeError(w, http.StatusBadRequest, "invalid_settings", err.Error())
			return
		}
		h.log.InternalError("settings.update: save failed", err)
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updateSettingsResponse{
		Message:  "Settings updated successfully",
		Settings: toSettingsResponse(updated),
	})
}
