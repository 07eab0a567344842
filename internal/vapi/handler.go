package vapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"voice-orders/pkg/logger"
)

type Handler struct {
	service *Service
	logger  *logger.Logger

	// webhookURL is pushed to the assistant when settings carry no
	// serverUrl override; empty means derive from the incoming request.
	webhookURL string
}

func NewHandler(service *Service, webhookURL string, log *logger.Logger) *Handler {
	return &Handler{
		service:    service,
		logger:     log,
		webhookURL: webhookURL,
	}
}

// ServeHTTP covers /api/vapi/settings: GET read (masked), POST partial
// update, PUT sync.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.read(w, r)
	case http.MethodPost:
		h.update(w, r)
	case http.MethodPut:
		h.sync(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) read(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Settings(r.Context())
	if err != nil {
		h.logger.Error("", "settings_read_failed", "Failed to read settings", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if err := h.service.Update(r.Context(), req); err != nil {
		h.logger.Error("", "settings_update_failed", "Failed to save settings", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) sync(w http.ResponseWriter, r *http.Request) {
	serverURL := h.webhookURL
	if serverURL == "" {
		scheme := "https"
		if r.TLS == nil {
			scheme = "http"
		}
		serverURL = fmt.Sprintf("%s://%s/api/vapi/webhook", scheme, r.Host)
	}

	result, err := h.service.Sync(r.Context(), serverURL)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("", "sync_failed", "Assistant sync failed", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
