package orders

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"voice-orders/internal/status"
	"voice-orders/internal/store"
	"voice-orders/pkg/logger"
)

type Handler struct {
	service *Service
	logger  *logger.Logger
}

func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// HandleCollection serves GET /api/orders with an optional comma-separated
// status filter.
func (h *Handler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var statuses []string
	if raw := r.URL.Query().Get("status"); raw != "" {
		statuses = strings.Split(raw, ",")
	}

	orders, err := h.service.List(r.Context(), statuses)
	if err != nil {
		h.logger.Error("", "orders_list_failed", "Failed to list orders", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// HandleItem serves PATCH /api/orders/{id}: status-only updates.
func (h *Handler) HandleItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/orders/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "Invalid URL format", http.StatusBadRequest)
		return
	}

	requestID := r.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = "req-" + strconv.FormatInt(time.Now().UnixNano(), 10)
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), requestID, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, status.ErrInvalidTarget):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrOrderNotFound):
			writeError(w, http.StatusNotFound, "Order not found")
		default:
			h.logger.Error(requestID, "order_update_failed", "Failed to update order status", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]any{"error": message})
}
