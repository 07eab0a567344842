package webhook

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"voice-orders/pkg/logger"
)

type Handler struct {
	normalizer *Normalizer
	logger     *logger.Logger
}

func NewHandler(normalizer *Normalizer, log *logger.Logger) *Handler {
	return &Handler{
		normalizer: normalizer,
		logger:     log,
	}
}

// The assistant provider calls from its own infrastructure; the webhook
// must accept any origin.
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == http.MethodOptions {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("{}"))
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	requestID := r.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = "req-" + strconv.FormatInt(time.Now().UnixNano(), 10)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error(requestID, "body_read_failed", "Failed to read webhook body", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Internal Server Error"})
		return
	}

	h.logger.Debug(requestID, "webhook_received", "Incoming assistant webhook request")

	resp, err := h.normalizer.Handle(r.Context(), requestID, body)
	if err != nil {
		h.logger.Error(requestID, "webhook_failed", "Webhook processing failed", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Internal Server Error"})
		return
	}

	writeJSON(w, resp.StatusCode, resp.Body)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
