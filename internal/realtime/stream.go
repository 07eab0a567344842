package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"voice-orders/pkg/logger"
	"voice-orders/pkg/models"
)

type OrderStore interface {
	GetOrders(ctx context.Context) ([]models.Order, error)
}

const heartbeatInterval = 15 * time.Second

// StreamHandler serves GET /api/orders/stream as server-sent events. Each
// connection gets its own Session seeded from the store, so a change that
// raced the seed fetch is absorbed by the idempotent merge.
type StreamHandler struct {
	store  OrderStore
	hub    *Hub
	logger *logger.Logger
}

func NewStreamHandler(store OrderStore, hub *Hub, log *logger.Logger) *StreamHandler {
	return &StreamHandler{
		store:  store,
		hub:    hub,
		logger: log,
	}
}

type snapshotFrame struct {
	Orders   []models.Order `json:"orders"`
	NewCount int            `json:"newCount"`
}

func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	orders, err := h.store.GetOrders(r.Context())
	if err != nil {
		h.logger.Error("", "stream_seed_failed", "Failed to load orders for stream", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	session := NewSession(orders)

	// Subscribe before writing the snapshot so nothing falls in the gap.
	events := h.hub.Subscribe()
	defer h.hub.Unsubscribe(events)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	writeEvent(w, "snapshot", snapshotFrame{Orders: session.Orders(), NewCount: session.NewCount()})
	flusher.Flush()

	h.logger.Debug("", "stream_opened", "Dashboard session connected")

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Debug("", "stream_closed", "Dashboard session disconnected")
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case event := <-events:
			frame, changed := session.Apply(event)
			if !changed {
				continue
			}
			writeEvent(w, "order", frame)
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, name string, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
}
