package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"voice-orders/pkg/logger"
	"voice-orders/pkg/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

const sessionBuffer = 32

// Hub fans order events out to every subscribed session channel.
type Hub struct {
	mu       sync.Mutex
	sessions map[chan models.OrderEvent]struct{}
	logger   *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		sessions: make(map[chan models.OrderEvent]struct{}),
		logger:   log,
	}
}

func (h *Hub) Subscribe() chan models.OrderEvent {
	ch := make(chan models.OrderEvent, sessionBuffer)
	h.mu.Lock()
	h.sessions[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan models.OrderEvent) {
	h.mu.Lock()
	delete(h.sessions, ch)
	h.mu.Unlock()
}

// Broadcast delivers one event to every session. A session that cannot
// keep up loses its oldest buffered event; the hub never blocks on a
// slow consumer.
func (h *Hub) Broadcast(event models.OrderEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.sessions {
		select {
		case ch <- event:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- event:
			default:
			}
		}
	}
}

// Run consumes the fanout delivery stream until the context ends or the
// broker closes the channel.
func (h *Hub) Run(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	h.logger.Info("startup", "hub_started", "Realtime hub consuming order events")

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("order event channel closed")
			}

			var event models.OrderEvent
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				h.logger.Error("", "event_decode_failed", "Failed to decode order event", err)
				continue
			}
			h.Broadcast(event)
		}
	}
}
