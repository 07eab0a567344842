// Package realtime keeps connected dashboard sessions in sync with order
// changes without polling: a fanout exchange feeds a hub, the hub feeds
// per-session state, and sessions stream frames to the browser over SSE.
package realtime

import (
	"reflect"

	"voice-orders/pkg/models"
)

// Frame is one server-sent update: the order that changed, the session's
// count of orders still in the new state, and whether the dashboard
// should play its notification.
type Frame struct {
	Order    models.Order `json:"order"`
	NewCount int          `json:"newCount"`
	Notify   bool         `json:"notify"`
}

// Session is one dashboard viewer's in-memory order state. Delivery can
// duplicate or overlap the session's own fetches, so every merge is
// idempotent by order id: applying the same snapshot twice is a no-op.
// Not safe for concurrent use; each session is confined to its SSE
// goroutine.
type Session struct {
	orders   []models.Order
	newCount int
}

func NewSession(initial []models.Order) *Session {
	s := &Session{orders: initial}
	s.newCount = countNew(initial)
	return s
}

func (s *Session) Orders() []models.Order { return s.orders }
func (s *Session) NewCount() int         { return s.newCount }

// Apply merges one order event and reports whether anything changed.
func (s *Session) Apply(event models.OrderEvent) (Frame, bool) {
	order := event.Record.ToOrder()

	switch event.Type {
	case models.EventInsert:
		return s.applyInsert(order)
	case models.EventUpdate:
		return s.applyUpdate(order)
	default:
		return Frame{}, false
	}
}

func (s *Session) applyInsert(order models.Order) (Frame, bool) {
	if s.indexOf(order.ID) >= 0 {
		// Duplicate delivery or overlap with a fetch that already saw it.
		return Frame{}, false
	}

	s.orders = append([]models.Order{order}, s.orders...)
	s.newCount++
	return Frame{Order: order, NewCount: s.newCount, Notify: true}, true
}

func (s *Session) applyUpdate(order models.Order) (Frame, bool) {
	idx := s.indexOf(order.ID)
	if idx >= 0 {
		if reflect.DeepEqual(s.orders[idx], order) {
			return Frame{}, false
		}
		s.orders[idx] = order
	} else {
		// Update for an order this session never saw; adopt it.
		s.orders = append([]models.Order{order}, s.orders...)
	}

	// Recomputed from the list, not adjusted incrementally, so the count
	// stays right even when intermediate events were missed.
	s.newCount = countNew(s.orders)
	return Frame{Order: order, NewCount: s.newCount}, true
}

func (s *Session) indexOf(id string) int {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return i
		}
	}
	return -1
}

func countNew(orders []models.Order) int {
	count := 0
	for _, o := range orders {
		if o.Status == models.StatusNew {
			count++
		}
	}
	return count
}
