package realtime

import (
	"testing"
	"time"

	"voice-orders/pkg/models"
)

func makeOrder(id, status string) models.Order {
	return models.Order{
		ID:        id,
		Status:    status,
		Items:     []models.OrderItem{},
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func insertEvent(order models.Order) models.OrderEvent {
	return models.OrderEvent{Type: models.EventInsert, Record: models.RowFromOrder(order)}
}

func updateEvent(order models.Order) models.OrderEvent {
	return models.OrderEvent{Type: models.EventUpdate, Record: models.RowFromOrder(order)}
}

func TestSessionInsertPrependsAndCounts(t *testing.T) {
	s := NewSession([]models.Order{makeOrder("old", models.StatusPreparing)})

	frame, changed := s.Apply(insertEvent(makeOrder("a", models.StatusNew)))
	if !changed {
		t.Fatal("insert must change the session")
	}
	if !frame.Notify {
		t.Error("insert frame must request a notification")
	}
	if frame.NewCount != 1 {
		t.Errorf("newCount = %d, want 1", frame.NewCount)
	}
	if s.Orders()[0].ID != "a" {
		t.Errorf("new order must be prepended, got head %q", s.Orders()[0].ID)
	}
	if len(s.Orders()) != 2 {
		t.Errorf("len(orders) = %d, want 2", len(s.Orders()))
	}
}

func TestSessionDuplicateInsertIsNoop(t *testing.T) {
	s := NewSession(nil)
	order := makeOrder("a", models.StatusNew)

	if _, changed := s.Apply(insertEvent(order)); !changed {
		t.Fatal("first insert must apply")
	}
	if _, changed := s.Apply(insertEvent(order)); changed {
		t.Error("duplicate insert must be a no-op")
	}
	if len(s.Orders()) != 1 || s.NewCount() != 1 {
		t.Errorf("state corrupted by duplicate: %d orders, newCount %d", len(s.Orders()), s.NewCount())
	}
}

func TestSessionUpdateReplacesAndRecounts(t *testing.T) {
	s := NewSession([]models.Order{
		makeOrder("a", models.StatusNew),
		makeOrder("b", models.StatusNew),
	})
	if s.NewCount() != 2 {
		t.Fatalf("seed newCount = %d, want 2", s.NewCount())
	}

	updated := makeOrder("a", models.StatusPreparing)
	frame, changed := s.Apply(updateEvent(updated))
	if !changed {
		t.Fatal("update must change the session")
	}
	if frame.Notify {
		t.Error("updates must not trigger notifications")
	}
	if frame.NewCount != 1 {
		t.Errorf("newCount = %d, want 1 (recomputed from list)", frame.NewCount)
	}
	if s.Orders()[0].Status != models.StatusPreparing {
		t.Errorf("order a status = %q, want preparing", s.Orders()[0].Status)
	}
}

func TestSessionDuplicateUpdateIsNoop(t *testing.T) {
	s := NewSession([]models.Order{makeOrder("a", models.StatusPreparing)})

	if _, changed := s.Apply(updateEvent(makeOrder("a", models.StatusPreparing))); changed {
		t.Error("identical snapshot must be a no-op")
	}
}

func TestSessionUpdateForUnknownOrderAdoptsIt(t *testing.T) {
	s := NewSession(nil)

	// Events can arrive for orders created before this session's seed
	// fetch completed.
	frame, changed := s.Apply(updateEvent(makeOrder("x", models.StatusNew)))
	if !changed {
		t.Fatal("unknown update must apply")
	}
	if len(s.Orders()) != 1 {
		t.Fatalf("len(orders) = %d, want 1", len(s.Orders()))
	}
	if frame.NewCount != 1 {
		t.Errorf("newCount = %d, want 1", frame.NewCount)
	}
}

func TestSessionIgnoresUnknownEventType(t *testing.T) {
	s := NewSession(nil)
	if _, changed := s.Apply(models.OrderEvent{Type: "DELETE"}); changed {
		t.Error("unknown event types must be ignored")
	}
}

func TestHubBroadcastDropsOldestWhenFull(t *testing.T) {
	hub := NewHub(testLogger())
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	for i := 0; i < sessionBuffer+5; i++ {
		hub.Broadcast(insertEvent(makeOrder(string(rune('a'+i)), models.StatusNew)))
	}

	// The channel must hold the most recent events, not the oldest.
	if len(ch) != sessionBuffer {
		t.Fatalf("buffered = %d, want %d", len(ch), sessionBuffer)
	}
	first := <-ch
	if first.Record.ID == "a" {
		t.Error("oldest event should have been dropped")
	}
}
