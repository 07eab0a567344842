package orders

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"voice-orders/pkg/logger"
	"voice-orders/pkg/models"
)

func newTestHandler(st *fakeStore) *Handler {
	log := logger.NewLoggerTo("test", io.Discard)
	return NewHandler(NewService(st, &fakePublisher{}, log), log)
}

func TestPatchOrderStatus(t *testing.T) {
	h := newTestHandler(newFakeStore(makeOrder("ord_1", models.StatusNew)))

	req := httptest.NewRequest(http.MethodPatch, "/api/orders/ord_1", strings.NewReader(`{"status":"preparing"}`))
	rec := httptest.NewRecorder()
	h.HandleItem(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"status":"preparing"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestPatchOrderInvalidStatusIs400(t *testing.T) {
	h := newTestHandler(newFakeStore(makeOrder("ord_1", models.StatusNew)))

	req := httptest.NewRequest(http.MethodPatch, "/api/orders/ord_1", strings.NewReader(`{"status":"cancelled"}`))
	rec := httptest.NewRecorder()
	h.HandleItem(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	for _, allowed := range []string{"preparing", "delivered", "rejected"} {
		if !strings.Contains(rec.Body.String(), allowed) {
			t.Errorf("error must list allowed value %q: %s", allowed, rec.Body.String())
		}
	}
}

func TestPatchUnknownOrderIs404(t *testing.T) {
	h := newTestHandler(newFakeStore())

	req := httptest.NewRequest(http.MethodPatch, "/api/orders/ord_missing", strings.NewReader(`{"status":"preparing"}`))
	rec := httptest.NewRecorder()
	h.HandleItem(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListOrdersWithStatusFilter(t *testing.T) {
	h := newTestHandler(newFakeStore(
		makeOrder("a", models.StatusNew),
		makeOrder("b", models.StatusDelivered),
	))

	req := httptest.NewRequest(http.MethodGet, "/api/orders?status=new,preparing", nil)
	rec := httptest.NewRecorder()
	h.HandleCollection(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"id":"a"`) || strings.Contains(body, `"id":"b"`) {
		t.Errorf("filter applied wrong: %s", body)
	}
}

func TestOrdersMethodNotAllowed(t *testing.T) {
	h := newTestHandler(newFakeStore())

	req := httptest.NewRequest(http.MethodDelete, "/api/orders/ord_1", nil)
	rec := httptest.NewRecorder()
	h.HandleItem(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
