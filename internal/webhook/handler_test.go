package webhook

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"voice-orders/pkg/logger"
)

func newTestHandler(store *fakeStore) *Handler {
	log := logger.NewLoggerTo("test", io.Discard)
	return NewHandler(newTestNormalizer(store, &fakePublisher{}), log)
}

func TestWebhookCORSPreflight(t *testing.T) {
	h := newTestHandler(&fakeStore{})

	req := httptest.NewRequest(http.MethodOptions, "/api/vapi/webhook", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestWebhookMalformedBodyIs500(t *testing.T) {
	h := newTestHandler(&fakeStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/vapi/webhook", strings.NewReader(`{broken`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("error responses must still carry CORS headers, got %q", got)
	}
}

func TestWebhookAcceptsOrderPayload(t *testing.T) {
	store := &fakeStore{}
	h := newTestHandler(store)

	body := `{"message":{"type":"tool-calls","toolCallList":[{"id":"a","function":{"name":"submit_order","arguments":"{\"customerName\":\"Jo\",\"items\":[{\"name\":\"Pizza\",\"quantity\":2}]}"}}]}}`
	req := httptest.NewRequest(http.MethodPost, "/api/vapi/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if len(store.saved) != 1 {
		t.Errorf("saved %d orders, want 1", len(store.saved))
	}
	if !strings.Contains(rec.Body.String(), `"toolCallId":"a"`) {
		t.Errorf("response missing result correlation: %s", rec.Body.String())
	}
}
