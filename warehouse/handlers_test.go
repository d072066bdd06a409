package warehouse

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"moyo/upstream"

	"github.com/julienschmidt/httprouter"
)

func TestAssignOrderRollsBackWhenDispatchFails(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/login":
			json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "token_type": "bearer"})
		case r.Method == http.MethodGet && r.URL.Path == "/orders/100":
			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"id": 100, "order_uid": "OU-100", "status": "packed"},
			})
		case r.Method == http.MethodPatch && r.URL.Path == "/orders/100/status":
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"status update failed"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer backend.Close()

	t.Setenv("MOYO_API_URL", backend.URL)
	t.Setenv("MOYO_API_USER", "api@example.com")
	t.Setenv("MOYO_API_PASSWORD", "secret")

	h := &Handlers{API: upstream.New(), Roster: testRoster()}

	req := httptest.NewRequest(http.MethodPost, "/api/warehouse/orders/100/assign", strings.NewReader(`{"personId":"dp-1"}`))
	rec := httptest.NewRecorder()
	h.AssignOrder(rec, req, httprouter.Params{{Key: "orderId", Value: "100"}})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected the backend's status surfaced, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "status update failed") {
		t.Fatalf("expected the backend's message surfaced, got %q", rec.Body.String())
	}
	if _, ok := h.Roster.AssignedTo(100); ok {
		t.Fatal("failed dispatch must not leave the assignment in place")
	}
	if got := h.Roster.People()[0].CurrentOrders; got != 0 {
		t.Fatalf("failed dispatch must not bump the person's load, got %d", got)
	}
}
