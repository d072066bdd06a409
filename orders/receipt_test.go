package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"moyo/cart"
	"moyo/globals"
	"moyo/store"
	"moyo/upstream"

	"github.com/julienschmidt/httprouter"
)

// receiptBackend serves one order owned by backend user ownerID.
func receiptBackend(t *testing.T, ownerID int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/login":
			json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "token_type": "bearer"})
		case r.Method == http.MethodGet && r.URL.Path == "/orders/55":
			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{
					"id":             55,
					"order_uid":      "OU-55",
					"transaction_id": "TXN-1-ABCDEF",
					"status":         "delivered",
					"subtotal":       "100.00",
					"tax":            "5.00",
					"total":          "105.00",
					"created_at":     "2026-08-01 10:00:00",
					"user":           map[string]any{"id": ownerID, "name": "Asha"},
					"items": []map[string]any{
						{"product_name": "Milk", "quantity": 1, "total": "60.00"},
					},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
}

func receiptRequest(userID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/orders/55/receipt", nil)
	ctx := context.WithValue(req.Context(), globals.UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestReceiptRejectsForeignOrder(t *testing.T) {
	backend := receiptBackend(t, 7)
	defer backend.Close()

	t.Setenv("MOYO_API_URL", backend.URL)
	t.Setenv("MOYO_API_USER", "api@example.com")
	t.Setenv("MOYO_API_PASSWORD", "secret")

	h := NewHandlers(upstream.New(), cart.NewService(store.NewMemoryCartStore()))

	rec := httptest.NewRecorder()
	h.Receipt(rec, receiptRequest("u42"), httprouter.Params{{Key: "orderId", Value: "55"}})

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for another customer's order, got %d", rec.Code)
	}
}

func TestReceiptRendersOwnOrder(t *testing.T) {
	backend := receiptBackend(t, 7)
	defer backend.Close()

	t.Setenv("MOYO_API_URL", backend.URL)
	t.Setenv("MOYO_API_USER", "api@example.com")
	t.Setenv("MOYO_API_PASSWORD", "secret")

	h := NewHandlers(upstream.New(), cart.NewService(store.NewMemoryCartStore()))

	rec := httptest.NewRecorder()
	h.Receipt(rec, receiptRequest("u7"), httprouter.Params{{Key: "orderId", Value: "55"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for the owner, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("expected a PDF response, got %q", got)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("expected a non-empty PDF body")
	}
}

func TestReceiptRequiresSession(t *testing.T) {
	h := NewHandlers(upstream.New(), cart.NewService(store.NewMemoryCartStore()))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/55/receipt", nil)
	h.Receipt(rec, req, httprouter.Params{{Key: "orderId", Value: "55"}})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", rec.Code)
	}
}
