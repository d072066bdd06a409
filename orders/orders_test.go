package orders

import (
	"strings"
	"testing"

	"moyo/models"
	"moyo/utils"
)

func TestMapCartItemsFlattensAddons(t *testing.T) {
	items := []models.CartItem{
		{
			ID:        "5-11",
			ProductID: 5,
			Name:      "Thali",
			Price:     90,
			Quantity:  2,
			SelectedAddons: []models.SelectedAddon{
				{ID: 11, Name: "Raita", Price: 20},
			},
		},
		{ID: "7", ProductID: 7, Name: "Milk", Price: 60, Quantity: 1},
	}

	payload := MapCartItems(items)
	if len(payload) != 3 {
		t.Fatalf("expected 3 payload lines, got %d", len(payload))
	}

	if payload[0].ProductID != 5 || payload[0].Qty != 2 || payload[0].Price != 90 {
		t.Errorf("unexpected parent line: %+v", payload[0])
	}
	// Addon inherits the parent line's quantity
	if payload[1].ProductID != 11 || payload[1].Qty != 2 || payload[1].Price != 20 {
		t.Errorf("unexpected addon line: %+v", payload[1])
	}
	if payload[2].ProductID != 7 || payload[2].Qty != 1 {
		t.Errorf("unexpected second product line: %+v", payload[2])
	}
}

func TestMapCartItemsEmptyCart(t *testing.T) {
	if got := MapCartItems(nil); len(got) != 0 {
		t.Fatalf("expected empty payload, got %+v", got)
	}
}

func TestGenerateTransactionIDShape(t *testing.T) {
	id := utils.GenerateTransactionID()
	parts := strings.Split(id, "-")
	if len(parts) != 3 || parts[0] != "TXN" {
		t.Fatalf("unexpected transaction id shape: %q", id)
	}
	if len(parts[2]) != 6 {
		t.Fatalf("expected 6-char suffix, got %q", parts[2])
	}
	if id == utils.GenerateTransactionID() && id == utils.GenerateTransactionID() {
		t.Fatal("transaction ids should not repeat")
	}
}
