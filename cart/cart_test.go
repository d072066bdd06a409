package cart

import (
	"context"
	"testing"

	"moyo/models"
	"moyo/store"
)

func newTestService() *Service {
	return NewService(store.NewMemoryCartStore())
}

func TestAddToCartRequiresAuth(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	result := svc.AddToCart(ctx, "", models.AddToCartInput{ProductID: 1, Name: "Paneer", Price: 120})
	if result.Success {
		t.Fatal("expected unauthenticated add to fail")
	}
	if !result.RequiresAuth {
		t.Fatal("expected requiresAuth marker on unauthenticated add")
	}

	// Nothing should have been stored for anyone
	if svc.TotalItems(ctx, "u1") != 0 {
		t.Fatal("unauthenticated add must not touch any cart")
	}
}

func TestAddToCartMergesSameLine(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	input := models.AddToCartInput{ProductID: 7, Name: "Milk", Price: 60, Quantity: 2}

	if result := svc.AddToCart(ctx, "u1", input); !result.Success {
		t.Fatalf("add failed: %s", result.Message)
	}
	svc.AddToCart(ctx, "u1", input)

	items := svc.Items(ctx, "u1")
	if len(items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(items))
	}
	if items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4 after merge, got %d", items[0].Quantity)
	}
}

func TestAddToCartDefaultsQuantity(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.AddToCart(ctx, "u1", models.AddToCartInput{ProductID: 3, Name: "Bread", Price: 40})
	if got := svc.GetItemQuantity(ctx, "u1", 3); got != 1 {
		t.Fatalf("expected default quantity 1, got %d", got)
	}
}

func TestAddonSetsAreDistinctLines(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	plain := models.AddToCartInput{ProductID: 5, Name: "Thali", Price: 150}
	withRaita := models.AddToCartInput{
		ProductID:      5,
		Name:           "Thali",
		Price:          150,
		SelectedAddons: []models.SelectedAddon{{ID: 11, Name: "Raita", Price: 20}},
	}

	svc.AddToCart(ctx, "u1", plain)
	svc.AddToCart(ctx, "u1", withRaita)
	svc.AddToCart(ctx, "u1", withRaita)

	items := svc.Items(ctx, "u1")
	if len(items) != 2 {
		t.Fatalf("expected two lines for distinct addon sets, got %d", len(items))
	}
	// Badge count spans both lines
	if got := svc.GetItemQuantity(ctx, "u1", 5); got != 3 {
		t.Fatalf("expected product quantity 3 across lines, got %d", got)
	}
	if !svc.IsInCart(ctx, "u1", 5) {
		t.Fatal("expected product to be in cart")
	}
}

func TestUpdateQuantitySetsAbsoluteValue(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.AddToCart(ctx, "u1", models.AddToCartInput{ProductID: 9, Name: "Rice", Price: 80, Quantity: 2})
	lineID := models.CartItemID(9, nil)

	svc.UpdateQuantity(ctx, "u1", lineID, 5)
	if got := svc.GetItemQuantity(ctx, "u1", 9); got != 5 {
		t.Fatalf("expected quantity 5, got %d", got)
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.AddToCart(ctx, "u1", models.AddToCartInput{ProductID: 9, Name: "Rice", Price: 80})
	svc.UpdateQuantity(ctx, "u1", models.CartItemID(9, nil), 0)

	if len(svc.Items(ctx, "u1")) != 0 {
		t.Fatal("expected line removed when quantity set to zero")
	}
}

func TestRemoveAbsentLineIsNoOp(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.AddToCart(ctx, "u1", models.AddToCartInput{ProductID: 2, Name: "Eggs", Price: 90})
	svc.RemoveFromCart(ctx, "u1", "999")

	if len(svc.Items(ctx, "u1")) != 1 {
		t.Fatal("removing an absent line must not change the cart")
	}
}

func TestTotalPriceIncludesAddonsPerUnit(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.AddToCart(ctx, "u1", models.AddToCartInput{
		ProductID: 5,
		Name:      "Thali",
		Price:     90,
		Quantity:  2,
		SelectedAddons: []models.SelectedAddon{
			{ID: 11, Name: "Raita", Price: 20},
		},
	})

	// (90 + 20) * 2
	if got := svc.TotalPrice(ctx, "u1"); got != 220 {
		t.Fatalf("expected total 220, got %v", got)
	}
	if got := svc.TotalItems(ctx, "u1"); got != 2 {
		t.Fatalf("expected 2 total items, got %d", got)
	}
}

func TestClearCartEmptiesStore(t *testing.T) {
	st := store.NewMemoryCartStore()
	svc := NewService(st)
	ctx := context.Background()

	svc.AddToCart(ctx, "u1", models.AddToCartInput{ProductID: 1, Name: "Paneer", Price: 120})
	svc.ClearCart(ctx, "u1")

	if len(svc.Items(ctx, "u1")) != 0 {
		t.Fatal("expected empty cart after clear")
	}
	if got := st.LoadCart(ctx, "u1"); len(got.Items) != 0 {
		t.Fatal("expected stored cart dropped after clear")
	}
}

func TestCartSurvivesServiceRestart(t *testing.T) {
	st := store.NewMemoryCartStore()
	ctx := context.Background()

	first := NewService(st)
	first.AddToCart(ctx, "u1", models.AddToCartInput{ProductID: 7, Name: "Milk", Price: 60, Quantity: 3})

	// A fresh service over the same store sees the persisted cart
	second := NewService(st)
	items := second.Items(ctx, "u1")
	if len(items) != 1 || items[0].Quantity != 3 {
		t.Fatalf("expected persisted cart to survive restart, got %+v", items)
	}
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.AddToCart(ctx, "u1", models.AddToCartInput{ProductID: 1, Name: "Paneer", Price: 120})
	svc.AddToCart(ctx, "u2", models.AddToCartInput{ProductID: 2, Name: "Eggs", Price: 90})

	if svc.IsInCart(ctx, "u1", 2) || svc.IsInCart(ctx, "u2", 1) {
		t.Fatal("carts leaked between users")
	}
}
