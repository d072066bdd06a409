package models

import "testing"

func TestCartItemIDWithoutAddons(t *testing.T) {
	if got := CartItemID(42, nil); got != "42" {
		t.Fatalf("expected bare product id, got %q", got)
	}
}

func TestCartItemIDSortsAddonIDs(t *testing.T) {
	addons := []SelectedAddon{{ID: 9}, {ID: 2}, {ID: 5}}
	if got := CartItemID(7, addons); got != "7-2-5-9" {
		t.Fatalf("expected sorted addon ids, got %q", got)
	}

	// Order of selection must not change the line id
	reordered := []SelectedAddon{{ID: 5}, {ID: 9}, {ID: 2}}
	if CartItemID(7, addons) != CartItemID(7, reordered) {
		t.Fatal("line id must be independent of addon selection order")
	}
}
