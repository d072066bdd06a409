package models

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// SelectedAddon is an addon attached to a cart line. Its price is charged
// per unit of the parent line's quantity.
type SelectedAddon struct {
	ID    int     `json:"id" bson:"id"`
	Name  string  `json:"name" bson:"name"`
	Price float64 `json:"price" bson:"price"`
}

// CartItem represents a single line in a user's cart. The line id is derived
// from the product and its selected addon set, so the same product with a
// different addon combination is a distinct line.
type CartItem struct {
	ID             string          `json:"id" bson:"id"`
	ProductID      int             `json:"productId" bson:"productId"`
	Name           string          `json:"name" bson:"name"`
	Price          float64         `json:"price" bson:"price"`
	OriginalPrice  float64         `json:"originalPrice,omitempty" bson:"originalPrice,omitempty"`
	Quantity       int             `json:"quantity" bson:"quantity"`
	ImageURI       string          `json:"imageUri,omitempty" bson:"imageUri,omitempty"`
	SelectedAddons []SelectedAddon `json:"selectedAddons" bson:"selectedAddons"`
	AddedAt        time.Time       `json:"addedAt" bson:"addedAt"`
}

// CartState is the persisted cart blob for one user.
type CartState struct {
	Items       []CartItem `json:"items" bson:"items"`
	LastUpdated time.Time  `json:"lastUpdated,omitempty" bson:"lastUpdated,omitempty"`
}

// AddToCartInput carries everything needed to create or merge a cart line.
// The display fields are a snapshot taken at add time and are not re-synced
// against later catalog changes.
type AddToCartInput struct {
	ProductID      int             `json:"productId"`
	Name           string          `json:"name"`
	Price          float64         `json:"price"`
	OriginalPrice  float64         `json:"originalPrice,omitempty"`
	ImageURI       string          `json:"imageUri,omitempty"`
	Quantity       int             `json:"quantity,omitempty"`
	SelectedAddons []SelectedAddon `json:"selectedAddons,omitempty"`
}

// CartOperationResult is returned by cart mutations. RequiresAuth marks the
// policy gate for unauthenticated adds; it is not a failure of the cart.
type CartOperationResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	RequiresAuth bool   `json:"requiresAuth,omitempty"`
}

// CartItemID builds the deterministic line id: the product id followed by
// the sorted addon ids, dash separated.
func CartItemID(productID int, addons []SelectedAddon) string {
	if len(addons) == 0 {
		return strconv.Itoa(productID)
	}
	ids := make([]int, 0, len(addons))
	for _, a := range addons {
		ids = append(ids, a.ID)
	}
	sort.Ints(ids)

	var b strings.Builder
	b.WriteString(strconv.Itoa(productID))
	for _, id := range ids {
		b.WriteByte('-')
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}
