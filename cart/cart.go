package cart

import (
	"context"
	"log"
	"sync"
	"time"

	"moyo/models"
	"moyo/store"
)

// Service owns the in-memory cart of every active user and writes each
// mutation through to the cart store. The in-memory list stays the source
// of truth for the process lifetime; a failed persist is logged, not
// retried, and only risks losing the cart across a restart.
type Service struct {
	store  store.CartStore
	mu     sync.Mutex
	carts  map[string][]models.CartItem
	loaded map[string]bool
}

func NewService(cartStore store.CartStore) *Service {
	return &Service{
		store:  cartStore,
		carts:  make(map[string][]models.CartItem),
		loaded: make(map[string]bool),
	}
}

// itemsLocked returns the user's lines, loading them from the store on
// first touch. Caller holds the lock.
func (s *Service) itemsLocked(ctx context.Context, userID string) []models.CartItem {
	if !s.loaded[userID] {
		state := s.store.LoadCart(ctx, userID)
		s.carts[userID] = state.Items
		s.loaded[userID] = true
	}
	return s.carts[userID]
}

func (s *Service) persistLocked(ctx context.Context, userID string) {
	state := models.CartState{Items: s.carts[userID], LastUpdated: time.Now()}
	if ok := s.store.SaveCart(ctx, userID, state); !ok {
		log.Printf("cart: persist failed for user %s; keeping in-memory state", userID)
	}
}

// AddToCart merges the input into the user's cart. An empty userID means no
// authenticated session: the cart is left untouched and the result carries
// the requiresAuth marker instead of an error.
func (s *Service) AddToCart(ctx context.Context, userID string, input models.AddToCartInput) models.CartOperationResult {
	if userID == "" {
		return models.CartOperationResult{
			Success:      false,
			Message:      "Please login to add items to cart",
			RequiresAuth: true,
		}
	}

	qty := input.Quantity
	if qty <= 0 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.itemsLocked(ctx, userID)
	lineID := models.CartItemID(input.ProductID, input.SelectedAddons)

	merged := false
	for i := range items {
		if items[i].ID == lineID {
			items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		addons := input.SelectedAddons
		if addons == nil {
			addons = []models.SelectedAddon{}
		}
		items = append(items, models.CartItem{
			ID:             lineID,
			ProductID:      input.ProductID,
			Name:           input.Name,
			Price:          input.Price,
			OriginalPrice:  input.OriginalPrice,
			Quantity:       qty,
			ImageURI:       input.ImageURI,
			SelectedAddons: addons,
			AddedAt:        time.Now(),
		})
	}
	s.carts[userID] = items
	s.persistLocked(ctx, userID)

	return models.CartOperationResult{
		Success: true,
		Message: input.Name + " added to cart",
	}
}

// RemoveFromCart deletes a line by id. Removing an absent line is a no-op,
// not an error.
func (s *Service) RemoveFromCart(ctx context.Context, userID, cartItemID string) {
	if userID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.itemsLocked(ctx, userID)
	kept := items[:0]
	for _, item := range items {
		if item.ID != cartItemID {
			kept = append(kept, item)
		}
	}
	s.carts[userID] = kept
	s.persistLocked(ctx, userID)
}

// UpdateQuantity sets a line's quantity outright. Zero or negative removes
// the line.
func (s *Service) UpdateQuantity(ctx context.Context, userID, cartItemID string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(ctx, userID, cartItemID)
		return
	}
	if userID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.itemsLocked(ctx, userID)
	for i := range items {
		if items[i].ID == cartItemID {
			items[i].Quantity = quantity
			break
		}
	}
	s.persistLocked(ctx, userID)
}

// ClearCart empties the user's cart and drops the stored blob.
func (s *Service) ClearCart(ctx context.Context, userID string) {
	if userID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[userID] = []models.CartItem{}
	s.loaded[userID] = true
	if ok := s.store.ClearCart(ctx, userID); !ok {
		log.Printf("cart: clearing stored cart failed for user %s", userID)
	}
}

// Items returns a copy of the user's cart lines.
func (s *Service) Items(ctx context.Context, userID string) []models.CartItem {
	if userID == "" {
		return []models.CartItem{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.itemsLocked(ctx, userID)
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out
}

// GetItemQuantity sums quantities across every line of the product,
// regardless of addon combination. Product cards badge by product, not by
// line.
func (s *Service) GetItemQuantity(ctx context.Context, userID string, productID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.itemsLocked(ctx, userID) {
		if item.ProductID == productID {
			total += item.Quantity
		}
	}
	return total
}

// IsInCart reports whether any line holds the product.
func (s *Service) IsInCart(ctx context.Context, userID string, productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.itemsLocked(ctx, userID) {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// TotalItems is the sum of all line quantities.
func (s *Service) TotalItems(ctx context.Context, userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.itemsLocked(ctx, userID) {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums line price plus addon prices, each multiplied by the
// line's quantity.
func (s *Service) TotalPrice(ctx context.Context, userID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, item := range s.itemsLocked(ctx, userID) {
		lineTotal := item.Price * float64(item.Quantity)
		for _, addon := range item.SelectedAddons {
			lineTotal += addon.Price * float64(item.Quantity)
		}
		total += lineTotal
	}
	return total
}
