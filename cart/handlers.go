package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"moyo/models"
	"moyo/utils"

	"github.com/julienschmidt/httprouter"
)

// AddToCartHandler merges an item into the caller's cart. Runs behind
// OptionalAuth: an anonymous caller gets the requiresAuth result, not a 401,
// so the client can route to login without treating it as an error.
func (s *Service) AddToCartHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input models.AddToCartInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Println("AddToCart decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if input.ProductID <= 0 || input.Name == "" || input.Price < 0 {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	result := s.AddToCart(ctx, userID, input)

	status := http.StatusCreated
	if !result.Success {
		status = http.StatusOK
	}
	utils.RespondWithJSON(w, status, result)
}

// GetCartHandler returns the caller's lines with the aggregate totals.
func (s *Service) GetCartHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":      s.Items(ctx, userID),
		"totalItems": s.TotalItems(ctx, userID),
		"totalPrice": s.TotalPrice(ctx, userID),
	})
}

// UpdateQuantityHandler sets a line's quantity; zero or less removes it.
func (s *Service) UpdateQuantityHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	s.UpdateQuantity(ctx, userID, ps.ByName("itemId"), payload.Quantity)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// RemoveItemHandler deletes one line from the caller's cart.
func (s *Service) RemoveItemHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	s.RemoveFromCart(ctx, userID, ps.ByName("itemId"))
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// ClearCartHandler empties the caller's cart.
func (s *Service) ClearCartHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	s.ClearCart(ctx, userID)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// ProductQuantityHandler reports the in-cart quantity badge for a product,
// summed across addon combinations.
func (s *Service) ProductQuantityHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID, err := strconv.Atoi(ps.ByName("productId"))
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	// Anonymous callers have no cart; the badge is simply zero.
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"productId": productID,
			"quantity":  0,
			"inCart":    false,
		})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"productId": productID,
		"quantity":  s.GetItemQuantity(ctx, userID, productID),
		"inCart":    s.IsInCart(ctx, userID, productID),
	})
}
