package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"moyo/auth"
	"moyo/cart"
	"moyo/db"
	"moyo/models"
	"moyo/upstream"
	"moyo/utils"

	"github.com/julienschmidt/httprouter"
)

// Handlers places orders against the backend from the gateway-held cart and
// serves order history.
type Handlers struct {
	API  *upstream.Client
	Cart *cart.Service
}

func NewHandlers(api *upstream.Client, cartSvc *cart.Service) *Handlers {
	return &Handlers{API: api, Cart: cartSvc}
}

// MapCartItems flattens cart lines into the upstream order payload. Each
// selected addon becomes its own line, priced at addon price times the
// parent line's quantity factor.
func MapCartItems(items []models.CartItem) []models.CreateOrderItem {
	out := make([]models.CreateOrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.CreateOrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Qty:       item.Quantity,
		})
		for _, addon := range item.SelectedAddons {
			out = append(out, models.CreateOrderItem{
				ProductID: addon.ID,
				Name:      addon.Name,
				Price:     addon.Price,
				Qty:       item.Quantity,
			})
		}
	}
	return out
}

type orderLogEntry struct {
	UserID        string    `bson:"userid"`
	OrderID       int       `bson:"orderId"`
	OrderUID      string    `bson:"orderUid"`
	TransactionID string    `bson:"transactionId"`
	Total         float64   `bson:"total"`
	CreatedAt     time.Time `bson:"createdAt"`
}

// CreateOrder checks out the caller's cart: build the payload, create the
// order upstream, then clear the cart and append to the local order log.
func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		TransactionID string `json:"transaction_id"`
	}
	if r.Body != nil {
		// Body is optional; a client-supplied transaction id is honored.
		_ = json.NewDecoder(r.Body).Decode(&input)
	}
	if input.TransactionID == "" {
		input.TransactionID = utils.GenerateTransactionID()
	}

	items := h.Cart.Items(ctx, userID)
	if len(items) == 0 {
		http.Error(w, "Cart is empty", http.StatusBadRequest)
		return
	}

	payload := models.CreateOrderPayload{
		TransactionID: input.TransactionID,
		Items:         MapCartItems(items),
	}

	token := auth.UpstreamToken(r, h.API)
	order, err := h.API.CreateOrder(ctx, token, payload)
	if err != nil {
		log.Println("CreateOrder upstream error:", err)
		http.Error(w, "Order creation failed", http.StatusBadGateway)
		return
	}

	// Checkout succeeded; the cart is done.
	h.Cart.ClearCart(ctx, userID)

	entry := orderLogEntry{
		UserID:        userID,
		OrderID:       order.ID,
		OrderUID:      order.OrderUID,
		TransactionID: order.TransactionID,
		Total:         order.Total,
		CreatedAt:     time.Now(),
	}
	if _, err := db.OrderLogCollection.InsertOne(ctx, entry); err != nil {
		log.Println("CreateOrder log write error:", err)
	}

	utils.RespondWithJSON(w, http.StatusCreated, order)
}

// MyOrders proxies the caller's order history.
func (h *Handlers) MyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	token := auth.UpstreamToken(r, h.API)
	resp, err := h.API.FetchMyOrders(ctx, token)
	if err != nil {
		log.Println("MyOrders upstream error:", err)
		http.Error(w, "Could not retrieve orders", http.StatusBadGateway)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
