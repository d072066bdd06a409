package warehouse

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"moyo/auth"
	"moyo/models"
	"moyo/mq"
	"moyo/rdx"
	"moyo/upstream"
	"moyo/utils"

	"github.com/julienschmidt/httprouter"
)

// Handlers serves the warehouse manager's order view. The backend owns the
// orders; the gateway adds the transition table, the delivery roster and the
// live status feed on top.
type Handlers struct {
	API    *upstream.Client
	Roster *Roster
}

func NewHandlers(api *upstream.Client) *Handlers {
	return &Handlers{API: api, Roster: NewRoster(SeedRoster())}
}

// decorate stamps the roster assignment onto an order fetched upstream.
func (h *Handlers) decorate(order *models.ApiOrder) {
	if personID, ok := h.Roster.AssignedTo(order.ID); ok {
		order.AssignedTo = personID
	}
}

// ListOrders proxies the paginated order listing, optionally filtered by
// status, with roster assignments stamped on.
func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	var filter Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		st, err := ParseStatus(raw)
		if err != nil {
			http.Error(w, "Unknown status filter", http.StatusBadRequest)
			return
		}
		filter = st
	}

	token := auth.UpstreamToken(r, h.API)
	resp, err := h.API.FetchOrders(ctx, token, page)
	if err != nil {
		log.Println("ListOrders upstream error:", err)
		http.Error(w, "Failed to fetch orders", http.StatusBadGateway)
		return
	}

	orders := resp.Data
	if filter != "" {
		filtered := make([]models.ApiOrder, 0, len(orders))
		for _, order := range orders {
			if st, err := ParseStatus(order.Status); err == nil && st == filter {
				filtered = append(filtered, order)
			}
		}
		orders = filtered
	}
	for i := range orders {
		h.decorate(&orders[i])
	}
	resp.Data = orders

	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GetOrder returns one order with its available operator actions.
func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID, err := strconv.Atoi(ps.ByName("orderId"))
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	token := auth.UpstreamToken(r, h.API)
	order, err := h.API.FetchOrder(ctx, token, orderID)
	if err != nil {
		log.Println("GetOrder upstream error:", err)
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	h.decorate(&order)

	actions := []Action{}
	if st, err := ParseStatus(order.Status); err == nil {
		actions = ActionsFor(st)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"order":   order,
		"actions": actions,
	})
}

// OrderStatus answers from the last-known-status cache when it can, and
// only falls through to the backend on a cold cache. Poll-friendly.
func (h *Handlers) OrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID, err := strconv.Atoi(ps.ByName("orderId"))
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	if status := rdx.CachedOrderStatus(orderID); status != "" {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"orderId": orderID,
			"status":  status,
			"cached":  true,
		})
		return
	}

	token := auth.UpstreamToken(r, h.API)
	order, err := h.API.FetchOrder(ctx, token, orderID)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if err := rdx.CacheOrderStatus(orderID, order.Status); err != nil {
		log.Println("OrderStatus cache error:", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"orderId": orderID,
		"status":  order.Status,
		"cached":  false,
	})
}

// UpdateStatus moves an order along the fulfillment flow. The edge is
// checked locally first, then confirmed upstream; only a confirmed change
// updates the cache and reaches the feed.
func (h *Handlers) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID, err := strconv.Atoi(ps.ByName("orderId"))
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	to, err := ParseStatus(body.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token := auth.UpstreamToken(r, h.API)
	order, err := h.API.FetchOrder(ctx, token, orderID)
	if err != nil {
		log.Println("UpdateStatus fetch error:", err)
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	from, err := ParseStatus(order.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err := Transition(from, to); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.API.UpdateOrderStatus(ctx, token, orderID, string(to))
	if err != nil {
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) {
			// Backend refused; its message is the one the operator
			// should see.
			utils.RespondWithError(w, apiErr.Status, apiErr.Error())
			return
		}
		log.Println("UpdateStatus upstream error:", err)
		http.Error(w, "Failed to update order status", http.StatusBadGateway)
		return
	}
	h.decorate(&updated)

	if err := rdx.CacheOrderStatus(orderID, string(to)); err != nil {
		log.Println("UpdateStatus cache error:", err)
	}
	mq.Emit(ctx, models.StatusEvent{
		OrderID:  orderID,
		OrderUID: updated.OrderUID,
		From:     string(from),
		To:       string(to),
		Actor:    utils.GetUserIDFromRequest(r),
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"order":   updated,
		"actions": ActionsFor(to),
	})
}

// AssignOrder hands a packed or dispatched order to a delivery person. A
// packed order is dispatched upstream as part of the same action.
func (h *Handlers) AssignOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID, err := strconv.Atoi(ps.ByName("orderId"))
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	var body struct {
		PersonID string `json:"personId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.PersonID == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token := auth.UpstreamToken(r, h.API)
	order, err := h.API.FetchOrder(ctx, token, orderID)
	if err != nil {
		log.Println("AssignOrder fetch error:", err)
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	status, err := ParseStatus(order.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	if err := h.Roster.Assign(orderID, status, body.PersonID); err != nil {
		switch {
		case errors.Is(err, ErrPersonNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNotDeliverable), errors.Is(err, ErrAlreadyAssigned):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		}
		return
	}

	// A packed order goes out the door with its rider. If the backend
	// refuses the dispatch, the assignment must not survive it.
	if status == StatusPacked {
		updated, err := h.API.UpdateOrderStatus(ctx, token, orderID, string(StatusDispatched))
		if err != nil {
			h.Roster.rollback(orderID, body.PersonID)
			var apiErr *upstream.APIError
			if errors.As(err, &apiErr) {
				utils.RespondWithError(w, apiErr.Status, apiErr.Error())
				return
			}
			log.Println("AssignOrder dispatch error:", err)
			http.Error(w, "Failed to dispatch order", http.StatusBadGateway)
			return
		}
		order = updated
		if err := rdx.CacheOrderStatus(orderID, string(StatusDispatched)); err != nil {
			log.Println("AssignOrder cache error:", err)
		}
		mq.Emit(ctx, models.StatusEvent{
			OrderID:  orderID,
			OrderUID: order.OrderUID,
			From:     string(StatusPacked),
			To:       string(StatusDispatched),
			Actor:    utils.GetUserIDFromRequest(r),
		})
	}
	h.decorate(&order)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"order":      order,
		"assignedTo": body.PersonID,
	})
}

// CustomerOrders lists one customer's order history for the warehouse
// view, with roster assignments stamped on.
func (h *Handlers) CustomerOrders(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := strconv.Atoi(ps.ByName("userId"))
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	token := auth.UpstreamToken(r, h.API)
	orders, total, err := h.API.FetchUserOrders(ctx, token, userID)
	if err != nil {
		log.Println("CustomerOrders upstream error:", err)
		http.Error(w, "Failed to fetch customer orders", http.StatusBadGateway)
		return
	}
	for i := range orders {
		h.decorate(&orders[i])
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"orders": orders,
		"total":  total,
	})
}

// ListPersonnel returns the delivery roster.
func (h *Handlers) ListPersonnel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"personnel": h.Roster.People(),
	})
}

// AvailablePersonnel returns the people who can take another order.
func (h *Handlers) AvailablePersonnel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"personnel": h.Roster.Available(),
	})
}

// maxStatsPages bounds the stats rollup walk.
const maxStatsPages = 20

// Stats rolls up order counts per status across the upstream listing.
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	token := auth.UpstreamToken(r, h.API)
	counts := map[string]int{}
	total := 0

	page := 1
	for {
		resp, err := h.API.FetchOrders(ctx, token, page)
		if err != nil {
			log.Println("Stats upstream error:", err)
			http.Error(w, "Failed to fetch orders", http.StatusBadGateway)
			return
		}
		for _, order := range resp.Data {
			counts[order.Status]++
			total++
		}
		if page >= resp.LastPage || page >= maxStatsPages {
			break
		}
		page++
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"total":    total,
		"byStatus": counts,
	})
}
