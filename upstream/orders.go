package upstream

import (
	"context"
	"fmt"
	"net/http"

	"moyo/models"
)

func userPath(userID int) string {
	return fmt.Sprintf("/users/%d", userID)
}

// CreateOrder places an order via POST /orders.
func (c *Client) CreateOrder(ctx context.Context, token string, payload models.CreateOrderPayload) (models.OrderResponse, error) {
	var order models.OrderResponse
	err := c.do(ctx, http.MethodPost, "/orders", token, payload, &order)
	return order, err
}

// FetchMyOrders lists the calling customer's order history.
func (c *Client) FetchMyOrders(ctx context.Context, token string) (models.MyOrdersResponse, error) {
	var resp models.MyOrdersResponse
	err := c.doPlain(ctx, http.MethodGet, "/my-orders", token, nil, &resp)
	return resp, err
}

// FetchOrders pages through all orders (warehouse view).
func (c *Client) FetchOrders(ctx context.Context, token string, page int) (models.ApiOrdersResponse, error) {
	if page < 1 {
		page = 1
	}
	var resp models.ApiOrdersResponse
	err := c.doPlain(ctx, http.MethodGet, fmt.Sprintf("/orders?page=%d", page), token, nil, &resp)
	return resp, err
}

// FetchOrder loads a single order by id.
func (c *Client) FetchOrder(ctx context.Context, token string, orderID int) (models.ApiOrder, error) {
	var order models.ApiOrder
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), token, nil, &order)
	return order, err
}

// FetchUserOrders lists one customer's orders for the warehouse view.
func (c *Client) FetchUserOrders(ctx context.Context, token string, userID int) ([]models.ApiOrder, int, error) {
	var resp struct {
		Data  []models.ApiOrder `json:"data"`
		Total int               `json:"total"`
	}
	err := c.doPlain(ctx, http.MethodGet, userPath(userID)+"/orders", token, nil, &resp)
	return resp.Data, resp.Total, err
}

// UpdateOrderStatus PATCHes /orders/:id/status. The backend decides whether
// the transition is legal; callers must not assume the local table is
// authoritative.
func (c *Client) UpdateOrderStatus(ctx context.Context, token string, orderID int, status string) (models.ApiOrder, error) {
	var order models.ApiOrder
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/orders/%d/status", orderID), token, map[string]string{
		"status": status,
	}, &order)
	return order, err
}
