package models

// CreateOrderItem is one line of the upstream order-creation payload.
type CreateOrderItem struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

// CreateOrderPayload is the body of POST /orders upstream.
type CreateOrderPayload struct {
	TransactionID string            `json:"transaction_id"`
	Items         []CreateOrderItem `json:"items"`
}

// OrderResponse is the order record returned after creation.
type OrderResponse struct {
	ID            int               `json:"id"`
	OrderUID      string            `json:"order_uid"`
	TransactionID string            `json:"transaction_id"`
	Subtotal      float64           `json:"subtotal"`
	Tax           float64           `json:"tax"`
	Total         float64           `json:"total"`
	Status        string            `json:"status"`
	Items         []CreateOrderItem `json:"items"`
}

// MyOrderItem is a line of a customer's past order.
type MyOrderItem struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// MyOrder is one entry of the customer's order history.
type MyOrder struct {
	ID        int           `json:"id"`
	OrderUID  string        `json:"order_uid"`
	Status    string        `json:"status"`
	Total     string        `json:"total"`
	CreatedAt string        `json:"created_at"`
	Items     []MyOrderItem `json:"items"`
}

// MyOrdersResponse is the paginated order-history envelope.
type MyOrdersResponse struct {
	Data        []MyOrder `json:"data"`
	CurrentPage int       `json:"current_page"`
	Total       int       `json:"total"`
}
