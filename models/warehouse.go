package models

// ApiOrderUser identifies the customer on a warehouse order.
type ApiOrderUser struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile,omitempty"`
}

// ApiOrderItem is one fulfilled line of a warehouse order. Money fields
// arrive as strings from the backend.
type ApiOrderItem struct {
	ID          int    `json:"id"`
	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
	Total       string `json:"total"`
}

// ApiOrder is an order as the warehouse view sees it. The backend owns the
// record; locally cached copies only reflect the last known status.
type ApiOrder struct {
	ID            int            `json:"id"`
	OrderUID      string         `json:"order_uid"`
	Status        string         `json:"status"`
	TransactionID string         `json:"transaction_id"`
	Subtotal      string         `json:"subtotal"`
	Tax           string         `json:"tax"`
	Total         string         `json:"total"`
	PaidAt        string         `json:"paid_at,omitempty"`
	CreatedAt     string         `json:"created_at"`
	UpdatedAt     string         `json:"updated_at"`
	User          ApiOrderUser   `json:"user"`
	Items         []ApiOrderItem `json:"items"`
	AssignedTo    string         `json:"assignedTo,omitempty"`
}

// ApiOrdersResponse is the paginated warehouse order listing.
type ApiOrdersResponse struct {
	CurrentPage int        `json:"current_page"`
	Data        []ApiOrder `json:"data"`
	LastPage    int        `json:"last_page"`
	PerPage     int        `json:"per_page"`
	Total       int        `json:"total"`
}

// DeliveryPerson is a roster entry used for assignment-target selection.
// The roster lives in memory only.
type DeliveryPerson struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone,omitempty"`
	Location      string `json:"location,omitempty"`
	Vehicle       string `json:"vehicle,omitempty"` // bike, van, truck, auto
	Capacity      int    `json:"capacity"`
	CurrentOrders int    `json:"currentOrders"`
	Rating        float64 `json:"rating,omitempty"`
	Available     bool   `json:"available"`
}

// StatusEvent is published when a warehouse order changes status.
type StatusEvent struct {
	OrderID  int    `json:"order_id"`
	OrderUID string `json:"order_uid,omitempty"`
	From     string `json:"from"`
	To       string `json:"to"`
	Actor    string `json:"actor,omitempty"`
}
