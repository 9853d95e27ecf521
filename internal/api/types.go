package api

import "time"

// MenuItem is a pizza on the remote menu. Read-only: fetched fresh on each
// navigation to the menu screen and never cached beyond it.
type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	UnitPrice   float64  `json:"unitPrice"`
	ImageURL    string   `json:"imageUrl"`
	Ingredients []string `json:"ingredients"`
	SoldOut     bool     `json:"soldOut"`
}

// OrderItem is one cart line as the backend represents it.
type OrderItem struct {
	PizzaID    string  `json:"pizzaId"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
}

// Order is owned by the backend. The client only sends create and partial
// update requests and reflects whatever the backend returns.
type Order struct {
	ID                string      `json:"id"`
	CustomerName      string      `json:"customer"`
	Phone             string      `json:"phone"`
	Address           string      `json:"address"`
	Cart              []OrderItem `json:"cart"`
	Priority          bool        `json:"priority"`
	Status            string      `json:"status"`
	EstimatedDelivery time.Time   `json:"estimatedDelivery"`
	OrderPrice        float64     `json:"orderPrice"`
	PriorityPrice     float64     `json:"priorityPrice"`
	Position          string      `json:"position"`
}

// TotalPrice is what the customer pays: the order price plus the priority
// surcharge the backend computed (20% of the order price when set).
func (o Order) TotalPrice() float64 {
	return o.OrderPrice + o.PriorityPrice
}

// OrderPayload is the order-creation request body.
type OrderPayload struct {
	CustomerName string      `json:"customer"`
	Phone        string      `json:"phone"`
	Address      string      `json:"address"`
	Cart         []OrderItem `json:"cart"`
	Priority     bool        `json:"priority"`
	Position     string      `json:"position,omitempty"`
}

// OrderPatch is a partial update. Only non-nil fields are sent.
type OrderPatch struct {
	Priority *bool `json:"priority,omitempty"`
}
