package order

// OrderCreatedEvent asks the service to record an order. OrderID is optional.
type OrderCreatedEvent struct {
	OrderID   string `json:"order_id,omitempty"`
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// StockAdjustedEvent describes a decrement applied for a newly created order.
type StockAdjustedEvent struct {
	OrderID     string `json:"order_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	Stock       int64  `json:"stock"`
}
