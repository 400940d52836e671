// Package order records customer orders and drives the stock adjustment that
// follows each new order.
package order

import (
	"context"
	"errors"
	"time"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrOrderExists   = errors.New("order already exists")
	ErrInvalidInput  = errors.New("invalid order input")
)

// Order is a customer's requested quantity of one product.
type Order struct {
	ID        string    `json:"id" bson:"_id"`
	ProductID string    `json:"product_id" bson:"product_id"`
	Quantity  int64     `json:"quantity" bson:"quantity"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type Repository interface {
	Create(ctx context.Context, order Order) error
	Update(ctx context.Context, order Order) error
	FindByID(ctx context.Context, id string) (Order, error)
}

// StockAdjuster is called after every successful order write. created is true
// only for the write that first inserted the order.
type StockAdjuster interface {
	OrderSaved(ctx context.Context, order Order, created bool) (*StockAdjustedEvent, error)
}

// Publisher announces applied stock adjustments.
type Publisher interface {
	PublishStockAdjusted(ctx context.Context, event StockAdjustedEvent) error
}
