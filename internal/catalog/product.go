// Package catalog owns products and their stock counters.
package catalog

import (
	"context"
	"errors"
	"time"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductExists   = errors.New("product already exists")
	ErrInvalidInput    = errors.New("invalid product input")
)

// Product is an inventory item. Stock is a plain signed counter and may go
// below zero.
type Product struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Stock     int64     `json:"stock" bson:"stock"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Repository persists products. Save writes the whole row as given; it never
// re-reads the stored counter.
type Repository interface {
	Create(ctx context.Context, product Product) error
	FindByID(ctx context.Context, id string) (Product, error)
	Save(ctx context.Context, product Product) error
	List(ctx context.Context) ([]Product, error)
}
