package order

import (
	"context"
	"fmt"
	"sync"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]Order
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{orders: make(map[string]Order)}
}

func (r *MemoryRepository) Create(ctx context.Context, order Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; ok {
		return fmt.Errorf("%w: %s", ErrOrderExists, order.ID)
	}
	r.orders[order.ID] = order
	return nil
}

func (r *MemoryRepository) Update(ctx context.Context, order Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, order.ID)
	}
	r.orders[order.ID] = order
	return nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	return order, nil
}
