package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryRepository keeps products in a map. Values are copied in and out, so
// callers mutate their own copy until they Save it.
type MemoryRepository struct {
	mu       sync.RWMutex
	products map[string]Product
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{products: make(map[string]Product)}
}

func (r *MemoryRepository) Create(ctx context.Context, product Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; ok {
		return fmt.Errorf("%w: %s", ErrProductExists, product.ID)
	}
	r.products[product.ID] = product
	return nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return product, nil
}

func (r *MemoryRepository) Save(ctx context.Context, product Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrProductNotFound, product.ID)
	}
	r.products[product.ID] = product
	return nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}
