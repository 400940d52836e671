package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryRepository_CopiesValues(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, Product{ID: "p-1", Name: "Widget", Stock: 10}))

	found, err := repo.FindByID(ctx, "p-1")
	require.NoError(t, err)
	found.Stock = 1

	again, err := repo.FindByID(ctx, "p-1")
	require.NoError(t, err)
	assert.EqualValues(t, 10, again.Stock, "mutating a returned product must not touch the store")
}

func TestMemoryRepository_CreateDuplicate(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, Product{ID: "p-1", Name: "Widget"}))
	assert.ErrorIs(t, repo.Create(ctx, Product{ID: "p-1", Name: "Other"}), ErrProductExists)
}

func TestMemoryRepository_SaveUnknown(t *testing.T) {
	repo := NewMemoryRepository()

	err := repo.Save(context.Background(), Product{ID: "missing"})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestMemoryRepository_ListSorted(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, Product{ID: "b", Name: "B"}))
	require.NoError(t, repo.Create(ctx, Product{ID: "a", Name: "A"}))

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "a", products[0].ID)
	assert.Equal(t, "b", products[1].ID)
}

func TestService_Create(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	product, err := svc.Create(ctx, CreateInput{Name: "  Widget ", Stock: 10})
	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "Widget", product.Name)

	stored, err := svc.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 10, stored.Stock)
}

func TestService_CreateRequiresName(t *testing.T) {
	svc := NewService(NewMemoryRepository(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateInput{Name: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_CreateNegativeStockAllowed(t *testing.T) {
	svc := NewService(NewMemoryRepository(), zap.NewNop())

	product, err := svc.Create(context.Background(), CreateInput{ID: "p-neg", Name: "Backorder", Stock: -2})
	require.NoError(t, err)
	assert.EqualValues(t, -2, product.Stock)
}
