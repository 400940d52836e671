package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type adjusterCall struct {
	order   Order
	created bool
}

type fakeAdjuster struct {
	calls []adjusterCall
	err   error
}

func (f *fakeAdjuster) OrderSaved(ctx context.Context, o Order, created bool) (*StockAdjustedEvent, error) {
	f.calls = append(f.calls, adjusterCall{order: o, created: created})
	if f.err != nil {
		return nil, f.err
	}
	if !created {
		return nil, nil
	}
	return &StockAdjustedEvent{OrderID: o.ID, ProductID: o.ProductID, Quantity: o.Quantity, Stock: 7}, nil
}

type fakePublisher struct {
	events []StockAdjustedEvent
	err    error
}

func (f *fakePublisher) PublishStockAdjusted(ctx context.Context, event StockAdjustedEvent) error {
	f.events = append(f.events, event)
	return f.err
}

func newTestService(adjuster StockAdjuster, publisher Publisher) (*Service, *MemoryRepository, *observer.ObservedLogs) {
	repo := NewMemoryRepository()
	core, logs := observer.New(zapcore.InfoLevel)
	svc := NewService(repo, adjuster, publisher, zap.New(core), noop.NewTracerProvider().Tracer("test"))
	return svc, repo, logs
}

func TestService_CreateCallsAdjusterOnce(t *testing.T) {
	adjuster := &fakeAdjuster{}
	publisher := &fakePublisher{}
	svc, repo, _ := newTestService(adjuster, publisher)

	created, event, err := svc.Create(context.Background(), CreateInput{ID: "o-1", ProductID: "p-1", Quantity: 3})
	require.NoError(t, err)

	require.Len(t, adjuster.calls, 1)
	assert.True(t, adjuster.calls[0].created)
	assert.Equal(t, created, adjuster.calls[0].order)

	require.NotNil(t, event)
	assert.EqualValues(t, 7, event.Stock)
	assert.Equal(t, []StockAdjustedEvent{*event}, publisher.events)

	stored, err := repo.FindByID(context.Background(), "o-1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, stored.Quantity)
}

func TestService_CreateGeneratesID(t *testing.T) {
	svc, _, _ := newTestService(&fakeAdjuster{}, nil)

	created, _, err := svc.Create(context.Background(), CreateInput{ProductID: "p-1", Quantity: 1})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestService_CreateValidatesInput(t *testing.T) {
	adjuster := &fakeAdjuster{}
	svc, _, _ := newTestService(adjuster, nil)
	ctx := context.Background()

	_, _, err := svc.Create(ctx, CreateInput{Quantity: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = svc.Create(ctx, CreateInput{ProductID: "p-1", Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, adjuster.calls)
}

func TestService_CreateDuplicateSkipsAdjustment(t *testing.T) {
	adjuster := &fakeAdjuster{}
	svc, _, _ := newTestService(adjuster, nil)
	ctx := context.Background()

	_, _, err := svc.Create(ctx, CreateInput{ID: "o-1", ProductID: "p-1", Quantity: 1})
	require.NoError(t, err)

	_, _, err = svc.Create(ctx, CreateInput{ID: "o-1", ProductID: "p-1", Quantity: 1})
	assert.ErrorIs(t, err, ErrOrderExists)
	assert.Len(t, adjuster.calls, 1)
}

func TestService_AdjustmentFailureKeepsOrder(t *testing.T) {
	errSave := errors.New("product save failed")
	publisher := &fakePublisher{}
	svc, repo, logs := newTestService(&fakeAdjuster{err: errSave}, publisher)

	created, event, err := svc.Create(context.Background(), CreateInput{ID: "o-1", ProductID: "p-1", Quantity: 3})
	assert.ErrorIs(t, err, errSave)
	assert.Nil(t, event)
	assert.Equal(t, "o-1", created.ID)
	assert.Empty(t, publisher.events)

	_, err = repo.FindByID(context.Background(), "o-1")
	assert.NoError(t, err, "the order stays recorded")
	assert.Equal(t, 1, logs.FilterMessage("Stock adjustment failed after order was recorded").Len())
}

func TestService_PublishFailureIsLogged(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("broker unavailable")}
	svc, _, logs := newTestService(&fakeAdjuster{}, publisher)

	_, event, err := svc.Create(context.Background(), CreateInput{ID: "o-1", ProductID: "p-1", Quantity: 3})
	require.NoError(t, err)
	assert.NotNil(t, event)
	assert.Equal(t, 1, logs.FilterMessage("Failed to publish StockAdjusted event").Len())
}

func TestService_UpdateQuantityReportsNotCreated(t *testing.T) {
	adjuster := &fakeAdjuster{}
	svc, _, _ := newTestService(adjuster, nil)
	ctx := context.Background()

	_, _, err := svc.Create(ctx, CreateInput{ID: "o-1", ProductID: "p-1", Quantity: 3})
	require.NoError(t, err)

	updated, err := svc.UpdateQuantity(ctx, "o-1", 5)
	require.NoError(t, err)
	assert.EqualValues(t, 5, updated.Quantity)

	require.Len(t, adjuster.calls, 2)
	assert.False(t, adjuster.calls[1].created)

	got, err := svc.Get(ctx, "o-1")
	require.NoError(t, err)
	assert.EqualValues(t, 5, got.Quantity)
}

func TestService_UpdateQuantityUnknownOrder(t *testing.T) {
	adjuster := &fakeAdjuster{}
	svc, _, _ := newTestService(adjuster, nil)

	_, err := svc.UpdateQuantity(context.Background(), "missing", 2)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Empty(t, adjuster.calls)
}
