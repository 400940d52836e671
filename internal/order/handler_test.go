package order

import (
	"context"
	"errors"
	"sync"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCreator struct {
	inputs []CreateInput
	err    error
}

func (f *fakeCreator) Create(ctx context.Context, in CreateInput) (Order, *StockAdjustedEvent, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return Order{}, nil, f.err
	}
	return Order{ID: in.ID, ProductID: in.ProductID, Quantity: in.Quantity}, &StockAdjustedEvent{Stock: 1}, nil
}

func TestHandleOrderCreated_CreatesOrder(t *testing.T) {
	creator := &fakeCreator{}
	handler := NewMessageHandler(creator, zap.NewNop())

	err := handler.HandleOrderCreated(context.Background(), kafkago.Message{
		Key:   []byte("o-1"),
		Value: []byte(`{"order_id":"o-1","product_id":"p-1","quantity":3}`),
		Headers: []kafkago.Header{
			{Key: "traceparent", Value: []byte("00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []CreateInput{{ID: "o-1", ProductID: "p-1", Quantity: 3}}, creator.inputs)
}

func TestHandleOrderCreated_InvalidJSON(t *testing.T) {
	creator := &fakeCreator{}
	handler := NewMessageHandler(creator, zap.NewNop())

	err := handler.HandleOrderCreated(context.Background(), kafkago.Message{Value: []byte(`{not json`)})
	assert.ErrorContains(t, err, "decode OrderCreated event")
	assert.Empty(t, creator.inputs)
}

func TestHandleOrderCreated_PropagatesServiceError(t *testing.T) {
	errFailed := errors.New("failed")
	handler := NewMessageHandler(&fakeCreator{err: errFailed}, zap.NewNop())

	err := handler.HandleOrderCreated(context.Background(), kafkago.Message{
		Value: []byte(`{"product_id":"p-1","quantity":1}`),
	})
	assert.ErrorIs(t, err, errFailed)
}

// scriptedConsumer returns its messages and errors in order, then blocks
// until the context is cancelled.
type scriptedConsumer struct {
	mu      sync.Mutex
	results []func() (*kafkago.Message, error)
	closed  bool
}

func (c *scriptedConsumer) ReadMessage(ctx context.Context) (*kafkago.Message, error) {
	c.mu.Lock()
	if len(c.results) > 0 {
		next := c.results[0]
		c.results = c.results[1:]
		c.mu.Unlock()
		return next()
	}
	c.mu.Unlock()

	<-ctx.Done()
	return nil, ctx.Err()
}

func (c *scriptedConsumer) Close() error {
	c.closed = true
	return nil
}

type recordingHandler struct {
	mu       sync.Mutex
	messages []kafkago.Message
	done     chan struct{}
	want     int
}

func (h *recordingHandler) HandleOrderCreated(ctx context.Context, msg kafkago.Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, msg)
	if len(h.messages) == h.want {
		close(h.done)
	}
	return errors.New("handler errors do not stop the loop")
}

func TestConsumerService_ContinuesPastErrorsAndStopsOnCancel(t *testing.T) {
	consumer := &scriptedConsumer{results: []func() (*kafkago.Message, error){
		func() (*kafkago.Message, error) { return &kafkago.Message{Key: []byte("a")}, nil },
		func() (*kafkago.Message, error) { return nil, errors.New("broker hiccup") },
		func() (*kafkago.Message, error) { return &kafkago.Message{Key: []byte("b")}, nil },
	}}
	handler := &recordingHandler{done: make(chan struct{}), want: 2}
	svc := NewConsumerService(consumer, handler, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() { result <- svc.Start(ctx) }()

	<-handler.done
	cancel()

	require.NoError(t, <-result)
	require.Len(t, handler.messages, 2)
	assert.Equal(t, "a", string(handler.messages[0].Key))
	assert.Equal(t, "b", string(handler.messages[1].Key))
}
