package order

import (
	"context"
	"fmt"
	"time"

	"orderservice/internal/platform/observability"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// CreateInput describes a new order. ID is generated when empty.
type CreateInput struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type Service struct {
	repo      Repository
	adjuster  StockAdjuster
	publisher Publisher
	logger    observability.Logger
	tracer    observability.Tracer
	now       func() time.Time
}

// NewService wires the order workflow. publisher may be nil.
func NewService(repo Repository, adjuster StockAdjuster, publisher Publisher, logger observability.Logger, tracer observability.Tracer) *Service {
	return &Service{
		repo:      repo,
		adjuster:  adjuster,
		publisher: publisher,
		logger:    logger,
		tracer:    tracer,
		now:       time.Now,
	}
}

// Create records the order, then adjusts stock for it. When the adjustment
// fails the order stays recorded and the error is returned as is.
func (s *Service) Create(ctx context.Context, in CreateInput) (Order, *StockAdjustedEvent, error) {
	ctx, span := s.tracer.Start(ctx, "order_create")
	defer span.End()

	if in.ProductID == "" {
		return Order{}, nil, fmt.Errorf("%w: product_id is required", ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return Order{}, nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}
	now := s.now().UTC()
	order := Order{
		ID:        id,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	span.SetAttributes(
		attribute.String("order.id", order.ID),
		attribute.String("product.id", order.ProductID),
		attribute.Int64("order.quantity", order.Quantity),
	)

	if err := s.repo.Create(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "order write failed")
		return Order{}, nil, fmt.Errorf("create order: %w", err)
	}
	s.logger.Info("Order created", zap.String("order_id", order.ID), zap.String("product_id", order.ProductID))

	adjusted, err := s.adjuster.OrderSaved(ctx, order, true)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "stock adjustment failed")
		s.logger.Error("Stock adjustment failed after order was recorded",
			zap.Error(err),
			zap.String("order_id", order.ID),
		)
		return order, nil, err
	}

	s.publish(ctx, adjusted)
	span.SetStatus(codes.Ok, "order created")
	return order, adjusted, nil
}

// UpdateQuantity rewrites an existing order. Stock is left untouched.
func (s *Service) UpdateQuantity(ctx context.Context, id string, quantity int64) (Order, error) {
	ctx, span := s.tracer.Start(ctx, "order_update")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", id))

	if quantity <= 0 {
		return Order{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Order{}, err
	}
	order.Quantity = quantity
	order.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "order write failed")
		return Order{}, fmt.Errorf("update order: %w", err)
	}

	if _, err := s.adjuster.OrderSaved(ctx, order, false); err != nil {
		return order, err
	}
	return order, nil
}

func (s *Service) Get(ctx context.Context, id string) (Order, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) publish(ctx context.Context, event *StockAdjustedEvent) {
	if s.publisher == nil || event == nil {
		return
	}
	if err := s.publisher.PublishStockAdjusted(ctx, *event); err != nil {
		s.logger.Error("Failed to publish StockAdjusted event",
			zap.Error(err),
			zap.String("order_id", event.OrderID),
		)
	}
}
