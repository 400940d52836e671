// Package stock applies order quantities to product stock.
//
// The adjustment is a plain read-modify-write with no locking or transaction:
// two orders created at the same time for the same product can both read the
// same stock and one decrement is lost. Stock is not clamped and may end up
// negative.
package stock

import (
	"context"
	"fmt"
	"time"

	"orderservice/internal/catalog"
	"orderservice/internal/order"
	"orderservice/internal/platform/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Adjuster decrements a product's stock when an order is first created.
type Adjuster struct {
	products catalog.Repository
	logger   observability.Logger
	tracer   observability.Tracer
	now      func() time.Time
}

func NewAdjuster(products catalog.Repository, logger observability.Logger, tracer observability.Tracer) *Adjuster {
	return &Adjuster{
		products: products,
		logger:   logger,
		tracer:   tracer,
		now:      time.Now,
	}
}

// OrderSaved runs after an order write. It does nothing unless created is true.
// Errors from loading or saving the product are returned without any undo.
func (a *Adjuster) OrderSaved(ctx context.Context, o order.Order, created bool) (*order.StockAdjustedEvent, error) {
	if !created {
		return nil, nil
	}

	ctx, span := a.tracer.Start(ctx, "stock_adjust")
	defer span.End()

	span.SetAttributes(
		attribute.String("order.id", o.ID),
		attribute.String("product.id", o.ProductID),
		attribute.Int64("order.quantity", o.Quantity),
	)

	product, err := a.products.FindByID(ctx, o.ProductID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "product lookup failed")
		return nil, fmt.Errorf("load product %s for order %s: %w", o.ProductID, o.ID, err)
	}

	product.Stock -= o.Quantity
	product.UpdatedAt = a.now().UTC()

	if err := a.products.Save(ctx, product); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "product save failed")
		return nil, fmt.Errorf("save product %s for order %s: %w", product.ID, o.ID, err)
	}

	a.logger.Info(fmt.Sprintf("Stock updated for product %s: %d", product.Name, product.Stock),
		zap.String("product_id", product.ID),
		zap.String("product_name", product.Name),
		zap.Int64("stock", product.Stock),
		zap.String("order_id", o.ID),
	)

	span.SetAttributes(attribute.Int64("product.stock", product.Stock))
	span.SetStatus(codes.Ok, "stock adjusted")

	return &order.StockAdjustedEvent{
		OrderID:     o.ID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    o.Quantity,
		Stock:       product.Stock,
	}, nil
}
