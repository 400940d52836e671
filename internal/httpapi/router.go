// Package httpapi exposes products and orders over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"orderservice/internal/catalog"
	"orderservice/internal/order"
	"orderservice/internal/platform/observability"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductService interface {
	Create(ctx context.Context, in catalog.CreateInput) (catalog.Product, error)
	Get(ctx context.Context, id string) (catalog.Product, error)
	List(ctx context.Context) ([]catalog.Product, error)
}

type OrderService interface {
	Create(ctx context.Context, in order.CreateInput) (order.Order, *order.StockAdjustedEvent, error)
	UpdateQuantity(ctx context.Context, id string, quantity int64) (order.Order, error)
	Get(ctx context.Context, id string) (order.Order, error)
}

type handler struct {
	products ProductService
	orders   OrderService
	logger   observability.Logger
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(products ProductService, orders OrderService, logger observability.Logger) *gin.Engine {
	h := &handler{products: products, orders: orders, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery(), h.requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/products", h.createProduct)
	r.GET("/products", h.listProducts)
	r.GET("/products/:id", h.getProduct)

	r.POST("/orders", h.createOrder)
	r.GET("/orders/:id", h.getOrder)
	r.PUT("/orders/:id", h.updateOrder)

	return r
}

func (h *handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		h.logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
		)
	}
}

func (h *handler) createProduct(c *gin.Context) {
	var in catalog.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	product, err := h.products.Create(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *handler) listProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *handler) getProduct(c *gin.Context) {
	product, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

type createOrderResponse struct {
	Order      order.Order               `json:"order"`
	Adjustment *order.StockAdjustedEvent `json:"adjustment,omitempty"`
}

func (h *handler) createOrder(c *gin.Context) {
	var in order.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	created, adjusted, err := h.orders.Create(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createOrderResponse{Order: created, Adjustment: adjusted})
}

func (h *handler) getOrder(c *gin.Context) {
	found, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

type updateOrderRequest struct {
	Quantity int64 `json:"quantity"`
}

func (h *handler) updateOrder(c *gin.Context) {
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	updated, err := h.orders.UpdateQuantity(c.Request.Context(), c.Param("id"), req.Quantity)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handler) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.Error(err), zap.String("path", c.FullPath()))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound), errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrInvalidInput), errors.Is(err, order.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrProductExists), errors.Is(err, order.ErrOrderExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
