package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"orderservice/internal/config"
	"orderservice/internal/order"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Application holds all the components and manages the application lifecycle
type Application struct {
	ctx       context.Context
	cancel    context.CancelFunc
	container *Container
	server    *http.Server
	consumer  order.ConsumerService
}

// NewApplication creates and fully initializes a new Application instance
func NewApplication(ctx context.Context) (*Application, error) {
	appCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)

	container, err := NewContainer(appCtx)
	if err != nil {
		cancel()
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)

	factory := NewServiceFactory(container)
	orders := factory.CreateOrderService()

	app := &Application{
		ctx:       appCtx,
		cancel:    cancel,
		container: container,
		server:    factory.CreateHTTPServer(orders),
		consumer:  factory.CreateConsumerService(orders),
	}

	container.Logger().Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP and consumes Kafka until the context is cancelled or either
// side fails.
func (app *Application) Run() error {
	g, ctx := errgroup.WithContext(app.ctx)

	g.Go(func() error {
		app.container.Logger().Info("HTTP server listening", zap.String("addr", app.server.Addr))
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if app.consumer != nil {
		g.Go(func() error {
			return app.consumer.Start(ctx)
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		return app.server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Shutdown gracefully shuts down all application components
func (app *Application) Shutdown() {
	app.container.Logger().Info("Starting application shutdown...")

	if app.cancel != nil {
		app.cancel()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	app.container.Shutdown(shutdownCtx)
}
