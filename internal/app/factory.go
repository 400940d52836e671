package app

import (
	"net/http"

	"orderservice/internal/catalog"
	"orderservice/internal/config"
	"orderservice/internal/httpapi"
	"orderservice/internal/order"
	"orderservice/internal/stock"
)

// ServiceFactory creates business logic services with their dependencies
type ServiceFactory struct {
	container *Container
}

func NewServiceFactory(container *Container) *ServiceFactory {
	return &ServiceFactory{container: container}
}

func (f *ServiceFactory) CreateProductService() *catalog.Service {
	return catalog.NewService(f.container.Products(), f.container.Logger())
}

func (f *ServiceFactory) CreateStockAdjuster() *stock.Adjuster {
	return stock.NewAdjuster(f.container.Products(), f.container.Logger(), f.container.Tracer())
}

// CreateOrderService wires the order workflow to the stock adjuster and, when
// Kafka is enabled, the StockAdjusted publisher.
func (f *ServiceFactory) CreateOrderService() *order.Service {
	var publisher order.Publisher
	if producer := f.container.MessageProducer(); producer != nil {
		publisher = order.NewKafkaPublisher(producer, f.container.Logger())
	}

	return order.NewService(
		f.container.Orders(),
		f.CreateStockAdjuster(),
		publisher,
		f.container.Logger(),
		f.container.Tracer(),
	)
}

// CreateConsumerService returns nil when Kafka is disabled.
func (f *ServiceFactory) CreateConsumerService(orders *order.Service) order.ConsumerService {
	consumer := f.container.MessageConsumer()
	if consumer == nil {
		return nil
	}
	handler := order.NewMessageHandler(orders, f.container.Logger())
	return order.NewConsumerService(consumer, handler, f.container.Logger())
}

func (f *ServiceFactory) CreateHTTPServer(orders *order.Service) *http.Server {
	return &http.Server{
		Addr:              f.container.Config().HTTPAddr,
		Handler:           httpapi.NewRouter(f.CreateProductService(), orders, f.container.Logger()),
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}
}
