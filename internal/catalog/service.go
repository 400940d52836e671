package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"orderservice/internal/platform/observability"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateInput describes a new product. ID is generated when empty.
type CreateInput struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stock int64  `json:"stock"`
}

type Service struct {
	repo   Repository
	logger observability.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger observability.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Product{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}

	product := Product{
		ID:        id,
		Name:      name,
		Stock:     in.Stock,
		UpdatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID),
		zap.String("product_name", product.Name),
		zap.Int64("stock", product.Stock),
	)
	return product, nil
}

func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}
