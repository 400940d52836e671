package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(ctx context.Context, order Order) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO orders (id, product_id, quantity, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		order.ID, order.ProductID, order.Quantity, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", ErrOrderExists, order.ID)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, order Order) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET product_id = $2, quantity = $3, updated_at = $4 WHERE id = $1`,
		order.ID, order.ProductID, order.Quantity, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, order.ID)
	}
	return nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (Order, error) {
	var o Order
	err := r.pool.QueryRow(ctx,
		`SELECT id, product_id, quantity, created_at, updated_at FROM orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.ProductID, &o.Quantity, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
		}
		return Order{}, fmt.Errorf("select order: %w", err)
	}
	return o, nil
}
