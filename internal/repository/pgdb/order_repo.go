package pgdb

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/internal/repository/pgdb/converter"
	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/pinkcart/go-backend/pkg/tr"
)

// OrderRepo хранит заказы в таблице orders. Позиции лежат в JSONB.
type OrderRepo struct {
	pool *pgxpool.Pool
	conv converter.OrderConverter
}

func NewOrderRepo(pool *pgxpool.Pool, conv converter.OrderConverter) *OrderRepo {
	return &OrderRepo{pool: pool, conv: conv}
}

func (o *OrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	m, err := o.conv.ToModel(order)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO orders (
			id, order_id, customer_name, customer_phone, items,
			total_price, total_items, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at;
	`

	if err := tr.Conn(ctx, o.pool).QueryRow(ctx, query,
		m.ID, m.OrderID, m.CustomerName, m.CustomerPhone, m.Items,
		m.TotalPrice, m.TotalItems, m.Status, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.CreatedAt, &m.UpdatedAt); err != nil {
		if postgresDuplicate(err) {
			return nil, fmt.Errorf("%s: order %s already exists: %w", whereami.WhereAmI(), m.OrderID, err)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	res, err := o.conv.ToEntity(m)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return res, nil
}

// List возвращает все заказы, новые первыми.
func (o *OrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT id, order_id, customer_name, customer_phone, items,
		       total_price, total_items, status, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC
	`

	rows, err := tr.Conn(ctx, o.pool).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Order, 0)
	for rows.Next() {
		var m converter.OrderModel
		if err := rows.Scan(
			&m.ID, &m.OrderID, &m.CustomerName, &m.CustomerPhone, &m.Items,
			&m.TotalPrice, &m.TotalItems, &m.Status, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		order, err := o.conv.ToEntity(&m)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
