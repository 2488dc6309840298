package pgdb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/internal/repository/pgdb/converter"
	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/pinkcart/go-backend/pkg/tr"
)

const productColumns = `id, name, description, price, original_price, images, video, has_video,
	category_id, category, joined_count, max_participants, is_active, featured, in_stock,
	features, dimensions, weight, material, quality, shipping_time, created_at, updated_at`

// ProductRepo реализует репозиторий продуктов поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// List возвращает товары по фильтру, новые первыми.
func (p *ProductRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query, args := buildProductsQuery(filter)

	rows, err := tr.Conn(ctx, p.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := scanProduct(rows, &model); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *p.conv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func (p *ProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var model converter.ProductModel
	if err := scanProduct(tr.Conn(ctx, p.pool).QueryRow(ctx, query, id), &model); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	m := p.conv.ToModel(product)
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		        $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING created_at, updated_at;
	`

	err := tr.Conn(ctx, p.pool).QueryRow(ctx, query,
		m.ID, m.Name, m.Description, m.Price, m.OriginalPrice, m.Images, m.Video, m.HasVideo,
		m.CategoryID, m.Category, m.JoinedCount, m.MaxParticipants, m.IsActive, m.Featured, m.InStock,
		m.Features, m.Dimensions, m.Weight, m.Material, m.Quality, m.ShippingTime, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if postgresDuplicate(err) {
			return nil, fmt.Errorf("%s: product with id %s already exists: %w", whereami.WhereAmI(), m.ID, err)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(m), nil
}

// buildProductsQuery собирает SELECT по фильтру. Пустые поля фильтра условий не добавляют.
func buildProductsQuery(filter domain.ProductFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Category != "" {
		conds = append(conds, "category = "+arg(filter.Category))
	}
	if filter.Search != "" {
		n := arg("%" + escapeLike(filter.Search) + "%")
		conds = append(conds, fmt.Sprintf("(name ILIKE %s OR description ILIKE %s)", n, n))
	}
	if filter.Featured != nil {
		conds = append(conds, "featured = "+arg(*filter.Featured))
	}
	if filter.Active != nil {
		conds = append(conds, "is_active = "+arg(*filter.Active))
	}
	if filter.MinPrice != nil {
		conds = append(conds, "price >= "+arg(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		conds = append(conds, "price <= "+arg(*filter.MaxPrice))
	}

	var b strings.Builder
	b.WriteString("SELECT " + productColumns + " FROM products")
	if len(conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC")

	return b.String(), args
}

func scanProduct(row pgx.Row, m *converter.ProductModel) error {
	return row.Scan(
		&m.ID, &m.Name, &m.Description, &m.Price, &m.OriginalPrice, &m.Images, &m.Video, &m.HasVideo,
		&m.CategoryID, &m.Category, &m.JoinedCount, &m.MaxParticipants, &m.IsActive, &m.Featured, &m.InStock,
		&m.Features, &m.Dimensions, &m.Weight, &m.Material, &m.Quality, &m.ShippingTime, &m.CreatedAt, &m.UpdatedAt,
	)
}
