package pgdb

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/internal/repository/pgdb/converter"
	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/pinkcart/go-backend/pkg/tr"
)

// CategoryRepo реализует репозиторий категорий поверх PostgreSQL.
type CategoryRepo struct {
	pool *pgxpool.Pool
	conv converter.CategoryConverter
}

func NewCategoryRepo(pool *pgxpool.Pool, conv converter.CategoryConverter) *CategoryRepo {
	return &CategoryRepo{pool: pool, conv: conv}
}

// List возвращает категории в порядке добавления.
func (c *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, name, slug, description, icon, created_at, updated_at
		FROM categories
		ORDER BY created_at, name
	`

	rows, err := tr.Conn(ctx, c.pool).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Category, 0)
	for rows.Next() {
		var m converter.CategoryModel
		if err := rows.Scan(&m.ID, &m.Name, &m.Slug, &m.Description, &m.Icon, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *c.conv.ToEntity(&m))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// Create идемпотентно создаёт категорию по slug. Для существующего slug возвращается сохранённая запись.
func (c *CategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	m := c.conv.ToModel(category)
	query := `
		INSERT INTO categories (id, name, slug, description, icon, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (slug) DO UPDATE SET updated_at = categories.updated_at
		RETURNING id, name, slug, description, icon, created_at, updated_at;
	`

	var model converter.CategoryModel
	if err := tr.Conn(ctx, c.pool).QueryRow(ctx, query,
		m.ID, m.Name, m.Slug, m.Description, m.Icon, m.CreatedAt, m.UpdatedAt,
	).Scan(
		&model.ID, &model.Name, &model.Slug, &model.Description, &model.Icon, &model.CreatedAt, &model.UpdatedAt,
	); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

func (c *CategoryRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := tr.Conn(ctx, c.pool).QueryRow(ctx, `SELECT count(*) FROM categories`).Scan(&count); err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return count, nil
}
