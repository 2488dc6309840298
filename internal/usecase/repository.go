package usecase

import (
	"context"

	"github.com/pinkcart/go-backend/internal/domain"
)

type ProductRepository interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	// GetByID возвращает e.ErrProductNotFound, если товара нет.
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Count(ctx context.Context) (int64, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// List возвращает заказы, новые первыми.
	List(ctx context.Context) ([]domain.Order, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id string) error
	// MarkAsPending возвращает событие в очередь после неудачной отправки.
	MarkAsPending(ctx context.Context, id string) error
}

type CacheRepository interface {
	// GetProduct возвращает false при промахе.
	GetProduct(ctx context.Context, id string) (*domain.Product, bool, error)
	SetProduct(ctx context.Context, product *domain.Product) error
	DeleteProducts(ctx context.Context, ids []string) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}
