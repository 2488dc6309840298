package usecase

import (
	"context"

	"github.com/pinkcart/go-backend/internal/domain"
)

type CatalogUC interface {
	ListProducts(ctx context.Context, req *ListProductsReq) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error)
	Seed(ctx context.Context) (*SeedRes, error)
}

type OrderUC interface {
	PlaceOrder(ctx context.Context, req *PlaceOrderReq) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
}
