package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/pinkcart/go-backend/pkg/logger"
	"github.com/pinkcart/go-backend/pkg/tr"
)

const cacheWriteTimeout = 500 * time.Millisecond

// CatalogUseCase реализует чтение каталога, добавление товаров и начальное заполнение.
type CatalogUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	cacheRepo    CacheRepository
	imagesInfra  ImagesInfra
	trManager    tr.Manager
	categories   CategoryResolver
	logger       logger.Logger
	now          func() time.Time
}

func NewCatalogUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	cacheRepo CacheRepository,
	imagesInfra ImagesInfra,
	trManager tr.Manager,
	categories CategoryResolver,
	logger logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cacheRepo:    cacheRepo,
		imagesInfra:  imagesInfra,
		trManager:    trManager,
		categories:   categories,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// ListProducts возвращает товары по фильтру, новые первыми.
// Неизвестный slug категории не фильтрует. Ошибки хранилища возвращаются как есть.
func (c *CatalogUseCase) ListProducts(ctx context.Context, req *ListProductsReq) ([]domain.Product, error) {
	const op = "CatalogUseCase.ListProducts"

	filter := domain.ProductFilter{
		Search:   strings.TrimSpace(req.Search),
		Featured: req.Featured,
		Active:   req.Active,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
	}
	if err := filter.Validate(); err != nil {
		return nil, e.Wrap(op, err)
	}

	if name, ok := c.categories.Lookup(strings.TrimSpace(req.CategoryID)); ok {
		filter.Category = name
	} else if req.CategoryID != "" {
		c.logger.Debugf("%s: category %q is not mapped, returning unfiltered", op, req.CategoryID)
	}

	products, err := c.productRepo.List(ctx, filter)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// GetProduct ищет товар сначала в кэше, затем в хранилище. Промах кэша дописывается в фоне.
func (c *CatalogUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	const op = "CatalogUseCase.GetProduct"

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, e.Wrap(op, e.ErrProductIDRequired)
	}

	cached, ok, err := c.cacheRepo.GetProduct(ctx, id)
	if err != nil {
		c.logger.Warnf("%s: cache lookup failed: %v", op, err)
	} else if ok {
		return cached, nil
	}

	product, err := c.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Фоновое добавление товара в кэш
	toCache := *product
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
		defer cancel()

		if err := c.cacheRepo.SetProduct(bgCtx, &toCache); err != nil {
			c.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
		}
	}()

	return product, nil
}

func (c *CatalogUseCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const op = "CatalogUseCase.ListCategories"

	categories, err := c.categoryRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return categories, nil
}

// CreateProduct загружает изображения в MinIO и сохраняет товар.
// Если запись не удалась, загруженные изображения удаляются в фоне.
func (c *CatalogUseCase) CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error) {
	const op = "CatalogUseCase.CreateProduct"

	if len(req.Images) == 0 {
		return nil, e.Wrap(op, e.ErrNoImages)
	}

	product := c.buildProduct(req)
	if err := product.Validate(); err != nil {
		return nil, e.Wrap(op, err)
	}

	imagesRes, err := c.imagesInfra.UploadImages(ctx, NewUploadImagesReq(product.CategoryID, req.Images))
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	product.Images = imagesRes.ImagesURLs

	var created *domain.Product
	err = c.trManager.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = c.productRepo.Create(ctx, product)
		return err
	})
	if err != nil {
		c.logger.Warnf(
			"Cleaning up orphaned images after failed insert. product_name: %s, error: %v",
			req.Name,
			e.Wrap(op, err),
		)
		c.imagesInfra.CleanupImages(imagesRes.ImagesKeys)
		return nil, e.Wrap(op, err)
	}

	c.logger.Infof("product %s (%s) created in %s with %d images", created.ID, created.Name, created.Category, len(created.Images))
	return created, nil
}

// Seed заполняет пустой каталог категориями из таблицы и образцами товаров.
// Если категории уже есть, ничего не делает.
func (c *CatalogUseCase) Seed(ctx context.Context) (*SeedRes, error) {
	const op = "CatalogUseCase.Seed"

	res := &SeedRes{}
	err := c.trManager.Do(ctx, func(ctx context.Context) error {
		count, err := c.categoryRepo.Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			res.Skipped = true
			return nil
		}

		now := c.now()
		for i, cat := range c.categories.Categories() {
			cat.ID = uuid.NewString()
			// порядок категорий задаётся временем создания
			cat.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
			cat.UpdatedAt = cat.CreatedAt
			if _, err := c.categoryRepo.Create(ctx, &cat); err != nil {
				return err
			}
			res.Categories++
		}

		for i, p := range sampleProducts() {
			p.ID = uuid.NewString()
			p.CategoryID = c.categories.SlugFor(p.Category)
			// разносим created_at, чтобы порядок "новые первыми" был стабильным
			p.CreatedAt = now.Add(-time.Duration(i) * time.Second)
			p.UpdatedAt = p.CreatedAt
			if _, err := c.productRepo.Create(ctx, &p); err != nil {
				return err
			}
			res.Products++
		}

		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if res.Skipped {
		c.logger.Infof("%s: categories already exist, skipping initialization", op)
	} else {
		c.logger.Infof("%s: created %d categories and %d products", op, res.Categories, res.Products)
	}

	return res, nil
}

func (c *CatalogUseCase) buildProduct(req *CreateProductReq) *domain.Product {
	category := strings.TrimSpace(req.Category)
	if name, ok := c.categories.Lookup(category); ok {
		category = name
	}

	now := c.now()
	product := domain.NewProduct(strings.TrimSpace(req.Name), req.Price, category)
	product.ID = uuid.NewString()
	product.CategoryID = c.categories.SlugFor(category)
	product.Description = strings.TrimSpace(req.Description)
	product.OriginalPrice = req.OriginalPrice
	product.Featured = req.Featured
	product.MaxParticipants = req.MaxParticipants
	product.Features = req.Features
	product.CreatedAt = now
	product.UpdatedAt = now

	return product
}
