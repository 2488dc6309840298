package usecase

import (
	"context"
	"sync"

	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	args := m.Called(ctx, order)
	if fn, ok := args.Get(0).(func(*domain.Order) *domain.Order); ok {
		return fn(order), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

type MockOutboxRepo struct {
	mock.Mock
}

func (m *MockOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*OutboxEvent), args.Error(1)
}

func (m *MockOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*OutboxEvent), args.Error(1)
}

func (m *MockOutboxRepo) MarkAsProcessed(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOutboxRepo) MarkAsPending(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// fakeCache — потокобезопасный кэш в памяти: запись идёт из фоновой горутины.
type fakeCache struct {
	mu       sync.Mutex
	products map[string]domain.Product
	getErr   error
	setCh    chan string
}

func newFakeCache() *fakeCache {
	return &fakeCache{products: map[string]domain.Product{}, setCh: make(chan string, 8)}
}

func (f *fakeCache) GetProduct(_ context.Context, id string) (*domain.Product, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	p, ok := f.products[id]
	if !ok {
		return nil, false, nil
	}
	return &p, true, nil
}

func (f *fakeCache) SetProduct(_ context.Context, product *domain.Product) error {
	f.mu.Lock()
	f.products[product.ID] = *product
	f.mu.Unlock()
	f.setCh <- product.ID
	return nil
}

func (f *fakeCache) DeleteProducts(_ context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.products, id)
	}
	return nil
}

type MockImagesInfra struct {
	mock.Mock
}

func (m *MockImagesInfra) UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UploadImagesRes), args.Error(1)
}

func (m *MockImagesInfra) CleanupImages(keys []string) {
	m.Called(keys)
}

type stubFormatter struct{}

func (stubFormatter) Summary(o *domain.Order) string { return "summary " + o.OrderID }
func (stubFormatter) Link(text string) string        { return "https://wa.me/1?text=" + text }

type MockEncoder struct {
	mock.Mock
}

func (m *MockEncoder) EncodeOrderCreated(order *domain.Order, summary, link string) ([]byte, error) {
	args := m.Called(order, summary, link)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// stubCategories — таблица категорий для тестов.
type stubCategories map[string]string

func (s stubCategories) Lookup(slug string) (string, bool) {
	if slug == "" || slug == "all" {
		return "", false
	}
	name, ok := s[slug]
	return name, ok
}

func (s stubCategories) SlugFor(name string) string {
	for slug, n := range s {
		if n == name {
			return slug
		}
	}
	return domain.Slugify(name)
}

func (s stubCategories) Categories() []domain.Category {
	res := make([]domain.Category, 0, len(s))
	for slug, name := range s {
		res = append(res, domain.Category{Name: name, Slug: slug})
	}
	return res
}
