package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/internal/usecase"
	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestBuildProductFilter_Empty(t *testing.T) {
	assert.Equal(t, bson.M{}, buildProductFilter(domain.ProductFilter{}))
}

func TestBuildProductFilter_AllFields(t *testing.T) {
	featured, active := true, true
	lo, hi := int64(500), int64(2000)

	got := buildProductFilter(domain.ProductFilter{
		Category: "Organisers",
		Search:   "desk (pink)",
		Featured: &featured,
		Active:   &active,
		MinPrice: &lo,
		MaxPrice: &hi,
	})

	re := primitive.Regex{Pattern: `desk \(pink\)`, Options: "i"}
	assert.Equal(t, bson.M{
		"category": "Organisers",
		"$or":      bson.A{bson.M{"name": re}, bson.M{"description": re}},
		"featured": true,
		"isActive": true,
		"price":    bson.M{"$gte": int64(500), "$lte": int64(2000)},
	}, got)
}

func TestBuildProductFilter_OnlyMaxPrice(t *testing.T) {
	hi := int64(1000)

	got := buildProductFilter(domain.ProductFilter{MaxPrice: &hi})

	assert.Equal(t, bson.M{"price": bson.M{"$lte": int64(1000)}}, got)
}

func TestDocConversions(t *testing.T) {
	orig := int64(1500)
	o := &domain.Order{
		ID: "u", OrderID: "ORD-1-a", CustomerName: "Amina", CustomerPhone: "07",
		Items:  []domain.LineItem{{ProductID: "p", Name: "Case", Price: 800, OriginalPrice: &orig, Quantity: 2}},
		Status: domain.OrderStatusPending,
	}
	assert.Equal(t, o, toOrderDoc(o).toEntity())

	ev := usecase.NewOutboxEvent("e1", usecase.OrderCreated, "ORD-1-a", []byte{1, 2}, time.Unix(5, 0).UTC())
	assert.Equal(t, ev, toOutboxDoc(ev).toEntity())

	assert.NotNil(t, toProductDoc(&domain.Product{ID: "p"}).Images)
}

func productD(id, name string, created time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "price", Value: int64(1200)},
		{Key: "category", Value: "Organisers"},
		{Key: "categoryId", Value: "organisers"},
		{Key: "isActive", Value: true},
		{Key: "images", Value: bson.A{"/a.jpg"}},
		{Key: "createdAt", Value: created},
	}
}

func TestProductRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "pinkcart." + productsCollection
	now := time.Date(2024, 10, 27, 12, 0, 0, 0, time.UTC)

	mt.Run("list decodes documents", func(mt *mtest.T) {
		repo := NewProductRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			productD("p2", "Mirror", now),
			productD("p1", "Organizer", now.Add(-time.Hour)),
		))

		res, err := repo.List(context.Background(), domain.ProductFilter{})

		require.NoError(mt, err)
		require.Len(mt, res, 2)
		assert.Equal(mt, "p2", res[0].ID)
		assert.Equal(mt, "Organisers", res[1].Category)
		assert.Equal(mt, []string{"/a.jpg"}, res[1].Images)
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewProductRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, productD("p1", "Organizer", now)))

		p, err := repo.GetByID(context.Background(), "p1")

		require.NoError(mt, err)
		assert.Equal(mt, "Organizer", p.Name)
		assert.Equal(mt, int64(1200), p.Price)
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repo := NewProductRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), "missing")

		assert.ErrorIs(mt, err, e.ErrProductNotFound)
	})

	mt.Run("create", func(mt *mtest.T) {
		repo := NewProductRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		p, err := repo.Create(context.Background(), &domain.Product{ID: "p3", Name: "Lamp", Category: "Cute Lighting"})

		require.NoError(mt, err)
		assert.Equal(mt, "p3", p.ID)
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		repo := NewProductRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		_, err := repo.Create(context.Background(), &domain.Product{ID: "p3", Name: "Lamp"})

		assert.ErrorContains(mt, err, "already exists")
	})

	mt.Run("storage error propagates", func(mt *mtest.T) {
		repo := NewProductRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Message: "unauthorized"}))

		_, err := repo.List(context.Background(), domain.ProductFilter{})

		assert.Error(mt, err)
	})
}
