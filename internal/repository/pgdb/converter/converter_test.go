package converter

import (
	"testing"
	"time"

	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductConverter_NilSlicesBecomeEmpty(t *testing.T) {
	m := ProductConverter{}.ToModel(&domain.Product{ID: "p", Name: "Lamp"})

	assert.NotNil(t, m.Images)
	assert.NotNil(t, m.Features)
	assert.Empty(t, m.Images)
}

func TestProductConverter_KeepsOptionalFields(t *testing.T) {
	orig, maxP, inStock := int64(2500), int64(50), true
	p := &domain.Product{
		ID: "p", Name: "Organizer", Price: 1200, OriginalPrice: &orig, MaxParticipants: &maxP,
		InStock: &inStock, Images: []string{"/a.jpg"}, Features: []string{"USB"}, Category: "Organisers", CategoryID: "organisers",
	}

	back := ProductConverter{}.ToEntity(ProductConverter{}.ToModel(p))

	assert.Equal(t, p, back)
}

func TestOrderConverter_ItemsInJSON(t *testing.T) {
	now := time.Date(2024, 10, 27, 9, 0, 0, 0, time.UTC)
	o := &domain.Order{
		ID: "u", OrderID: "ORD-1-abc", CustomerName: "Amina", CustomerPhone: "07",
		Items:      []domain.LineItem{{ProductID: "a", Name: "Mirror", Price: 2800, Quantity: 2}},
		TotalPrice: 5600, TotalItems: 2, Status: domain.OrderStatusPending, CreatedAt: now, UpdatedAt: now,
	}

	m, err := OrderConverter{}.ToModel(o)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"productId":"a","name":"Mirror","price":2800,"quantity":2}]`, string(m.Items))

	back, err := OrderConverter{}.ToEntity(m)
	require.NoError(t, err)
	assert.Equal(t, o, back)
}

func TestOrderConverter_BadJSON(t *testing.T) {
	_, err := OrderConverter{}.ToEntity(&OrderModel{Items: []byte("{")})
	assert.Error(t, err)
}

func TestOutboxEventConverter(t *testing.T) {
	ev := usecase.NewOutboxEvent("id", usecase.OrderCreated, "ORD-1", []byte("x"), time.Unix(1, 0).UTC())

	m := OutboxEventConverter{}.ToModel(ev)
	assert.Equal(t, "order.created", m.EventType)
	assert.Equal(t, "pending", m.Status)

	res := OutboxEventConverter{}.ToArrEntity([]*OutboxEventModel{m})
	require.Len(t, res, 1)
	assert.Equal(t, ev, res[0])
}
