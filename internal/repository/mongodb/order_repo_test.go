package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestOrderRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "pinkcart." + ordersCollection
	now := time.Date(2024, 10, 27, 12, 0, 0, 0, time.UTC)

	mt.Run("create", func(mt *mtest.T) {
		repo := NewOrderRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		order := &domain.Order{
			ID: "u1", OrderID: "ORD-1-abc", CustomerName: "Amina", CustomerPhone: "07",
			Items:  []domain.LineItem{{ProductID: "p", Name: "Case", Price: 800, Quantity: 1}},
			Status: domain.OrderStatusPending, CreatedAt: now, UpdatedAt: now,
		}

		res, err := repo.Create(context.Background(), order)

		require.NoError(mt, err)
		assert.Equal(mt, order, res)
	})

	mt.Run("list keeps server order", func(mt *mtest.T) {
		repo := NewOrderRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "b"}, {Key: "orderId", Value: "ORD-2-b"}, {Key: "createdAt", Value: now}},
			bson.D{{Key: "_id", Value: "a"}, {Key: "orderId", Value: "ORD-1-a"}, {Key: "createdAt", Value: now.Add(-time.Minute)},
				{Key: "items", Value: bson.A{bson.D{{Key: "productId", Value: "p"}, {Key: "quantity", Value: int64(2)}}}}},
		))

		res, err := repo.List(context.Background())

		require.NoError(mt, err)
		require.Len(mt, res, 2)
		assert.Equal(mt, "ORD-2-b", res[0].OrderID)
		require.Len(mt, res[1].Items, 1)
		assert.Equal(mt, int64(2), res[1].Items[0].Quantity)
	})
}

func TestClaimFilter(t *testing.T) {
	now := time.Date(2024, 10, 27, 12, 0, 0, 0, time.UTC)

	filter := claimFilter(now, 90*time.Second)

	branches := filter["$or"].(bson.A)
	require.Len(t, branches, 2)
	assert.Equal(t, bson.M{"status": "pending"}, branches[0])
	assert.Equal(t, bson.M{
		"status":              "processing",
		"processingStartedAt": bson.M{"$lt": now.Add(-90 * time.Second)},
	}, branches[1])
}

func TestOutboxEventRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	now := time.Date(2024, 10, 27, 12, 0, 0, 0, time.UTC)

	eventD := func(id string) bson.D {
		return bson.D{
			{Key: "_id", Value: id},
			{Key: "eventType", Value: "order.created"},
			{Key: "aggregateId", Value: "ORD-" + id},
			{Key: "status", Value: "processing"},
			{Key: "createdAt", Value: now},
		}
	}

	mt.Run("claims up to limit", func(mt *mtest.T) {
		repo := NewOutboxEventRepo(mt.DB, time.Minute)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: eventD("e1")}),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: eventD("e2")}),
		)

		events, err := repo.GetAndMarkAsProcessing(context.Background(), 2)

		require.NoError(mt, err)
		require.Len(mt, events, 2)
		assert.Equal(mt, usecase.Processing, events[0].Status)
		assert.Equal(mt, "ORD-e2", events[1].AggregateID)
	})

	mt.Run("reclaims stale processing event", func(mt *mtest.T) {
		repo := NewOutboxEventRepo(mt.DB, time.Minute)
		repo.now = func() time.Time { return now }
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: eventD("stale")}),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
		)

		events, err := repo.GetAndMarkAsProcessing(context.Background(), 5)

		require.NoError(mt, err)
		require.Len(mt, events, 1)
		assert.Equal(mt, "ORD-stale", events[0].AggregateID)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "findAndModify", started.CommandName)
		branches, err := started.Command.Lookup("query", "$or").Array().Values()
		require.NoError(mt, err)
		assert.Len(mt, branches, 2)
	})

	mt.Run("mark processed and pending", func(mt *mtest.T) {
		repo := NewOutboxEventRepo(mt.DB, time.Minute)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(1)}, bson.E{Key: "nModified", Value: int32(1)}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(1)}, bson.E{Key: "nModified", Value: int32(1)}),
		)

		require.NoError(mt, repo.MarkAsProcessed(context.Background(), "e1"))
		require.NoError(mt, repo.MarkAsPending(context.Background(), "e2"))
	})

	mt.Run("create", func(mt *mtest.T) {
		repo := NewOutboxEventRepo(mt.DB, time.Minute)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		ev, err := repo.Create(context.Background(), usecase.NewOutboxEvent("e1", usecase.OrderCreated, "ORD-1", []byte("x"), now))

		require.NoError(mt, err)
		assert.Equal(mt, usecase.Pending, ev.Status)
	})
}
