package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jimlawless/whereami"
	"github.com/pinkcart/go-backend/internal/usecase"
	"github.com/pinkcart/go-backend/pkg/e"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OutboxEventRepo — outbox поверх коллекции outbox_events.
// Без транзакций: событие пишется отдельной вставкой после заказа.
type OutboxEventRepo struct {
	coll         *mongo.Collection
	reclaimAfter time.Duration
	now          func() time.Time
}

func NewOutboxEventRepo(db *mongo.Database, reclaimAfter time.Duration) *OutboxEventRepo {
	return &OutboxEventRepo{
		coll:         db.Collection(outboxCollection),
		reclaimAfter: reclaimAfter,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (o *OutboxEventRepo) Create(ctx context.Context, event *usecase.OutboxEvent) (*usecase.OutboxEvent, error) {
	doc := toOutboxDoc(event)
	if _, err := o.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s: event with id %s already exists", whereami.WhereAmI(), event.ID)
		}
		return nil, fmt.Errorf("%s: failed to insert event: %w", whereami.WhereAmI(), err)
	}

	return doc.toEntity(), nil
}

// GetAndMarkAsProcessing по одному забирает самые старые pending-события
// и события, застрявшие в processing дольше reclaimAfter.
// FindOneAndUpdate атомарен, поэтому два воркера не получат одно событие.
func (o *OutboxEventRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetReturnDocument(options.After)

	var events []*usecase.OutboxEvent
	for len(events) < limit {
		now := o.now()
		update := bson.M{"$set": bson.M{
			"status":              string(usecase.Processing),
			"processingStartedAt": now,
		}}

		var doc outboxDoc
		err := o.coll.FindOneAndUpdate(ctx, claimFilter(now, o.reclaimAfter), update, opts).Decode(&doc)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				break
			}
			return events, e.Wrap(whereami.WhereAmI(), err)
		}

		events = append(events, doc.toEntity())
	}

	return events, nil
}

// claimFilter выбирает ожидающие события и события, брошенные в processing.
func claimFilter(now time.Time, reclaimAfter time.Duration) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"status": string(usecase.Pending)},
		bson.M{
			"status":              string(usecase.Processing),
			"processingStartedAt": bson.M{"$lt": now.Add(-reclaimAfter)},
		},
	}}
}

func (o *OutboxEventRepo) MarkAsProcessed(ctx context.Context, id string) error {
	_, err := o.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": string(usecase.Processing)},
		bson.M{"$set": bson.M{"status": string(usecase.Processed), "processedAt": o.now()}},
	)
	if err != nil {
		return fmt.Errorf("%s: failed to mark event %s as processed: %w", whereami.WhereAmI(), id, err)
	}

	return nil
}

func (o *OutboxEventRepo) MarkAsPending(ctx context.Context, id string) error {
	_, err := o.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": string(usecase.Processing)},
		bson.M{
			"$set":   bson.M{"status": string(usecase.Pending)},
			"$unset": bson.M{"processingStartedAt": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("%s: failed to return event %s to pending: %w", whereami.WhereAmI(), id, err)
	}

	return nil
}
