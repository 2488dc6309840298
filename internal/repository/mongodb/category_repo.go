package mongodb

import (
	"context"

	"github.com/jimlawless/whereami"
	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/pkg/e"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CategoryRepo struct {
	coll *mongo.Collection
}

func NewCategoryRepo(db *mongo.Database) *CategoryRepo {
	return &CategoryRepo{coll: db.Collection(categoriesCollection)}
}

// List возвращает категории в порядке добавления.
func (c *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cur, err := c.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer cur.Close(ctx)

	result := make([]domain.Category, 0)
	for cur.Next(ctx) {
		var doc categoryDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, *doc.toEntity())
	}

	if err := cur.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// Create идемпотентно добавляет категорию по slug и возвращает сохранённый документ.
func (c *CategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc categoryDoc
	err := c.coll.FindOneAndUpdate(ctx,
		bson.M{"slug": category.Slug},
		bson.M{"$setOnInsert": toCategoryDoc(category)},
		opts,
	).Decode(&doc)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return doc.toEntity(), nil
}

func (c *CategoryRepo) Count(ctx context.Context) (int64, error) {
	count, err := c.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return count, nil
}
