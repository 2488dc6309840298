package clients

import (
	"context"

	"github.com/jimlawless/whereami"
	"github.com/pinkcart/go-backend/internal/cfg"
	"github.com/pinkcart/go-backend/pkg/e"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoClient держит подключение и базу витрины.
type MongoClient struct {
	Client *mongo.Client
	DB     *mongo.Database
	cfg    *cfg.MongoCfg
}

func NewMongoClient(ctx context.Context, cfg *cfg.MongoCfg) (*MongoClient, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.Timeout).
		SetServerSelectionTimeout(cfg.Timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &MongoClient{
		Client: client,
		DB:     client.Database(cfg.Database),
		cfg:    cfg,
	}, nil
}

func (m *MongoClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	if err := m.Client.Ping(ctx, readpref.Primary()); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (m *MongoClient) Close(ctx context.Context) error {
	if err := m.Client.Disconnect(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
