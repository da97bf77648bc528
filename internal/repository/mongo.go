package repository

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/docstract/docstract/internal/common"
)

type mongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *slog.Logger
}

func openMongo(ctx context.Context, cfg common.StoreConfig, logger *slog.Logger) (DocumentStore, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.DSN))
	if err != nil {
		return nil, common.NewAppError("MONGO_CONNECT", "failed to connect", common.ErrPersistenceFailure)
	}

	return &mongoStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		logger:     logger,
	}, nil
}

func (s *mongoStore) Insert(ctx context.Context, filename, content string) error {
	_, err := s.collection.InsertOne(ctx, bson.M{
		"filename": filename,
		"content":  content,
	})
	if err != nil {
		s.logger.Error("mongo insert failed", "filename", filename, "error", err)
		return common.NewAppError("MONGO_INSERT", "insert failed for "+filename, common.ErrPersistenceFailure)
	}
	return nil
}

func (s *mongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *mongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
