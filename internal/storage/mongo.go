package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wishgrab/wishgrab/internal/types"
)

// MongoStorage writes extraction runs to a MongoDB collection, one document
// per listing record.
type MongoStorage struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *slog.Logger
	count      int
}

// NewMongoStorage connects to MongoDB and prepares the target collection.
func NewMongoStorage(uri, database, collection string, logger *slog.Logger) (*MongoStorage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	return &MongoStorage{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger.With("component", "mongo_storage"),
	}, nil
}

// Name implements Storage.
func (s *MongoStorage) Name() string { return "mongodb" }

type mongoRecord struct {
	Wishlist  string              `bson:"wishlist"`
	ScrapedAt time.Time           `bson:"scraped_at"`
	Record    types.ListingRecord `bson:"record,inline"`
}

// Store implements Storage.
func (s *MongoStorage) Store(ctx context.Context, wishlistName string, records []types.ListingRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]any, len(records))
	for i, rec := range records {
		docs[i] = mongoRecord{
			Wishlist:  wishlistName,
			ScrapedAt: now,
			Record:    rec,
		}
	}

	opCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := s.collection.InsertMany(opCtx, docs); err != nil {
		return &types.ExportError{Backend: s.Name(), Err: err}
	}

	s.count += len(records)
	s.logger.Debug("records stored", "count", len(records), "total", s.count)
	return nil
}

// Close implements Storage.
func (s *MongoStorage) Close() error {
	s.logger.Info("mongodb storage closing", "total_records", s.count)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
