package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/18981850753/shopList-App/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const batchSize = 1000

// ErrNoMirror is returned when a collection holds no mirrored records.
var ErrNoMirror = errors.New("no mirrored records found")

type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// mirrorDoc is one record as stored in the mirror collection. Every push
// writes a new batch and then drops the older ones.
type mirrorDoc struct {
	Batch         string    `bson:"batch"`
	MirroredAt    time.Time `bson:"mirroredAt"`
	models.Record `bson:",inline"`
}

func NewMongoDB(uri, dbName string) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Printf("Connected to MongoDB at %s", uri)

	return &MongoDB{
		Client:   client,
		Database: client.Database(dbName),
	}, nil
}

func (m *MongoDB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.Client.Disconnect(ctx)
}

// MirrorRecords pushes a full snapshot of the store into collectionName and
// returns the batch id. Older batches are removed only after the new one is
// written completely.
func (m *MongoDB) MirrorRecords(ctx context.Context, collectionName string, records []models.Record) (string, error) {
	collection := m.Database.Collection(collectionName)
	batch := uuid.NewString()
	now := time.Now().UTC()

	documents := make([]interface{}, 0, batchSize)
	for _, record := range records {
		documents = append(documents, mirrorDoc{Batch: batch, MirroredAt: now, Record: record})
		if len(documents) >= batchSize {
			if err := m.insertBatch(ctx, collection, documents); err != nil {
				return "", err
			}
			documents = documents[:0]
		}
	}
	if len(documents) > 0 {
		if err := m.insertBatch(ctx, collection, documents); err != nil {
			return "", err
		}
	}

	res, err := collection.DeleteMany(ctx, bson.M{"batch": bson.M{"$ne": batch}})
	if err != nil {
		return "", fmt.Errorf("failed to remove previous batches: %w", err)
	}

	log.Printf("Mirrored %d records to '%s' (batch %s, replaced %d documents)",
		len(records), collectionName, batch, res.DeletedCount)
	return batch, nil
}

// FetchRecords reads back the newest batch in store order.
func (m *MongoDB) FetchRecords(ctx context.Context, collectionName string) ([]models.Record, error) {
	collection := m.Database.Collection(collectionName)

	var latest mirrorDoc
	findLatest := options.FindOne().SetSort(bson.D{{Key: "mirroredAt", Value: -1}})
	if err := collection.FindOne(ctx, bson.D{}, findLatest).Decode(&latest); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoMirror
		}
		return nil, fmt.Errorf("failed to find latest batch: %w", err)
	}

	cursor, err := collection.Find(ctx,
		bson.M{"batch": latest.Batch},
		options.Find().SetSort(bson.D{{Key: "index", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mirrorDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}

	records := make([]models.Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, doc.Record)
	}

	log.Printf("Fetched %d records from '%s' (batch %s)", len(records), collectionName, latest.Batch)
	return records, nil
}

func (m *MongoDB) insertBatch(ctx context.Context, collection *mongo.Collection, documents []interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := collection.InsertMany(ctx, documents)
	if err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}

	log.Printf("Inserted batch of %d documents", len(documents))
	return nil
}
