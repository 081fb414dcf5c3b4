package implementation

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
)

// MongoRawReadingRepository archives inbound telemetry as immutable
// documents. Inserts only; there is no update or delete path.
type MongoRawReadingRepository struct {
	collection *mongo.Collection
}

func NewMongoRawReadingRepository(client *mongo.Client, database, collection string) *MongoRawReadingRepository {
	return &MongoRawReadingRepository{
		collection: client.Database(database).Collection(collection),
	}
}

func (r *MongoRawReadingRepository) Append(ctx context.Context, reading *snhmodels.RawReading) (string, error) {
	result, err := r.collection.InsertOne(ctx, reading)
	if err != nil {
		return "", fmt.Errorf("failed to archive raw reading: %w", err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Sprintf("%v", result.InsertedID), nil
	}
	return id.Hex(), nil
}

func (r *MongoRawReadingRepository) Latest(ctx context.Context, limit int) ([]snhmodels.RawReading, error) {
	if limit <= 0 || limit > 1000 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "received_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query raw readings: %w", err)
	}
	defer cursor.Close(ctx)

	var readings []snhmodels.RawReading
	if err := cursor.All(ctx, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}
