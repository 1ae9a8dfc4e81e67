package repository

import (
	"context"
	"time"

	"pulsecheck-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type FeedbackRepo struct {
	collection *mongo.Collection
}

func NewFeedbackRepo(db *mongo.Database) *FeedbackRepo {
	return &FeedbackRepo{
		collection: db.Collection("feedback"),
	}
}

// Insert persists one record as a single atomic write. InsertedAt is
// assigned here, not by the caller.
func (r *FeedbackRepo) Insert(ctx context.Context, record *models.FeedbackRecord) error {
	record.InsertedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return err
	}
	record.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

// ListAll returns every feedback record, oldest first.
func (r *FeedbackRepo) ListAll(ctx context.Context) ([]models.FeedbackRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "inserted_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.FeedbackRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// EnsureIndexes creates necessary indexes for the feedback collection
func (r *FeedbackRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "inserted_at", Value: -1}},
		},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
