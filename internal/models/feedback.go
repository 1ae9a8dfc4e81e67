package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// FeedbackRecord is immutable once persisted; no update or delete path
// exists. The embedding is kept for later semantic analysis and never
// returned to clients.
type FeedbackRecord struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string        `bson:"name" json:"name"`
	Email      string        `bson:"email" json:"email"`
	NPSScore   int           `bson:"nps_score" json:"npsScore"`
	Feedback   string        `bson:"feedback" json:"feedback"`
	Embedding  []float32     `bson:"embedding" json:"-"`
	InsertedAt time.Time     `bson:"inserted_at" json:"insertedAt"`
}
