package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"adwizard/internal/apperr"
	"adwizard/internal/core/process"
)

// ProcessStore implements process.Store on the ad_processes collection.
// Documents are keyed by an ObjectID round-tripped through its hex form, so a
// malformed id is rejected before any query runs.
type ProcessStore struct {
	collection *mongo.Collection
}

func NewProcessStore(db *mongo.Database) *ProcessStore {
	return &ProcessStore{collection: db.Collection("ad_processes")}
}

func (r *ProcessStore) Create(ctx context.Context, p *process.AdProcess) (string, error) {
	p.ID = primitive.NewObjectID().Hex()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if _, err := r.collection.InsertOne(ctx, p); err != nil {
		return "", fmt.Errorf("insert ad process: %w", err)
	}
	return p.ID, nil
}

func (r *ProcessStore) Get(ctx context.Context, id string) (*process.AdProcess, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, apperr.ErrInvalidID
	}

	var p process.AdProcess
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find ad process: %w", err)
	}
	return &p, nil
}

// Update performs a partial $set merge: only the named (possibly dotted)
// fields change.
func (r *ProcessStore) Update(ctx context.Context, id string, fields map[string]any) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return apperr.ErrInvalidID
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update ad process: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *ProcessStore) ByUser(ctx context.Context, userID string, limit int64) ([]process.AdProcess, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("find ad processes: %w", err)
	}
	var processes []process.AdProcess
	if err := cursor.All(ctx, &processes); err != nil {
		return nil, fmt.Errorf("decode ad processes: %w", err)
	}
	return processes, nil
}
