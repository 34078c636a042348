package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vidtube/platform/internal/core/domain"
)

const likesCollection = "likes"

type LikeRepository struct {
	coll *mongo.Collection
}

func NewLikeRepository(db *mongo.Database) *LikeRepository {
	return &LikeRepository{coll: db.Collection(likesCollection)}
}

// Toggle removes an existing like or inserts a new one. The delete-then-insert
// order keeps the common path to a single round trip.
func (r *LikeRepository) Toggle(ctx context.Context, like *domain.Like) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"target":    like.Target,
		"target_id": like.TargetID,
		"liked_by":  like.LikedBy,
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("toggle like: %w", err)
	}
	if res.DeletedCount > 0 {
		return false, nil
	}

	doc := bson.M{
		"target":     like.Target,
		"target_id":  like.TargetID,
		"liked_by":   like.LikedBy,
		"created_at": time.Now().UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return false, fmt.Errorf("toggle like: %w", err)
	}
	return true, nil
}

func (r *LikeRepository) CountByTarget(ctx context.Context, target domain.LikeTarget, targetID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"target": target, "target_id": targetID})
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return n, nil
}

func (r *LikeRepository) CountByTargetIDs(ctx context.Context, target domain.LikeTarget, targetIDs []string) (int64, error) {
	if len(targetIDs) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{
		"target":    target,
		"target_id": bson.M{"$in": targetIDs},
	})
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the lookup index for like toggling and counting.
func (r *LikeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "target", Value: 1},
			{Key: "target_id", Value: 1},
			{Key: "liked_by", Value: 1},
		},
	})
	return err
}
