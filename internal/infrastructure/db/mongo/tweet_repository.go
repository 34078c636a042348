package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vidtube/platform/internal/core/domain"
)

const tweetsCollection = "tweets"

type TweetRepository struct {
	coll *mongo.Collection
}

func NewTweetRepository(db *mongo.Database) *TweetRepository {
	return &TweetRepository{coll: db.Collection(tweetsCollection)}
}

type tweetDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID   string             `bson:"owner_id"`
	Content   string             `bson:"content"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (r *TweetRepository) Create(ctx context.Context, t *domain.Tweet) (*domain.Tweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := tweetDoc{OwnerID: t.OwnerID, Content: t.Content, CreatedAt: now, UpdatedAt: now}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert tweet: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *TweetRepository) FindByID(ctx context.Context, id string) (*domain.Tweet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTweetNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tweetDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTweetNotFound
		}
		return nil, fmt.Errorf("find tweet: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TweetRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Tweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list tweets: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*domain.Tweet
	for cursor.Next(ctx) {
		var doc tweetDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode tweet: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	return items, cursor.Err()
}

func (r *TweetRepository) Update(ctx context.Context, id, content string) (*domain.Tweet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTweetNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tweetDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"content": content, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTweetNotFound
		}
		return nil, fmt.Errorf("update tweet: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TweetRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTweetNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete tweet: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTweetNotFound
	}
	return nil
}

func (d *tweetDoc) toDomain() *domain.Tweet {
	return &domain.Tweet{
		ID:        d.ID.Hex(),
		OwnerID:   d.OwnerID,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
