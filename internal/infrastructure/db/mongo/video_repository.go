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
	"github.com/vidtube/platform/internal/core/ports"
)

const videosCollection = "videos"

type VideoRepository struct {
	coll *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) *VideoRepository {
	return &VideoRepository{coll: db.Collection(videosCollection)}
}

type videoDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID     string             `bson:"owner_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	VideoFile   domain.Asset       `bson:"video_file"`
	Thumbnail   domain.Asset       `bson:"thumbnail"`
	Views       int64              `bson:"views"`
	Published   bool               `bson:"published"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (r *VideoRepository) Create(ctx context.Context, v *domain.Video) (*domain.Video, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := videoDoc{
		OwnerID:     v.OwnerID,
		Title:       v.Title,
		Description: v.Description,
		VideoFile:   v.VideoFile,
		Thumbnail:   v.Thumbnail,
		Published:   v.Published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert video: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *VideoRepository) FindByID(ctx context.Context, id string) (*domain.Video, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrVideoNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc videoDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVideoNotFound
		}
		return nil, fmt.Errorf("find video: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *VideoRepository) List(ctx context.Context, filter ports.ListVideosFilter) ([]*domain.Video, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.OwnerID != "" {
		query["owner_id"] = filter.OwnerID
	}
	if filter.TitleContains != "" {
		query["title"] = bson.M{"$regex": filter.TitleContains, "$options": "i"}
	}
	if filter.PublishedOnly {
		query["published"] = true
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count videos: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list videos: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*domain.Video
	for cursor.Next(ctx) {
		var doc videoDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode video: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("list videos: %w", err)
	}

	return items, total, nil
}

func (r *VideoRepository) Update(ctx context.Context, id, title, description string) (*domain.Video, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrVideoNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc videoDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"title": title, "description": description, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVideoNotFound
		}
		return nil, fmt.Errorf("update video: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *VideoRepository) SetPublished(ctx context.Context, id string, published bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrVideoNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{
		"$set": bson.M{"published": published, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("set published: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrVideoNotFound
	}
	return nil
}

func (r *VideoRepository) IncrementViews(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrVideoNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrVideoNotFound
	}
	return nil
}

func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrVideoNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrVideoNotFound
	}
	return nil
}

// OwnerStats aggregates the owner's video count and total views in one
// pipeline.
func (r *VideoRepository) OwnerStats(ctx context.Context, ownerID string) (int64, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"owner_id": ownerID}}},
		{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"videos": bson.M{"$sum": 1},
			"views":  bson.M{"$sum": "$views"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("owner stats: %w", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		Videos int64 `bson:"videos"`
		Views  int64 `bson:"views"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, 0, fmt.Errorf("owner stats: %w", err)
		}
	}
	return result.Videos, result.Views, cursor.Err()
}

func (r *VideoRepository) IDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("ids by owner: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("ids by owner: %w", err)
		}
		ids = append(ids, doc.ID.Hex())
	}
	return ids, cursor.Err()
}

// EnsureIndexes creates the query indexes for the videos collection.
func (r *VideoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (d *videoDoc) toDomain() *domain.Video {
	return &domain.Video{
		ID:          d.ID.Hex(),
		OwnerID:     d.OwnerID,
		Title:       d.Title,
		Description: d.Description,
		VideoFile:   d.VideoFile,
		Thumbnail:   d.Thumbnail,
		Views:       d.Views,
		Published:   d.Published,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
