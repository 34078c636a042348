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

const usersCollection = "users"

// UserRepository is the MongoDB-backed credential store. The refresh token
// lives on the user document; rotation uses a filtered update as an atomic
// compare-and-swap so the store, not application logic, arbitrates races.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	FullName     string             `bson:"fullname"`
	PasswordHash string             `bson:"password_hash"`
	RefreshToken string             `bson:"refresh_token,omitempty"`
	Avatar       domain.Asset       `bson:"avatar"`
	CoverImage   domain.Asset       `bson:"cover_image,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := userDoc{
		Username:     user.Username,
		Email:        user.Email,
		FullName:     user.FullName,
		PasswordHash: user.PasswordHash,
		Avatar:       user.Avatar,
		CoverImage:   user.CoverImage,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

// FindByIdentifier looks a user up by username or email.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": identifier},
		bson.M{"email": identifier},
	}}
	return r.findOne(ctx, filter)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// UpdateRefreshToken overwrites the stored refresh token. An empty token
// clears the field, which also makes Terminate idempotent: clearing an
// already-clear token matches the document and modifies nothing.
func (r *UserRepository) UpdateRefreshToken(ctx context.Context, id, token string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"refresh_token": token, "updated_at": time.Now().UTC()}}
	if token == "" {
		update = bson.M{
			"$unset": bson.M{"refresh_token": ""},
			"$set":   bson.M{"updated_at": time.Now().UTC()},
		}
	}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update refresh token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ReplaceRefreshToken swaps current for next in one filtered update. The
// filter matches both the id and the exact stored token, so two concurrent
// rotations using the same token are serialized by the storage engine: the
// loser matches zero documents and gets ErrTokenMismatch.
func (r *UserRepository) ReplaceRefreshToken(ctx context.Context, id, current, next string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "refresh_token": current},
		bson.M{"$set": bson.M{"refresh_token": next, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("replace refresh token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTokenMismatch
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{
		"$set": bson.M{"password_hash": passwordHash, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateAccount(ctx context.Context, id, fullName, email string) (*domain.User, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{"fullname": fullName, "email": email})
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id string, avatar domain.Asset) (*domain.User, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{"avatar": avatar})
}

func (r *UserRepository) UpdateCoverImage(ctx context.Context, id string, cover domain.Asset) (*domain.User, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{"cover_image": cover})
}

// EnsureIndexes creates the uniqueness indexes backing the identity
// invariants (username and email are globally unique).
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) findOneAndUpdate(ctx context.Context, id string, set bson.M) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set["updated_at"] = time.Now().UTC()

	var doc userDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return doc.toDomain(), nil
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		FullName:     d.FullName,
		PasswordHash: d.PasswordHash,
		RefreshToken: d.RefreshToken,
		Avatar:       d.Avatar,
		CoverImage:   d.CoverImage,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
