package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/felixdarko/eventplanner-api/models"
)

// ProfilePatch is a partial profile update; nil fields are left untouched.
type ProfilePatch struct {
	Email     *string
	FirstName *string
	LastName  *string
	Phone     *string
}

// UserStore persists user accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*models.User, error)
	MarkVerified(ctx context.Context, token string) (*models.User, error)
	SetResetCode(ctx context.Context, id primitive.ObjectID, code int, expire time.Time) error
	ResetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
}

// MongoUserStore is the Mongo-backed UserStore.
type MongoUserStore struct {
	col *mongo.Collection
}

// NewMongoUserStore wraps the users collection.
func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{col: db.Collection("users")}
}

// EnsureIndexes creates the unique index on email. The index enforces the
// uniqueness invariant even under concurrent registrations.
func (s *MongoUserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *MongoUserStore) Create(ctx context.Context, user *models.User) error {
	_, err := s.col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var user models.User
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial update and returns the updated user.
// A duplicate email surfaces as ErrDuplicateEmail via the unique index.
func (s *MongoUserStore) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.FirstName != nil {
		set["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		set["last_name"] = *patch.LastName
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}

	after := options.After
	var user models.User
	err = s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// MarkVerified flips is_verified for the user holding the given,
// unexpired verification token and clears the token. An unknown or
// expired token returns ErrNotFound.
func (s *MongoUserStore) MarkVerified(ctx context.Context, token string) (*models.User, error) {
	after := options.After
	var user models.User
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{
			"verification_token":     token,
			"verification_token_exp": bson.M{"$gt": time.Now().UTC()},
		},
		bson.M{
			"$set":   bson.M{"is_verified": true, "updated_at": time.Now().UTC()},
			"$unset": bson.M{"verification_token": "", "verification_token_exp": ""},
		},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) SetResetCode(ctx context.Context, id primitive.ObjectID, code int, expire time.Time) error {
	_, err := s.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"reset_code": code, "reset_code_exp": expire},
	})
	return err
}

// ResetPassword stores the new hash and clears the reset code, making the
// code single-use.
func (s *MongoUserStore) ResetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	_, err := s.col.UpdateByID(ctx, id, bson.M{
		"$set":   bson.M{"password_hash": passwordHash, "updated_at": time.Now().UTC()},
		"$unset": bson.M{"reset_code": "", "reset_code_exp": ""},
	})
	return err
}
