package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ChrisUBS/DentixPro/internal/model"
)

const usersCollection = "users"

// UserRepository defines user persistence operations. Lookups return
// (nil, nil) when no user matches, so callers stay free of driver
// error types.
type UserRepository interface {
	Insert(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUserID(ctx context.Context, userID string) (*model.User, error)
	UpdateFields(ctx context.Context, userID string, fields bson.M) error
	List(ctx context.Context, role string, page, pageSize int64) (*Page[model.User], error)
}

type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{coll: db.Collection(usersCollection)}
}

// Insert stores a new user and records the generated storage id.
func (r *userRepository) Insert(ctx context.Context, user *model.User) error {
	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// FindByEmail finds a user by email. Emails are stored lowercased, so
// the caller is expected to normalize before lookup.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByUserID finds a user by its application-level id.
func (r *userRepository) FindByUserID(ctx context.Context, userID string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var user model.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateFields applies a partial $set merge to the user record.
func (r *userRepository) UpdateFields(ctx context.Context, userID string, fields bson.M) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$set": fields})
	return err
}

// List returns one page of users, name-ascending, optionally filtered
// by role.
func (r *userRepository) List(ctx context.Context, role string, page, pageSize int64) (*Page[model.User], error) {
	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}
	return paginate[model.User](ctx, r.coll, filter, page, pageSize, bson.D{{Key: "name", Value: 1}})
}
