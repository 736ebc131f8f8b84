package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shirshak001/JEWEL/app/models"
	"github.com/shirshak001/JEWEL/pkg/apperr"
	"github.com/shirshak001/JEWEL/pkg/database"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository { return &UserRepository{} }

func (r *UserRepository) col() *mongo.Collection { return database.Users() }

// FindByEmail returns one user by email, case-insensitively.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.col().FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("users: find email: %w", err)
	}
	return &u, nil
}

// FindByID returns one user by ObjectID hex.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	var u models.User
	err = r.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("users: find id: %w", err)
	}
	return &u, nil
}

// Insert stores a new user. Duplicate emails map to ErrConflict.
func (r *UserRepository) Insert(ctx context.Context, u *models.User) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	res, err := r.col().InsertOne(ctx, u)
	if database.IsDuplicateKey(err) {
		return apperr.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("users: insert: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

// TouchLogin stamps a successful login.
func (r *UserRepository) TouchLogin(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col().UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_login": time.Now(), "updated_at": time.Now()}})
	if err != nil {
		return fmt.Errorf("users: touch login: %w", err)
	}
	return nil
}
