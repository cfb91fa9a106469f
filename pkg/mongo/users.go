package mongo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/hnqbao/carhive-api/pkg/models"
	"github.com/hnqbao/carhive-api/pkg/roles"
)

// CreateUserAccount inserts a new profile with permissions derived from the
// role. The caller decides the role: signup forces customer, admins may
// pick any role.
func CreateUserAccount(ctx context.Context, email, hashedPassword, displayName, role, department string) (*models.UserProfile, error) {
	user := &models.UserProfile{
		UID:         uuid.NewString(),
		Email:       email,
		Password:    hashedPassword,
		DisplayName: displayName,
		Role:        role,
		Permissions: roles.PermissionsFor(role),
		IsActive:    true,
		Department:  department,
	}
	user.SetTimestamps()

	collection := GetCollection("users")
	result, err := collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) || strings.Contains(err.Error(), "duplicate key") {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	if oid, ok := result.InsertedID.(bson.ObjectID); ok {
		user.ID = oid
	}
	return user, nil
}

// GetUserProfile fetches a profile by uid. A missing profile is a
// recoverable empty result: (nil, nil).
func GetUserProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	collection := GetCollection("users")

	var user models.UserProfile
	err := collection.FindOne(ctx, bson.D{{Key: "uid", Value: uid}}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail fetches a profile by email for login. Missing accounts
// are ErrUserNotFound so the handler can reject credentials uniformly.
func GetUserByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	collection := GetCollection("users")

	var user models.UserProfile
	err := collection.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAllUsers lists every profile, newest first.
func GetAllUsers(ctx context.Context) ([]models.UserProfile, error) {
	collection := GetCollection("users")
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.UserProfile{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUserRole changes an account's role and re-derives its permission
// list in the same update, so the two can never diverge in the store.
func UpdateUserRole(ctx context.Context, uid, role string) (*models.UserProfile, error) {
	collection := GetCollection("users")

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "role", Value: role},
		{Key: "permissions", Value: roles.PermissionsFor(role)},
		{Key: "updated_at", Value: time.Now()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.UserProfile
	err := collection.FindOneAndUpdate(ctx, bson.D{{Key: "uid", Value: uid}}, update, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeactivateUser flips the active gate off. Accounts are never deleted and
// there is no reactivation operation.
func DeactivateUser(ctx context.Context, uid string) (*models.UserProfile, error) {
	collection := GetCollection("users")

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "is_active", Value: false},
		{Key: "updated_at", Value: time.Now()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.UserProfile
	err := collection.FindOneAndUpdate(ctx, bson.D{{Key: "uid", Value: uid}}, update, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
