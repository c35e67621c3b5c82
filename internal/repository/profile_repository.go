package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"devconnector/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type ProfileRepository struct {
	collection *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{
		collection: db.Collection("profiles"),
	}
}

// FindByUserID returns (nil, nil) when the user has no profile.
func (r *ProfileRepository) FindByUserID(ctx context.Context, userID bson.ObjectID) (*models.Profile, error) {
	var profile models.Profile
	err := r.collection.FindOne(ctx, bson.M{"user": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) FindAll(ctx context.Context) ([]*models.Profile, error) {
	opts := options.Find()
	opts.SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*models.Profile
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	return profiles, nil
}

// Upsert replaces the whole field set for the user's profile, creating the
// document if it does not exist. Fields absent from the update are cleared,
// matching $set-with-upsert semantics rather than a merge.
func (r *ProfileRepository) Upsert(ctx context.Context, userID bson.ObjectID, fields models.ProfileFields) (*models.Profile, error) {
	currentTime := int(time.Now().Unix())

	filter := bson.M{"user": userID}
	update := bson.M{
		"$set": bson.M{
			"company":        fields.Company,
			"location":       fields.Location,
			"website":        fields.Website,
			"bio":            fields.Bio,
			"skills":         fields.Skills,
			"status":         fields.Status,
			"githubusername": fields.GithubUsername,
			"social":         fields.Social,
			"updatedAt":      currentTime,
		},
		"$setOnInsert": bson.M{"user": userID, "createdAt": currentTime, "experience": []models.Experience{}, "education": []models.Education{}},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var updated models.Profile
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return &updated, nil
}

// PushEntry prepends an embedded entry (experience or education) to the named
// list, keeping most-recent-first order.
func (r *ProfileRepository) PushEntry(ctx context.Context, userID bson.ObjectID, field string, entry any) (*models.Profile, error) {
	filter := bson.M{"user": userID}
	update := bson.M{
		"$push": bson.M{field: bson.M{"$each": []any{entry}, "$position": 0}},
		"$set":  bson.M{"updatedAt": int(time.Now().Unix())},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Profile
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to push %s entry: %w", field, err)
	}
	return &updated, nil
}

// PullEntry removes the entry with the given id from the named list. Unknown
// ids leave the list untouched.
func (r *ProfileRepository) PullEntry(ctx context.Context, userID bson.ObjectID, field string, entryID bson.ObjectID) (*models.Profile, error) {
	filter := bson.M{"user": userID}
	update := bson.M{
		"$pull": bson.M{field: bson.M{"_id": entryID}},
		"$set":  bson.M{"updatedAt": int(time.Now().Unix())},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Profile
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to pull %s entry: %w", field, err)
	}
	return &updated, nil
}

// Delete is a no-op when the profile is already gone.
func (r *ProfileRepository) Delete(ctx context.Context, userID bson.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"user": userID})
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create profile indexes: %w", err)
	}
	return nil
}
