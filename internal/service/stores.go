package service

import (
	"context"

	"devconnector/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// UserStore is the persistence surface the auth and profile services need
// for user records. Lookups return (nil, nil) when nothing matches; deletes
// are no-ops on absent documents.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]*models.User, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}

// ProfileStore mirrors UserStore's conventions for profile documents.
type ProfileStore interface {
	FindByUserID(ctx context.Context, userID bson.ObjectID) (*models.Profile, error)
	FindAll(ctx context.Context) ([]*models.Profile, error)
	Upsert(ctx context.Context, userID bson.ObjectID, fields models.ProfileFields) (*models.Profile, error)
	PushEntry(ctx context.Context, userID bson.ObjectID, field string, entry any) (*models.Profile, error)
	PullEntry(ctx context.Context, userID bson.ObjectID, field string, entryID bson.ObjectID) (*models.Profile, error)
	Delete(ctx context.Context, userID bson.ObjectID) error
}
