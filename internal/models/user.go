package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string        `bson:"name" json:"name"`
	Email     string        `bson:"email" json:"email"`
	Password  string        `bson:"password" json:"-"`
	Avatar    string        `bson:"avatar" json:"avatar"`
	CreatedAt int           `bson:"createdAt" json:"createdAt"`
}

// UserRef is the slice of user fields joined into profile responses.
type UserRef struct {
	ID     bson.ObjectID `bson:"_id" json:"id"`
	Name   string        `bson:"name" json:"name"`
	Avatar string        `bson:"avatar" json:"avatar"`
}
