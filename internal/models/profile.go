package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

type Social struct {
	Youtube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
}

type Experience struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string        `bson:"title" json:"title"`
	Company     string        `bson:"company" json:"company"`
	Location    string        `bson:"location,omitempty" json:"location,omitempty"`
	From        string        `bson:"from" json:"from"`
	To          string        `bson:"to,omitempty" json:"to,omitempty"`
	Current     bool          `bson:"current" json:"current"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
}

type Education struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	School       string        `bson:"school" json:"school"`
	Degree       string        `bson:"degree" json:"degree"`
	FieldOfStudy string        `bson:"fieldofstudy" json:"fieldofstudy"`
	From         string        `bson:"from" json:"from"`
	To           string        `bson:"to,omitempty" json:"to,omitempty"`
	Current      bool          `bson:"current" json:"current"`
	Description  string        `bson:"description,omitempty" json:"description,omitempty"`
}

// Profile holds a user's public career and social data. Experience and
// education lists are kept most-recent-first.
type Profile struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         bson.ObjectID `bson:"user" json:"user"`
	Company        string        `bson:"company,omitempty" json:"company,omitempty"`
	Location       string        `bson:"location,omitempty" json:"location,omitempty"`
	Website        string        `bson:"website,omitempty" json:"website,omitempty"`
	Bio            string        `bson:"bio,omitempty" json:"bio,omitempty"`
	Skills         []string      `bson:"skills" json:"skills"`
	Status         string        `bson:"status" json:"status"`
	GithubUsername string        `bson:"githubusername,omitempty" json:"githubusername,omitempty"`
	Social         Social        `bson:"social" json:"social"`
	Experience     []Experience  `bson:"experience" json:"experience"`
	Education      []Education   `bson:"education" json:"education"`
	CreatedAt      int           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      int           `bson:"updatedAt" json:"updatedAt"`
}

// ProfileFields is the full replaceable field set of a profile. An upsert
// writes every field, so values left empty by the caller clear whatever was
// stored before.
type ProfileFields struct {
	Company        string   `bson:"company"`
	Location       string   `bson:"location"`
	Website        string   `bson:"website"`
	Bio            string   `bson:"bio"`
	Skills         []string `bson:"skills"`
	Status         string   `bson:"status"`
	GithubUsername string   `bson:"githubusername"`
	Social         Social   `bson:"social"`
}

// ProfileView is a Profile with the owning user's name and avatar joined in.
// The User field shadows the embedded raw user id in JSON output, matching
// the shape clients expect from the profile endpoints.
type ProfileView struct {
	Profile
	User UserRef `json:"user"`
}
