package service

import (
	"context"
	"sync"

	"devconnector/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// In-memory store fakes mirroring the Mongo repositories' contracts:
// (nil, nil) on missing documents, no-op deletes, $set-style upserts.

type memUserStore struct {
	mu    sync.Mutex
	users map[bson.ObjectID]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[bson.ObjectID]*models.User)}
}

func (s *memUserStore) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	clone := *user
	s.users[user.ID] = &clone
	return user, nil
}

func (s *memUserStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, nil
}

func (s *memUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.User
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *memUserStore) Delete(ctx context.Context, id bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

type memProfileStore struct {
	mu       sync.Mutex
	profiles map[bson.ObjectID]*models.Profile
}

func newMemProfileStore() *memProfileStore {
	return &memProfileStore{profiles: make(map[bson.ObjectID]*models.Profile)}
}

func (s *memProfileStore) FindByUserID(ctx context.Context, userID bson.ObjectID) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.profiles[userID]; ok {
		clone := cloneProfile(p)
		return clone, nil
	}
	return nil, nil
}

func (s *memProfileStore) FindAll(ctx context.Context) ([]*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Profile
	for _, p := range s.profiles {
		out = append(out, cloneProfile(p))
	}
	return out, nil
}

func (s *memProfileStore) Upsert(ctx context.Context, userID bson.ObjectID, fields models.ProfileFields) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		p = &models.Profile{
			ID:         bson.NewObjectID(),
			UserID:     userID,
			Experience: []models.Experience{},
			Education:  []models.Education{},
		}
		s.profiles[userID] = p
	}

	// Whole field set replaced, embedded lists untouched.
	p.Company = fields.Company
	p.Location = fields.Location
	p.Website = fields.Website
	p.Bio = fields.Bio
	p.Skills = fields.Skills
	p.Status = fields.Status
	p.GithubUsername = fields.GithubUsername
	p.Social = fields.Social

	return cloneProfile(p), nil
}

func (s *memProfileStore) PushEntry(ctx context.Context, userID bson.ObjectID, field string, entry any) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}

	switch field {
	case "experience":
		p.Experience = append([]models.Experience{entry.(models.Experience)}, p.Experience...)
	case "education":
		p.Education = append([]models.Education{entry.(models.Education)}, p.Education...)
	}
	return cloneProfile(p), nil
}

func (s *memProfileStore) PullEntry(ctx context.Context, userID bson.ObjectID, field string, entryID bson.ObjectID) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}

	switch field {
	case "experience":
		kept := p.Experience[:0]
		for _, e := range p.Experience {
			if e.ID != entryID {
				kept = append(kept, e)
			}
		}
		p.Experience = kept
	case "education":
		kept := p.Education[:0]
		for _, e := range p.Education {
			if e.ID != entryID {
				kept = append(kept, e)
			}
		}
		p.Education = kept
	}
	return cloneProfile(p), nil
}

func (s *memProfileStore) Delete(ctx context.Context, userID bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, userID)
	return nil
}

func cloneProfile(p *models.Profile) *models.Profile {
	clone := *p
	clone.Skills = append([]string(nil), p.Skills...)
	clone.Experience = append([]models.Experience(nil), p.Experience...)
	clone.Education = append([]models.Education(nil), p.Education...)
	return &clone
}
