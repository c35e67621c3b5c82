package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"devconnector/internal/events"
	"devconnector/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ProfileService struct {
	profiles       ProfileStore
	users          UserStore
	eventPublisher events.Publisher
}

func NewProfileService(profiles ProfileStore, users UserStore, eventPublisher events.Publisher) *ProfileService {
	return &ProfileService{
		profiles:       profiles,
		users:          users,
		eventPublisher: eventPublisher,
	}
}

// UpsertProfileInput carries the whole replaceable field set of a profile.
// Skills accepts either a list of strings or a single comma-delimited
// string.
type UpsertProfileInput struct {
	Company        string `json:"company"`
	Location       string `json:"location"`
	Website        string `json:"website"`
	Bio            string `json:"bio"`
	Skills         any    `json:"skills"`
	Status         string `json:"status"`
	GithubUsername string `json:"githubusername"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Instagram      string `json:"instagram"`
	Linkedin       string `json:"linkedin"`
	Facebook       string `json:"facebook"`
}

func (ps *ProfileService) GetOwnProfile(ctx context.Context, userID string) (*models.ProfileView, error) {
	return ps.GetByUserID(ctx, userID)
}

// GetByUserID returns the profile joined with the owner's name and avatar.
// A malformed id behaves the same as a missing profile.
func (ps *ProfileService) GetByUserID(ctx context.Context, userID string) (*models.ProfileView, error) {
	id, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	profile, err := ps.profiles.FindByUserID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error finding profile: %s", err)
	}
	if profile == nil {
		return nil, ErrNotFound
	}

	return ps.joinUser(ctx, profile), nil
}

func (ps *ProfileService) List(ctx context.Context) ([]*models.ProfileView, error) {
	profiles, err := ps.profiles.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing profiles: %s", err)
	}

	ids := make([]bson.ObjectID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}

	refs := make(map[bson.ObjectID]models.UserRef)
	if len(ids) > 0 {
		users, err := ps.users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("error loading profile owners: %s", err)
		}
		for _, u := range users {
			refs[u.ID] = models.UserRef{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
		}
	}

	views := make([]*models.ProfileView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, &models.ProfileView{Profile: *p, User: refs[p.UserID]})
	}
	return views, nil
}

// Upsert creates the user's profile or replaces its whole field set in
// place. This is deliberately replace-not-merge: a field left out of the
// input is cleared to its zero value, unlike a PATCH-style merge.
func (ps *ProfileService) Upsert(ctx context.Context, userID string, input UpsertProfileInput) (*models.ProfileView, error) {
	id, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	skills, skillsOK := NormalizeSkills(input.Skills)

	var fieldErrs []FieldError
	if strings.TrimSpace(input.Status) == "" {
		fieldErrs = append(fieldErrs, FieldError{Msg: "Status is required", Param: "status"})
	}
	if !skillsOK || len(skills) == 0 {
		fieldErrs = append(fieldErrs, FieldError{Msg: "Skills is required", Param: "skills"})
	}
	if len(fieldErrs) > 0 {
		return nil, newValidationError(fieldErrs...)
	}

	fields := models.ProfileFields{
		Company:        input.Company,
		Location:       input.Location,
		Website:        NormalizeURL(input.Website),
		Bio:            input.Bio,
		Skills:         skills,
		Status:         input.Status,
		GithubUsername: input.GithubUsername,
		Social: models.Social{
			Youtube:   NormalizeURL(input.Youtube),
			Twitter:   NormalizeURL(input.Twitter),
			Instagram: NormalizeURL(input.Instagram),
			Linkedin:  NormalizeURL(input.Linkedin),
			Facebook:  NormalizeURL(input.Facebook),
		},
	}

	profile, err := ps.profiles.Upsert(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("error upserting profile: %s", err)
	}

	if ps.eventPublisher != nil {
		if err := ps.eventPublisher.PublishProfileUpdated(ctx, userID); err != nil {
			log.Printf("Warning: Failed to publish profile updated event: %v", err)
		}
	}

	return ps.joinUser(ctx, profile), nil
}

// DeleteAccount removes the profile and then the user. Either document may
// already be gone; the operation stays idempotent. The two deletes are not
// atomic, so a crash in between can leave a user without a profile.
func (ps *ProfileService) DeleteAccount(ctx context.Context, userID string) error {
	id, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}

	if err := ps.profiles.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting profile: %s", err)
	}
	if err := ps.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting user: %s", err)
	}
	log.Printf("Account deleted: %s", userID)

	if ps.eventPublisher != nil {
		if err := ps.eventPublisher.PublishUserDeleted(ctx, userID); err != nil {
			log.Printf("Warning: Failed to publish user deleted event: %v", err)
		}
	}
	return nil
}

func (ps *ProfileService) AddExperience(ctx context.Context, userID string, entry models.Experience) (*models.ProfileView, error) {
	id, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	var fieldErrs []FieldError
	if strings.TrimSpace(entry.Title) == "" {
		fieldErrs = append(fieldErrs, FieldError{Msg: "Title is required", Param: "title"})
	}
	if strings.TrimSpace(entry.Company) == "" {
		fieldErrs = append(fieldErrs, FieldError{Msg: "Company is required", Param: "company"})
	}
	if strings.TrimSpace(entry.From) == "" {
		fieldErrs = append(fieldErrs, FieldError{Msg: "From date is required", Param: "from"})
	}
	if len(fieldErrs) > 0 {
		return nil, newValidationError(fieldErrs...)
	}

	entry.ID = bson.NewObjectID()
	profile, err := ps.profiles.PushEntry(ctx, id, "experience", entry)
	if err != nil {
		return nil, fmt.Errorf("error adding experience: %s", err)
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return ps.joinUser(ctx, profile), nil
}

// RemoveExperience drops the entry with the given id. An unknown or
// malformed id leaves the list as it was rather than failing.
func (ps *ProfileService) RemoveExperience(ctx context.Context, userID, entryID string) (*models.ProfileView, error) {
	return ps.removeEntry(ctx, userID, "experience", entryID)
}

func (ps *ProfileService) AddEducation(ctx context.Context, userID string, entry models.Education) (*models.ProfileView, error) {
	id, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	var fieldErrs []FieldError
	if strings.TrimSpace(entry.School) == "" {
		fieldErrs = append(fieldErrs, FieldError{Msg: "School is required", Param: "school"})
	}
	if strings.TrimSpace(entry.Degree) == "" {
		fieldErrs = append(fieldErrs, FieldError{Msg: "Degree is required", Param: "degree"})
	}
	if strings.TrimSpace(entry.FieldOfStudy) == "" {
		fieldErrs = append(fieldErrs, FieldError{Msg: "Field of study is required", Param: "fieldofstudy"})
	}
	if strings.TrimSpace(entry.From) == "" {
		fieldErrs = append(fieldErrs, FieldError{Msg: "From date is required", Param: "from"})
	}
	if len(fieldErrs) > 0 {
		return nil, newValidationError(fieldErrs...)
	}

	entry.ID = bson.NewObjectID()
	profile, err := ps.profiles.PushEntry(ctx, id, "education", entry)
	if err != nil {
		return nil, fmt.Errorf("error adding education: %s", err)
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return ps.joinUser(ctx, profile), nil
}

func (ps *ProfileService) RemoveEducation(ctx context.Context, userID, entryID string) (*models.ProfileView, error) {
	return ps.removeEntry(ctx, userID, "education", entryID)
}

func (ps *ProfileService) removeEntry(ctx context.Context, userID, field, entryID string) (*models.ProfileView, error) {
	id, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	eid, err := bson.ObjectIDFromHex(entryID)
	if err != nil {
		// Malformed entry id: nothing can match it, return the profile
		// unchanged.
		profile, ferr := ps.profiles.FindByUserID(ctx, id)
		if ferr != nil {
			return nil, fmt.Errorf("error finding profile: %s", ferr)
		}
		if profile == nil {
			return nil, ErrNotFound
		}
		return ps.joinUser(ctx, profile), nil
	}

	profile, err := ps.profiles.PullEntry(ctx, id, field, eid)
	if err != nil {
		return nil, fmt.Errorf("error removing %s entry: %s", field, err)
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return ps.joinUser(ctx, profile), nil
}

func (ps *ProfileService) joinUser(ctx context.Context, profile *models.Profile) *models.ProfileView {
	view := &models.ProfileView{Profile: *profile}
	user, err := ps.users.FindByID(ctx, profile.UserID)
	if err != nil {
		log.Printf("Warning: Failed to load owner of profile %s: %v", profile.ID.Hex(), err)
		return view
	}
	if user != nil {
		view.User = models.UserRef{ID: user.ID, Name: user.Name, Avatar: user.Avatar}
	}
	return view
}

// NormalizeSkills turns either a pre-split list or a comma-delimited string
// into trimmed entries, dropping empties and preserving order. The second
// return is false when the value is neither shape.
func NormalizeSkills(raw any) ([]string, bool) {
	var parts []string
	switch v := raw.(type) {
	case nil:
		return nil, true
	case string:
		parts = strings.Split(v, ",")
	case []string:
		parts = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			parts = append(parts, s)
		}
	default:
		return nil, false
	}

	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills, true
}

// NormalizeURL canonicalizes a link to HTTPS with a lowercased host and no
// trailing slash. Empty input passes through unchanged.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		u, err = url.Parse("https://" + raw)
		if err != nil || u.Host == "" {
			return raw
		}
	}

	u.Scheme = "https"
	u.Host = strings.ToLower(u.Host)
	return strings.TrimSuffix(u.String(), "/")
}
