package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"devconnector/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func newTestProfileService() (*ProfileService, bson.ObjectID) {
	users := newMemUserStore()
	profiles := newMemProfileStore()
	owner := &models.User{ID: bson.NewObjectID(), Name: "Jane", Email: "jane@example.com", Avatar: "https://example.com/a.png"}
	users.Insert(context.Background(), owner)
	return NewProfileService(profiles, users, nil), owner.ID
}

func baseInput() UpsertProfileInput {
	return UpsertProfileInput{
		Company:  "Acme",
		Website:  "example.com",
		Bio:      "builder of things",
		Skills:   "go, mongodb, docker",
		Status:   "Developer",
		Twitter:  "twitter.com/jane",
		Linkedin: "",
	}
}

func TestUpsert_NormalizesAndJoinsUser(t *testing.T) {
	svc, owner := newTestProfileService()
	ctx := context.Background()

	profile, err := svc.Upsert(ctx, owner.Hex(), baseInput())
	if err != nil {
		t.Fatalf("Upsert error: %v", err)
	}

	if got, want := profile.Skills, []string{"go", "mongodb", "docker"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("skills not normalized: got=%v want=%v", got, want)
	}
	if profile.Website != "https://example.com" {
		t.Fatalf("website not normalized: %s", profile.Website)
	}
	if profile.Social.Twitter != "https://twitter.com/jane" {
		t.Fatalf("twitter not normalized: %s", profile.Social.Twitter)
	}
	if profile.Social.Linkedin != "" {
		t.Fatalf("empty social link must stay empty, got %s", profile.Social.Linkedin)
	}
	if profile.User.Name != "Jane" || profile.User.Avatar == "" {
		t.Fatalf("owner not joined: %+v", profile.User)
	}
}

func TestUpsert_Idempotent(t *testing.T) {
	svc, owner := newTestProfileService()
	ctx := context.Background()

	first, err := svc.Upsert(ctx, owner.Hex(), baseInput())
	if err != nil {
		t.Fatalf("first Upsert error: %v", err)
	}
	second, err := svc.Upsert(ctx, owner.Hex(), baseInput())
	if err != nil {
		t.Fatalf("second Upsert error: %v", err)
	}

	if first.ID != second.ID {
		t.Fatal("second upsert created a new document")
	}
	if !reflect.DeepEqual(first.Skills, second.Skills) || first.Website != second.Website ||
		first.Status != second.Status || first.Social != second.Social {
		t.Fatalf("repeated upsert changed the profile: %+v vs %+v", first.Profile, second.Profile)
	}
}

// A field present in an earlier upsert but omitted later is cleared: the
// operation replaces the whole field set, it does not merge.
func TestUpsert_ReplacesNotMerges(t *testing.T) {
	svc, owner := newTestProfileService()
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, owner.Hex(), baseInput()); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}

	input := UpsertProfileInput{Skills: []string{"go"}, Status: "Freelancer"}
	profile, err := svc.Upsert(ctx, owner.Hex(), input)
	if err != nil {
		t.Fatalf("Upsert error: %v", err)
	}

	if profile.Company != "" || profile.Website != "" || profile.Bio != "" {
		t.Fatalf("omitted fields were not cleared: %+v", profile.Profile)
	}
	if profile.Status != "Freelancer" {
		t.Fatalf("unexpected status: %s", profile.Status)
	}
}

func TestUpsert_Validation(t *testing.T) {
	svc, owner := newTestProfileService()
	ctx := context.Background()

	cases := []struct {
		name  string
		input UpsertProfileInput
	}{
		{"missing status", UpsertProfileInput{Skills: "go"}},
		{"missing skills", UpsertProfileInput{Status: "Developer"}},
		{"skills wrong type", UpsertProfileInput{Status: "Developer", Skills: 42}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Upsert(ctx, owner.Hex(), tc.input)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestGetByUserID_NotFound(t *testing.T) {
	svc, _ := newTestProfileService()
	ctx := context.Background()

	if _, err := svc.GetByUserID(ctx, bson.NewObjectID().Hex()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing profile, got %v", err)
	}
	if _, err := svc.GetByUserID(ctx, "not-a-valid-object-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for malformed id, got %v", err)
	}
}

func TestExperience_AddThenRemovePreservesOrder(t *testing.T) {
	svc, owner := newTestProfileService()
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, owner.Hex(), baseInput()); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}

	older := models.Experience{Title: "Junior Dev", Company: "Acme", From: "2018-01-01"}
	newer := models.Experience{Title: "Senior Dev", Company: "Globex", From: "2021-01-01"}

	if _, err := svc.AddExperience(ctx, owner.Hex(), older); err != nil {
		t.Fatalf("AddExperience error: %v", err)
	}
	profile, err := svc.AddExperience(ctx, owner.Hex(), newer)
	if err != nil {
		t.Fatalf("AddExperience error: %v", err)
	}

	if len(profile.Experience) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(profile.Experience))
	}
	if profile.Experience[0].Title != "Senior Dev" || profile.Experience[1].Title != "Junior Dev" {
		t.Fatalf("entries not most-recent-first: %+v", profile.Experience)
	}

	removedID := profile.Experience[0].ID
	profile, err = svc.RemoveExperience(ctx, owner.Hex(), removedID.Hex())
	if err != nil {
		t.Fatalf("RemoveExperience error: %v", err)
	}
	if len(profile.Experience) != 1 || profile.Experience[0].Title != "Junior Dev" {
		t.Fatalf("wrong entry removed: %+v", profile.Experience)
	}

	// Removing an id that no longer exists is a no-op, not an error.
	profile, err = svc.RemoveExperience(ctx, owner.Hex(), removedID.Hex())
	if err != nil {
		t.Fatalf("repeat RemoveExperience error: %v", err)
	}
	if len(profile.Experience) != 1 {
		t.Fatalf("no-op remove changed the list: %+v", profile.Experience)
	}

	// Same for a malformed entry id.
	profile, err = svc.RemoveExperience(ctx, owner.Hex(), "garbage")
	if err != nil {
		t.Fatalf("malformed-id RemoveExperience error: %v", err)
	}
	if len(profile.Experience) != 1 {
		t.Fatalf("malformed-id remove changed the list: %+v", profile.Experience)
	}
}

func TestExperience_Validation(t *testing.T) {
	svc, owner := newTestProfileService()
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, owner.Hex(), baseInput()); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}

	_, err := svc.AddExperience(ctx, owner.Hex(), models.Experience{Title: "Dev"})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestEducation_AddAndRemove(t *testing.T) {
	svc, owner := newTestProfileService()
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, owner.Hex(), baseInput()); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}

	entry := models.Education{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2015-09-01"}
	profile, err := svc.AddEducation(ctx, owner.Hex(), entry)
	if err != nil {
		t.Fatalf("AddEducation error: %v", err)
	}
	if len(profile.Education) != 1 || profile.Education[0].School != "MIT" {
		t.Fatalf("education not added: %+v", profile.Education)
	}

	profile, err = svc.RemoveEducation(ctx, owner.Hex(), profile.Education[0].ID.Hex())
	if err != nil {
		t.Fatalf("RemoveEducation error: %v", err)
	}
	if len(profile.Education) != 0 {
		t.Fatalf("education not removed: %+v", profile.Education)
	}

	_, err = svc.AddEducation(ctx, owner.Hex(), models.Education{School: "MIT"})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAddExperience_NoProfile(t *testing.T) {
	svc, owner := newTestProfileService()

	entry := models.Experience{Title: "Dev", Company: "Acme", From: "2020-01-01"}
	_, err := svc.AddExperience(context.Background(), owner.Hex(), entry)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound without a profile, got %v", err)
	}
}

func TestDeleteAccount_Idempotent(t *testing.T) {
	svc, owner := newTestProfileService()
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, owner.Hex(), baseInput()); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}

	if err := svc.DeleteAccount(ctx, owner.Hex()); err != nil {
		t.Fatalf("first DeleteAccount error: %v", err)
	}
	if err := svc.DeleteAccount(ctx, owner.Hex()); err != nil {
		t.Fatalf("second DeleteAccount must not fail: %v", err)
	}

	if _, err := svc.GetByUserID(ctx, owner.Hex()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("profile still present after delete: %v", err)
	}
}

func TestList_JoinsOwners(t *testing.T) {
	svc, owner := newTestProfileService()
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, owner.Hex(), baseInput()); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}

	views, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(views))
	}
	if views[0].User.Name != "Jane" {
		t.Fatalf("owner not joined in list: %+v", views[0].User)
	}
}

func TestNormalizeSkills(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want []string
		ok   bool
	}{
		{"comma string", "a, b, c", []string{"a", "b", "c"}, true},
		{"extra spaces and empties", " go ,, mongo ", []string{"go", "mongo"}, true},
		{"pre-split", []string{" go", "mongo "}, []string{"go", "mongo"}, true},
		{"json array", []any{"go", "mongo"}, []string{"go", "mongo"}, true},
		{"nil", nil, nil, true},
		{"wrong type", 42, nil, false},
		{"mixed array", []any{"go", 1}, nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeSkills(tc.in)
			if ok != tc.ok {
				t.Fatalf("ok: got=%v want=%v", ok, tc.ok)
			}
			if tc.ok && len(tc.want) > 0 && !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"example.com", "https://example.com"},
		{"http://example.com", "https://example.com"},
		{"https://Example.COM/", "https://example.com"},
		{"example.com/path", "https://example.com/path"},
		{"https://www.youtube.com/c/jane", "https://www.youtube.com/c/jane"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := NormalizeURL(tc.in); got != tc.want {
				t.Errorf("NormalizeURL(%q): got=%q want=%q", tc.in, got, tc.want)
			}
		})
	}
}
