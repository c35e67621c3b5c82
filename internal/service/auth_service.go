package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"devconnector/internal/events"
	"devconnector/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type AuthService struct {
	users          UserStore
	jwtService     *JWTService
	eventPublisher events.Publisher
}

func NewAuthService(users UserStore, jwtService *JWTService, eventPublisher events.Publisher) *AuthService {
	return &AuthService{
		users:          users,
		jwtService:     jwtService,
		eventPublisher: eventPublisher,
	}
}

// Register creates a user with a bcrypt-hashed password and a gravatar
// avatar derived from the email, and returns a signed token for the new
// account.
func (as *AuthService) Register(ctx context.Context, name, email, password string) (string, error) {
	var fieldErrs []FieldError
	if strings.TrimSpace(name) == "" {
		fieldErrs = append(fieldErrs, FieldError{Msg: "Name is required", Param: "name"})
	}
	if !isValidEmail(email) {
		fieldErrs = append(fieldErrs, FieldError{Msg: "Email is required", Param: "email"})
	}
	if len(password) < 6 {
		fieldErrs = append(fieldErrs, FieldError{Msg: "Password is required and min length is 6", Param: "password"})
	}
	if len(fieldErrs) > 0 {
		return "", newValidationError(fieldErrs...)
	}

	existing, err := as.users.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("error finding user by email: %s", err)
	}
	if existing != nil {
		return "", ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %s", err)
	}

	user := &models.User{
		ID:        bson.NewObjectID(),
		Name:      name,
		Email:     email,
		Password:  string(hash),
		Avatar:    GravatarURL(email),
		CreatedAt: int(time.Now().Unix()),
	}

	if _, err := as.users.Insert(ctx, user); err != nil {
		// The unique email index closes the race between the lookup above
		// and this insert.
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateUser
		}
		return "", fmt.Errorf("error creating user: %s", err)
	}
	log.Printf("New user registered: %s", user.ID.Hex())

	if as.eventPublisher != nil {
		if err := as.eventPublisher.PublishUserCreated(ctx, user.ID.Hex(), user.Name, user.Email); err != nil {
			log.Printf("Warning: Failed to publish user created event: %v", err)
		}
	}

	return as.jwtService.Generate(user.ID.Hex())
}

// Login verifies the credentials and returns a signed token. Unknown email
// and wrong password both come back as ErrInvalidCredentials.
func (as *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	var fieldErrs []FieldError
	if !isValidEmail(email) {
		fieldErrs = append(fieldErrs, FieldError{Msg: "Email is required", Param: "email"})
	}
	if password == "" {
		fieldErrs = append(fieldErrs, FieldError{Msg: "Password is required", Param: "password"})
	}
	if len(fieldErrs) > 0 {
		return "", newValidationError(fieldErrs...)
	}

	user, err := as.users.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("error finding user by email: %s", err)
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return as.jwtService.Generate(user.ID.Hex())
}

// CurrentUser returns the user for the given id with the password hash
// never serialized.
func (as *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	id, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	user, err := as.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error finding user: %s", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// GravatarURL derives the avatar address the same way for any spelling of
// the email (case and surrounding spaces do not change the hash).
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=200&r=pg&d=mm", hex.EncodeToString(sum[:]))
}

func isValidEmail(email string) bool {
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}
