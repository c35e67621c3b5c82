package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	// UserCreated is triggered when a new user registers.
	UserCreated EventType = "user.created"
	// UserDeleted is triggered when an account is removed.
	UserDeleted EventType = "user.deleted"
	// ProfileUpdated is triggered when a profile is created or replaced.
	ProfileUpdated EventType = "profile.updated"
)

type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp int64     `json:"timestamp"`
	Version   string    `json:"version"`
}

type UserCreatedEvent struct {
	BaseEvent
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

func NewUserCreatedEvent(userID, name, email string) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseEvent: newBaseEvent(UserCreated),
		UserID:    userID,
		Name:      name,
		Email:     email,
	}
}

func (e *UserCreatedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

type UserDeletedEvent struct {
	BaseEvent
	UserID string `json:"user_id"`
}

func NewUserDeletedEvent(userID string) *UserDeletedEvent {
	return &UserDeletedEvent{
		BaseEvent: newBaseEvent(UserDeleted),
		UserID:    userID,
	}
}

func (e *UserDeletedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

type ProfileUpdatedEvent struct {
	BaseEvent
	UserID string `json:"user_id"`
}

func NewProfileUpdatedEvent(userID string) *ProfileUpdatedEvent {
	return &ProfileUpdatedEvent{
		BaseEvent: newBaseEvent(ProfileUpdated),
		UserID:    userID,
	}
}

func (e *ProfileUpdatedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func newBaseEvent(eventType EventType) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Version:   "1.0",
	}
}
