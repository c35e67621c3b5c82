package events

import (
	"context"
	"log"
)

type Publisher interface {
	PublishUserCreated(ctx context.Context, userID, name, email string) error
	PublishUserDeleted(ctx context.Context, userID string) error
	PublishProfileUpdated(ctx context.Context, userID string) error

	// Close closes the publisher and releases resources.
	Close() error
}

type EventPublisher struct {
	rabbitMQ *RabbitMQClient
	enabled  bool
}

// NewEventPublisher connects to RabbitMQ. An empty URI disables publishing
// instead of failing, so the service runs without a broker.
func NewEventPublisher(rabbitURI string) (*EventPublisher, error) {
	if rabbitURI == "" {
		log.Println("Warning: RabbitMQ URI is empty, event publishing is disabled")
		return &EventPublisher{
			rabbitMQ: nil,
			enabled:  false,
		}, nil
	}

	client, err := NewRabbitMQClient(rabbitURI)
	if err != nil {
		return nil, err
	}

	if err := client.setupExchanges(); err != nil {
		client.Close()
		return nil, err
	}

	return &EventPublisher{
		rabbitMQ: client,
		enabled:  true,
	}, nil
}

func (p *EventPublisher) PublishUserCreated(ctx context.Context, userID, name, email string) error {
	if !p.enabled {
		return nil
	}

	event := NewUserCreatedEvent(userID, name, email)

	eventData, err := event.ToJSON()
	if err != nil {
		return err
	}

	if err := p.rabbitMQ.PublishEvent("user-events", string(UserCreated), eventData); err != nil {
		return err
	}

	log.Printf("Published UserCreated event for user ID: %s", userID)
	return nil
}

func (p *EventPublisher) PublishUserDeleted(ctx context.Context, userID string) error {
	if !p.enabled {
		return nil
	}

	event := NewUserDeletedEvent(userID)

	eventData, err := event.ToJSON()
	if err != nil {
		return err
	}

	if err := p.rabbitMQ.PublishEvent("user-events", string(UserDeleted), eventData); err != nil {
		return err
	}

	log.Printf("Published UserDeleted event for user ID: %s", userID)
	return nil
}

func (p *EventPublisher) PublishProfileUpdated(ctx context.Context, userID string) error {
	if !p.enabled {
		return nil
	}

	event := NewProfileUpdatedEvent(userID)

	eventData, err := event.ToJSON()
	if err != nil {
		return err
	}

	if err := p.rabbitMQ.PublishEvent("user-events", string(ProfileUpdated), eventData); err != nil {
		return err
	}

	log.Printf("Published ProfileUpdated event for user ID: %s", userID)
	return nil
}

func (p *EventPublisher) Close() error {
	if !p.enabled || p.rabbitMQ == nil {
		return nil
	}

	return p.rabbitMQ.Close()
}
