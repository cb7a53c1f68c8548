package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Topics published by the user-management module.
const (
	TopicUserCreated = "users.created"
	TopicMFAReset    = "users.mfa_reset"
)

// Message is a fire-and-forget notification published on a topic. No
// delivery guarantee is assumed by publishers.
type Message struct {
	ID        uuid.UUID      `json:"id"`
	Topic     string         `json:"topic"`
	UserID    uuid.UUID      `json:"user_id"`
	Payload   map[string]any `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewMessage builds a message for the given topic and user.
func NewMessage(topic string, userID uuid.UUID, payload map[string]any) Message {
	return Message{
		ID:        uuid.New(),
		Topic:     topic,
		UserID:    userID,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
}

// Publisher delivers messages to a notification channel. Implementations
// should be cheap and non-blocking; callers treat failures as best-effort
// and log rather than abort.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// NoopPublisher discards every message. Useful when no channel is wired.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, msg Message) error { return nil }
