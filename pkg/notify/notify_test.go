package notify_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rolekit/pkg/notify"
)

func TestNewMessage(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	msg := notify.NewMessage(notify.TopicUserCreated, userID, map[string]any{"username": "alice"})

	assert.NotEqual(t, uuid.Nil, msg.ID)
	assert.Equal(t, notify.TopicUserCreated, msg.Topic)
	assert.Equal(t, userID, msg.UserID)
	assert.Equal(t, "alice", msg.Payload["username"])
	assert.False(t, msg.CreatedAt.IsZero())
}

func TestMemoryPublisher(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	pub := notify.NewMemoryPublisher()
	first := notify.NewMessage(notify.TopicUserCreated, uuid.New(), nil)
	second := notify.NewMessage(notify.TopicMFAReset, uuid.New(), nil)

	require.NoError(t, pub.Publish(ctx, first))
	require.NoError(t, pub.Publish(ctx, second))

	got := pub.Messages()
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)

	// The returned slice is a copy.
	got[0] = notify.Message{}
	assert.Equal(t, first.ID, pub.Messages()[0].ID)
}

func TestNoopPublisher(t *testing.T) {
	t.Parallel()
	require.NoError(t, notify.NoopPublisher{}.Publish(context.Background(), notify.NewMessage(notify.TopicMFAReset, uuid.New(), nil)))
}
