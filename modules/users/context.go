package users

import (
	"context"

	"github.com/google/uuid"
)

// actorCtxKey is a private type to prevent context key collisions.
type actorCtxKey struct{}

// WithActor stores the authenticated caller's user id in the context. The
// host application's auth middleware is expected to set this.
func WithActor(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, id)
}

// ActorFromContext retrieves the authenticated caller's user id.
func ActorFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(actorCtxKey{}).(uuid.UUID)
	return id, ok
}
