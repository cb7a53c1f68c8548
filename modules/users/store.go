package users

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows and pages user listings. Soft-deleted users are always
// excluded.
type ListFilter struct {
	// Search matches username, email and name, case-insensitively.
	Search string

	// ExcludeServiceAccounts drops service accounts from the result.
	ExcludeServiceAccounts bool

	Limit  int
	Offset int
}

// Store is the persistence boundary for user records.
type Store interface {
	List(ctx context.Context, filter ListFilter) ([]*User, error)

	// ByID returns a user by id; ErrUserNotFound when absent or removed.
	ByID(ctx context.Context, id uuid.UUID) (*User, error)

	// ByIDs returns the users matching the given ids, skipping unknown
	// and removed ones.
	ByIDs(ctx context.Context, ids []uuid.UUID) ([]*User, error)

	// Create persists a new user; ErrDuplicateUser on username or email
	// conflict.
	Create(ctx context.Context, u *User) error

	// Update persists changes to an existing user.
	Update(ctx context.Context, u *User) error

	// SoftDelete marks the user as removed, keeping the row.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// Delete removes the row entirely.
	Delete(ctx context.Context, id uuid.UUID) error
}
