package rbac

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence boundary for RBAC entities. Implementations must
// enforce the (user, role, org) uniqueness of bindings and evaluate binding
// predicates themselves (in-process or compiled to SQL).
type Store interface {
	// Permissions returns every permission row.
	Permissions(ctx context.Context) ([]Permission, error)

	// PermissionsByIDs resolves permission ids to rows; unknown ids are
	// silently skipped.
	PermissionsByIDs(ctx context.Context, ids []uuid.UUID) ([]Permission, error)

	// GetOrCreateRole fetches the role keyed by defaults.ID, creating it
	// from defaults when absent. An existing row's name and scope are not
	// overwritten.
	GetOrCreateRole(ctx context.Context, defaults Role) (role Role, created bool, err error)

	// ReplaceRolePermissions resets the role's permission-id set.
	ReplaceRolePermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error

	// RoleByID fetches a single role including its permission ids.
	// Returns ErrRoleNotFound when absent.
	RoleByID(ctx context.Context, id uuid.UUID) (Role, error)

	// Roles returns every role including permission ids.
	Roles(ctx context.Context) ([]Role, error)

	// SaveBinding creates or updates a role binding. Returns
	// ErrDuplicateBinding when another binding holds the same
	// (user, role, org) triple.
	SaveBinding(ctx context.Context, b *RoleBinding) error

	// DeleteBinding removes a binding by id.
	DeleteBinding(ctx context.Context, id uuid.UUID) error

	// FindBindings returns full binding rows matching the predicate.
	FindBindings(ctx context.Context, pred Predicate) ([]RoleBinding, error)

	// FindBindingRefs returns the (user, role, scope) projection of
	// bindings matching the predicate. Used by batch reads to avoid
	// loading full rows.
	FindBindingRefs(ctx context.Context, pred Predicate) ([]BindingRef, error)
}
