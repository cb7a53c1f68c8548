package rbac

import "errors"

// Domain errors for RBAC operations.
var (
	// ErrMalformedRules is returned when a permission rule table contains
	// entries that do not have exactly four fields.
	ErrMalformedRules = errors.New("rbac.malformed_permission_rules")

	// ErrUnknownLegacyRole is returned when a legacy role name cannot be
	// resolved to a builtin role. This signals a data-migration bug, not
	// user input.
	ErrUnknownLegacyRole = errors.New("rbac.unknown_legacy_role")

	// ErrRoleNotFound is returned when a role does not exist in the store.
	ErrRoleNotFound = errors.New("rbac.role_not_found")

	// ErrBindingNotFound is returned when a role binding does not exist.
	ErrBindingNotFound = errors.New("rbac.binding_not_found")

	// ErrDuplicateBinding is returned when a (user, role, org) triple is
	// already bound.
	ErrDuplicateBinding = errors.New("rbac.duplicate_binding")

	// ErrInvalidScope is returned when a scope value is neither "system"
	// nor "org".
	ErrInvalidScope = errors.New("rbac.invalid_scope")
)
