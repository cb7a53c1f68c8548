package rbac

import "github.com/google/uuid"

// Role is a persisted named permission set. Builtin roles are materialized
// from templates and keep a deterministic id; custom roles are managed by
// administrative tooling outside this package.
type Role struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	Scope         Scope       `json:"scope"`
	Builtin       bool        `json:"builtin"`
	PermissionIDs []uuid.UUID `json:"permission_ids"`
}
