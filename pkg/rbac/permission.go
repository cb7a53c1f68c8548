package rbac

import "github.com/google/uuid"

// Permission is a persisted access right: a single action on a resource
// belonging to an application area. Scope follows the resource's
// classification; org-scope permissions are the subset that make sense
// inside a single organization.
type Permission struct {
	ID       uuid.UUID `json:"id"`
	App      string    `json:"app"`
	Resource string    `json:"resource"`
	Action   string    `json:"action"`
	Alias    string    `json:"alias"`
	Scope    Scope     `json:"scope"`
}

func permissionIDs(perms []Permission) []uuid.UUID {
	if len(perms) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(perms))
	for _, p := range perms {
		ids = append(ids, p.ID)
	}
	return ids
}
