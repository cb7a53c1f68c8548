package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rolekit/pkg/rbac"
)

// User is a managed account. Role fields are transient per-request caches
// set by AttachRoles; they are never persisted and are discarded with the
// instance at end of request.
type User struct {
	ID               uuid.UUID  `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	PasswordHash     string     `json:"-"`
	Source           string     `json:"source"`
	IsServiceAccount bool       `json:"is_service_account"`
	MFAEnabled       bool       `json:"mfa_enabled"`
	MFASecret        string     `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`

	// Cached role sets: Roles is always SystemRoles plus OrgRoles.
	Roles       []rbac.Role `json:"roles,omitempty"`
	SystemRoles []rbac.Role `json:"system_roles,omitempty"`
	OrgRoles    []rbac.Role `json:"org_roles,omitempty"`
}

// Removed reports whether the user has been soft-deleted.
func (u *User) Removed() bool {
	return u.DeletedAt != nil
}
