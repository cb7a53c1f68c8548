package rbac

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rolekit/pkg/org"
)

// RoleBinding is the persisted fact that a user holds a role, optionally
// within an organization. A nil OrgID means the binding is global. Scope is
// denormalized from the bound role on every save for query efficiency and
// must never drift from it.
type RoleBinding struct {
	ID     uuid.UUID  `json:"id"`
	UserID uuid.UUID  `json:"user_id"`
	RoleID uuid.UUID  `json:"role_id"`
	OrgID  *uuid.UUID `json:"org_id,omitempty"`
	Scope  Scope      `json:"scope"`
}

// fieldValue exposes binding columns to predicate evaluation. The global org
// is the empty string.
func (b *RoleBinding) fieldValue(f Field) string {
	switch f {
	case FieldScope:
		return string(b.Scope)
	case FieldUserID:
		return b.UserID.String()
	case FieldRoleID:
		return b.RoleID.String()
	case FieldOrgID:
		if b.OrgID == nil {
			return ""
		}
		return b.OrgID.String()
	default:
		return ""
	}
}

// BindingRef is the (user, role, scope) column projection of a binding used
// by batch reads.
type BindingRef struct {
	UserID uuid.UUID
	RoleID uuid.UUID
	Scope  Scope
}

// Manager is the scoping query layer over role bindings. Every read is
// constrained by an explicit org context: system-scope bindings are always
// visible, org-scope bindings only within their own organization. At root,
// org-scope bindings are invisible: the global context does not implicitly
// see every org's bindings.
type Manager struct {
	store Store
}

// NewManager creates a binding manager over the given store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// visiblePred is the base visibility predicate for the org context.
func visiblePred(oc org.Context) Predicate {
	pred := Or(And(Eq(FieldScope, string(ScopeSystem))))
	if !oc.IsRoot() {
		pred = append(pred, And(
			Eq(FieldScope, string(ScopeOrg)),
			Eq(FieldOrgID, oc.ID.String()),
		))
	}
	return pred
}

// VisibleBindings returns every binding visible in the org context.
func (m *Manager) VisibleBindings(ctx context.Context, oc org.Context) ([]RoleBinding, error) {
	return m.store.FindBindings(ctx, visiblePred(oc))
}

// Save persists the binding, forcing its scope to the bound role's scope.
// The denormalization executes on every save, not only on creation, so a
// binding repointed at a role of a different scope cannot drift.
func (m *Manager) Save(ctx context.Context, b *RoleBinding) error {
	role, err := m.store.RoleByID(ctx, b.RoleID)
	if err != nil {
		return fmt.Errorf("resolve bound role: %w", err)
	}
	b.Scope = role.Scope
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return m.store.SaveBinding(ctx, b)
}

// Delete removes a binding by id.
func (m *Manager) Delete(ctx context.Context, id uuid.UUID) error {
	return m.store.DeleteBinding(ctx, id)
}

// UserRoles returns the distinct roles reachable via any visible binding for
// the user, both system- and org-scoped.
func (m *Manager) UserRoles(ctx context.Context, oc org.Context, userID uuid.UUID) ([]Role, error) {
	pred := visiblePred(oc).and(Eq(FieldUserID, userID.String()))
	refs, err := m.store.FindBindingRefs(ctx, pred)
	if err != nil {
		return nil, err
	}

	// One role-table read regardless of how many bindings matched.
	roleMap, err := m.RoleMap(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(refs))
	roles := make([]Role, 0, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref.RoleID]; ok {
			continue
		}
		seen[ref.RoleID] = struct{}{}
		role, ok := roleMap[ref.RoleID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrRoleNotFound, ref.RoleID)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// UserPerms returns the deduplicated union of permissions granted by every
// role reachable via UserRoles.
func (m *Manager) UserPerms(ctx context.Context, oc org.Context, userID uuid.UUID) ([]Permission, error) {
	roles, err := m.UserRoles(ctx, oc, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, role := range roles {
		for _, id := range role.PermissionIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return m.store.PermissionsByIDs(ctx, ids)
}

// RoleUsers returns the distinct users bound to the role within the role's
// own scope. A role's scope constrains which bindings count.
func (m *Manager) RoleUsers(ctx context.Context, oc org.Context, roleID uuid.UUID) ([]uuid.UUID, error) {
	role, err := m.store.RoleByID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	pred := visiblePred(oc).and(
		Eq(FieldRoleID, role.ID.String()),
		Eq(FieldScope, string(role.Scope)),
	)
	refs, err := m.store.FindBindingRefs(ctx, pred)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(refs))
	users := make([]uuid.UUID, 0, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref.UserID]; ok {
			continue
		}
		seen[ref.UserID] = struct{}{}
		users = append(users, ref.UserID)
	}
	return users, nil
}

// UserBindingRefs returns the visible (user, role, scope) projections for a
// batch of users in a single store read.
func (m *Manager) UserBindingRefs(ctx context.Context, oc org.Context, userIDs []uuid.UUID) ([]BindingRef, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	values := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		values = append(values, id.String())
	}
	pred := visiblePred(oc).and(In(FieldUserID, values...))
	return m.store.FindBindingRefs(ctx, pred)
}

// RoleMap returns every role keyed by id in a single store read.
func (m *Manager) RoleMap(ctx context.Context) (map[uuid.UUID]Role, error) {
	roles, err := m.store.Roles(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]Role, len(roles))
	for _, role := range roles {
		out[role.ID] = role
	}
	return out, nil
}
