package rbac

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store implementation. It is thread-safe and
// makes defensive copies so callers can never mutate internal state. Intended
// for tests and single-process embedding.
type MemoryStore struct {
	mu          sync.RWMutex
	permissions map[uuid.UUID]Permission
	permOrder   []uuid.UUID
	roles       map[uuid.UUID]Role
	bindings    map[uuid.UUID]RoleBinding
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		permissions: make(map[uuid.UUID]Permission),
		roles:       make(map[uuid.UUID]Role),
		bindings:    make(map[uuid.UUID]RoleBinding),
	}
}

// SeedPermissions loads permission rows into the store. Rows without an id
// get a generated one. Returns the seeded rows.
func (s *MemoryStore) SeedPermissions(perms ...Permission) []Permission {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Permission, 0, len(perms))
	for _, p := range perms {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if _, ok := s.permissions[p.ID]; !ok {
			s.permOrder = append(s.permOrder, p.ID)
		}
		s.permissions[p.ID] = p
		out = append(out, p)
	}
	return out
}

func (s *MemoryStore) Permissions(ctx context.Context) ([]Permission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Permission, 0, len(s.permOrder))
	for _, id := range s.permOrder {
		out = append(out, s.permissions[id])
	}
	return out, nil
}

func (s *MemoryStore) PermissionsByIDs(ctx context.Context, ids []uuid.UUID) ([]Permission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Permission, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.permissions[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetOrCreateRole(ctx context.Context, defaults Role) (Role, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.roles[defaults.ID]; ok {
		return copyRole(existing), false, nil
	}
	role := copyRole(defaults)
	s.roles[role.ID] = role
	return copyRole(role), true, nil
}

func (s *MemoryStore) ReplaceRolePermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	role, ok := s.roles[roleID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRoleNotFound, roleID)
	}
	role.PermissionIDs = append([]uuid.UUID(nil), permissionIDs...)
	s.roles[roleID] = role
	return nil
}

func (s *MemoryStore) RoleByID(ctx context.Context, id uuid.UUID) (Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role, ok := s.roles[id]
	if !ok {
		return Role{}, fmt.Errorf("%w: %s", ErrRoleNotFound, id)
	}
	return copyRole(role), nil
}

func (s *MemoryStore) Roles(ctx context.Context) ([]Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Role, 0, len(s.roles))
	for _, role := range s.roles {
		out = append(out, copyRole(role))
	}
	return out, nil
}

func (s *MemoryStore) SaveBinding(ctx context.Context, b *RoleBinding) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.bindings {
		if existing.ID == b.ID {
			continue
		}
		if existing.UserID == b.UserID && existing.RoleID == b.RoleID && equalOrgID(existing.OrgID, b.OrgID) {
			return ErrDuplicateBinding
		}
	}
	s.bindings[b.ID] = copyBinding(*b)
	return nil
}

func (s *MemoryStore) DeleteBinding(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bindings[id]; !ok {
		return fmt.Errorf("%w: %s", ErrBindingNotFound, id)
	}
	delete(s.bindings, id)
	return nil
}

func (s *MemoryStore) FindBindings(ctx context.Context, pred Predicate) ([]RoleBinding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []RoleBinding
	for _, b := range s.bindings {
		if pred.Match(b.fieldValue) {
			out = append(out, copyBinding(b))
		}
	}
	return out, nil
}

func (s *MemoryStore) FindBindingRefs(ctx context.Context, pred Predicate) ([]BindingRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []BindingRef
	for _, b := range s.bindings {
		if pred.Match(b.fieldValue) {
			out = append(out, BindingRef{UserID: b.UserID, RoleID: b.RoleID, Scope: b.Scope})
		}
	}
	return out, nil
}

func copyRole(r Role) Role {
	r.PermissionIDs = append([]uuid.UUID(nil), r.PermissionIDs...)
	return r
}

func copyBinding(b RoleBinding) RoleBinding {
	if b.OrgID != nil {
		id := *b.OrgID
		b.OrgID = &id
	}
	return b
}

func equalOrgID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
