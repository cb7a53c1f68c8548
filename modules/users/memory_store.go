package users

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store implementation for tests and embedding.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]User
}

// NewMemoryStore creates an empty in-memory user store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[uuid.UUID]User)}
}

func (s *MemoryStore) List(ctx context.Context, filter ListFilter) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*User
	for _, u := range s.users {
		if u.Removed() {
			continue
		}
		if filter.ExcludeServiceAccounts && u.IsServiceAccount {
			continue
		}
		if !matchesSearch(&u, filter.Search) {
			continue
		}
		user := u
		out = append(out, &user)
	}

	// Stable order for paging.
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func matchesSearch(u *User, search string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	for _, field := range []string{u.Username, u.Email, u.Name} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func (s *MemoryStore) ByID(ctx context.Context, id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok || u.Removed() {
		return nil, ErrUserNotFound
	}
	user := u
	return &user, nil
}

func (s *MemoryStore) ByIDs(ctx context.Context, ids []uuid.UUID) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok && !u.Removed() {
			user := u
			out = append(out, &user)
		}
	}
	return out, nil
}

func (s *MemoryStore) Create(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username {
			return ErrDuplicateUser
		}
		// Email is optional, so blank emails never collide.
		if u.Email != "" && existing.Email == u.Email {
			return ErrDuplicateUser
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return ErrUserNotFound
	}
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok || u.Removed() {
		return ErrUserNotFound
	}
	now := time.Now()
	u.DeletedAt = &now
	s.users[id] = u
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}
