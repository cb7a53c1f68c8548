package users

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/rolekit/pkg/authguard"
	"github.com/dmitrymomot/rolekit/pkg/logger"
	"github.com/dmitrymomot/rolekit/pkg/notify"
	"github.com/dmitrymomot/rolekit/pkg/org"
	"github.com/dmitrymomot/rolekit/pkg/rbac"
)

// DefaultSuggestionLimit caps the suggestion endpoint result size.
const DefaultSuggestionLimit = 3

const minPasswordLength = 8

// Service implements the user-management operations on top of the user
// store, the RBAC binding manager and the builtin role registry.
type Service struct {
	store     Store
	roles     *rbac.Manager
	registry  *rbac.Registry
	guard     *authguard.Guard
	publisher notify.Publisher
	log       *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithGuard wires the login/MFA block counters used by Unblock.
func WithGuard(guard *authguard.Guard) ServiceOption {
	return func(s *Service) { s.guard = guard }
}

// WithPublisher wires the notification channel for user-created and
// MFA-reset events.
func WithPublisher(p notify.Publisher) ServiceOption {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a user-management service.
func NewService(store Store, roles *rbac.Manager, registry *rbac.Registry, opts ...ServiceOption) *Service {
	s := &Service{
		store:     store,
		roles:     roles,
		registry:  registry,
		publisher: notify.NoopPublisher{},
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AttachRoles computes the role sets for a batch of users and caches them on
// each instance, with Roles holding the system and org sets combined. It
// performs exactly one
// binding read and one role read regardless of batch size. Returns the same
// (now annotated) slice.
func (s *Service) AttachRoles(ctx context.Context, oc org.Context, batch []*User) ([]*User, error) {
	if len(batch) == 0 {
		return batch, nil
	}

	userIDs := make([]uuid.UUID, 0, len(batch))
	for _, u := range batch {
		userIDs = append(userIDs, u.ID)
	}

	refs, err := s.roles.UserBindingRefs(ctx, oc, userIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch role bindings: %w", err)
	}
	roleMap, err := s.roles.RoleMap(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch roles: %w", err)
	}

	systemByUser := make(map[uuid.UUID][]rbac.Role)
	orgByUser := make(map[uuid.UUID][]rbac.Role)
	for _, ref := range refs {
		role, ok := roleMap[ref.RoleID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", rbac.ErrRoleNotFound, ref.RoleID)
		}
		if ref.Scope == rbac.ScopeSystem {
			systemByUser[ref.UserID] = append(systemByUser[ref.UserID], role)
		} else {
			orgByUser[ref.UserID] = append(orgByUser[ref.UserID], role)
		}
	}

	for _, u := range batch {
		u.SystemRoles = systemByUser[u.ID]
		u.OrgRoles = orgByUser[u.ID]
		u.Roles = append(append([]rbac.Role(nil), u.SystemRoles...), u.OrgRoles...)
	}
	return batch, nil
}

// List returns users matching the filter with their role sets attached.
func (s *Service) List(ctx context.Context, oc org.Context, filter ListFilter) ([]*User, error) {
	batch, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.AttachRoles(ctx, oc, batch)
}

// Get returns a single user with role sets attached.
func (s *Service) Get(ctx context.Context, oc org.Context, id uuid.UUID) (*User, error) {
	u, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.AttachRoles(ctx, oc, []*User{u}); err != nil {
		return nil, err
	}
	return u, nil
}

// CreateParams are the inputs for creating a user.
type CreateParams struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	Password         string `json:"password"`
	Source           string `json:"source"`
	IsServiceAccount bool   `json:"is_service_account"`
}

// Create persists a new user and publishes a user-created message. The
// publish is fire-and-forget: a delivery failure is logged, not returned.
func (s *Service) Create(ctx context.Context, params CreateParams) (*User, error) {
	if params.Username == "" {
		return nil, ErrUsernameRequired
	}

	u := &User{
		ID:               uuid.New(),
		Username:         params.Username,
		Email:            params.Email,
		Name:             params.Name,
		Source:           params.Source,
		IsServiceAccount: params.IsServiceAccount,
	}
	if params.Password != "" {
		hash, err := hashPassword(params.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}

	s.publish(ctx, notify.NewMessage(notify.TopicUserCreated, u.ID, map[string]any{
		"username": u.Username,
	}))
	return u, nil
}

// UpdateParams are the inputs for updating a user. Nil fields are left
// unchanged.
type UpdateParams struct {
	ID     uuid.UUID `json:"id"`
	Email  *string   `json:"email,omitempty"`
	Name   *string   `json:"name,omitempty"`
	Source *string   `json:"source,omitempty"`
}

// Update applies the given changes to an existing user.
func (s *Service) Update(ctx context.Context, params UpdateParams) (*User, error) {
	u, err := s.store.ByID(ctx, params.ID)
	if err != nil {
		return nil, err
	}
	if params.Email != nil {
		u.Email = *params.Email
	}
	if params.Name != nil {
		u.Name = *params.Name
	}
	if params.Source != nil {
		u.Source = *params.Source
	}
	if err := s.store.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// BulkUpdate applies a batch of updates, stopping at the first failure.
func (s *Service) BulkUpdate(ctx context.Context, batch []UpdateParams) ([]*User, error) {
	out := make([]*User, 0, len(batch))
	for _, params := range batch {
		u, err := s.Update(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("update user %s: %w", params.ID, err)
		}
		out = append(out, u)
	}
	return out, nil
}

// BulkDelete removes the given users entirely.
func (s *Service) BulkDelete(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		if err := s.store.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete user %s: %w", id, err)
		}
	}
	return nil
}

// Suggest returns up to limit candidate users matching the search, always
// excluding service accounts. A non-positive limit falls back to the
// default.
func (s *Service) Suggest(ctx context.Context, oc org.Context, search string, limit int) ([]*User, error) {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	batch, err := s.store.List(ctx, ListFilter{
		Search:                 search,
		ExcludeServiceAccounts: true,
		Limit:                  limit,
	})
	if err != nil {
		return nil, err
	}
	return s.AttachRoles(ctx, oc, batch)
}

// InviteParams are the inputs for inviting users into the current org.
type InviteParams struct {
	UserIDs []uuid.UUID `json:"user_ids"`
	// RoleIDs optionally overrides the default org-user role.
	RoleIDs []uuid.UUID `json:"role_ids,omitempty"`
}

// Invite binds the given users to org roles within the current organization.
// Rejected with ErrRootOrgInvite at root context before any binding is
// created.
func (s *Service) Invite(ctx context.Context, oc org.Context, params InviteParams) error {
	if oc.IsRoot() {
		return ErrRootOrgInvite
	}

	roleIDs := params.RoleIDs
	if len(roleIDs) == 0 {
		tmpl, _ := s.registry.Template(rbac.TemplateOrgUser)
		roleIDs = []uuid.UUID{tmpl.ID}
	}

	orgID := oc.ID
	for _, userID := range params.UserIDs {
		if _, err := s.store.ByID(ctx, userID); err != nil {
			return fmt.Errorf("invite user %s: %w", userID, err)
		}
		for _, roleID := range roleIDs {
			binding := &rbac.RoleBinding{
				UserID: userID,
				RoleID: roleID,
				OrgID:  &orgID,
			}
			if err := s.roles.Save(ctx, binding); err != nil {
				return fmt.Errorf("bind role %s to user %s: %w", roleID, userID, err)
			}
		}
	}
	return nil
}

// Remove soft-deletes one user.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	return s.store.SoftDelete(ctx, id)
}

// BulkRemove soft-deletes many users, stopping at the first failure.
func (s *Service) BulkRemove(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		if err := s.store.SoftDelete(ctx, id); err != nil {
			return fmt.Errorf("remove user %s: %w", id, err)
		}
	}
	return nil
}

// ResetOTP clears the target user's MFA secret so they must re-enroll, and
// publishes an MFA-reset message. Callers cannot reset their own OTP through
// this operation; that path performs no mutation at all.
func (s *Service) ResetOTP(ctx context.Context, actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return ErrResetSelfOTP
	}

	u, err := s.store.ByID(ctx, targetID)
	if err != nil {
		return err
	}
	if !u.MFAEnabled {
		return nil
	}

	u.MFAEnabled = false
	u.MFASecret = ""
	if err := s.store.Update(ctx, u); err != nil {
		return err
	}

	s.publish(ctx, notify.NewMessage(notify.TopicMFAReset, u.ID, map[string]any{
		"username": u.Username,
	}))
	return nil
}

// Unblock releases the user's login and MFA attempt counters.
func (s *Service) Unblock(ctx context.Context, id uuid.UUID) error {
	u, err := s.store.ByID(ctx, id)
	if err != nil {
		return err
	}
	if s.guard == nil {
		return nil
	}
	return s.guard.Unblock(ctx, u.Username)
}

// ChangePassword replaces the user's password hash.
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	u, err := s.store.ByID(ctx, id)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return s.store.Update(ctx, u)
}

func (s *Service) publish(ctx context.Context, msg notify.Message) {
	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.log.LogAttrs(ctx, slog.LevelWarn, "failed to publish notification",
			slog.String("topic", msg.Topic),
			logger.UserID(msg.UserID),
			logger.Error(err),
		)
	}
}

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrInvalidPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
