package rbac

import (
	"context"
	"fmt"
	"log/slog"
)

// Template names in the builtin registry.
const (
	TemplateSystemAdmin   = "system_admin"
	TemplateSystemAuditor = "system_auditor"
	TemplateSystemUser    = "system_user"
	TemplateSystemApp     = "system_app"
	TemplateOrgAdmin      = "org_admin"
	TemplateOrgAuditor    = "org_auditor"
	TemplateOrgUser       = "org_user"
)

// Registry holds the fixed collection of builtin role templates and knows how
// to materialize them into the store.
type Registry struct {
	store     Store
	catalog   *Catalog
	log       *slog.Logger
	templates map[string]*Template
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets the logger used for sync progress lines.
func WithRegistryLogger(log *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRegistry builds the builtin role registry. The template list is an
// explicit immutable map assembled here; admin roles intentionally carry an
// empty include bundle since administrators bypass permission checks.
func NewRegistry(store Store, catalog *Catalog, opts ...RegistryOption) *Registry {
	r := &Registry{
		store:   store,
		catalog: catalog,
		log:     slog.Default(),
		templates: map[string]*Template{
			TemplateSystemAdmin:   NewTemplate("1", "SystemAdmin", ScopeSystem, nil, ModeInclude),
			TemplateSystemAuditor: NewTemplate("2", "SystemAuditor", ScopeSystem, catalog.AuditorRules(), ModeInclude),
			TemplateSystemUser:    NewTemplate("3", "User", ScopeSystem, nil, ModeInclude),
			TemplateSystemApp:     NewTemplate("4", "App", ScopeSystem, catalog.AppExcludeRules(), ModeExclude),
			TemplateOrgAdmin:      NewTemplate("5", "OrgAdmin", ScopeOrg, nil, ModeInclude),
			TemplateOrgAuditor:    NewTemplate("6", "OrgAuditor", ScopeOrg, catalog.AuditorRules(), ModeInclude),
			TemplateOrgUser:       NewTemplate("7", "OrgUser", ScopeOrg, catalog.UserRules(), ModeInclude),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Roles returns the template map keyed by template name.
func (r *Registry) Roles() map[string]*Template {
	return r.templates
}

// Template returns a single template by name.
func (r *Registry) Template(name string) (*Template, bool) {
	t, ok := r.templates[name]
	return t, ok
}

// legacy short names used by pre-RBAC user records.
var (
	legacySystemRoles = map[string]string{
		"Admin":   TemplateSystemAdmin,
		"User":    TemplateSystemUser,
		"Auditor": TemplateSystemAuditor,
		"App":     TemplateSystemApp,
	}
	legacyOrgRoles = map[string]string{
		"Admin":   TemplateOrgAdmin,
		"User":    TemplateOrgUser,
		"Auditor": TemplateOrgAuditor,
	}
)

// SystemRoleByOldName resolves a legacy short name to the live system role.
// An unknown name is a hard failure: it indicates inconsistent migrated data.
func (r *Registry) SystemRoleByOldName(ctx context.Context, name string) (Role, error) {
	return r.roleByOldName(ctx, legacySystemRoles, name)
}

// OrgRoleByOldName resolves a legacy short name to the live org role.
func (r *Registry) OrgRoleByOldName(ctx context.Context, name string) (Role, error) {
	return r.roleByOldName(ctx, legacyOrgRoles, name)
}

func (r *Registry) roleByOldName(ctx context.Context, mapper map[string]string, name string) (Role, error) {
	tmplName, ok := mapper[name]
	if !ok {
		return Role{}, fmt.Errorf("%w: %q", ErrUnknownLegacyRole, name)
	}
	return r.store.RoleByID(ctx, r.templates[tmplName].ID)
}

// SyncToDB materializes every registered template in turn, logging one
// progress line per role. Each upsert is independently idempotent so no
// cross-role transaction is needed, but the first persistence error aborts
// the remaining upserts. Callers must serialize concurrent syncs.
func (r *Registry) SyncToDB(ctx context.Context) error {
	for name, tmpl := range r.templates {
		role, created, err := tmpl.Materialize(ctx, r.store, r.catalog)
		if err != nil {
			return fmt.Errorf("sync builtin role %q: %w", name, err)
		}
		r.log.InfoContext(ctx, "synced builtin role",
			slog.String("role", role.Name),
			slog.String("scope", role.Scope.String()),
			slog.Bool("created", created),
		)
	}
	return nil
}
