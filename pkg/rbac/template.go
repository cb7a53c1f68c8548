package rbac

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// builtinIDPrefix is the shared UUID prefix of all builtin roles; the final
// character is the template index. The deterministic id makes repeated
// materialization update the same row instead of duplicating it.
const builtinIDPrefix = "00000000-0000-0000-0000-00000000000"

// Mode selects whether a template's rule bundle keeps or drops matches.
type Mode string

const (
	ModeInclude Mode = "include"
	ModeExclude Mode = "exclude"
)

// Template is a builtin role definition: a fixed id, a display name, a scope
// and a rule bundle applied to the permission catalog. Templates are static
// configuration built once at init and never mutated.
type Template struct {
	ID    uuid.UUID
	Name  string
	Scope Scope
	Rules RuleSet
	Mode  Mode
}

// NewTemplate builds a template with its deterministic builtin id. The index
// must be a single character; panics on malformed input since templates are
// compile-time constants.
func NewTemplate(index, name string, scope Scope, rules RuleSet, mode Mode) *Template {
	return &Template{
		ID:    uuid.MustParse(builtinIDPrefix + index),
		Name:  name,
		Scope: scope,
		Rules: rules,
		Mode:  mode,
	}
}

// Materialize computes the template's concrete permission set from the
// catalog and upserts the persisted role.
//
// An empty rule bundle yields an empty set in include mode and the full
// scope set in exclude mode. Get-or-create is keyed by the template's fixed
// id and is sticky: name and scope of an existing row are left untouched,
// but the permission-id set is always replaced with the freshly computed
// one. Repeated calls converge to the same role contents.
func (t *Template) Materialize(ctx context.Context, store Store, catalog *Catalog) (Role, bool, error) {
	all, err := store.Permissions(ctx)
	if err != nil {
		return Role{}, false, fmt.Errorf("fetch permissions: %w", err)
	}
	scoped := catalog.ScopePermissions(t.Scope, all)

	var permIDs []uuid.UUID
	switch {
	case len(t.Rules) == 0 && t.Mode == ModeInclude:
		permIDs = nil
	case len(t.Rules) == 0 && t.Mode == ModeExclude:
		permIDs = permissionIDs(scoped)
	default:
		for _, p := range scoped {
			if t.Rules.Matches(p) == (t.Mode == ModeInclude) {
				permIDs = append(permIDs, p.ID)
			}
		}
	}

	role, created, err := store.GetOrCreateRole(ctx, Role{
		ID:      t.ID,
		Name:    t.Name,
		Scope:   t.Scope,
		Builtin: true,
	})
	if err != nil {
		return Role{}, false, fmt.Errorf("upsert role %q: %w", t.Name, err)
	}

	if err := store.ReplaceRolePermissions(ctx, role.ID, permIDs); err != nil {
		return Role{}, false, fmt.Errorf("set permissions for role %q: %w", t.Name, err)
	}
	role.PermissionIDs = permIDs
	return role, created, nil
}
