package rbac

import (
	"errors"
	"fmt"
)

// Raw permission rule tables. These are the declarative source of truth for
// builtin role contents; they are parsed and validated once by NewCatalog and
// never mutated afterwards. A malformed entry aborts startup.
var (
	auditorRules = [][]string{
		{"audit", "*", "*", "*"},
		{"rbac", "menu", "view", "audit_view"},
		{"sessions", "session", "*", "*"},
		{"sessions", "command", "*", "*"},
	}

	userRules = [][]string{
		{"rbac", "menu", "view", "user_view"},
		{"perms", "workspacegrant", "view,use", "my_workspaces"},
		{"perms", "appgrant", "view,use", "my_apps"},
	}

	appExcludeRules = [][]string{
		{"users", "user", "add,delete", "user"},
		{"orgs", "org", "add,delete,change", "org"},
		{"rbac", "*", "*", "*"},
	}

	// Permissions never granted at system scope.
	systemExcludeRules = [][]string{
		{"sessions", "status", "*", "*"},
		{"users", "preference", "*", "*"},
	}

	// Permissions never granted inside a single organization.
	orgExcludeRules = [][]string{
		{"users", "user", "add,delete", "user"},
		{"orgs", "org", "*", "*"},
		{"settings", "setting", "*", "*"},
		{"rbac", "role", "add,delete", "role"},
	}
)

// Catalog holds the validated rule bundles that drive builtin role
// materialization. Immutable after construction.
type Catalog struct {
	auditor       RuleSet
	user          RuleSet
	appExclude    RuleSet
	systemExclude RuleSet
	orgExclude    RuleSet
}

// NewCatalog parses and validates every declared rule table. Every entry must
// have exactly four fields; on violation the returned error lists all
// malformed entries and the process is expected to abort.
func NewCatalog() (*Catalog, error) {
	c := &Catalog{}
	var errs []error

	tables := []struct {
		name string
		raw  [][]string
		dst  *RuleSet
	}{
		{"auditor", auditorRules, &c.auditor},
		{"user", userRules, &c.user},
		{"app_exclude", appExcludeRules, &c.appExclude},
		{"system_exclude", systemExcludeRules, &c.systemExclude},
		{"org_exclude", orgExcludeRules, &c.orgExclude},
	}
	for _, t := range tables {
		rules, ruleErrs := parseRules(t.raw)
		for _, err := range ruleErrs {
			errs = append(errs, fmt.Errorf("%s: %w", t.name, err))
		}
		*t.dst = rules
	}

	if len(errs) > 0 {
		return nil, errors.Join(ErrMalformedRules, errors.Join(errs...))
	}
	return c, nil
}

// AuditorRules returns the rule bundle granted to auditor roles.
func (c *Catalog) AuditorRules() RuleSet { return c.auditor }

// UserRules returns the rule bundle granted to the org user role.
func (c *Catalog) UserRules() RuleSet { return c.user }

// AppExcludeRules returns the rule bundle withheld from the service
// account ("App") role.
func (c *Catalog) AppExcludeRules() RuleSet { return c.appExclude }

// ScopePermissions returns the permissions visible within the given scope:
// the system scope covers every permission, the org scope only those
// classified as organization-local. Permissions matched by the scope's
// exclusion bundle are dropped.
func (c *Catalog) ScopePermissions(scope Scope, all []Permission) []Permission {
	exclude := c.systemExclude
	if scope == ScopeOrg {
		exclude = c.orgExclude
	}

	out := make([]Permission, 0, len(all))
	for _, p := range all {
		if scope == ScopeOrg && p.Scope != ScopeOrg {
			continue
		}
		if exclude.Matches(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}
