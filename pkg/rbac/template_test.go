package rbac_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rolekit/pkg/rbac"
)

func seedTestPermissions(store *rbac.MemoryStore) []rbac.Permission {
	return store.SeedPermissions(
		rbac.Permission{App: "audit", Resource: "log", Action: "view", Scope: rbac.ScopeOrg},
		rbac.Permission{App: "rbac", Resource: "menu", Action: "view", Scope: rbac.ScopeOrg},
		rbac.Permission{App: "perms", Resource: "workspacegrant", Action: "view", Scope: rbac.ScopeOrg},
		rbac.Permission{App: "perms", Resource: "workspacegrant", Action: "use", Scope: rbac.ScopeOrg},
		rbac.Permission{App: "users", Resource: "user", Action: "view", Scope: rbac.ScopeOrg},
		rbac.Permission{App: "settings", Resource: "setting", Action: "change", Scope: rbac.ScopeSystem},
	)
}

func TestTemplateMaterialize(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	catalog, err := rbac.NewCatalog()
	require.NoError(t, err)

	t.Run("empty include bundle yields empty set", func(t *testing.T) {
		t.Parallel()
		store := rbac.NewMemoryStore()
		seedTestPermissions(store)

		tmpl := rbac.NewTemplate("1", "SystemAdmin", rbac.ScopeSystem, nil, rbac.ModeInclude)
		role, created, err := tmpl.Materialize(ctx, store, catalog)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Empty(t, role.PermissionIDs)
	})

	t.Run("empty exclude bundle yields full scope set", func(t *testing.T) {
		t.Parallel()
		store := rbac.NewMemoryStore()
		perms := seedTestPermissions(store)

		tmpl := rbac.NewTemplate("4", "App", rbac.ScopeSystem, nil, rbac.ModeExclude)
		role, _, err := tmpl.Materialize(ctx, store, catalog)
		require.NoError(t, err)
		assert.Len(t, role.PermissionIDs, len(perms))
	})

	t.Run("include mode keeps only matches", func(t *testing.T) {
		t.Parallel()
		store := rbac.NewMemoryStore()
		perms := seedTestPermissions(store)

		rules := rbac.RuleSet{{App: "perms", Resource: "workspacegrant", Actions: "view,use"}}
		tmpl := rbac.NewTemplate("7", "OrgUser", rbac.ScopeOrg, rules, rbac.ModeInclude)
		role, _, err := tmpl.Materialize(ctx, store, catalog)
		require.NoError(t, err)

		require.Len(t, role.PermissionIDs, 2)
		assert.Contains(t, role.PermissionIDs, perms[2].ID)
		assert.Contains(t, role.PermissionIDs, perms[3].ID)
	})

	t.Run("exclude mode drops matches", func(t *testing.T) {
		t.Parallel()
		store := rbac.NewMemoryStore()
		perms := seedTestPermissions(store)

		rules := rbac.RuleSet{{App: "audit", Resource: rbac.Wildcard, Actions: rbac.Wildcard}}
		tmpl := rbac.NewTemplate("2", "NoAudit", rbac.ScopeSystem, rules, rbac.ModeExclude)
		role, _, err := tmpl.Materialize(ctx, store, catalog)
		require.NoError(t, err)

		assert.NotContains(t, role.PermissionIDs, perms[0].ID)
		assert.Contains(t, role.PermissionIDs, perms[1].ID)
	})

	t.Run("repeated materialization is sticky and converges", func(t *testing.T) {
		t.Parallel()
		store := rbac.NewMemoryStore()
		seedTestPermissions(store)

		tmpl := rbac.NewTemplate("3", "User", rbac.ScopeSystem, nil, rbac.ModeExclude)
		first, created, err := tmpl.Materialize(ctx, store, catalog)
		require.NoError(t, err)
		require.True(t, created)

		extra := store.SeedPermissions(
			rbac.Permission{App: "orgs", Resource: "org", Action: "view", Scope: rbac.ScopeSystem},
		)

		// A template with the same id but a new display name must not
		// rename the existing row, yet its permission set is still
		// recomputed and replaced.
		renamed := rbac.NewTemplate("3", "Members", rbac.ScopeSystem, nil, rbac.ModeExclude)
		second, created, err := renamed.Materialize(ctx, store, catalog)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, second.ID)
		assert.Contains(t, second.PermissionIDs, extra[0].ID)

		stored, err := store.RoleByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "User", stored.Name)
		assert.ElementsMatch(t, second.PermissionIDs, stored.PermissionIDs)
	})
}
