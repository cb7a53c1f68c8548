// Package rbac provides role-based access control for multi-tenant
// applications: a declarative permission catalog, builtin role templates
// materialized into persisted roles, and organization-scoped role bindings.
//
// Key concepts:
//
//   - Permission: a persisted (app, resource, action) tuple classified as
//     either system-wide or organization-local
//   - Catalog: static rule tables that describe which permissions belong to
//     which builtin role, validated once at startup
//   - Template: a builtin role definition with a deterministic id; repeated
//     materialization converges to the same persisted role
//   - RoleBinding: the persisted fact that a user holds a role, optionally
//     within an organization
//
// Basic usage:
//
//	catalog, err := rbac.NewCatalog()
//	if err != nil {
//	    // malformed rule tables, abort startup
//	}
//
//	store := rbac.NewMemoryStore()
//	registry := rbac.NewRegistry(store, catalog)
//	if err := registry.SyncToDB(ctx); err != nil {
//	    // persistence failure, abort
//	}
//
//	manager := rbac.NewManager(store)
//	roles, err := manager.UserRoles(ctx, org.Of(orgID), userID)
//
// Binding visibility is constrained by an org.Context passed explicitly to
// every scoped operation: system-scope bindings are always visible, org-scope
// bindings only inside their own organization. The root context sees only
// system-scope bindings.
package rbac
