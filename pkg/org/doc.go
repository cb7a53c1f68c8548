// Package org provides the ambient organization context for multi-tenant
// operations: a value type identifying either the root (global
// administration) context or a specific organization, request context
// accessors, and HTTP middleware resolving the org from a request header.
//
// Scoped operations take an org.Context parameter explicitly, which keeps
// tenant isolation visible at every call site:
//
//	oc, _ := org.FromContext(r.Context())
//	bindings, err := manager.VisibleBindings(ctx, oc)
package org
