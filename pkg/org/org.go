package org

import (
	"time"

	"github.com/google/uuid"
)

// Organization is a tenant of the application with the minimal fields needed
// for request-scoped operations.
type Organization struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Context identifies the ambient organization of an operation: either the
// root (global administration) context or a specific organization. It is a
// plain value passed explicitly to every scoped operation rather than being
// read from an implicit global.
type Context struct {
	ID   uuid.UUID
	Root bool
}

// RootContext returns the global administration context.
func RootContext() Context {
	return Context{Root: true}
}

// Of returns the context of a specific organization.
func Of(id uuid.UUID) Context {
	return Context{ID: id}
}

// IsRoot reports whether the context is the global one.
func (c Context) IsRoot() bool {
	return c.Root
}
