package org

import "errors"

var (
	// ErrInvalidOrgID is returned when an organization id cannot be parsed.
	ErrInvalidOrgID = errors.New("invalid organization id")

	// ErrOrgNotFound is returned when an organization cannot be found.
	ErrOrgNotFound = errors.New("organization not found")
)
