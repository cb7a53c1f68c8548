package authguard

import "errors"

var (
	// ErrStoreRequired is returned when a guard is built without a store.
	ErrStoreRequired = errors.New("authguard: store is required")

	// ErrInvalidConfig is returned for a non-positive limit or window.
	ErrInvalidConfig = errors.New("authguard: invalid config")

	// ErrUsernameRequired is returned when the username is empty.
	ErrUsernameRequired = errors.New("authguard: username is required")
)
