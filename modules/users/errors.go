package users

import "errors"

var (
	// ErrUserNotFound is returned when a user does not exist or has been
	// removed.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUser is returned when a username or email is taken.
	ErrDuplicateUser = errors.New("username or email already in use")

	// ErrRootOrgInvite is returned when inviting users while the current
	// context is root: invitations only make sense inside an organization.
	ErrRootOrgInvite = errors.New("not a valid org")

	// ErrResetSelfOTP is returned when a caller tries to reset their own
	// OTP through the admin endpoint.
	ErrResetSelfOTP = errors.New("could not reset self otp, use profile reset instead")

	// ErrInvalidPassword is returned when a password fails validation.
	ErrInvalidPassword = errors.New("password must be at least 8 characters")

	// ErrUsernameRequired is returned when a username is missing.
	ErrUsernameRequired = errors.New("username is required")
)
