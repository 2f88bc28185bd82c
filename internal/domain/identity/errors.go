package identity

import "errors"

var (
	// ErrNotFound is returned by lookups that match no identity.
	ErrNotFound = errors.New("identity not found")

	// ErrDuplicate is returned when an insert or update hits the email or
	// phone unique index.
	ErrDuplicate = errors.New("identity email or phone already exists")
)
