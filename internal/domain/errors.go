package domain

import "errors"

// Sentinel errors shared across services and repositories. Controllers map
// these to HTTP status codes; services map storage errors into them.
var (
	// ErrNotFound means the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the caller is not the owner of the resource. Event
	// and profile mutations return it for missing rows too, so a caller
	// cannot tell "doesn't exist" from "not yours".
	ErrForbidden = errors.New("access to resource denied")
	// ErrConflict means the entity already exists (e.g. second profile for a user).
	ErrConflict = errors.New("already exists")
	// ErrInvalidInput means the request is malformed or missing required fields.
	ErrInvalidInput = errors.New("invalid input")
)
