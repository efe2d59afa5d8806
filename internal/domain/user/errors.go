package user

import "errors"

var (
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrElevatedRoleRequired  = errors.New("admin or hr role required")
	ErrIdentityNotResolvable = errors.New("caller identity could not be resolved")
)
