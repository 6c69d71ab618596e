package user

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailRequired = errors.New("email is required")
	ErrUserInactive  = errors.New("user is inactive")
)
