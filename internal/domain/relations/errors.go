package relations

import "errors"

var (
	ErrPersonNotFound  = errors.New("person not found")
	ErrCompanyNotFound = errors.New("company not found")
	ErrMemberNotFound  = errors.New("consortium member not found")
	ErrParcelNotFound  = errors.New("parcel not found")
	ErrLinkNotFound    = errors.New("relation not found")
	ErrInvalidID       = errors.New("invalid id")
)
