package records

import "errors"

var (
	ErrEntityNotFound = errors.New("entity not found")
	ErrLookupNotFound = errors.New("lookup not found")
	ErrRecordNotFound = errors.New("record not found")
	ErrReadOnlyEntity = errors.New("entity does not accept changes")
	ErrUnknownField   = errors.New("unknown field")
	ErrInvalidField   = errors.New("invalid field value")
	ErrMissingField   = errors.New("missing required field")
	ErrEmptyUpdate    = errors.New("no fields to update")
)
