package cnst

import "errors"

var (
	// ErrDuplicateResourceName is returned when a resource name appears in
	// more than one provider route table
	ErrDuplicateResourceName = errors.New("duplicate resource name")
	// ErrEmptyToken is returned when an operation requires a stored token
	// and none is present
	ErrEmptyToken = errors.New("no authentication token stored")
	// ErrMissingUserID is returned when a user-scoped operation is invoked
	// without a user id
	ErrMissingUserID = errors.New("missing user id")
	// ErrMissingDepartmentID is returned when a department-scoped operation
	// is invoked without a department id
	ErrMissingDepartmentID = errors.New("missing department id")
)
