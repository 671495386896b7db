package repository

import "errors"

// Common repository errors
var (
	// ErrValidation is returned when a required field is missing or empty
	// after trimming. It is raised before any write happens.
	ErrValidation = errors.New("validation failed")

	// ErrTaskNotFound is returned when a task id is absent from the
	// current snapshot
	ErrTaskNotFound = errors.New("task not found")

	// ErrMemberNotFound is returned when a member is not found
	ErrMemberNotFound = errors.New("member not found")
)
