package services

import "errors"

// Errors shared across services. Workflow-specific errors live next to their
// service.
var (
	ErrValidation = errors.New("validation failed")
)
