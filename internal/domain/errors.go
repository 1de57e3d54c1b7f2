package domain

import "errors"

// Error taxonomy shared by adapters and services. Wrap with %w and test with errors.Is.
var (
	ErrInvalidBundle     = errors.New("invalid bundle")
	ErrMalformedDocument = errors.New("malformed metadata document")
	ErrMissingKey        = errors.New("missing metadata key")
	ErrIO                = errors.New("io failure")
	ErrProcessExit       = errors.New("external process exited with non-zero status")
)
