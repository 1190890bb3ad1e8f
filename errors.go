package smallserver

import "errors"

var (
	// ErrNotFound is returned when a file does not exist
	ErrNotFound = errors.New("not found")
	// ErrTraversal is returned when a request path escapes the served root
	ErrTraversal = errors.New("path escapes root")
	// ErrUnsatisfiableRange is returned when a Range header cannot be served
	ErrUnsatisfiableRange = errors.New("range not satisfiable")
	// ErrInvalidInput is returned when configuration or input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
