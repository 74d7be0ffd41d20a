package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Account errors
	ErrUserExists         = fmt.Errorf("username already exists")
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")

	// Note errors
	ErrEmptyContent = fmt.Errorf("content cannot be empty")
	ErrNoteNotFound = fmt.Errorf("note not found")

	// Session errors
	ErrSessionNotFound = fmt.Errorf("session not found")
	ErrUnknownBackend  = fmt.Errorf("unknown session backend")

	// Catalog errors
	ErrCatalogRequest     = fmt.Errorf("catalog request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrInvalidPage     = fmt.Errorf("invalid page token")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
