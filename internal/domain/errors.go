package domain

import "errors"

// Sentinel errors shared across services and handlers. Handlers map these
// to HTTP status codes in one place per handler.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation failed")
)

// Visit reference-check failures carry the exact message reported to
// clients, naming which reference(s) were missing.
var (
	ErrVisitorAndSiteMissing = errors.New("Visitor & site were not found")
	ErrSiteMissing           = errors.New("Site was not found")
	ErrVisitorMissing        = errors.New("Visitor was not found")
)
