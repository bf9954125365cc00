package audit

import "errors"

// ErrAuthenticationFailed wraps any credential parse or provider rejection.
// The pipeline halts before the first fetch when it is returned.
var ErrAuthenticationFailed = errors.New("authentication failed")

// ErrNotFound indicates an unknown audit id for a tenant.
var ErrNotFound = errors.New("audit not found")
