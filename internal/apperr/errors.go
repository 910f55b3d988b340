// Package apperr defines sentinel errors shared across service layers.
package apperr

import "errors"

var (
	// ErrNotFound marks a lookup that matched nothing; callers treat it as
	// a normal outcome, not a failure.
	ErrNotFound = errors.New("not found")
	// ErrExternal marks an address that points outside the site and cannot
	// be resolved against an index.
	ErrExternal = errors.New("external address")
)
