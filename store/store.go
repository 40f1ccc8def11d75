// Package store holds the appointment persistence backends.
package store

import "errors"

// ErrNotFound is returned when no appointment matches the given id.
var ErrNotFound = errors.New("appointment not found")
