// Package repository contains the MySQL data access layer. This file
// defines error types that are reused across multiple repositories.
// These sentinel values allow higher layers such as the store adapter
// to distinguish between different failure scenarios without string
// matching. The adapter translates them into the booking package's
// typed errors before they reach handlers.
package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist. The
// store adapter usually translates this into a nil result (absence is
// a normal domain answer for lookups) or a booking.NotFoundError when
// the entity was referenced explicitly.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert or update collides with
// existing state, such as creating a table with a floor number that is
// already taken. Handlers should translate this into an HTTP 409
// response.
var ErrConflict = errors.New("conflict")
