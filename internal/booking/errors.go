// Package booking implements the reservation engine: resolving
// operating hours, matching parties to tables, detecting window
// conflicts, allocating tables atomically and driving the
// reservation lifecycle.  The package is storage-agnostic; it
// talks to persistence through the Store interface and reports
// failures through the typed errors defined in this file, which
// handlers translate into HTTP responses.
package booking

import (
    "errors"
    "fmt"
    "time"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// ValidationError reports malformed or out-of-range input.  Field
// names the offending parameter.  Handlers should translate this
// into an HTTP 400 response.
type ValidationError struct {
    Field  string
    Reason string
}

func (e *ValidationError) Error() string {
    return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ClosedError reports that the restaurant does not accept the
// requested window on the given date, either because no hours are
// defined or because the window falls outside them.  Handlers
// should translate this into an HTTP 422 response.
type ClosedError struct {
    Date   time.Time
    Reason string
}

func (e *ClosedError) Error() string {
    return fmt.Sprintf("closed on %s: %s", model.FormatDate(e.Date), e.Reason)
}

// NoAvailabilityError reports that every candidate assignment for
// the requested window was either unsuitable or already taken.
// Handlers should translate this into an HTTP 409 response.
type NoAvailabilityError struct {
    Date      time.Time
    StartTime model.TimeOfDay
    PartySize int
}

func (e *NoAvailabilityError) Error() string {
    return fmt.Sprintf("no availability for party of %d on %s at %s",
        e.PartySize, model.FormatDate(e.Date), e.StartTime)
}

// InvalidTransitionError reports a lifecycle change the state
// machine does not allow.  Handlers should translate this into an
// HTTP 422 response.
type InvalidTransitionError struct {
    From model.ReservationStatus
    To   model.ReservationStatus
}

func (e *InvalidTransitionError) Error() string {
    return fmt.Sprintf("cannot transition reservation from %s to %s", e.From, e.To)
}

// NotFoundError reports a missing entity.  Entity is a short noun
// such as "reservation" or "table".  Handlers should translate
// this into an HTTP 404 response.
type NotFoundError struct {
    Entity string
    ID     uint64
}

func (e *NotFoundError) Error() string {
    return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ErrCandidateTaken is returned by an allocation attempt when the
// conflict re-check under lock finds the candidate's tables taken.
// The allocator advances to the next candidate; the value never
// escapes to callers.
var ErrCandidateTaken = errors.New("candidate tables taken")
