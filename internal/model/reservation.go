package model

import "time"

// ReservationStatus enumerates the lifecycle states of a
// reservation.  Reservations in pending, confirmed or seated
// state occupy their tables; completed, cancelled and no_show
// reservations do not.
type ReservationStatus string

// Lifecycle states.  The allowed transitions between them are
// enforced by the booking package, not here.
const (
    StatusPending   ReservationStatus = "pending"
    StatusConfirmed ReservationStatus = "confirmed"
    StatusSeated    ReservationStatus = "seated"
    StatusCompleted ReservationStatus = "completed"
    StatusCancelled ReservationStatus = "cancelled"
    StatusNoShow    ReservationStatus = "no_show"
)

// Valid reports whether s is one of the known lifecycle states.
func (s ReservationStatus) Valid() bool {
    switch s {
    case StatusPending, StatusConfirmed, StatusSeated,
        StatusCompleted, StatusCancelled, StatusNoShow:
        return true
    }
    return false
}

// Occupies reports whether a reservation in this state holds its
// tables against other bookings.
func (s ReservationStatus) Occupies() bool {
    switch s {
    case StatusPending, StatusConfirmed, StatusSeated:
        return true
    }
    return false
}

// Reservation records a party's booking for a specific date and
// start time.  The occupied window is half-open: a reservation
// holds its tables from StartTime up to but not including
// StartTime plus DurationMinutes, so back-to-back seatings on the
// same table do not collide.
//
// Fields:
//  ID              – primary key identifier.
//  CustomerID      – guest who holds the booking.
//  PartySize       – number of guests in the party.
//  Date            – calendar date of the reservation.
//  StartTime       – seating start time.
//  DurationMinutes – length of the occupied window in minutes.
//  Status          – lifecycle state (see ReservationStatus).
//  SpecialRequests – optional free-form note from the guest.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Reservation struct {
    ID              uint64            // reservations.id
    CustomerID      uint64            // reservations.customer_id
    PartySize       int               // reservations.party_size
    Date            time.Time         // reservations.reservation_date
    StartTime       TimeOfDay         // reservations.start_time
    DurationMinutes int               // reservations.duration_minutes
    Status          ReservationStatus // reservations.status
    SpecialRequests *string           // reservations.special_requests (nullable)
    CreatedAt       time.Time         // reservations.created_at
    UpdatedAt       time.Time         // reservations.updated_at
}

// EndTime returns the end of the occupied window.  The value may
// exceed the last minute of the day; it is a bound for overlap
// arithmetic, not a clock reading.
func (r *Reservation) EndTime() TimeOfDay {
    return r.StartTime.Add(r.DurationMinutes)
}

// TableAssignment links a reservation to one of the tables seated
// for it.  Multi-table bookings hold one row per member table.
// Rows survive cancellation for history; whether a table is
// actually occupied is decided by the reservation's status.
//
// Fields:
//  ID            – primary key identifier.
//  ReservationID – reference to the reservation.
//  TableID       – table assigned to the party.
//  CreatedAt     – creation timestamp.
type TableAssignment struct {
    ID            uint64    // table_assignments.id
    ReservationID uint64    // table_assignments.reservation_id
    TableID       uint64    // table_assignments.table_id
    CreatedAt     time.Time // table_assignments.created_at
}
