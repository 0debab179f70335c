package booking

import (
    "context"
    "time"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// Occupancy is one table held for one window on one date.  The
// engine reads occupancies in bulk to answer advisory questions
// (slot listings, pre-checks) without holding any locks.
type Occupancy struct {
    TableID       uint64
    ReservationID uint64
    Start         model.TimeOfDay
    End           model.TimeOfDay
}

// Store is the persistence surface the engine runs against.  Both
// the MySQL repositories and the in-memory store implement it.
//
// Lookup methods return (nil, nil) when the entity is absent;
// absence is a normal domain answer (an unset weekday means the
// restaurant is closed) and only genuine storage failures are
// errors.  The engine wraps absences that matter into
// NotFoundError itself.
type Store interface {
    // ActiveTables lists tables currently in service, any order.
    ActiveTables(ctx context.Context) ([]model.Table, error)

    // WeeklyHoursFor returns the schedule row for a weekday.
    WeeklyHoursFor(ctx context.Context, day time.Weekday) (*model.OperatingHours, error)

    // SpecialHoursFor returns the override row for a date.
    SpecialHoursFor(ctx context.Context, date time.Time) (*model.SpecialHours, error)

    CustomerByID(ctx context.Context, id uint64) (*model.Customer, error)
    CustomerByEmail(ctx context.Context, email string) (*model.Customer, error)
    CustomerByPhone(ctx context.Context, phone string) (*model.Customer, error)

    // CreateCustomer inserts a new customer and fills its ID and
    // timestamps.
    CreateCustomer(ctx context.Context, c *model.Customer) error

    ReservationByID(ctx context.Context, id uint64) (*model.Reservation, error)

    // ListReservations returns reservations filtered by date and
    // status; nil filters match everything.  Ordered by date,
    // then start time, then ID.
    ListReservations(ctx context.Context, date *time.Time, status *model.ReservationStatus) ([]model.Reservation, error)

    // AssignmentsFor lists the assignment rows of one reservation
    // in ascending table-ID order.
    AssignmentsFor(ctx context.Context, reservationID uint64) ([]model.TableAssignment, error)

    // OccupiedWindows returns every occupancy on the date held by
    // a reservation whose status occupies tables.  A non-zero
    // excludeReservationID leaves that reservation's own windows
    // out, which lets a move/resize ignore itself.
    OccupiedWindows(ctx context.Context, date time.Time, excludeReservationID uint64) ([]Occupancy, error)

    // WithTables runs fn while holding exclusive locks on every
    // listed table, acquired in ascending table-ID order so two
    // overlapping combinations can never deadlock.  The writes fn
    // performs through the transaction become visible atomically:
    // either all of them commit or none do.  An empty ID list
    // yields a plain transaction with no table locks.
    WithTables(ctx context.Context, tableIDs []uint64, fn func(AllocTx) error) error
}

// AllocTx is the unit of work handed to a WithTables callback.
// Every method sees the state as of the lock acquisition and
// every write is deferred to the commit of the enclosing scope.
type AllocTx interface {
    // Overlaps reports whether any occupying reservation other
    // than excludeReservationID holds the table for a window
    // intersecting [start, end) on the date.
    Overlaps(tableID uint64, date time.Time, start, end model.TimeOfDay, excludeReservationID uint64) (bool, error)

    // CreateReservation inserts the reservation and fills its ID
    // and timestamps.
    CreateReservation(r *model.Reservation) error

    // AddAssignments inserts one assignment row per table.
    AddAssignments(reservationID uint64, tableIDs []uint64) error

    ReservationByID(id uint64) (*model.Reservation, error)

    // UpdateReservation rewrites the mutable reservation fields
    // (party size, date, start, duration, special requests).
    UpdateReservation(r *model.Reservation) error

    SetStatus(reservationID uint64, status model.ReservationStatus) error

    // RemoveAssignments deletes every assignment row of the
    // reservation.
    RemoveAssignments(reservationID uint64) error

    // DeleteReservation deletes the reservation row itself.  The
    // caller removes assignments first; the cascade is explicit,
    // not left to the schema.
    DeleteReservation(reservationID uint64) error
}
