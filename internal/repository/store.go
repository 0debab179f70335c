// This file adapts the MySQL repositories to the booking.Store interface
// the engine consumes. The adapter owns two translation duties: sentinel
// errors become the nil-result absences the engine expects, and the
// engine's WithTables scope becomes a database transaction whose first
// act is pinning the member table rows with SELECT ... FOR UPDATE. Row
// locks held across the conflict re-check and the assignment inserts are
// what makes the check-then-write step indivisible between competing
// bookings.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel comparisons
	"time"         // time for dates and weekdays

	"github.com/iliyamo/restaurant-table-reservation/internal/booking" // booking declares the Store contract
	"github.com/iliyamo/restaurant-table-reservation/internal/model"   // model defines the entities
)

// Store bundles the repositories into one booking.Store implementation.
type Store struct {
	db           *sql.DB
	tables       *TableRepo
	customers    *CustomerRepo
	hours        *HoursRepo
	reservations *ReservationRepo
}

// NewStore constructs the adapter and its repositories over one DB pool.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:           db,
		tables:       NewTableRepo(db),
		customers:    NewCustomerRepo(db),
		hours:        NewHoursRepo(db),
		reservations: NewReservationRepo(db),
	}
}

// Tables exposes the table repository for the management handlers.
func (s *Store) Tables() *TableRepo { return s.tables }

// Customers exposes the customer repository for the management handlers.
func (s *Store) Customers() *CustomerRepo { return s.customers }

// Hours exposes the hours repository for the management handlers.
func (s *Store) Hours() *HoursRepo { return s.hours }

// Reservations exposes the reservation repository.
func (s *Store) Reservations() *ReservationRepo { return s.reservations }

// DB exposes the pool, used by the readiness probe.
func (s *Store) DB() *sql.DB { return s.db }

// ActiveTables lists tables currently in service.
func (s *Store) ActiveTables(ctx context.Context) ([]model.Table, error) {
	return s.tables.ListActive(ctx)
}

// WeeklyHoursFor returns the schedule row for a weekday, nil when the
// weekday has none.
func (s *Store) WeeklyHoursFor(ctx context.Context, day time.Weekday) (*model.OperatingHours, error) {
	h, err := s.hours.GetWeekly(ctx, day)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return h, err
}

// SpecialHoursFor returns the override row for a date, nil when the date
// has none.
func (s *Store) SpecialHoursFor(ctx context.Context, date time.Time) (*model.SpecialHours, error) {
	sh, err := s.hours.GetSpecial(ctx, date)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return sh, err
}

// CustomerByID returns a customer or nil.
func (s *Store) CustomerByID(ctx context.Context, id uint64) (*model.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return c, err
}

// CustomerByEmail returns a customer matched by exact email or nil.
func (s *Store) CustomerByEmail(ctx context.Context, email string) (*model.Customer, error) {
	c, err := s.customers.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return c, err
}

// CustomerByPhone returns a customer matched by exact phone or nil.
func (s *Store) CustomerByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	c, err := s.customers.GetByPhone(ctx, phone)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return c, err
}

// CreateCustomer inserts a new customer record.
func (s *Store) CreateCustomer(ctx context.Context, c *model.Customer) error {
	return s.customers.Create(ctx, c)
}

// ReservationByID returns a reservation or nil.
func (s *Store) ReservationByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return res, err
}

// ListReservations returns reservations filtered by optional date and
// status.
func (s *Store) ListReservations(ctx context.Context, date *time.Time, status *model.ReservationStatus) ([]model.Reservation, error) {
	return s.reservations.List(ctx, date, status)
}

// AssignmentsFor lists one reservation's assignment rows.
func (s *Store) AssignmentsFor(ctx context.Context, reservationID uint64) ([]model.TableAssignment, error) {
	return s.reservations.AssignmentsFor(ctx, reservationID)
}

// OccupiedWindows returns the lock-free occupancy snapshot of one date.
func (s *Store) OccupiedWindows(ctx context.Context, date time.Time, excludeReservationID uint64) ([]booking.Occupancy, error) {
	ws, err := s.reservations.OccupiedWindows(ctx, date, excludeReservationID)
	if err != nil {
		return nil, err
	}
	out := make([]booking.Occupancy, len(ws))
	for i, w := range ws {
		out[i] = booking.Occupancy{
			TableID:       w.TableID,
			ReservationID: w.ReservationID,
			Start:         w.Start,
			End:           w.End,
		}
	}
	return out, nil
}

// WithTables runs fn inside a transaction that holds row locks on every
// listed table. The engine hands the IDs in ascending order; both
// concurrent bookings wanting tables {3,5} and {5,7} therefore queue on
// table 5 instead of deadlocking. Commit happens only when fn returns
// nil, so the callback's writes appear all at once or not at all.
func (s *Store) WithTables(ctx context.Context, tableIDs []uint64, fn func(booking.AllocTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := s.reservations.LockTablesTx(ctx, tx, tableIDs); err != nil {
		if errors.Is(err, ErrNotFound) {
			// A member table was retired mid-search; the candidate is
			// unusable, not the whole request.
			return booking.ErrCandidateTaken
		}
		return err
	}
	if err := fn(&allocTx{ctx: ctx, tx: tx, res: s.reservations}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// allocTx is the unit of work handed to WithTables callbacks. All
// methods run on the locked transaction.
type allocTx struct {
	ctx context.Context
	tx  *sql.Tx
	res *ReservationRepo
}

// Overlaps is the authoritative conflict check for one locked table.
func (a *allocTx) Overlaps(tableID uint64, date time.Time, start, end model.TimeOfDay, excludeReservationID uint64) (bool, error) {
	return a.res.OverlapsTx(a.ctx, a.tx, tableID, date, start, end, excludeReservationID)
}

// CreateReservation inserts the reservation row.
func (a *allocTx) CreateReservation(r *model.Reservation) error {
	return a.res.CreateTx(a.ctx, a.tx, r)
}

// AddAssignments inserts one assignment row per table.
func (a *allocTx) AddAssignments(reservationID uint64, tableIDs []uint64) error {
	return a.res.AddAssignmentsTx(a.ctx, a.tx, reservationID, tableIDs)
}

// ReservationByID reads the reservation as of the lock acquisition.
func (a *allocTx) ReservationByID(id uint64) (*model.Reservation, error) {
	r, err := a.res.GetByIDTx(a.ctx, a.tx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return r, err
}

// UpdateReservation rewrites the mutable reservation fields.
func (a *allocTx) UpdateReservation(r *model.Reservation) error {
	return a.res.UpdateTx(a.ctx, a.tx, r)
}

// SetStatus writes the lifecycle status.
func (a *allocTx) SetStatus(reservationID uint64, status model.ReservationStatus) error {
	return a.res.SetStatusTx(a.ctx, a.tx, reservationID, status)
}

// RemoveAssignments deletes the reservation's assignment rows.
func (a *allocTx) RemoveAssignments(reservationID uint64) error {
	return a.res.RemoveAssignmentsTx(a.ctx, a.tx, reservationID)
}

// DeleteReservation deletes the reservation row itself.
func (a *allocTx) DeleteReservation(reservationID uint64) error {
	return a.res.DeleteTx(a.ctx, a.tx, reservationID)
}
