// This file contains data access for reservations and their table
// assignments. Plain reads run on the pooled handle; every method that
// participates in the check-then-write allocation step takes an explicit
// *sql.Tx so the caller (the store adapter) controls the transaction
// boundaries and the row locks.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel comparisons
	"strings"      // strings builds IN (...) placeholder lists
	"time"         // time for reservation dates

	"github.com/iliyamo/restaurant-table-reservation/internal/model" // model defines the reservation entities
)

// ReservationRepo manages persistence for reservations and assignments.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo constructs a ReservationRepo with the given DB handle.
func NewReservationRepo(db *sql.DB) *ReservationRepo {
	return &ReservationRepo{db: db}
}

// DB exposes the underlying sql.DB. It allows the store adapter to begin
// transactions spanning reservation and assignment writes.
func (r *ReservationRepo) DB() *sql.DB {
	return r.db
}

const reservationColumns = `id, customer_id, party_size, reservation_date, start_time, duration_minutes, status, special_requests, created_at, updated_at`

// scanReservation reads one row of reservationColumns into a
// model.Reservation, parsing the DATE and TIME column formats.
func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
	var (
		res   model.Reservation
		start string
	)
	err := row.Scan(&res.ID, &res.CustomerID, &res.PartySize, &res.Date, &start,
		&res.DurationMinutes, &res.Status, &res.SpecialRequests, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	res.Date = model.DateOnly(res.Date)
	if res.StartTime, err = parseSQLTime(start); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetByID retrieves a reservation by ID. It returns ErrNotFound when no
// matching row exists.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

// GetByIDTx is GetByID through the caller's transaction, so the read sees
// the state as of the transaction's locks.
func (r *ReservationRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(tx.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

// List returns reservations filtered by optional date and status, ordered
// by date, then start time, then ID. Nil filters match everything.
func (r *ReservationRepo) List(ctx context.Context, date *time.Time, status *model.ReservationStatus) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations`
	var (
		conds []string
		args  []any
	)
	if date != nil {
		conds = append(conds, `reservation_date = ?`)
		args = append(args, model.FormatDate(*date))
	}
	if status != nil {
		conds = append(conds, `status = ?`)
		args = append(args, string(*status))
	}
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	q += ` ORDER BY reservation_date ASC, start_time ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// AssignmentsFor lists the assignment rows of one reservation in
// ascending table-ID order.
func (r *ReservationRepo) AssignmentsFor(ctx context.Context, reservationID uint64) ([]model.TableAssignment, error) {
	const q = `SELECT id, reservation_id, table_id, created_at FROM table_assignments
	           WHERE reservation_id = ? ORDER BY table_id ASC`
	rows, err := r.db.QueryContext(ctx, q, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.TableAssignment
	for rows.Next() {
		var a model.TableAssignment
		if err := rows.Scan(&a.ID, &a.ReservationID, &a.TableID, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// OccupiedWindow is one table held for one half-open window on a date.
type OccupiedWindow struct {
	TableID       uint64          // table being held
	ReservationID uint64          // reservation holding it
	Start         model.TimeOfDay // window start, inclusive
	End           model.TimeOfDay // window end, exclusive
}

// OccupiedWindows returns every (table, window) pair held on the date by
// a reservation whose status occupies tables. A non-zero
// excludeReservationID leaves that reservation's own windows out. The
// result is a lock-free snapshot for advisory reads; allocation re-checks
// under row locks.
func (r *ReservationRepo) OccupiedWindows(ctx context.Context, date time.Time, excludeReservationID uint64) ([]OccupiedWindow, error) {
	q := `SELECT ta.table_id, res.id, res.start_time, res.duration_minutes
	      FROM table_assignments ta
	      JOIN reservations res ON res.id = ta.reservation_id
	      WHERE res.reservation_date = ? AND res.status IN ('pending','confirmed','seated')`
	args := []any{model.FormatDate(date)}
	if excludeReservationID != 0 {
		q += ` AND res.id <> ?`
		args = append(args, excludeReservationID)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []OccupiedWindow
	for rows.Next() {
		var (
			w     OccupiedWindow
			start string
			dur   int
		)
		if err := rows.Scan(&w.TableID, &w.ReservationID, &start, &dur); err != nil {
			return nil, err
		}
		if w.Start, err = parseSQLTime(start); err != nil {
			return nil, err
		}
		w.End = w.Start.Add(dur)
		out = append(out, w)
	}
	return out, rows.Err()
}

// LockTablesTx pins the given table rows with SELECT ... FOR UPDATE, in
// ascending ID order so two allocation attempts over overlapping
// combinations can never deadlock. The caller passes IDs already sorted;
// the ORDER BY makes the lock order explicit to the database as well.
func (r *ReservationRepo) LockTablesTx(ctx context.Context, tx *sql.Tx, tableIDs []uint64) error {
	if len(tableIDs) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(tableIDs)), ",")
	q := `SELECT id FROM restaurant_tables WHERE id IN (` + placeholders + `) ORDER BY id FOR UPDATE`
	args := make([]any, len(tableIDs))
	for i, id := range tableIDs {
		args[i] = id
	}
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	locked := 0
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		locked++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if locked != len(tableIDs) {
		// A table vanished between candidate generation and locking.
		return ErrNotFound
	}
	return nil
}

// OverlapsTx reports whether any occupying reservation other than
// excludeReservationID holds the table for a window intersecting
// [start, end) on the date. Must run inside the transaction that holds
// the table's row lock; that makes the answer authoritative.
func (r *ReservationRepo) OverlapsTx(ctx context.Context, tx *sql.Tx, tableID uint64, date time.Time, start, end model.TimeOfDay, excludeReservationID uint64) (bool, error) {
	// Two half-open windows overlap iff each starts before the other ends.
	q := `SELECT 1
	      FROM table_assignments ta
	      JOIN reservations res ON res.id = ta.reservation_id
	      WHERE ta.table_id = ? AND res.reservation_date = ?
	        AND res.status IN ('pending','confirmed','seated')
	        AND res.start_time < ?
	        AND ADDTIME(res.start_time, SEC_TO_TIME(res.duration_minutes * 60)) > ?`
	args := []any{tableID, model.FormatDate(date), sqlTime(end), sqlTime(start)}
	if excludeReservationID != 0 {
		q += ` AND res.id <> ?`
		args = append(args, excludeReservationID)
	}
	q += ` LIMIT 1`
	var one int
	err := tx.QueryRowContext(ctx, q, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateTx inserts a reservation through the caller's transaction and
// populates its ID and stored defaults.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations (customer_id, party_size, reservation_date, start_time, duration_minutes, status, special_requests)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	out, err := tx.ExecContext(ctx, q, res.CustomerID, res.PartySize, model.FormatDate(res.Date),
		sqlTime(res.StartTime), res.DurationMinutes, string(res.Status), res.SpecialRequests)
	if err != nil {
		return err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	got, err := r.GetByIDTx(ctx, tx, res.ID)
	if err != nil {
		return err
	}
	*res = *got
	return nil
}

// UpdateTx rewrites the mutable reservation fields through the caller's
// transaction. The updated_at column refreshes itself.
func (r *ReservationRepo) UpdateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `UPDATE reservations
	           SET party_size = ?, reservation_date = ?, start_time = ?, duration_minutes = ?, special_requests = ?
	           WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, res.PartySize, model.FormatDate(res.Date),
		sqlTime(res.StartTime), res.DurationMinutes, res.SpecialRequests, res.ID)
	return err
}

// SetStatusTx writes a reservation's lifecycle status through the
// caller's transaction. Transition validation happens in the engine; by
// the time this runs the move is already vetted.
func (r *ReservationRepo) SetStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.ReservationStatus) error {
	_, err := tx.ExecContext(ctx, `UPDATE reservations SET status = ? WHERE id = ?`, string(status), id)
	return err
}

// AddAssignmentsTx inserts one assignment row per table for the
// reservation, all through the caller's transaction.
func (r *ReservationRepo) AddAssignmentsTx(ctx context.Context, tx *sql.Tx, reservationID uint64, tableIDs []uint64) error {
	const q = `INSERT INTO table_assignments (reservation_id, table_id) VALUES (?, ?)`
	for _, tid := range tableIDs {
		if _, err := tx.ExecContext(ctx, q, reservationID, tid); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAssignmentsTx deletes every assignment row of the reservation
// through the caller's transaction.
func (r *ReservationRepo) RemoveAssignmentsTx(ctx context.Context, tx *sql.Tx, reservationID uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM table_assignments WHERE reservation_id = ?`, reservationID)
	return err
}

// DeleteTx deletes the reservation row itself through the caller's
// transaction. The caller removes assignments first; the cascade is
// explicit rather than left to the schema.
func (r *ReservationRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	return err
}
