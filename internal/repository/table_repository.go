// This file contains data access for restaurant tables and their chairs.
// Chairs are physical inventory kept in lockstep with a table's maximum
// capacity: creating or resizing a table rewrites its chair rows in the
// same transaction, one chair per seat. Seating decisions read the
// capacity columns, never the chair count.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel comparisons

	"github.com/iliyamo/restaurant-table-reservation/internal/model" // model defines the table entities
)

// TableRepo manages persistence for restaurant tables and chairs.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo constructs a TableRepo with the given DB handle.
func NewTableRepo(db *sql.DB) *TableRepo {
	return &TableRepo{db: db}
}

const tableColumns = `id, table_number, min_capacity, max_capacity, is_shared, location, is_active, created_at, updated_at`

// scanTable reads one row of tableColumns into a model.Table.
func scanTable(row interface{ Scan(...any) error }) (*model.Table, error) {
	var t model.Table
	err := row.Scan(&t.ID, &t.TableNumber, &t.MinCapacity, &t.MaxCapacity,
		&t.IsShared, &t.Location, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a table together with its chair rows, one chair per seat
// up to MaxCapacity, in a single transaction. It returns ErrConflict when
// the floor number is already taken.
func (r *TableRepo) Create(ctx context.Context, t *model.Table) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	// Pre-check the unique floor number so callers get a sentinel instead
	// of a driver error.
	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM restaurant_tables WHERE table_number = ? LIMIT 1`, t.TableNumber).Scan(&one)
	if err == nil {
		err = ErrConflict
		return err
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	err = nil

	const q = `INSERT INTO restaurant_tables (table_number, min_capacity, max_capacity, is_shared, location, is_active)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, t.TableNumber, t.MinCapacity, t.MaxCapacity, t.IsShared, t.Location, t.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	if err = syncChairsTx(ctx, tx, t.ID, t.MaxCapacity); err != nil {
		return err
	}
	// Re-select to pick up the DB-assigned timestamps.
	const sel = `SELECT ` + tableColumns + ` FROM restaurant_tables WHERE id = ?`
	var got *model.Table
	if got, err = scanTable(tx.QueryRowContext(ctx, sel, t.ID)); err != nil {
		return err
	}
	*t = *got
	return nil
}

// GetByID retrieves a table by its ID. It returns ErrNotFound when no
// matching row exists.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (*model.Table, error) {
	const q = `SELECT ` + tableColumns + ` FROM restaurant_tables WHERE id = ?`
	t, err := scanTable(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// GetByNumber retrieves a table by its floor number. It returns
// ErrNotFound when no matching row exists.
func (r *TableRepo) GetByNumber(ctx context.Context, number int) (*model.Table, error) {
	const q = `SELECT ` + tableColumns + ` FROM restaurant_tables WHERE table_number = ?`
	t, err := scanTable(r.db.QueryRowContext(ctx, q, number))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// List returns every table ordered by floor number. When no tables exist
// it returns an empty slice and nil error.
func (r *TableRepo) List(ctx context.Context) ([]model.Table, error) {
	const q = `SELECT ` + tableColumns + ` FROM restaurant_tables ORDER BY table_number ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// ListActive returns tables currently in service, ordered by floor number.
func (r *TableRepo) ListActive(ctx context.Context) ([]model.Table, error) {
	const q = `SELECT ` + tableColumns + ` FROM restaurant_tables WHERE is_active = 1 ORDER BY table_number ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// Update rewrites a table's attributes and resyncs its chair rows to the
// new maximum capacity in the same transaction. It returns ErrNotFound
// when the table does not exist and ErrConflict when the new floor number
// collides with another table.
func (r *TableRepo) Update(ctx context.Context, t *model.Table) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var holder uint64
	err = tx.QueryRowContext(ctx, `SELECT id FROM restaurant_tables WHERE table_number = ? LIMIT 1`, t.TableNumber).Scan(&holder)
	if err == nil && holder != t.ID {
		err = ErrConflict
		return err
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	err = nil

	const q = `UPDATE restaurant_tables
	           SET table_number = ?, min_capacity = ?, max_capacity = ?, is_shared = ?, location = ?, is_active = ?
	           WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, t.TableNumber, t.MinCapacity, t.MaxCapacity, t.IsShared, t.Location, t.IsActive, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Zero rows can mean "no change" as well as "no row"; look the row
		// up to tell them apart.
		var one int
		if err = tx.QueryRowContext(ctx, `SELECT 1 FROM restaurant_tables WHERE id = ?`, t.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				err = ErrNotFound
			}
			return err
		}
	}
	if err = syncChairsTx(ctx, tx, t.ID, t.MaxCapacity); err != nil {
		return err
	}
	const sel = `SELECT ` + tableColumns + ` FROM restaurant_tables WHERE id = ?`
	var got *model.Table
	if got, err = scanTable(tx.QueryRowContext(ctx, sel, t.ID)); err != nil {
		return err
	}
	*t = *got
	return nil
}

// Delete removes a table together with its chairs and any assignment rows
// pointing at it. The cleanup is explicit and transactional rather than
// left to foreign-key cascades, so a failure removes nothing.
func (r *TableRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM restaurant_tables WHERE id = ?`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM table_assignments WHERE table_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM chairs WHERE table_id = ?`, id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM restaurant_tables WHERE id = ?`, id)
	return err
}

// ChairCount returns the number of chair rows a table currently has.
func (r *TableRepo) ChairCount(ctx context.Context, tableID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chairs WHERE table_id = ?`, tableID).Scan(&n)
	return n, err
}

// ChairsFor lists a table's chairs ordered by chair number.
func (r *TableRepo) ChairsFor(ctx context.Context, tableID uint64) ([]model.Chair, error) {
	const q = `SELECT id, table_id, chair_number, created_at FROM chairs WHERE table_id = ? ORDER BY chair_number ASC`
	rows, err := r.db.QueryContext(ctx, q, tableID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Chair
	for rows.Next() {
		var c model.Chair
		if err := rows.Scan(&c.ID, &c.TableID, &c.ChairNumber, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// syncChairsTx grows or shrinks a table's chair rows to match maxCapacity
// inside the caller's transaction. Chairs are numbered 1..maxCapacity;
// shrinking removes the highest numbers first.
func syncChairsTx(ctx context.Context, tx *sql.Tx, tableID uint64, maxCapacity int) error {
	var have int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM chairs WHERE table_id = ?`, tableID).Scan(&have); err != nil {
		return err
	}
	if have > maxCapacity {
		_, err := tx.ExecContext(ctx, `DELETE FROM chairs WHERE table_id = ? AND chair_number > ?`, tableID, maxCapacity)
		return err
	}
	for n := have + 1; n <= maxCapacity; n++ {
		if _, err := tx.ExecContext(ctx, `INSERT INTO chairs (table_id, chair_number) VALUES (?, ?)`, tableID, n); err != nil {
			return err
		}
	}
	return nil
}
