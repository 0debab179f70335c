// This file contains data access for the weekly operating hours and the
// per-date special hours overrides. Both tables are upsert-shaped: one
// row per weekday, one row per override date.
//
// TIME columns travel as "HH:MM:SS" strings because the MySQL driver
// only auto-parses DATE and TIMESTAMP values; the helpers at the bottom
// convert to and from model.TimeOfDay.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel comparisons
	"time"         // time for dates and weekdays

	"github.com/iliyamo/restaurant-table-reservation/internal/model" // model defines the hours entities
)

// HoursRepo manages persistence for weekly and special operating hours.
type HoursRepo struct {
	db *sql.DB
}

// NewHoursRepo constructs an HoursRepo with the given DB handle.
func NewHoursRepo(db *sql.DB) *HoursRepo {
	return &HoursRepo{db: db}
}

// GetWeekly returns the schedule row of one weekday, or ErrNotFound when
// the weekday has no row (the restaurant does not open that day).
func (r *HoursRepo) GetWeekly(ctx context.Context, day time.Weekday) (*model.OperatingHours, error) {
	const q = `SELECT id, day_of_week, open_time, close_time, last_seating_time, created_at, updated_at
	           FROM operating_hours WHERE day_of_week = ?`
	var (
		h                 model.OperatingHours
		open, close, last string
	)
	err := r.db.QueryRowContext(ctx, q, int(day)).Scan(
		&h.ID, &h.DayOfWeek, &open, &close, &last, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if h.OpenTime, err = parseSQLTime(open); err != nil {
		return nil, err
	}
	if h.CloseTime, err = parseSQLTime(close); err != nil {
		return nil, err
	}
	if h.LastSeating, err = parseSQLTime(last); err != nil {
		return nil, err
	}
	return &h, nil
}

// ListWeekly returns every weekly row ordered by weekday. Days without a
// row are simply absent.
func (r *HoursRepo) ListWeekly(ctx context.Context) ([]model.OperatingHours, error) {
	const q = `SELECT id, day_of_week, open_time, close_time, last_seating_time, created_at, updated_at
	           FROM operating_hours ORDER BY day_of_week ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.OperatingHours
	for rows.Next() {
		var (
			h                 model.OperatingHours
			open, close, last string
		)
		if err := rows.Scan(&h.ID, &h.DayOfWeek, &open, &close, &last, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		if h.OpenTime, err = parseSQLTime(open); err != nil {
			return nil, err
		}
		if h.CloseTime, err = parseSQLTime(close); err != nil {
			return nil, err
		}
		if h.LastSeating, err = parseSQLTime(last); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// UpsertWeekly writes the schedule row of one weekday, inserting or
// replacing in place, and refreshes the struct from the stored row.
func (r *HoursRepo) UpsertWeekly(ctx context.Context, h *model.OperatingHours) error {
	const q = `INSERT INTO operating_hours (day_of_week, open_time, close_time, last_seating_time)
	           VALUES (?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE open_time = VALUES(open_time), close_time = VALUES(close_time),
	               last_seating_time = VALUES(last_seating_time)`
	_, err := r.db.ExecContext(ctx, q, int(h.DayOfWeek),
		sqlTime(h.OpenTime), sqlTime(h.CloseTime), sqlTime(h.LastSeating))
	if err != nil {
		return err
	}
	got, err := r.GetWeekly(ctx, h.DayOfWeek)
	if err != nil {
		return err
	}
	*h = *got
	return nil
}

const specialColumns = `id, date, is_closed, open_time, close_time, last_seating_time, name, description, created_at, updated_at`

// scanSpecial reads one row of specialColumns into a model.SpecialHours.
func scanSpecial(row interface{ Scan(...any) error }) (*model.SpecialHours, error) {
	var (
		sh                model.SpecialHours
		open, close, last sql.NullString
	)
	err := row.Scan(&sh.ID, &sh.Date, &sh.IsClosed, &open, &close, &last,
		&sh.Name, &sh.Description, &sh.CreatedAt, &sh.UpdatedAt)
	if err != nil {
		return nil, err
	}
	sh.Date = model.DateOnly(sh.Date)
	if sh.OpenTime, err = parseSQLTimePtr(open); err != nil {
		return nil, err
	}
	if sh.CloseTime, err = parseSQLTimePtr(close); err != nil {
		return nil, err
	}
	if sh.LastSeating, err = parseSQLTimePtr(last); err != nil {
		return nil, err
	}
	return &sh, nil
}

// GetSpecial returns the override row of one date, or ErrNotFound.
func (r *HoursRepo) GetSpecial(ctx context.Context, date time.Time) (*model.SpecialHours, error) {
	const q = `SELECT ` + specialColumns + ` FROM special_hours WHERE date = ?`
	sh, err := scanSpecial(r.db.QueryRowContext(ctx, q, model.FormatDate(date)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sh, nil
}

// ListSpecial returns override rows on or after the given date, ascending
// by date.
func (r *HoursRepo) ListSpecial(ctx context.Context, from time.Time) ([]model.SpecialHours, error) {
	const q = `SELECT ` + specialColumns + ` FROM special_hours WHERE date >= ? ORDER BY date ASC`
	rows, err := r.db.QueryContext(ctx, q, model.FormatDate(from))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.SpecialHours
	for rows.Next() {
		sh, err := scanSpecial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sh)
	}
	return out, rows.Err()
}

// UpsertSpecial writes the override row of one date, inserting or
// replacing in place, and refreshes the struct from the stored row.
func (r *HoursRepo) UpsertSpecial(ctx context.Context, sh *model.SpecialHours) error {
	const q = `INSERT INTO special_hours (date, is_closed, open_time, close_time, last_seating_time, name, description)
	           VALUES (?, ?, ?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE is_closed = VALUES(is_closed), open_time = VALUES(open_time),
	               close_time = VALUES(close_time), last_seating_time = VALUES(last_seating_time),
	               name = VALUES(name), description = VALUES(description)`
	_, err := r.db.ExecContext(ctx, q, model.FormatDate(sh.Date), sh.IsClosed,
		sqlTimePtr(sh.OpenTime), sqlTimePtr(sh.CloseTime), sqlTimePtr(sh.LastSeating),
		sh.Name, sh.Description)
	if err != nil {
		return err
	}
	got, err := r.GetSpecial(ctx, sh.Date)
	if err != nil {
		return err
	}
	*sh = *got
	return nil
}

// DeleteSpecial removes the override row of one date. It returns
// ErrNotFound when no row existed.
func (r *HoursRepo) DeleteSpecial(ctx context.Context, date time.Time) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM special_hours WHERE date = ?`, model.FormatDate(date))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// sqlTime renders a TimeOfDay as the "HH:MM:SS" literal MySQL expects in
// a TIME column.
func sqlTime(t model.TimeOfDay) string {
	return t.String() + ":00"
}

// sqlTimePtr renders an optional TimeOfDay, keeping nil as SQL NULL.
func sqlTimePtr(t *model.TimeOfDay) any {
	if t == nil {
		return nil
	}
	return sqlTime(*t)
}

// parseSQLTime converts a "HH:MM:SS" column value into a TimeOfDay.
func parseSQLTime(s string) (model.TimeOfDay, error) {
	return model.ParseTimeOfDay(s)
}

// parseSQLTimePtr converts a nullable TIME column value, keeping SQL NULL
// as nil.
func parseSQLTimePtr(s sql.NullString) (*model.TimeOfDay, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := model.ParseTimeOfDay(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
