// This file contains data access for customer records. Customers come
// into existence through reservation intake (find-or-create by contact
// info), so the repository exposes lookups by email and phone next to
// the usual ID access.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel comparisons

	"github.com/iliyamo/restaurant-table-reservation/internal/model" // model defines the customer entity
)

// CustomerRepo manages persistence for customers.
type CustomerRepo struct {
	db *sql.DB
}

// NewCustomerRepo constructs a CustomerRepo with the given DB handle.
func NewCustomerRepo(db *sql.DB) *CustomerRepo {
	return &CustomerRepo{db: db}
}

const customerColumns = `id, name, email, phone, created_at, updated_at`

// scanCustomer reads one row of customerColumns into a model.Customer.
func scanCustomer(row interface{ Scan(...any) error }) (*model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a customer and populates its ID and timestamps.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	const q = `INSERT INTO customers (name, email, phone) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Email, c.Phone)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	const sel = `SELECT ` + customerColumns + ` FROM customers WHERE id = ?`
	got, err := scanCustomer(r.db.QueryRowContext(ctx, sel, c.ID))
	if err != nil {
		return err
	}
	*c = *got
	return nil
}

// GetByID retrieves a customer by ID. It returns ErrNotFound when no
// matching row exists.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (*model.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers WHERE id = ?`
	c, err := scanCustomer(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// GetByEmail retrieves a customer by exact email. It returns ErrNotFound
// when no matching row exists.
func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers WHERE email = ?`
	c, err := scanCustomer(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// GetByPhone retrieves the first customer with the given phone number.
// It returns ErrNotFound when no matching row exists.
func (r *CustomerRepo) GetByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers WHERE phone = ? ORDER BY id ASC LIMIT 1`
	c, err := scanCustomer(r.db.QueryRowContext(ctx, q, phone))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// List returns customers ordered by ID, optionally filtered by exact
// email or phone. Empty filter strings match everything.
func (r *CustomerRepo) List(ctx context.Context, email, phone string) ([]model.Customer, error) {
	q := `SELECT ` + customerColumns + ` FROM customers`
	var args []any
	switch {
	case email != "" && phone != "":
		q += ` WHERE email = ? AND phone = ?`
		args = append(args, email, phone)
	case email != "":
		q += ` WHERE email = ?`
		args = append(args, email)
	case phone != "":
		q += ` WHERE phone = ?`
		args = append(args, phone)
	}
	q += ` ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}
