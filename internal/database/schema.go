package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements bootstraps the reservation schema.  Every statement is
// idempotent (IF NOT EXISTS) so Migrate can run on every startup.  MySQL
// executes one statement per Exec, hence the slice instead of one blob.
//
// Timestamp refresh is a storage-level rule, not engine logic: every mutable
// table carries updated_at with ON UPDATE CURRENT_TIMESTAMP, so any UPDATE
// refreshes it regardless of which column changed.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NULL,
		phone VARCHAR(32) NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_customers_email (email),
		KEY ix_customers_phone (phone)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS restaurant_tables (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		table_number INT NOT NULL,
		min_capacity INT NOT NULL,
		max_capacity INT NOT NULL,
		is_shared TINYINT(1) NOT NULL DEFAULT 0,
		location VARCHAR(255) NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_tables_number (table_number),
		CONSTRAINT ck_tables_capacity CHECK (min_capacity > 0 AND min_capacity <= max_capacity)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS chairs (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		table_id BIGINT UNSIGNED NOT NULL,
		chair_number INT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_chairs_table_number (table_id, chair_number),
		CONSTRAINT fk_chairs_table FOREIGN KEY (table_id)
			REFERENCES restaurant_tables (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS operating_hours (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		day_of_week TINYINT NOT NULL,
		open_time TIME NOT NULL,
		close_time TIME NOT NULL,
		last_seating_time TIME NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_hours_day (day_of_week),
		CONSTRAINT ck_hours_day CHECK (day_of_week BETWEEN 0 AND 6)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS special_hours (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		date DATE NOT NULL,
		is_closed TINYINT(1) NOT NULL DEFAULT 0,
		open_time TIME NULL,
		close_time TIME NULL,
		last_seating_time TIME NULL,
		name VARCHAR(255) NULL,
		description TEXT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_special_date (date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS reservations (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		customer_id BIGINT UNSIGNED NOT NULL,
		party_size INT NOT NULL,
		reservation_date DATE NOT NULL,
		start_time TIME NOT NULL,
		duration_minutes INT NOT NULL DEFAULT 90,
		status ENUM('pending','confirmed','seated','completed','cancelled','no_show')
			NOT NULL DEFAULT 'pending',
		special_requests TEXT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY ix_reservations_date (reservation_date),
		KEY ix_reservations_status (status),
		CONSTRAINT fk_reservations_customer FOREIGN KEY (customer_id)
			REFERENCES customers (id),
		CONSTRAINT ck_reservations_party CHECK (party_size > 0),
		CONSTRAINT ck_reservations_duration CHECK (duration_minutes > 0)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS table_assignments (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		reservation_id BIGINT UNSIGNED NOT NULL,
		table_id BIGINT UNSIGNED NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_assignment_pair (reservation_id, table_id),
		KEY ix_assignments_table (table_id),
		CONSTRAINT fk_assignments_reservation FOREIGN KEY (reservation_id)
			REFERENCES reservations (id) ON DELETE CASCADE,
		CONSTRAINT fk_assignments_table FOREIGN KEY (table_id)
			REFERENCES restaurant_tables (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema statements in order.  Safe to call on every
// startup; existing tables are left untouched.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i+1, err)
		}
	}
	return nil
}
