package database

import (
	"context"
	"database/sql"
	"fmt"
)

// migration is one idempotent schema step.  Table creation uses IF NOT
// EXISTS; column and index additions rely on IsAlreadyExists so that the
// whole list can be re-run against any schema version.
type migration struct {
	name string
	ddl  func(d Dialect) string
}

var migrations = []migration{
	{"create_restaurants", func(d Dialect) string {
		return `CREATE TABLE IF NOT EXISTS restaurants (
			seq ` + d.SerialPK + `,
			id VARCHAR(64) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			cuisine VARCHAR(64) NOT NULL,
			address VARCHAR(255) NOT NULL,
			phone VARCHAR(64) NOT NULL,
			price_tier TINYINT NOT NULL,
			rating DOUBLE NOT NULL,
			seating_capacity INT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)` + d.TableOptions
	}},
	{"create_menu_items", func(d Dialect) string {
		return `CREATE TABLE IF NOT EXISTS menu_items (
			seq ` + d.SerialPK + `,
			id VARCHAR(64) NOT NULL UNIQUE,
			restaurant_id VARCHAR(64) NOT NULL,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			price_cents BIGINT NOT NULL,
			category VARCHAR(16) NOT NULL,
			available TINYINT(1) NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY (restaurant_id) REFERENCES restaurants(id)
		)` + d.TableOptions
	}},
	{"create_reservations", func(d Dialect) string {
		return `CREATE TABLE IF NOT EXISTS reservations (
			seq ` + d.SerialPK + `,
			id VARCHAR(64) NOT NULL UNIQUE,
			restaurant_id VARCHAR(64) NOT NULL,
			user_id BIGINT NULL,
			customer_name VARCHAR(255) NOT NULL,
			customer_email VARCHAR(255) NOT NULL,
			customer_phone VARCHAR(64) NOT NULL,
			res_date VARCHAR(10) NOT NULL,
			res_time VARCHAR(5) NOT NULL,
			guests INT NOT NULL,
			status VARCHAR(16) NOT NULL,
			special_requests TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY (restaurant_id) REFERENCES restaurants(id)
		)` + d.TableOptions
	}},
	{"create_reservation_status_history", func(d Dialect) string {
		return `CREATE TABLE IF NOT EXISTS reservation_status_history (
			seq ` + d.SerialPK + `,
			reservation_id VARCHAR(64) NOT NULL,
			from_status VARCHAR(16) NOT NULL,
			to_status VARCHAR(16) NOT NULL,
			changed_by VARCHAR(255) NOT NULL,
			changed_at DATETIME NOT NULL,
			FOREIGN KEY (reservation_id) REFERENCES reservations(id)
		)` + d.TableOptions
	}},
	{"create_places", func(d Dialect) string {
		return `CREATE TABLE IF NOT EXISTS places (
			seq ` + d.SerialPK + `,
			id VARCHAR(64) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			country VARCHAR(128) NOT NULL,
			city VARCHAR(128) NOT NULL,
			rating DOUBLE NOT NULL,
			category VARCHAR(16) NOT NULL
		)` + d.TableOptions
	}},
	{"create_users", func(d Dialect) string {
		return `CREATE TABLE IF NOT EXISTS users (
			id ` + d.SerialPK + `,
			email VARCHAR(255) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(16) NOT NULL,
			restaurant_id VARCHAR(64) NULL,
			is_active TINYINT(1) NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)` + d.TableOptions
	}},
	{"create_refresh_tokens", func(d Dialect) string {
		return `CREATE TABLE IF NOT EXISTS refresh_tokens (
			id ` + d.SerialPK + `,
			user_id BIGINT NOT NULL,
			token_hash CHAR(64) NOT NULL UNIQUE,
			expires_at DATETIME NOT NULL,
			revoked_at DATETIME NULL,
			created_at DATETIME NOT NULL
		)` + d.TableOptions
	}},

	// Additive columns.  Re-running them against a migrated schema yields a
	// duplicate column error which counts as success.
	{"add_restaurants_external_ref", func(Dialect) string {
		return `ALTER TABLE restaurants ADD COLUMN external_ref VARCHAR(128) NOT NULL DEFAULT ''`
	}},
	{"add_restaurants_image_url", func(Dialect) string {
		return `ALTER TABLE restaurants ADD COLUMN image_url VARCHAR(512) NOT NULL DEFAULT ''`
	}},
	{"add_places_image_url", func(Dialect) string {
		return `ALTER TABLE places ADD COLUMN image_url VARCHAR(512) NOT NULL DEFAULT ''`
	}},
	{"add_users_profile_image_url", func(Dialect) string {
		return `ALTER TABLE users ADD COLUMN profile_image_url VARCHAR(512) NULL`
	}},

	{"index_reservations_status", func(Dialect) string {
		return `CREATE INDEX idx_reservations_status ON reservations (status)`
	}},
	{"index_reservations_user", func(Dialect) string {
		return `CREATE INDEX idx_reservations_user ON reservations (user_id)`
	}},
	{"index_places_category", func(Dialect) string {
		return `CREATE INDEX idx_places_category ON places (category)`
	}},
}

// MigrationResult reports what a Migrate run did.
type MigrationResult struct {
	Applied []string // steps that changed the schema
	Skipped []string // steps already in place
}

// Migrate brings the schema up to date.  It is safe to call on every start.
func Migrate(ctx context.Context, db *sql.DB, d Dialect) (MigrationResult, error) {
	var res MigrationResult
	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m.ddl(d)); err != nil {
			if IsAlreadyExists(err) {
				res.Skipped = append(res.Skipped, m.name)
				continue
			}
			return res, fmt.Errorf("migration %s: %w", m.name, err)
		}
		res.Applied = append(res.Applied, m.name)
	}
	return res, nil
}
