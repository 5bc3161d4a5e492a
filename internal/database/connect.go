package database

import (
	"database/sql"

	"github.com/iliyamo/table-reservation/internal/config"
)

// Connect opens the database selected by cfg and returns it with the
// matching dialect.
func Connect(cfg config.Config) (*sql.DB, Dialect, error) {
	d := DialectFor(cfg.DBDriver)
	dsn := MySQLDSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if d.Name == DriverSQLite {
		dsn = SQLiteDSN(cfg.DBPath)
	}
	db, err := Open(d.Name, dsn)
	if err != nil {
		return nil, d, err
	}
	return db, d, nil
}
