package database

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Dialect captures the few DDL differences between MySQL and SQLite.
type Dialect struct {
	Name         string
	SerialPK     string // auto-increment primary key column type
	TableOptions string // appended after CREATE TABLE (...)
}

var (
	MySQL = Dialect{
		Name:         DriverMySQL,
		SerialPK:     "BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY",
		TableOptions: " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
	}
	SQLite = Dialect{
		Name:     DriverSQLite,
		SerialPK: "INTEGER PRIMARY KEY AUTOINCREMENT",
	}
)

// DialectFor returns the dialect of a driver name, defaulting to MySQL.
func DialectFor(driver string) Dialect {
	if driver == DriverSQLite {
		return SQLite
	}
	return MySQL
}

// MySQL error numbers that mean an additive change is already in place.
const (
	erTableExists    = 1050
	erDupFieldName   = 1060
	erDupKeyName     = 1061
	erDuplicateEntry = 1062
)

// IsAlreadyExists reports whether err says the table, column or index being
// created is already there.  Migrations treat this as success.
func IsAlreadyExists(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == erTableExists || me.Number == erDupFieldName || me.Number == erDupKeyName
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate column name") || strings.Contains(msg, "already exists")
}

// IsDuplicateKey reports whether err is a unique constraint violation.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == erDuplicateEntry
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
