package service

import (
	"fmt"
	"strings"
)

// DatabaseDialect provides database-specific SQL syntax
type DatabaseDialect interface {
	// Name escaping
	EscapeColumnName(name string) string
	EscapeTableName(name string) string

	// CreateMACDTableSQL returns the DDL of the macd values table
	CreateMACDTableSQL() string

	// UpsertSuffix updates the given columns when the unique key already exists
	UpsertSuffix(uniqueColumns, updateColumns []string) string
}

// GetDialect returns the appropriate dialect for the given driver name
func GetDialect(driverName string) DatabaseDialect {
	switch driverName {
	case "mysql":
		return &MySQLDialect{}
	case "sqlite3":
		return &SQLiteDialect{}
	default:
		return &SQLiteDialect{} // default fallback
	}
}

func escapeColumns(d DatabaseDialect, columns []string) []string {
	escaped := make([]string, len(columns))
	for i, c := range columns {
		escaped[i] = d.EscapeColumnName(c)
	}
	return escaped
}

// MySQLDialect implements MySQL-specific SQL syntax
type MySQLDialect struct{}

func (d *MySQLDialect) EscapeColumnName(name string) string {
	return "`" + name + "`"
}

func (d *MySQLDialect) EscapeTableName(name string) string {
	return "`" + name + "`"
}

func (d *MySQLDialect) CreateMACDTableSQL() string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s ("+
		"`gid` BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY, "+
		"`exchange` VARCHAR(20) NOT NULL, "+
		"`symbol` VARCHAR(32) NOT NULL, "+
		"`period` INT NOT NULL, "+
		"`start_time` DATETIME(3) NOT NULL, "+
		"`close` DOUBLE NOT NULL, "+
		"`macd` DOUBLE NOT NULL, "+
		"`signal` DOUBLE NOT NULL, "+
		"`histogram` DOUBLE NOT NULL, "+
		"UNIQUE KEY `macd_values_unique` (`exchange`, `symbol`, `period`, `start_time`)"+
		")", d.EscapeTableName(MACDTableName))
}

func (d *MySQLDialect) UpsertSuffix(_ []string, updateColumns []string) string {
	var sets []string
	for _, c := range escapeColumns(d, updateColumns) {
		sets = append(sets, fmt.Sprintf("%s = VALUES(%s)", c, c))
	}
	return "ON DUPLICATE KEY UPDATE " + strings.Join(sets, ", ")
}

// SQLiteDialect implements SQLite-specific SQL syntax
type SQLiteDialect struct{}

func (d *SQLiteDialect) EscapeColumnName(name string) string {
	return "`" + name + "`"
}

func (d *SQLiteDialect) EscapeTableName(name string) string {
	return "`" + name + "`"
}

func (d *SQLiteDialect) CreateMACDTableSQL() string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s ("+
		"`gid` INTEGER PRIMARY KEY AUTOINCREMENT, "+
		"`exchange` VARCHAR(20) NOT NULL, "+
		"`symbol` VARCHAR(32) NOT NULL, "+
		"`period` INTEGER NOT NULL, "+
		"`start_time` DATETIME NOT NULL, "+
		"`close` REAL NOT NULL, "+
		"`macd` REAL NOT NULL, "+
		"`signal` REAL NOT NULL, "+
		"`histogram` REAL NOT NULL, "+
		"UNIQUE (`exchange`, `symbol`, `period`, `start_time`)"+
		")", d.EscapeTableName(MACDTableName))
}

func (d *SQLiteDialect) UpsertSuffix(uniqueColumns, updateColumns []string) string {
	var sets []string
	for _, c := range escapeColumns(d, updateColumns) {
		sets = append(sets, fmt.Sprintf("%s = excluded.%s", c, c))
	}
	return fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s",
		strings.Join(escapeColumns(d, uniqueColumns), ", "),
		strings.Join(sets, ", "))
}
