package database

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var DB *gorm.DB

// Connect initializes the database connection.
// SQLite is the default; PostgreSQL goes through pgx's database/sql adapter.
func Connect(driver, dsn string) error {
	db, err := Open(driver, dsn)
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// Open returns a new connection without touching the package-level DB.
func Open(driver, dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}

	switch driver {
	case "", DriverSQLite:
		return gorm.Open(sqlite.Open(sqliteDSN(dsn)), cfg)
	case DriverPostgres:
		pgCfg, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse postgres dsn: %w", err)
		}
		sqlDB := stdlib.OpenDB(*pgCfg)
		return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// sqliteDSN turns on foreign key enforcement so ON DELETE actions apply.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "foreign_keys(") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	if dsn == ":memory:" {
		return "file::memory:?_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// GetDB returns the database instance.
func GetDB() *gorm.DB {
	return DB
}
