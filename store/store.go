// Package store opens the SQLite database file the loader writes to.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"

	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// ErrNoDatabase is returned by OpenExisting when the database file has not been created yet.
var ErrNoDatabase = errors.New("database does not exist")

func init() {
	// sqlx only knows the mattn driver name; modernc uses the same placeholder style.
	sqlx.BindDriver(DriverName, sqlx.QUESTION)
}

// DSN builds the connection string for path with foreign key enforcement turned on.
// The pragma is applied to every new connection by the driver.
func DSN(path string) string {
	return path + "?_pragma=foreign_keys(1)"
}

// Open connects to the SQLite file at path, creating it if needed.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, DriverName, DSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One writer, one connection.
	db.SetMaxOpenConns(1)
	return db, nil
}

// OpenExisting is Open for a database the schema initializer must already have created.
func OpenExisting(ctx context.Context, path string) (*sqlx.DB, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoDatabase, path)
		}
		return nil, fmt.Errorf("failed to stat database: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("database path %s is a directory", path)
	}
	return Open(ctx, path)
}

// ForeignKeysEnabled reports whether the connection enforces foreign key constraints.
func ForeignKeysEnabled(ctx context.Context, db *sqlx.DB) (bool, error) {
	var on int
	if err := db.GetContext(ctx, &on, "PRAGMA foreign_keys"); err != nil {
		return false, fmt.Errorf("failed to read foreign_keys pragma: %w", err)
	}
	return on == 1, nil
}

// Count returns the number of rows in table.
func Count(ctx context.Context, db *sqlx.DB, table string) (int, error) {
	var n int
	if err := db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return n, nil
}
