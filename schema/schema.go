// Package schema (re)creates the AdventureWorks database from a static DDL script.
package schema

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	"github.com/darianmavgo/awload/store"
)

// DDL is the default schema applied when no schema file is configured.
//
//go:embed schema.sql
var DDL string

// sidecars are the files SQLite may leave next to the database.
var sidecars = []string{"-journal", "-wal", "-shm"}

// ReadDDL returns the contents of the schema file at path, or DDL when path is empty.
func ReadDDL(path string) (string, error) {
	if path == "" {
		return DDL, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read schema file: %w", err)
	}
	return string(b), nil
}

// Create removes whatever exists at dbPath, creates a new database there and applies ddl
// as a single batch. The connection is closed whether or not the script succeeds.
func Create(ctx context.Context, dbPath, ddl string, verbose bool) (err error) {
	if err := remove(dbPath); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := store.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close database: %w", cerr)
		}
	}()

	if verbose {
		log.Printf("[AWLOAD] Applying schema to %s", dbPath)
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func remove(dbPath string) error {
	for _, suffix := range append([]string{""}, sidecars...) {
		err := os.Remove(dbPath + suffix)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}
	return nil
}

// Tables lists the user tables in db, sorted by name.
func Tables(ctx context.Context, db *sqlx.DB) ([]string, error) {
	var names []string
	err := db.SelectContext(ctx, &names,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return names, nil
}
