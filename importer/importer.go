// Package importer loads the AdventureWorks source files into the tables created by package schema.
//
// Each import opens its own connection and commits once per source file, so a failure
// leaves every earlier file committed and discards the rows of the file being read.
package importer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/jszwec/csvutil"

	"github.com/darianmavgo/awload/sources"
	"github.com/darianmavgo/awload/store"
)

// FileStats reports what one source file contributed.
type FileStats struct {
	Path     string
	Inserted int
	Skipped  int
}

// Result reports the files imported into one table.
type Result struct {
	Table string
	Files []FileStats
}

// Inserted returns the number of rows inserted across all files.
func (r Result) Inserted() int {
	n := 0
	for _, f := range r.Files {
		n += f.Inserted
	}
	return n
}

// Skipped returns the number of rows skipped across all files.
func (r Result) Skipped() int {
	n := 0
	for _, f := range r.Files {
		n += f.Skipped
	}
	return n
}

// table describes how records of type T reach a destination table.
type table[T any] struct {
	name    string
	columns []string
	// skip reports whether a decoded row is dropped; raw is the full source record.
	skip func(rec *T, raw []string) bool
	// prepare converts source text before the insert.
	prepare func(rec *T) error
}

// importTable imports paths in order into tbl, one transaction per path, over a single connection.
func importTable[T any](ctx context.Context, dbPath string, verbose bool, tbl table[T], paths ...string) (Result, error) {
	res := Result{Table: tbl.name}

	db, err := store.OpenExisting(ctx, dbPath)
	if err != nil {
		return res, err
	}
	defer db.Close()

	for _, path := range paths {
		if verbose {
			log.Printf("[AWLOAD] Importing %s into %s", path, tbl.name)
		}
		stats, err := importFile(ctx, db, path, tbl)
		if err != nil {
			return res, err
		}
		res.Files = append(res.Files, stats)
		if verbose {
			log.Printf("[AWLOAD] Committed %s: %d rows inserted, %d skipped", path, stats.Inserted, stats.Skipped)
		}
	}
	return res, nil
}

// importFile inserts every row of path into tbl inside one transaction and commits it.
// On error the transaction is rolled back.
func importFile[T any](ctx context.Context, db *sqlx.DB, path string, tbl table[T]) (stats FileStats, err error) {
	stats.Path = path

	insertSQL, err := GenInsertStmt(tbl.name, tbl.columns)
	if err != nil {
		return stats, err
	}

	src, err := sources.Open(path)
	if err != nil {
		return stats, err
	}
	defer src.Close()

	dec, err := csvutil.NewDecoder(src)
	if err != nil {
		return stats, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	dec.DisallowMissingColumns = true
	if err := requireColumns[T](dec.Header()); err != nil {
		return stats, fmt.Errorf("%s: %w", path, err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			rollback(tx, path)
		}
	}()

	stmt, err := tx.PrepareNamedContext(ctx, insertSQL)
	if err != nil {
		return stats, fmt.Errorf("failed to prepare insert statement for table %s: %w", tbl.name, err)
	}
	defer stmt.Close()

	for row := 1; ; row++ {
		var rec T
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return stats, fmt.Errorf("failed to read row %d of %s: %w", row, path, err)
		}

		if tbl.skip != nil && tbl.skip(&rec, dec.Record()) {
			stats.Skipped++
			continue
		}
		if tbl.prepare != nil {
			if err := tbl.prepare(&rec); err != nil {
				return stats, fmt.Errorf("row %d of %s: %w", row, path, err)
			}
		}

		if _, err := stmt.ExecContext(ctx, &rec); err != nil {
			return stats, fmt.Errorf("failed to insert row %d of %s into %s: %w", row, path, tbl.name, err)
		}
		stats.Inserted++
	}

	if err := stmt.Close(); err != nil {
		return stats, fmt.Errorf("failed to close insert statement: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("failed to commit transaction for table %s: %w", tbl.name, err)
	}
	return stats, nil
}

// rollback discards the transaction for path and logs a failed rollback.
// sql.ErrTxDone means the transaction already ended with its connection and is not reported.
func rollback(tx interface{ Rollback() error }, path string) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		log.Printf("[AWLOAD] Failed to roll back import of %s: %v", path, err)
	}
}

// requireColumns fails with a *csvutil.MissingColumnsError when header lacks a column T decodes.
func requireColumns[T any](header []string) error {
	var zero T
	want, err := csvutil.Header(zero, "csv")
	if err != nil {
		return fmt.Errorf("failed to derive columns: %w", err)
	}

	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[h] = true
	}

	var missing []string
	for _, col := range want {
		if !have[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &csvutil.MissingColumnsError{Columns: missing}
	}
	return nil
}
