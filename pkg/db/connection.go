// Package db provides the SQLite accessor for asset snapshots.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/shunichi-ikebuchi/asset-tracker/pkg/pathutil"
	"github.com/shunichi-ikebuchi/asset-tracker/pkg/schema"
)

// ErrClosed is returned by every operation on a closed Store.
var ErrClosed = errors.New("store is closed")

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Store owns a single connection to the asset database.
//
// Writes are staged in a pending transaction that is opened on the first
// mutation and finished by Commit or Rollback. Reads run inside the pending
// transaction when there is one, so uncommitted writes are visible to the
// caller. Closing the store discards anything not yet committed.
type Store struct {
	db     *sql.DB
	dbPath string
	table  *schema.TableDef
	tx     *sql.Tx
}

// Open opens the asset database at dbPath using the asset table schema.
func Open(dbPath string) (*Store, error) {
	return OpenTable(dbPath, schema.AssetTable)
}

// OpenTable opens the database at dbPath and binds the store to table.
// It enables WAL mode and foreign key constraints.
func OpenTable(dbPath string, table *schema.TableDef) (*Store, error) {
	// Ensure database file's parent directory exists
	if err := pathutil.EnsureParentDir(dbPath); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", dbPath)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection for the lifetime of the store.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Debug("Opened database", "path", dbPath, "table", table.Name())

	return &Store{
		db:     db,
		dbPath: dbPath,
		table:  table,
	}, nil
}

// WithStore opens the database, runs fn and always closes the store,
// including when fn returns an error or panics.
func WithStore(dbPath string, fn func(*Store) error) (err error) {
	s, err := Open(dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(s)
}

// Close rolls back pending work and closes the connection.
// Closing an already closed store is a no-op.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}

	if s.tx != nil {
		slog.Debug("Discarding uncommitted changes", "path", s.dbPath)
		if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Warn("Failed to roll back pending transaction", "error", err)
		}
		s.tx = nil
	}

	err := s.db.Close()
	s.db = nil
	return err
}

// IsOpen reports whether the store can still be used.
func (s *Store) IsOpen() bool {
	return s.db != nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Table returns the table definition the store is bound to.
func (s *Store) Table() *schema.TableDef {
	return s.table
}

// Commit commits the pending transaction, if any.
func (s *Store) Commit() error {
	if s.db == nil {
		return ErrClosed
	}
	if s.tx == nil {
		return nil
	}

	tx := s.tx
	s.tx = nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback discards the pending transaction, if any.
func (s *Store) Rollback() error {
	if s.db == nil {
		return ErrClosed
	}
	if s.tx == nil {
		return nil
	}

	tx := s.tx
	s.tx = nil
	if err := tx.Rollback(); err != nil {
		return fmt.Errorf("failed to roll back transaction: %w", err)
	}
	return nil
}

// conn returns the querier reads should go through.
func (s *Store) conn() (querier, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	if s.tx != nil {
		return s.tx, nil
	}
	return s.db, nil
}

// pending returns the pending transaction, starting one if needed.
func (s *Store) pending() (*sql.Tx, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	if s.tx == nil {
		tx, err := s.db.Begin()
		if err != nil {
			return nil, fmt.Errorf("failed to begin transaction: %w", err)
		}
		s.tx = tx
	}
	return s.tx, nil
}

// savepoint runs fn inside a named savepoint of the pending transaction.
// If fn returns an error or panics, everything fn did is rolled back and
// earlier pending work is kept.
func (s *Store) savepoint(name string, fn func(*sql.Tx) error) (err error) {
	tx, err := s.pending()
	if err != nil {
		return err
	}

	if _, err := exec(tx, "SAVEPOINT "+name); err != nil {
		return fmt.Errorf("failed to create savepoint: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Exec("ROLLBACK TO " + name)
			tx.Exec("RELEASE " + name)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if _, rbErr := exec(tx, "ROLLBACK TO "+name); rbErr != nil {
			return fmt.Errorf("savepoint error: %v, rollback error: %w", err, rbErr)
		}
		if _, relErr := exec(tx, "RELEASE "+name); relErr != nil {
			return fmt.Errorf("savepoint error: %v, release error: %w", err, relErr)
		}
		return err
	}

	if _, err := exec(tx, "RELEASE "+name); err != nil {
		return fmt.Errorf("failed to release savepoint: %w", err)
	}
	return nil
}

// exec runs a statement and logs it at debug level.
func exec(q querier, stmt string, args ...any) (sql.Result, error) {
	slog.Debug("SQL exec", "stmt", stmt, "args", args)
	return q.Exec(stmt, args...)
}

// query runs a query and logs it at debug level.
func query(q querier, stmt string, args ...any) (*sql.Rows, error) {
	slog.Debug("SQL query", "stmt", stmt, "args", args)
	return q.Query(stmt, args...)
}
