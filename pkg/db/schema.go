package db

import (
	"fmt"
	"log/slog"
	"strings"
)

// listTablesQuery lists user tables; SQLite's internal tables are skipped
// because they cannot be dropped.
const listTablesQuery = `
	SELECT name FROM sqlite_master
	WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
	ORDER BY name
`

// Tables returns the names of the tables currently in the database.
func (s *Store) Tables() ([]string, error) {
	q, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := query(q, listTablesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	return tables, nil
}

// Initialize creates the asset table in an empty database and commits.
// It returns false without touching anything when the database already
// contains tables; clear it first to start over.
func (s *Store) Initialize() (bool, error) {
	tables, err := s.Tables()
	if err != nil {
		return false, err
	}
	if len(tables) > 0 {
		slog.Warn("Database is not empty, can not initialize, please clear it first",
			"path", s.dbPath,
			"tables", tables,
		)
		return false, nil
	}

	tx, err := s.pending()
	if err != nil {
		return false, err
	}
	if _, err := exec(tx, s.table.CreateTableString()); err != nil {
		return false, fmt.Errorf("failed to create table %s: %w", s.table.Name(), err)
	}
	if err := s.Commit(); err != nil {
		return false, err
	}

	slog.Info("Initialized database", "path", s.dbPath, "table", s.table.Name())
	return true, nil
}

// Clear drops every table present in the database and commits.
// It is destructive; confirmation is up to the caller.
func (s *Store) Clear() error {
	tables, err := s.Tables()
	if err != nil {
		return err
	}

	tx, err := s.pending()
	if err != nil {
		return err
	}
	for _, name := range tables {
		if _, err := exec(tx, "DROP TABLE IF EXISTS "+quoteIdent(name)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", name, err)
		}
	}
	if err := s.Commit(); err != nil {
		return err
	}

	slog.Info("Cleared database", "path", s.dbPath, "dropped", len(tables))
	return nil
}

// Validate reports whether the asset table exists.
// Unknown tables are logged as warnings and do not affect the result.
func (s *Store) Validate() (bool, error) {
	tables, err := s.Tables()
	if err != nil {
		return false, err
	}

	found := false
	for _, name := range tables {
		if name == s.table.Name() {
			found = true
			continue
		}
		slog.Warn("Database contains unknown table", "table", name)
	}

	return found, nil
}

// quoteIdent quotes an SQL identifier read back from the catalog.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
