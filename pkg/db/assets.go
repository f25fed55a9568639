package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/shunichi-ikebuchi/asset-tracker/pkg/schema"
)

// InsertAsset stages a snapshot for insertion.
// Values are bound as parameters according to each column's declared type.
func (s *Store) InsertAsset(row schema.AssetRow) error {
	tx, err := s.pending()
	if err != nil {
		return err
	}
	return s.insert(tx, row)
}

// InsertRecord validates a loose record keyed by column name and stages it.
// A record missing an essential column fails with schema.ErrMissingColumn
// before anything is written.
func (s *Store) InsertRecord(rec map[string]any) error {
	row, err := schema.ParseAssetRow(s.table, rec)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}
	return s.InsertAsset(row)
}

// UpsertRecord replaces the snapshot with the same account, name and date.
func (s *Store) UpsertRecord(row schema.AssetRow) error {
	return s.savepoint("upsert_record", func(tx *sql.Tx) error {
		stmt := fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND %s = ? AND %s = ?",
			s.table.Name(), schema.ColAccount, schema.ColName, schema.ColDate)
		if _, err := exec(tx, stmt, row.Account, row.Name, row.Date); err != nil {
			return fmt.Errorf("failed to replace asset: %w", err)
		}
		return s.insert(tx, row)
	})
}

func (s *Store) insert(q querier, row schema.AssetRow) error {
	names, values, err := row.Bindings(s.table)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.table.Name(), strings.Join(names, ", "), placeholders)

	if _, err := exec(q, stmt, values...); err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}
	return nil
}

// QueryAsset returns every snapshot of one asset.
func (s *Store) QueryAsset(account, name string) ([]schema.AssetRow, error) {
	where := fmt.Sprintf("%s = ? AND %s = ?", schema.ColAccount, schema.ColName)
	rows, err := s.selectRows(where, account, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset: %w", err)
	}
	return rows, nil
}

// QueryAll returns every snapshot in store order.
func (s *Store) QueryAll() ([]schema.AssetRow, error) {
	rows, err := s.selectRows("")
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	return rows, nil
}

// QueryByDate returns the snapshots taken on date.
func (s *Store) QueryByDate(date string) ([]schema.AssetRow, error) {
	rows, err := s.selectRows(schema.ColDate+" = ?", date)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets by date: %w", err)
	}
	return rows, nil
}

// DeleteAsset stages removal of every snapshot of one asset.
// Deleting an asset that does not exist is not an error.
func (s *Store) DeleteAsset(account, name string) error {
	tx, err := s.pending()
	if err != nil {
		return err
	}

	stmt := fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND %s = ?",
		s.table.Name(), schema.ColAccount, schema.ColName)
	if _, err := exec(tx, stmt, account, name); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}

// DeleteRecords stages removal of the snapshots of one asset taken on dates.
func (s *Store) DeleteRecords(account, name string, dates ...string) error {
	if len(dates) == 0 {
		return nil
	}

	return s.savepoint("delete_records", func(tx *sql.Tx) error {
		stmt := fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND %s = ? AND %s = ?",
			s.table.Name(), schema.ColAccount, schema.ColName, schema.ColDate)
		for _, date := range dates {
			if _, err := exec(tx, stmt, account, name, date); err != nil {
				return fmt.Errorf("failed to delete record %s: %w", date, err)
			}
		}
		return nil
	})
}

// QueryColumns returns the requested columns of every row, in the order
// asked for. With no columns it returns the essential columns.
func (s *Store) QueryColumns(columns ...string) ([][]any, error) {
	if len(columns) == 0 {
		columns = s.table.ColumnNames()
	}
	if err := s.table.CheckColumns(columns...); err != nil {
		return nil, err
	}

	q, err := s.conn()
	if err != nil {
		return nil, err
	}

	stmt := fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), s.table.Name())
	rows, err := query(q, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var result [][]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan columns: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result = append(result, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}

	return result, nil
}

// selectRows reads full rows matching an optional WHERE clause.
func (s *Store) selectRows(where string, args ...any) ([]schema.AssetRow, error) {
	q, err := s.conn()
	if err != nil {
		return nil, err
	}

	cols := s.table.Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}

	stmt := fmt.Sprintf("SELECT %s FROM %s", strings.Join(names, ", "), s.table.Name())
	if where != "" {
		stmt += " WHERE " + where
	}

	rows, err := query(q, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []schema.AssetRow
	for rows.Next() {
		values := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}

		var row schema.AssetRow
		for i, name := range names {
			v := values[i]
			if v == nil {
				continue
			}
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			if err := row.Set(name, v); err != nil {
				return nil, fmt.Errorf("failed to scan asset: %w", err)
			}
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// Stats summarizes the asset table.
type Stats struct {
	TotalRows int
	Accounts  int
	Assets    int
	FirstDate sql.NullString
	LastDate  sql.NullString
}

// GetStats retrieves asset table statistics.
func (s *Store) GetStats() (*Stats, error) {
	q, err := s.conn()
	if err != nil {
		return nil, err
	}

	var stats Stats
	table := s.table.Name()

	// Get row count and date range
	stmt := fmt.Sprintf("SELECT COUNT(*), MIN(%s), MAX(%s) FROM %s",
		schema.ColDate, schema.ColDate, table)
	if err := q.QueryRow(stmt).Scan(&stats.TotalRows, &stats.FirstDate, &stats.LastDate); err != nil {
		return nil, fmt.Errorf("failed to get row count: %w", err)
	}

	// Get account count
	stmt = fmt.Sprintf("SELECT COUNT(DISTINCT %s) FROM %s", schema.ColAccount, table)
	if err := q.QueryRow(stmt).Scan(&stats.Accounts); err != nil {
		return nil, fmt.Errorf("failed to get account count: %w", err)
	}

	// Get asset count
	stmt = fmt.Sprintf("SELECT COUNT(*) FROM (SELECT DISTINCT %s, %s FROM %s)",
		schema.ColAccount, schema.ColName, table)
	if err := q.QueryRow(stmt).Scan(&stats.Assets); err != nil {
		return nil, fmt.Errorf("failed to get asset count: %w", err)
	}

	return &stats, nil
}
