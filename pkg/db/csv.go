package db

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/shunichi-ikebuchi/asset-tracker/pkg/pathutil"
	"github.com/shunichi-ikebuchi/asset-tracker/pkg/schema"
)

// ErrHeaderMismatch is returned when an import file's header does not have
// one field per essential column.
var ErrHeaderMismatch = errors.New("csv header does not match table columns")

// LoadFromCSV imports snapshots from a delimited file and commits.
//
// The first row is a header with one field per essential column. Each
// following row is mapped to the essential columns by position. The import
// is all or nothing: if any row fails, none of the file's rows are kept.
func (s *Store) LoadFromCSV(csvPath string) error {
	if s.db == nil {
		return ErrClosed
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	columns := s.table.ColumnNames()

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s is empty", ErrHeaderMismatch, csvPath)
	}
	if err != nil {
		return fmt.Errorf("failed to read csv header: %w", err)
	}
	if len(header) != len(columns) {
		return fmt.Errorf("%w: got %d fields, want %d", ErrHeaderMismatch, len(header), len(columns))
	}
	for i, name := range header {
		if name != columns[i] {
			slog.Warn("CSV header differs from column name, mapping by position",
				"position", i, "header", name, "column", columns[i])
		}
	}

	count := 0
	err = s.savepoint("load_csv", func(tx *sql.Tx) error {
		for line := 2; ; line++ {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to read csv line %d: %w", line, err)
			}

			rec := make(map[string]any, len(columns))
			for i, name := range columns {
				rec[name] = record[i]
			}

			row, err := schema.ParseAssetRow(s.table, rec)
			if err != nil {
				return fmt.Errorf("csv line %d: %w", line, err)
			}
			if err := s.insert(tx, row); err != nil {
				return fmt.Errorf("csv line %d: %w", line, err)
			}
			count++
		}
	})
	if err != nil {
		return err
	}

	if err := s.Commit(); err != nil {
		return err
	}

	slog.Info("Imported CSV", "path", csvPath, "rows", count)
	return nil
}

// ExportCSV writes rows to csvPath with a header in essential-column order.
// The output can be read back by LoadFromCSV.
func ExportCSV(csvPath string, rows []schema.AssetRow) error {
	if err := pathutil.EnsureParentDir(csvPath); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if rows == nil {
		rows = []schema.AssetRow{}
	}
	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	slog.Info("Exported CSV", "path", csvPath, "rows", len(rows))
	return nil
}
