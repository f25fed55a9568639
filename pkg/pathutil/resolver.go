// Package pathutil provides centralized path management for the tracker's
// database, category metadata and exports.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathResolver manages paths for the database, category file and exports.
type PathResolver struct {
	root           string
	databasePath   string
	categoriesFile string
	exportDir      string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// Root is the data directory (e.g., ~/finance)
	Root string
	// DatabasePath is the path to the SQLite asset database
	DatabasePath string
	// CategoriesFile is the YAML file with asset category metadata
	CategoriesFile string
	// ExportDir is the directory CSV exports are written to
	ExportDir string
}

// New creates a new PathResolver with the given configuration.
// If DatabasePath is empty, it defaults to {Root}/asset.db
// If CategoriesFile is empty, it defaults to {Root}/categories.yaml
// If ExportDir is empty, it defaults to {Root}/exports
func New(config Config) *PathResolver {
	dbPath := config.DatabasePath
	if dbPath == "" {
		dbPath = filepath.Join(config.Root, "asset.db")
	}

	categoriesFile := config.CategoriesFile
	if categoriesFile == "" {
		categoriesFile = filepath.Join(config.Root, "categories.yaml")
	}

	exportDir := config.ExportDir
	if exportDir == "" {
		exportDir = filepath.Join(config.Root, "exports")
	}

	return &PathResolver{
		root:           config.Root,
		databasePath:   dbPath,
		categoriesFile: categoriesFile,
		exportDir:      exportDir,
	}
}

// GetRoot returns the data directory.
func (p *PathResolver) GetRoot() string {
	return p.root
}

// GetDatabasePath returns the database file path.
func (p *PathResolver) GetDatabasePath() string {
	return p.databasePath
}

// GetCategoriesFile returns the category metadata file path.
func (p *PathResolver) GetCategoriesFile() string {
	return p.categoriesFile
}

// GetExportDir returns the export directory.
func (p *PathResolver) GetExportDir() string {
	return p.exportDir
}

// GetExportFilePath returns the CSV path for an export.
// An empty date exports everything; otherwise date must be YYYY-MM-DD.
// Example: exports/asset-2024-01-31.csv
func (p *PathResolver) GetExportFilePath(date string) (string, error) {
	if date == "" {
		return filepath.Join(p.exportDir, "asset-all.csv"), nil
	}

	parts := strings.Split(date, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return "", fmt.Errorf("invalid date format: %s. Expected YYYY-MM-DD", date)
	}

	return filepath.Join(p.exportDir, fmt.Sprintf("asset-%s.csv", date)), nil
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func EnsureParentDir(filePath string) error {
	return EnsureDir(filepath.Dir(filePath))
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
