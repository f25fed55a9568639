package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	p := New(Config{Root: "/data"})

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"root", p.GetRoot(), "/data"},
		{"database", p.GetDatabasePath(), "/data/asset.db"},
		{"categories", p.GetCategoriesFile(), "/data/categories.yaml"},
		{"exports", p.GetExportDir(), "/data/exports"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}
}

func TestNewOverrides(t *testing.T) {
	p := New(Config{
		Root:           "/data",
		DatabasePath:   "/var/lib/asset.db",
		CategoriesFile: "/etc/categories.yaml",
		ExportDir:      "/tmp/out",
	})

	assert.Equal(t, "/var/lib/asset.db", p.GetDatabasePath())
	assert.Equal(t, "/etc/categories.yaml", p.GetCategoriesFile())
	assert.Equal(t, "/tmp/out", p.GetExportDir())
}

func TestGetExportFilePath(t *testing.T) {
	p := New(Config{Root: "/data"})

	tests := []struct {
		name     string
		date     string
		expected string
		wantErr  bool
	}{
		{"all", "", "/data/exports/asset-all.csv", false},
		{"month end", "2024-01-31", "/data/exports/asset-2024-01-31.csv", false},
		{"no day", "2024-01", "", true},
		{"short year", "24-01-31", "", true},
		{"slashes", "2024/01/31", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.GetExportFilePath(tt.date)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEnsureParentDir(t *testing.T) {
	root := t.TempDir()
	p := New(Config{Root: root})

	file := filepath.Join(root, "a", "b", "asset.csv")
	require.NoError(t, EnsureParentDir(file))
	assert.True(t, p.FileExists(filepath.Dir(file)))
	assert.False(t, p.FileExists(file))

	// Existing directories are fine.
	require.NoError(t, EnsureParentDir(file))

	require.NoError(t, os.WriteFile(file, nil, 0644))
	assert.True(t, p.FileExists(file))

	// A regular file in the way is an error.
	assert.Error(t, EnsureParentDir(filepath.Join(file, "nested.csv")))
}
