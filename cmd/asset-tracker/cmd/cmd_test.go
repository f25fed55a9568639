package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shunichi-ikebuchi/asset-tracker/pkg/db"
	"github.com/shunichi-ikebuchi/asset-tracker/pkg/pathutil"
	"github.com/shunichi-ikebuchi/asset-tracker/pkg/portfolio"
	"github.com/shunichi-ikebuchi/asset-tracker/pkg/schema"
)

// useDataRoot points the configuration at a fresh data directory.
func useDataRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	chdirTemp(t)
	t.Setenv("TRACKER_ROOT", root)
	t.Setenv("TRACKER_DB_PATH", "")
	t.Setenv("TRACKER_CATEGORIES_FILE", "")
	t.Setenv("TRACKER_EXPORT_DIR", "")
	t.Setenv("DEBUG", "")
	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCheckAssetFilter(t *testing.T) {
	tests := []struct {
		name    string
		account string
		asset   string
		wantErr bool
	}{
		{"neither", "", "", false},
		{"both", "Bank", "Savings", false},
		{"account only", "Bank", "", true},
		{"name only", "", "Savings", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkAssetFilter(tt.account, tt.asset)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestListRejectsAccountWithoutName(t *testing.T) {
	useDataRoot(t)
	t.Cleanup(func() { listAccount, listName, listDate = "", "", "" })

	_, err := execute(t, "list", "--account", "Bank")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--account and --name")
}

func TestFilterDate(t *testing.T) {
	rows := []schema.AssetRow{
		{Date: "2024-01-31", Account: "Bank", Name: "Savings"},
		{Date: "2024-02-29", Account: "Bank", Name: "Savings"},
		{Date: "2024-01-31", Account: "Bank", Name: "Savings", NetWorth: 1},
	}

	got := filterDate(rows, "2024-01-31")
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, "2024-01-31", r.Date)
	}

	assert.Empty(t, filterDate(rows, "2023-12-31"))
	assert.Empty(t, filterDate(nil, "2024-01-31"))
}

func newContextStore(t *testing.T, root string) *db.Store {
	t.Helper()
	s, err := db.Open(filepath.Join(root, "asset.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	_, err = s.Initialize()
	require.NoError(t, err)
	require.NoError(t, s.InsertAsset(schema.AssetRow{Date: "2024-01-31", Account: "Bank", Name: "Savings", NetWorth: 10}))
	require.NoError(t, s.Commit())
	return s
}

func TestLoadContext(t *testing.T) {
	t.Run("without categories file", func(t *testing.T) {
		root := t.TempDir()
		s := newContextStore(t, root)
		paths := pathutil.New(pathutil.Config{Root: root})

		ctx, err := loadContext(s, paths)
		require.NoError(t, err)
		assert.Equal(t, []string{"Bank"}, ctx.AccountNames())

		bank, _ := ctx.Account("Bank")
		savings, ok := bank.Asset("Savings")
		require.True(t, ok)
		assert.Empty(t, savings.CategoryLabels())
	})

	t.Run("applies categories file", func(t *testing.T) {
		root := t.TempDir()
		s := newContextStore(t, root)
		paths := pathutil.New(pathutil.Config{Root: root})
		yaml := "accounts:\n  - name: Bank\n    assets:\n      - name: Savings\n        categories:\n          - label: Interest\n            type: REAL\n"
		require.NoError(t, os.WriteFile(paths.GetCategoriesFile(), []byte(yaml), 0644))

		ctx, err := loadContext(s, paths)
		require.NoError(t, err)

		bank, _ := ctx.Account("Bank")
		savings, ok := bank.Asset("Savings")
		require.True(t, ok)
		assert.Equal(t, []string{"Interest"}, savings.CategoryLabels())
	})

	t.Run("reserved label in categories file", func(t *testing.T) {
		root := t.TempDir()
		s := newContextStore(t, root)
		paths := pathutil.New(pathutil.Config{Root: root})
		yaml := "accounts:\n  - name: Bank\n    assets:\n      - name: Savings\n        categories:\n          - label: Name\n            type: TEXT\n"
		require.NoError(t, os.WriteFile(paths.GetCategoriesFile(), []byte(yaml), 0644))

		_, err := loadContext(s, paths)
		assert.ErrorIs(t, err, portfolio.ErrReservedLabel)
	})
}

func TestInitAddExport(t *testing.T) {
	root := useDataRoot(t)
	t.Cleanup(func() { addRow = schema.AssetRow{} })

	_, err := execute(t, "init")
	require.NoError(t, err)

	_, err = execute(t, "add", "--date", "2024-01-31", "--account", "Bank", "--name", "Savings", "--net-worth", "1200")
	require.NoError(t, err)

	out, err := execute(t, "export")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 snapshots")

	exported := filepath.Join(root, "exports", "asset-all.csv")
	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2024-01-31,Bank,Savings,1200,0,0")
}

// chdirTemp changes into a fresh temp directory and restores the previous
// working directory on cleanup (equivalent to t.Chdir on Go >= 1.24).
func chdirTemp(t *testing.T) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
