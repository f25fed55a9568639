package portfolio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shunichi-ikebuchi/asset-tracker/pkg/schema"
)

type fakeSource struct {
	rows []schema.AssetRow
	err  error
}

func (f *fakeSource) QueryColumns(columns ...string) ([][]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out [][]any
	for _, r := range f.rows {
		var line []any
		for _, c := range columns {
			v, _ := r.Get(c)
			line = append(line, v)
		}
		out = append(out, line)
	}
	return out, nil
}

func (f *fakeSource) QueryAsset(account, name string) ([]schema.AssetRow, error) {
	var out []schema.AssetRow
	for _, r := range f.rows {
		if r.Account == account && r.Name == name {
			out = append(out, r)
		}
	}
	return out, nil
}

func testRows() []schema.AssetRow {
	return []schema.AssetRow{
		{Date: "2024-01-31", Account: "Bank", Name: "Savings", NetWorth: 1000},
		{Date: "2024-01-31", Account: "Broker", Name: "ETF", NetWorth: 5000},
		{Date: "2024-03-31", Account: "Bank", Name: "Savings", NetWorth: 1200},
		{Date: "2024-02-29", Account: "Bank", Name: "Savings", NetWorth: 1100},
		{Date: "2024-02-29", Account: "Bank", Name: "Checking", NetWorth: 300},
	}
}

func TestLoadContext(t *testing.T) {
	ctx, err := LoadContext(&fakeSource{rows: testRows()})
	require.NoError(t, err)

	assert.Equal(t, []string{"Bank", "Broker"}, ctx.AccountNames())

	bank, ok := ctx.Account("Bank")
	require.True(t, ok)
	assert.Equal(t, []string{"Savings", "Checking"}, bank.AssetNames())

	_, ok = ctx.Account("Nope")
	assert.False(t, ok)

	require.Len(t, ctx.Accounts(), 2)
	assert.Equal(t, "Broker", ctx.Accounts()[1].Name)
}

func TestLoadContextError(t *testing.T) {
	boom := errors.New("boom")
	_, err := LoadContext(&fakeSource{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestAssetRowsNewestFirst(t *testing.T) {
	ctx, err := LoadContext(&fakeSource{rows: testRows()})
	require.NoError(t, err)

	rows, err := ctx.AssetRows("Bank", "Savings")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	var dates []string
	for _, r := range rows {
		dates = append(dates, r.Date)
	}
	assert.Equal(t, []string{"2024-03-31", "2024-02-29", "2024-01-31"}, dates)
}

const categoriesYAML = `
accounts:
  - name: Bank
    assets:
      - name: Savings
        categories:
          - label: Interest
            type: REAL
          - label: Bank code
            type: TEXT
  - name: Crypto
    assets:
      - name: BTC
        categories:
          - label: Wallet
            type: TEXT
`

func TestApplyCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte(categoriesYAML), 0644))

	cfg, err := LoadCategories(path)
	require.NoError(t, err)

	ctx, err := LoadContext(&fakeSource{rows: testRows()})
	require.NoError(t, err)
	require.NoError(t, ctx.ApplyCategories(cfg))

	assert.Equal(t, []string{"Bank", "Broker", "Crypto"}, ctx.AccountNames())

	bank, _ := ctx.Account("Bank")
	savings, ok := bank.Asset("Savings")
	require.True(t, ok)
	assert.Equal(t, []string{"Interest", "Bank code"}, savings.CategoryLabels())

	crypto, _ := ctx.Account("Crypto")
	btc, ok := crypto.Asset("BTC")
	require.True(t, ok)
	assert.Equal(t, "Crypto", btc.AccountName())

	// nil config is ignored
	assert.NoError(t, ctx.ApplyCategories(nil))
	assert.Len(t, ctx.Accounts(), 3)
}

func TestParseCategoriesErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"invalid yaml", "accounts: [\n"},
		{"account without name", "accounts:\n  - assets: []\n"},
		{"asset without name", "accounts:\n  - name: Bank\n    assets:\n      - categories: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCategories([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}

	_, err := LoadCategories(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyCategoriesRejectsFrameColumns(t *testing.T) {
	for _, label := range []string{FrameAccount, FrameName} {
		t.Run(label, func(t *testing.T) {
			cfg, err := ParseCategories([]byte("accounts:\n  - name: Bank\n    assets:\n      - name: Savings\n        categories:\n          - label: " + label + "\n            type: TEXT\n"))
			require.NoError(t, err)

			ctx := NewContext(&fakeSource{})
			err = ctx.ApplyCategories(cfg)
			assert.ErrorIs(t, err, ErrReservedLabel)
		})
	}
}
