package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shunichi-ikebuchi/asset-tracker/pkg/schema"
)

func TestLatestSnapshots(t *testing.T) {
	latest := LatestSnapshots(testRows())
	require.Len(t, latest, 3)

	assert.Equal(t, "Savings", latest[0].Name)
	assert.Equal(t, "2024-03-31", latest[0].Date)
	assert.Equal(t, "ETF", latest[1].Name)
	assert.Equal(t, "Checking", latest[2].Name)
}

func TestSummarize(t *testing.T) {
	rows := append(testRows(),
		schema.AssetRow{Date: "2024-03-31", Account: "Broker", Name: "ETF", NetWorth: 0.1, MonthInvestigation: 0.2, MonthProfit: 0.1},
		schema.AssetRow{Date: "2024-03-31", Account: "Broker", Name: "Bond", NetWorth: 0.2, MonthProfit: 0.2},
	)

	s := Summarize(rows)

	// Decimal sums avoid float drift: 1200 + 300 + 0.1 + 0.2
	assert.Equal(t, "1500.30", s.NetWorth.StringFixed(2))
	assert.Equal(t, "0.3", s.MonthProfit.String())
	assert.Equal(t, "0.2", s.MonthInvestigation.String())

	require.Len(t, s.Accounts, 2)
	assert.Equal(t, "Bank", s.Accounts[0].Account)
	assert.Equal(t, 2, s.Accounts[0].Assets)
	assert.Equal(t, "1500", s.Accounts[0].NetWorth.String())
	assert.Equal(t, "Broker", s.Accounts[1].Account)
	assert.Equal(t, 2, s.Accounts[1].Assets)
	assert.Equal(t, "0.3", s.Accounts[1].NetWorth.String())
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Empty(t, s.Accounts)
	assert.True(t, s.NetWorth.IsZero())
}
