package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/asset-tracker/pkg/schema"
)

// Totals are summed snapshot values.
type Totals struct {
	NetWorth           decimal.Decimal
	MonthInvestigation decimal.Decimal
	MonthProfit        decimal.Decimal
}

func (t *Totals) add(row schema.AssetRow) {
	t.NetWorth = t.NetWorth.Add(decimal.NewFromFloat(row.NetWorth))
	t.MonthInvestigation = t.MonthInvestigation.Add(decimal.NewFromFloat(row.MonthInvestigation))
	t.MonthProfit = t.MonthProfit.Add(decimal.NewFromFloat(row.MonthProfit))
}

// AccountSummary is the subtotal of one account.
type AccountSummary struct {
	Account string
	Assets  int
	Totals
}

// Summary values the portfolio from the latest snapshot of every asset.
type Summary struct {
	Accounts []AccountSummary
	Latest   []schema.AssetRow
	Totals
}

// LatestSnapshots keeps the newest row per account and asset name,
// in the order each asset first appears.
func LatestSnapshots(rows []schema.AssetRow) []schema.AssetRow {
	type key struct{ account, name string }

	index := make(map[key]int)
	var latest []schema.AssetRow
	for _, row := range rows {
		k := key{row.Account, row.Name}
		i, ok := index[k]
		if !ok {
			index[k] = len(latest)
			latest = append(latest, row)
			continue
		}
		if row.Date > latest[i].Date {
			latest[i] = row
		}
	}
	return latest
}

// Summarize totals the latest snapshots, overall and per account.
func Summarize(rows []schema.AssetRow) Summary {
	latest := LatestSnapshots(rows)

	var s Summary
	s.Latest = latest

	index := make(map[string]int)
	for _, row := range latest {
		i, ok := index[row.Account]
		if !ok {
			i = len(s.Accounts)
			index[row.Account] = i
			s.Accounts = append(s.Accounts, AccountSummary{Account: row.Account})
		}
		s.Accounts[i].Assets++
		s.Accounts[i].add(row)
		s.add(row)
	}

	return s
}
