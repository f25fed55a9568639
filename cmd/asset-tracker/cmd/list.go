package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/asset-tracker/pkg/db"
	"github.com/shunichi-ikebuchi/asset-tracker/pkg/pathutil"
	"github.com/shunichi-ikebuchi/asset-tracker/pkg/portfolio"
	"github.com/shunichi-ikebuchi/asset-tracker/pkg/schema"
)

var (
	listAccount string
	listName    string
	listDate    string
)

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots, newest first",
	Long: `List snapshots, newest first.

Filter by one asset with --account and --name, or by day with --date.

Example:
  asset-tracker list --account Bank --name Savings
  asset-tracker list --date 2024-01-31`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkAssetFilter(listAccount, listName); err != nil {
			return err
		}

		return withStore(func(s *db.Store, _ *pathutil.PathResolver) error {
			if err := requireValid(s); err != nil {
				return err
			}

			var (
				rows []schema.AssetRow
				err  error
			)
			switch {
			case listAccount != "":
				rows, err = s.QueryAsset(listAccount, listName)
				if err == nil && listDate != "" {
					rows = filterDate(rows, listDate)
				}
			case listDate != "":
				rows, err = s.QueryByDate(listDate)
			default:
				rows, err = s.QueryAll()
			}
			if err != nil {
				return err
			}

			portfolio.SortByDateDesc(rows)
			renderAssetRows(cmd.OutOrStdout(), rows)
			return nil
		})
	},
}

// accountsCmd represents the accounts command.
var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Show accounts, their assets and asset categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *db.Store, paths *pathutil.PathResolver) error {
			if err := requireValid(s); err != nil {
				return err
			}

			ctx, err := loadContext(s, paths)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, acc := range ctx.Accounts() {
				fmt.Fprintf(out, "\n%s\n", acc.Name)
				frame := acc.ToFrame()
				if frame.Len() == 0 {
					fmt.Fprintln(out, "  (no assets)")
					continue
				}
				renderTable(out, frame.Columns, frame.Strings())
			}
			return nil
		})
	},
}

// summaryCmd represents the summary command.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Total the latest snapshot of every asset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *db.Store, _ *pathutil.PathResolver) error {
			if err := requireValid(s); err != nil {
				return err
			}

			rows, err := s.QueryAll()
			if err != nil {
				return err
			}
			summary := portfolio.Summarize(rows)

			data := make([][]string, 0, len(summary.Accounts)+1)
			for _, acc := range summary.Accounts {
				data = append(data, []string{
					acc.Account,
					strconv.Itoa(acc.Assets),
					acc.NetWorth.StringFixed(2),
					acc.MonthInvestigation.StringFixed(2),
					acc.MonthProfit.StringFixed(2),
				})
			}
			data = append(data, []string{
				"TOTAL",
				strconv.Itoa(len(summary.Latest)),
				summary.NetWorth.StringFixed(2),
				summary.MonthInvestigation.StringFixed(2),
				summary.MonthProfit.StringFixed(2),
			})

			renderTable(cmd.OutOrStdout(),
				[]string{"ACCOUNT", "ASSETS", schema.ColNetWorth, schema.ColMonthInvestigation, schema.ColMonthProfit},
				data)
			return nil
		})
	},
}

func init() {
	listCmd.Flags().StringVar(&listAccount, "account", "", "account name")
	listCmd.Flags().StringVar(&listName, "name", "", "asset name")
	listCmd.Flags().StringVar(&listDate, "date", "", "snapshot date (YYYY-MM-DD)")
}

// loadContext builds the account tree and applies category metadata when
// the categories file exists.
func loadContext(s *db.Store, paths *pathutil.PathResolver) (*portfolio.Context, error) {
	ctx, err := portfolio.LoadContext(s)
	if err != nil {
		return nil, err
	}

	catFile := paths.GetCategoriesFile()
	if !paths.FileExists(catFile) {
		slog.Debug("No categories file", "path", catFile)
		return ctx, nil
	}

	cats, err := portfolio.LoadCategories(catFile)
	if err != nil {
		return nil, err
	}
	if err := ctx.ApplyCategories(cats); err != nil {
		return nil, err
	}
	return ctx, nil
}

// checkAssetFilter requires account and name to be given together.
func checkAssetFilter(account, name string) error {
	if (account == "") != (name == "") {
		return fmt.Errorf("--account and --name must be used together")
	}
	return nil
}

func filterDate(rows []schema.AssetRow, date string) []schema.AssetRow {
	var out []schema.AssetRow
	for _, r := range rows {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out
}
