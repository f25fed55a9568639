package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/asset-tracker/pkg/db"
	"github.com/shunichi-ikebuchi/asset-tracker/pkg/pathutil"
	"github.com/shunichi-ikebuchi/asset-tracker/pkg/schema"
)

var (
	addRow schema.AssetRow

	deleteAccount string
	deleteName    string
	deleteDates   []string
)

// addCmd represents the add command.
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or replace a snapshot",
	Long: `Add a snapshot. An existing snapshot with the same account,
name and date is replaced.

Example:
  asset-tracker add --date 2024-01-31 --account Bank --name Savings \
    --net-worth 1200 --month-investigation 100 --month-profit 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *db.Store, _ *pathutil.PathResolver) error {
			if err := requireValid(s); err != nil {
				return err
			}
			if err := s.UpsertRecord(addRow); err != nil {
				return err
			}
			if err := s.Commit(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s/%s on %s\n", addRow.Account, addRow.Name, addRow.Date)
			return nil
		})
	},
}

// deleteCmd represents the delete command.
var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete snapshots of an asset",
	Long: `Delete snapshots of an asset. Without --date every snapshot of
the asset is removed.

Example:
  asset-tracker delete --account Bank --name Savings --date 2024-01-31
  asset-tracker delete --account Bank --name Savings`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *db.Store, _ *pathutil.PathResolver) error {
			if err := requireValid(s); err != nil {
				return err
			}

			var err error
			if len(deleteDates) > 0 {
				err = s.DeleteRecords(deleteAccount, deleteName, deleteDates...)
			} else {
				err = s.DeleteAsset(deleteAccount, deleteName)
			}
			if err != nil {
				return err
			}
			if err := s.Commit(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s/%s\n", deleteAccount, deleteName)
			return nil
		})
	},
}

func init() {
	// Flags
	addCmd.Flags().StringVar(&addRow.Date, "date", "", "Snapshot date (YYYY-MM-DD) (required)")
	addCmd.Flags().StringVar(&addRow.Account, "account", "", "Account name (required)")
	addCmd.Flags().StringVar(&addRow.Name, "name", "", "Asset name (required)")
	addCmd.Flags().Float64Var(&addRow.NetWorth, "net-worth", 0, "Net worth")
	addCmd.Flags().Float64Var(&addRow.MonthInvestigation, "month-investigation", 0, "Amount invested this month")
	addCmd.Flags().Float64Var(&addRow.MonthProfit, "month-profit", 0, "Profit this month")

	addCmd.MarkFlagRequired("date")
	addCmd.MarkFlagRequired("account")
	addCmd.MarkFlagRequired("name")

	deleteCmd.Flags().StringVar(&deleteAccount, "account", "", "Account name (required)")
	deleteCmd.Flags().StringVar(&deleteName, "name", "", "Asset name (required)")
	deleteCmd.Flags().StringSliceVar(&deleteDates, "date", nil, "Snapshot dates to delete (repeatable)")

	deleteCmd.MarkFlagRequired("account")
	deleteCmd.MarkFlagRequired("name")
}
