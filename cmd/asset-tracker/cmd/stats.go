package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/asset-tracker/pkg/db"
	"github.com/shunichi-ikebuchi/asset-tracker/pkg/pathutil"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display database statistics",
	Long: `Display statistics about stored snapshots.

Shows:
- Total number of snapshots
- Number of accounts and assets
- First and last snapshot date

Example:
  asset-tracker stats`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	return withStore(func(s *db.Store, _ *pathutil.PathResolver) error {
		if err := requireValid(s); err != nil {
			return err
		}

		stats, err := s.GetStats()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "\n=== Asset Statistics ===")
		fmt.Fprintf(out, "Total snapshots: %d\n", stats.TotalRows)
		fmt.Fprintf(out, "Accounts:        %d\n", stats.Accounts)
		fmt.Fprintf(out, "Assets:          %d\n", stats.Assets)

		if stats.LastDate.Valid {
			fmt.Fprintf(out, "Date range:      %s .. %s\n", stats.FirstDate.String, stats.LastDate.String)
		} else {
			fmt.Fprintf(out, "Date range:      (empty)\n")
		}

		fmt.Fprintln(out)

		slog.Debug("Statistics displayed successfully")
		return nil
	})
}
