package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/asset-tracker/pkg/db"
	"github.com/shunichi-ikebuchi/asset-tracker/pkg/pathutil"
	"github.com/shunichi-ikebuchi/asset-tracker/pkg/schema"
)

var (
	exportDate string
	exportPath string
)

// importCmd represents the import command.
var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import snapshots from a CSV file",
	Long: `Import snapshots from a CSV file.

The first line is a header with one field per column:
  DATE,ACCOUNT,NAME,NET_WORTH,MONTH_INVESTIGATION,MONTH_PROFIT
Fields are mapped by position. If any line fails, nothing is imported.

Example:
  asset-tracker import assets.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *db.Store, _ *pathutil.PathResolver) error {
			if err := requireValid(s); err != nil {
				return err
			}
			if err := s.LoadFromCSV(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", args[0])
			return nil
		})
	},
}

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export snapshots to a CSV file",
	Long: `Export snapshots to a CSV file that "import" can read back.

Without --out the file goes to the export directory.

Example:
  asset-tracker export
  asset-tracker export --date 2024-01-31 --out jan.csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *db.Store, paths *pathutil.PathResolver) error {
			if err := requireValid(s); err != nil {
				return err
			}

			out := exportPath
			if out == "" {
				p, err := paths.GetExportFilePath(exportDate)
				if err != nil {
					return err
				}
				out = p
			}

			var (
				rows []schema.AssetRow
				err  error
			)
			if exportDate != "" {
				rows, err = s.QueryByDate(exportDate)
			} else {
				rows, err = s.QueryAll()
			}
			if err != nil {
				return err
			}

			if err := db.ExportCSV(out, rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d snapshots to %s\n", len(rows), out)
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDate, "date", "", "only export snapshots of this date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportPath, "out", "", "output file (default is in the export directory)")
}
