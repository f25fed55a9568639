package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/asset-tracker/pkg/db"
	"github.com/shunichi-ikebuchi/asset-tracker/pkg/pathutil"
)

var clearConfirmed bool

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the asset table in an empty database",
	Long: `Create the ASSET table. The database must be empty; run
"asset-tracker clear --yes" first to start over.

Example:
  asset-tracker init`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *db.Store, _ *pathutil.PathResolver) error {
			created, err := s.Initialize()
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintf(cmd.OutOrStdout(), "Database %s is not empty, nothing to do\n", s.Path())
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s\n", s.Path())
			return nil
		})
	},
}

// clearCmd represents the clear command.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every table in the database",
	Long: `Drop every table in the database. This cannot be undone.

Example:
  asset-tracker clear --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearConfirmed {
			return fmt.Errorf("refusing to clear the database without --yes")
		}
		return withStore(func(s *db.Store, _ *pathutil.PathResolver) error {
			if err := s.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", s.Path())
			return nil
		})
	},
}

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the database holds the asset table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *db.Store, _ *pathutil.PathResolver) error {
			if err := requireValid(s); err != nil {
				return err
			}
			slog.Info("Database is valid", "path", s.Path())
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		})
	},
}

func init() {
	clearCmd.Flags().BoolVar(&clearConfirmed, "yes", false, "confirm dropping all tables")
}
