// Package cmd provides CLI commands for asset-tracker.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/asset-tracker/pkg/config"
	"github.com/shunichi-ikebuchi/asset-tracker/pkg/db"
	"github.com/shunichi-ikebuchi/asset-tracker/pkg/pathutil"
	"github.com/shunichi-ikebuchi/asset-tracker/pkg/schema"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "asset-tracker",
	Short: "Track monthly snapshots of personal assets",
	Long: `asset-tracker keeps dated snapshots of your assets in a SQLite
database, grouped by account and asset name.

It supports:
- Initializing, validating and clearing the database
- Importing and exporting snapshots as CSV
- Adding, replacing and deleting snapshots
- Listing accounts and summarizing net worth

Example:
  asset-tracker init
  asset-tracker import assets.csv
  asset-tracker list --account Bank --name Savings
  asset-tracker summary`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(debug)
	},
}

// setupLogging installs the default text logger on stderr.
func setupLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(deleteCmd)
}

// loadPaths loads configuration and resolves the data paths.
func loadPaths() (*config.Config, *pathutil.PathResolver, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate([]string{"tracker", "root"}); err != nil {
		return nil, nil, err
	}
	if cfg.Debug && !debug {
		setupLogging(true)
	}

	return cfg, pathutil.New(pathutil.Config{
		Root:           cfg.Tracker.Root,
		DatabasePath:   cfg.Tracker.DBPath,
		CategoriesFile: cfg.Tracker.CategoriesFile,
		ExportDir:      cfg.Tracker.ExportDir,
	}), nil
}

// withStore opens the configured database for the duration of fn.
func withStore(fn func(*db.Store, *pathutil.PathResolver) error) error {
	_, paths, err := loadPaths()
	if err != nil {
		return err
	}

	dbPath := paths.GetDatabasePath()
	slog.Debug("Opening database", "path", dbPath)

	return db.WithStore(dbPath, func(s *db.Store) error {
		return fn(s, paths)
	})
}

// requireValid fails when the asset table is missing.
func requireValid(s *db.Store) error {
	ok, err := s.Validate()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("database %s has no %s table, run init first", s.Path(), s.Table().Name())
	}
	return nil
}

// renderTable writes rows as a text table.
func renderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
}

// renderAssetRows writes snapshots as a text table in column order.
func renderAssetRows(w io.Writer, rows []schema.AssetRow) {
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{
			r.Date,
			r.Account,
			r.Name,
			formatFloat(r.NetWorth),
			formatFloat(r.MonthInvestigation),
			formatFloat(r.MonthProfit),
		}
	}
	renderTable(w, schema.AssetTable.ColumnNames(), data)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
