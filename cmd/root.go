// Package cmd wires configuration, storage and the dashboard into the
// shopping-dashboard command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shopping-dashboard/config"
	"shopping-dashboard/engine"
	"shopping-dashboard/services"
	"shopping-dashboard/storage"
	"shopping-dashboard/utils"
)

// Version is set at build time.
var Version = "0.1.0"

// ErrEmptyDataset is returned when cleaning leaves no usable rows.
var ErrEmptyDataset = errors.New("dataset has no usable rows")

// app carries what every subcommand needs once PersistentPreRunE has run.
type app struct {
	cfg      *config.Config
	logger   *utils.Logger
	logLevel string
}

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "shopping-dashboard",
		Short: "Interactive retail shopping-trends dashboard",
		Long: `shopping-dashboard loads a retail transactions dataset and serves an
interactive dashboard of nine linked charts. Category, age-group and item
checkboxes narrow every chart; sidebar filters apply first.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}
			a.cfg = config.Load()
			level := a.cfg.LogLevel
			if a.logLevel != "" {
				level = a.logLevel
			}
			if cmd.ErrOrStderr() == os.Stderr {
				a.logger = utils.NewLogger(utils.ParseLevel(level))
			} else {
				a.logger = utils.NewWriterLogger(cmd.ErrOrStderr(), utils.ParseLevel(level))
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from LOG_LEVEL)")

	root.AddCommand(
		newServeCommand(a),
		newReportCommand(a),
		newImportCommand(a),
		newSnapshotCommand(a),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command and exits non-zero on error.
func Execute(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadTable reads and cleans the configured dataset. A non-empty path
// overrides the configured source with a CSV or XLSX file.
func (a *app) loadTable(ctx context.Context, path string) (*engine.TableView, error) {
	var (
		loader storage.DatasetLoader
		err    error
	)
	if path != "" {
		loader, err = storage.OpenFile(path)
	} else {
		loader, err = storage.Open(ctx, a.cfg, a.logger)
	}
	if err != nil {
		return nil, err
	}
	defer loader.Close()

	raw, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	a.logger.Info("Read %d raw rows", len(raw))

	rows := services.NewCleaner(a.logger).Clean(raw)
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}
	return engine.NewTableView(rows), nil
}
