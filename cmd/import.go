package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"shopping-dashboard/config"
	"shopping-dashboard/engine"
	"shopping-dashboard/models"
	"shopping-dashboard/storage"
	"shopping-dashboard/utils"
)

func newImportCommand(a *app) *cobra.Command {
	var (
		from string
		to   string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Clean a CSV/XLSX dataset and store it in PostgreSQL or SQLite",
		Example: `  shopping-dashboard import --from ./data/shopping_trends.csv --to sqlite
  shopping-dashboard import --from ./data/shopping_trends.xlsx --to postgres`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if from == "" {
				from = a.cfg.DatasetPath
			}
			dialect := storage.Dialect(to)
			if dialect != storage.DialectPostgres && dialect != storage.DialectSQLite {
				return fmt.Errorf("import: target %q: %w", to, storage.ErrUnknownSource)
			}

			table, err := a.loadTable(cmd.Context(), from)
			if err != nil {
				return err
			}

			store, err := storage.OpenSQLStore(cmd.Context(), dialect, a.cfg.DSNFor(to), a.cfg.SQLTable, &utils.RetryConfig{
				MaxAttempts: a.cfg.MaxRetries,
				BaseDelay:   2 * time.Second,
				Logger:      a.logger,
			})
			if err != nil {
				return err
			}
			defer store.Close()

			rows := make([]models.Transaction, 0, table.Len())
			for _, t := range engine.Rows(table) {
				rows = append(rows, *t)
			}
			if err := store.Write(cmd.Context(), rows); err != nil {
				return err
			}

			a.logger.Info("Stored %d transactions in %s (table: %s)", len(rows), to, a.cfg.SQLTable)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions into %s\n", len(rows), to)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "CSV or XLSX source file (default DATASET_PATH)")
	cmd.Flags().StringVar(&to, "to", config.SourceSQLite, "Target store: sqlite or postgres")
	return cmd
}
