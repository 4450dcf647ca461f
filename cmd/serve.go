package cmd

import (
	"github.com/spf13/cobra"

	"shopping-dashboard/charts"
	"shopping-dashboard/dashboard"
	"shopping-dashboard/web"
)

func newServeCommand(a *app) *cobra.Command {
	var (
		addr string
		path string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive dashboard",
		Example: `  # Serve the dataset named by DATASET_SOURCE / DATASET_PATH
  shopping-dashboard serve

  # Serve a specific file on another port
  shopping-dashboard serve --data ./data/shopping_trends.xlsx --addr :9000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := a.loadTable(cmd.Context(), path)
			if err != nil {
				return err
			}

			if addr == "" {
				addr = a.cfg.Addr
			}
			dash := dashboard.New(table, charts.Options{TopN: a.cfg.TopN, SampleSize: a.cfg.SampleSize}, a.logger)
			srv, err := web.NewServer(dash, web.Options{
				Addr:          addr,
				SessionSecret: a.cfg.SessionSecret,
				Logger:        a.logger,
			})
			if err != nil {
				return err
			}
			return srv.Serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from DASHBOARD_ADDR)")
	cmd.Flags().StringVar(&path, "data", "", "CSV or XLSX file to serve instead of the configured source")
	return cmd
}
