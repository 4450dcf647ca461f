package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"shopping-dashboard/charts"
	"shopping-dashboard/dashboard"
	"shopping-dashboard/engine"
	"shopping-dashboard/models"
	"shopping-dashboard/services"
	"shopping-dashboard/storage"
)

type reportOptions struct {
	path       string
	genders    []string
	seasons    []string
	categories []string
	ageGroups  []string
	items      []string
	export     string
}

func newReportCommand(a *app) *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print KPI insights for a filtered view of the dataset",
		Example: `  # Whole dataset
  shopping-dashboard report

  # Female customers aged 26-35 buying Clothing, exported to CSV
  shopping-dashboard report --gender Female --age-group 26-35 --category Clothing --export out.csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, a, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.path, "data", "", "CSV or XLSX file to report on instead of the configured source")
	f.StringSliceVar(&opts.genders, "gender", nil, "Sidebar gender filter (repeatable)")
	f.StringSliceVar(&opts.seasons, "season", nil, "Sidebar season filter (repeatable)")
	f.StringSliceVar(&opts.categories, "category", nil, "Category selection (repeatable)")
	f.StringSliceVar(&opts.ageGroups, "age-group", nil, "Age-group selection, e.g. 26-35 (repeatable)")
	f.StringSliceVar(&opts.items, "item", nil, "Item selection among the top items (repeatable)")
	f.StringVar(&opts.export, "export", "", "Write the filtered rows to this CSV file")
	return cmd
}

func runReport(cmd *cobra.Command, a *app, opts *reportOptions) error {
	ctx := cmd.Context()
	table, err := a.loadTable(ctx, opts.path)
	if err != nil {
		return err
	}

	dash := dashboard.New(table, charts.Options{TopN: a.cfg.TopN, SampleSize: a.cfg.SampleSize}, a.logger)
	s := dash.NewSession()

	sidebar := dash.Defaults()
	sidebar.Genders = opts.genders
	sidebar.Seasons = opts.seasons
	events := []dashboard.Event{
		dashboard.SidebarEvent{Filters: sidebar},
		dashboard.ReconcileEvent{Dimension: models.DimCategories, Widgets: dash.Widgets(s, models.DimCategories, opts.categories)},
		dashboard.ReconcileEvent{Dimension: models.DimAgeGroups, Widgets: dash.Widgets(s, models.DimAgeGroups, opts.ageGroups)},
	}

	for _, ev := range events {
		dash.Update(s, ev)
	}
	// Item candidates depend on the selections above, so they are reconciled last.
	frame, _ := dash.Update(s, dashboard.ReconcileEvent{
		Dimension: models.DimItems,
		Widgets:   dash.Widgets(s, models.DimItems, opts.items),
	})

	out := cmd.OutOrStdout()
	services.NewInsightService(a.logger, a.cfg.TopN).Print(out, frame.Summary)

	for _, p := range frame.Panels {
		status := "ok"
		if !p.Rendered() {
			status = p.Message
		}
		fmt.Fprintf(out, "  %d. %-50s %s\n", p.Number, p.Title, status)
	}

	if opts.export == "" {
		return nil
	}
	return exportRows(cmd, dash, s, opts.export)
}

func exportRows(cmd *cobra.Command, dash *dashboard.Dashboard, s *dashboard.Session, path string) error {
	derived := engine.ComputeDerivedView(dash.Table(), s.Sidebar, s.Selection)
	rows := make([]models.Transaction, 0, derived.Len())
	for _, t := range engine.Rows(derived) {
		rows = append(rows, *t)
	}

	w, err := storage.NewCSVWriter(path)
	if err != nil {
		return err
	}
	if err := w.Write(cmd.Context(), rows); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("csv: close %q: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n  Exported %d rows to %s\n", len(rows), path)
	return nil
}
