package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"shopping-dashboard/snapshot"
)

func newSnapshotCommand(a *app) *cobra.Command {
	var (
		url string
		out string
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save a full-page PNG of a running dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if url == "" {
				url = a.cfg.SnapshotURL
			}
			if out == "" {
				out = a.cfg.SnapshotOut
			}
			c := snapshot.New(a.cfg.ChromeBin, a.cfg.MaxRetries, a.logger)
			if err := c.Capture(cmd.Context(), url, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Snapshot saved to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Dashboard URL (default SNAPSHOT_URL)")
	cmd.Flags().StringVar(&out, "out", "", "Output PNG path (default SNAPSHOT_OUT)")
	return cmd
}
