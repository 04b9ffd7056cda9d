package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geosafe/impact-engine/internal/impact"
	"github.com/geosafe/impact-engine/internal/store"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded impact runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(context.Background()); err != nil {
			return err
		}

		runs, err := st.ListRuns(cmd.Context(), runsLimit)
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}
		for _, r := range runs {
			fmt.Println(formatRun(r))
		}
		return nil
	},
}

// formatRun renders one run-history line.
func formatRun(r store.Run) string {
	return fmt.Sprintf("%s  %-8s  evacuated=%-10s  %s -> %s  (%s)",
		r.ID, r.Function, impact.FormatInt(r.Evacuated),
		r.Hazard, r.Exposure, r.CreatedAt.Format("2006-01-02 15:04:05"))
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum number of runs to list")
	rootCmd.AddCommand(runsCmd)
}
