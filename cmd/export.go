package main

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/geosafe/impact-engine/internal/report"
	"github.com/geosafe/impact-engine/internal/store"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Export a recorded run's impact table to XLSX",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(context.Background()); err != nil {
			return err
		}

		out, err := exportRun(cmd.Context(), st, args[0], exportOut)
		if err != nil {
			return err
		}

		fmt.Printf("wrote %s\n", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default <run-id>.xlsx)")
	rootCmd.AddCommand(exportCmd)
}

// exportRun writes the stored impact table of a run to an XLSX workbook and
// returns the output path.
func exportRun(ctx context.Context, st store.Store, id, out string) (string, error) {
	run, err := st.GetRun(ctx, id)
	if err != nil {
		return "", err
	}
	if run.TableJSON == "" {
		return "", eris.Errorf("run %s has no stored impact table", run.ID)
	}

	table, err := report.UnmarshalTable(run.TableJSON)
	if err != nil {
		return "", err
	}

	if out == "" {
		out = run.ID + ".xlsx"
	}
	if err := report.WriteXLSX(out, "Impact", table); err != nil {
		return "", err
	}
	return out, nil
}
