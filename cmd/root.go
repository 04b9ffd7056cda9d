package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geosafe/impact-engine/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "impact-engine",
	Short: "Hazard impact assessment engine",
	Long:  "Computes the impact of natural hazards (flood depth grids, volcanic hazard zones) on population exposure layers and produces styled result layers with summary reports.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
