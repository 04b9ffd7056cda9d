package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geosafe/impact-engine/internal/config"
	"github.com/geosafe/impact-engine/internal/impact"
	"github.com/geosafe/impact-engine/internal/layer"
	"github.com/geosafe/impact-engine/internal/store"
)

var (
	runFunction    string
	runHazard      string
	runExposure    string
	runGenderRatio string
	runOut         string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an impact function over hazard and exposure layers",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := newRunner(cfg)
		if err != nil {
			return err
		}
		defer runner.Close()

		result, rec, err := runner.Run(cmd.Context(), runFunction, runHazard, runExposure, runGenderRatio)
		if err != nil {
			return err
		}

		if runOut != "" {
			if err := writeResult(result, runOut); err != nil {
				return err
			}
		}

		fmt.Printf("run %s: %s\n", rec.ID, result.Name)
		fmt.Printf("evacuated: %s\n", impact.FormatInt(result.Evacuated))
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runFunction, "function", "", "impact function: flood or volcano")
	runCmd.Flags().StringVar(&runHazard, "hazard", "", "hazard layer path (.asc or .shp)")
	runCmd.Flags().StringVar(&runExposure, "exposure", "", "population exposure raster path (.asc)")
	runCmd.Flags().StringVar(&runGenderRatio, "gender-ratio", "", "optional gender ratio raster path (.asc)")
	runCmd.Flags().StringVar(&runOut, "out", "", "write the impact layer (.asc for flood, .geojson for volcano)")
	_ = runCmd.MarkFlagRequired("function")
	_ = runCmd.MarkFlagRequired("hazard")
	_ = runCmd.MarkFlagRequired("exposure")
	rootCmd.AddCommand(runCmd)
}

// runner wires layer loading, the impact functions and the run store.
type runner struct {
	cfg *config.Config
	st  store.Store
}

func newRunner(cfg *config.Config) (*runner, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(context.Background()); err != nil {
		st.Close()
		return nil, err
	}
	return &runner{cfg: cfg, st: st}, nil
}

func (r *runner) Close() {
	if err := r.st.Close(); err != nil {
		zap.L().Warn("close store", zap.Error(err))
	}
}

// Run executes the named impact function and records it in the run store.
func (r *runner) Run(ctx context.Context, function, hazardPath, exposurePath, genderPath string) (*impact.Result, *store.Run, error) {
	var (
		result *impact.Result
		err    error
	)

	switch function {
	case "flood":
		result, err = r.runFlood(ctx, hazardPath, exposurePath, genderPath)
	case "volcano":
		result, err = r.runVolcano(ctx, hazardPath, exposurePath)
	default:
		return nil, nil, eris.Errorf("unknown impact function %q: want flood or volcano", function)
	}
	if err != nil {
		return nil, nil, err
	}

	rec := &store.Run{
		Function:  function,
		Hazard:    hazardPath,
		Exposure:  exposurePath,
		Evacuated: result.Evacuated,
		Summary:   result.Keywords.Get(impact.KeywordImpactSummary),
		TableJSON: result.Keywords.Get("impact_table_data"),
	}
	if err := r.st.SaveRun(ctx, rec); err != nil {
		// History is a convenience; the computation already succeeded.
		zap.L().Warn("save run", zap.Error(err))
	}

	return result, rec, nil
}

func (r *runner) runFlood(ctx context.Context, hazardPath, exposurePath, genderPath string) (*impact.Result, error) {
	depth, err := layer.LoadASCIIGrid(hazardPath)
	if err != nil {
		return nil, err
	}
	population, err := layer.LoadASCIIGrid(exposurePath)
	if err != nil {
		return nil, err
	}

	req := impact.FloodRequest{Depth: depth, Population: population}
	if genderPath != "" {
		ratio, err := layer.LoadASCIIGrid(genderPath)
		if err != nil {
			return nil, err
		}
		req.GenderRatio = ratio
	}

	params := impact.OverlayParams{
		DepthThresholdM: r.cfg.Engine.DepthThresholdM,
		Scaling:         layer.ScalingFor(population.Resolution(), r.cfg.Engine.ResolutionCutoffDeg),
		PixelAreaM2:     r.cfg.Engine.PixelAreaM2,
		DensityDivisor:  r.cfg.Engine.DensityDivisor,
	}

	return impact.RunFlood(ctx, req, params)
}

func (r *runner) runVolcano(ctx context.Context, hazardPath, exposurePath string) (*impact.Result, error) {
	hazard, err := layer.LoadShapefile(hazardPath)
	if err != nil {
		return nil, err
	}
	population, err := layer.LoadASCIIGrid(exposurePath)
	if err != nil {
		return nil, err
	}

	params := impact.VolcanoParams{
		RadiiKM:        r.cfg.Volcano.RadiiKM,
		CircleSegments: r.cfg.Volcano.CircleSegments,
		NumClasses:     r.cfg.Volcano.NumClasses,
	}

	return impact.RunVolcano(ctx, impact.VolcanoRequest{Hazard: hazard, Population: population}, params)
}

// writeResult writes the result layer to disk in a format matching its type.
func writeResult(result *impact.Result, path string) error {
	if result.IsVector() {
		if !strings.HasSuffix(path, ".geojson") && !strings.HasSuffix(path, ".json") {
			path = strings.TrimSuffix(path, filepath.Ext(path)) + ".geojson"
		}
		return layer.WriteGeoJSON(path, result.Features)
	}
	return layer.WriteASCIIGrid(path, result.Raster)
}
