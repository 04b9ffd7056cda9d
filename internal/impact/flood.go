package impact

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/geosafe/impact-engine/internal/layer"
	"github.com/geosafe/impact-engine/internal/report"
)

// FloodRequest is the typed input for the flood impact function. The caller
// assembles it from loaded layers; there is no runtime layer sniffing.
type FloodRequest struct {
	// Depth is the flood inundation raster in meters.
	Depth *layer.Raster
	// Population is the exposure raster on the same grid as Depth.
	Population *layer.Raster
	// GenderRatio is an optional female-ratio raster (unit percent or ratio).
	GenderRatio *layer.Raster
}

// RunFlood computes population affected by flood depths above the threshold
// and returns the impact raster with report keywords attached.
func RunFlood(ctx context.Context, req FloodRequest, params OverlayParams) (*Result, error) {
	if req.Depth == nil {
		return nil, eris.Wrap(ErrMissingLayer, "flood: no hazard depth raster in request")
	}
	if req.Population == nil {
		return nil, eris.Wrap(ErrMissingLayer, "flood: no population raster in request")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	affected, err := OverlayDepth(req.Depth, req.Population, params)
	if err != nil {
		return nil, err
	}

	var split *GenderSplit
	if req.GenderRatio != nil {
		split, err = SplitByGender(req.Population, affected, req.GenderRatio)
		if err != nil {
			return nil, err
		}
	}

	var affectedTotal float64
	for _, v := range affected {
		affectedTotal += v
	}
	populationTotal := req.Population.Sum()

	zap.L().Info("impact: flood overlay complete",
		zap.String("hazard", req.Depth.Name),
		zap.String("exposure", req.Population.Name),
		zap.String("scaling", params.Scaling.String()),
		zap.Float64("affected", affectedTotal),
	)

	summary := floodSummary(req, params, affectedTotal, populationTotal, split)
	table := floodTable(affectedTotal, split)

	summaryHTML := summary.HTML()
	tableHTML := table.HTML()
	tableJSON, err := report.MarshalTable(table)
	if err != nil {
		return nil, err
	}

	out := *req.Depth
	out.Name = "People affected by flood"
	out.Data = affected
	out.NoData = -9999
	out.Keywords = layer.Keywords{
		KeywordImpactSummary: summaryHTML,
		KeywordImpactTable:   tableHTML,
		KeywordMapTitle:      "People who may need evacuation",
		KeywordLegendTitle:   "Population density",
		"impact_table_data":  tableJSON,
	}

	return &Result{
		Name:       out.Name,
		Raster:     &out,
		Projection: req.Depth.Projection,
		Keywords:   out.Keywords,
		Evacuated:  RoundThousand(int(affectedTotal)),
	}, nil
}

func floodSummary(req FloodRequest, params OverlayParams, affected, total float64, split *GenderSplit) *report.Table {
	t := &report.Table{
		Caption: fmt.Sprintf("In the event of %q the estimated impact on %q:",
			req.Depth.Name, req.Population.Name),
	}
	t.AddHeader("Affected (x 1000)", FormatInt(int(affected/1000)))
	if split != nil {
		t.Add(" - Female", FormatInt(int(split.FemaleAffected/1000)))
		t.Add(" - Male", FormatInt(int(split.MaleAffected/1000)))
	}
	t.AddHeader("Notes")
	t.Add(fmt.Sprintf("Total population in the exposure layer (x 1000): %s", FormatInt(int(total/1000))))
	t.Add("Counts are in thousands")
	t.Add(fmt.Sprintf("People are considered affected when flooding is more than %.1f m.",
		params.DepthThresholdM))
	return t
}

func floodTable(affected float64, split *GenderSplit) *report.Table {
	t := &report.Table{Caption: "Population that may need evacuation"}
	t.AddHeader("Group", "People")
	t.Add("Affected", FormatInt(int(affected)))
	if split != nil {
		t.Add("Female", FormatInt(int(split.FemaleAffected)))
		t.Add("Male", FormatInt(int(split.MaleAffected)))
	}
	return t
}
