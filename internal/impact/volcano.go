package impact

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/geosafe/impact-engine/internal/layer"
	"github.com/geosafe/impact-engine/internal/report"
)

// Hazard attribute names recognized on volcano layers.
const (
	// KRBAttribute is the hazard-zone category on polygon hazard maps.
	KRBAttribute = "KRB"
	// PointNameAttribute carries the volcano name on point datasets.
	PointNameAttribute = "NAME"
	// PolygonNameAttribute carries the volcano name on polygon hazard maps.
	PolygonNameAttribute = "GUNUNG"
)

// PopulationField is the per-polygon output attribute.
const PopulationField = "population"

// VolcanoRequest is the typed input for the volcano evacuation function.
type VolcanoRequest struct {
	// Hazard is a vector layer: KRB polygons or volcano vent points.
	Hazard *layer.Vector
	// Population is the exposure raster.
	Population *layer.Raster
}

// VolcanoParams tunes the volcano evacuation function.
type VolcanoParams struct {
	// RadiiKM are the ascending evacuation ring radii for point hazards.
	RadiiKM []float64
	// CircleSegments is the vertex count for synthesized rings.
	CircleSegments int
	// NumClasses is the display class count for the output styling.
	NumClasses int
}

// RunVolcano counts the population in each volcanic hazard zone, derives
// cumulative evacuation totals by severity and weekly relief needs, and
// returns the styled hazard polygons with per-polygon population attached.
func RunVolcano(ctx context.Context, req VolcanoRequest, params VolcanoParams) (*Result, error) {
	if req.Hazard == nil {
		return nil, eris.Wrap(ErrMissingLayer, "volcano: no hazard vector in request")
	}
	if req.Population == nil {
		return nil, eris.Wrap(ErrMissingLayer, "volcano: no population raster in request")
	}

	hazardName := req.Hazard.Name
	var (
		polygons       []layer.Feature
		categoryAttr   string
		categoryHeader string
		nameAttr       string
		order          []Category
	)

	switch {
	case req.Hazard.IsPoint():
		radiiM := make([]float64, len(params.RadiiKM))
		for i, r := range params.RadiiKM {
			radiiM[i] = r * 1000
		}
		synthesized, err := MakeCircularPolygons(req.Hazard.Features, radiiM, params.CircleSegments)
		if err != nil {
			return nil, err
		}
		polygons = synthesized
		categoryAttr = RadiusAttribute
		categoryHeader = "Distance [km]"
		nameAttr = PointNameAttribute
		order = RadiiCategories(params.RadiiKM)

	case req.Hazard.IsPolygon():
		polygons = req.Hazard.Features
		categoryAttr = KRBAttribute
		categoryHeader = "Category"
		nameAttr = PolygonNameAttribute
		order = KRBCategories

	default:
		return nil, eris.Wrapf(ErrUnsupportedGeometry,
			"hazard %q must be a polygon or point layer", hazardName)
	}

	// Every polygon must carry the category attribute.
	polyCats := make([]Category, len(polygons))
	for i, f := range polygons {
		raw, ok := f.Attributes[categoryAttr]
		if !ok {
			return nil, eris.Wrapf(ErrMissingAttribute,
				"hazard %q did not contain expected attribute %q", hazardName, categoryAttr)
		}
		polyCats[i] = CategoryOf(raw)
	}

	volcanoNames := volcanoNames(polygons, nameAttr)

	idx, err := NewPolygonIndex(polygons)
	if err != nil {
		return nil, err
	}
	samples, err := AssignRaster(ctx, idx, req.Population)
	if err != nil {
		return nil, err
	}

	agg := AggregateSamples(samples, polyCats, order)
	counts := CumulativeBySeverity(agg.Totals, order)
	evacuated := Evacuated(counts)
	needs := WeeklyNeeds(evacuated)
	total := RoundThousand(int(req.Population.Sum()))

	zap.L().Info("impact: volcano evacuation computed",
		zap.String("hazard", hazardName),
		zap.String("exposure", req.Population.Name),
		zap.Int("polygons", len(polygons)),
		zap.Int("samples", len(samples)),
		zap.Int("evacuated", evacuated),
	)

	// Output features: hazard polygons with the population count attached.
	outFeatures := make([]layer.Feature, len(polygons))
	for i, f := range polygons {
		attrs := make(map[string]any, len(f.Attributes)+1)
		for k, v := range f.Attributes {
			attrs[k] = v
		}
		attrs[PopulationField] = agg.PerPolygon[i]
		outFeatures[i] = layer.Feature{Geometry: f.Geometry, Attributes: attrs}
	}

	breaks, err := Classify(agg.PerPolygon, params.NumClasses)
	if err != nil {
		if !eris.Is(err, ErrEmptyDistribution) {
			return nil, err
		}
		// Nobody lives in any hazard zone; style with the placeholder class
		// so the layer still renders.
		breaks = PlaceholderClasses()
	}

	table := volcanoTable(volcanoNames, categoryHeader, counts, evacuated, needs)
	tableHTML := table.HTML()

	summary := volcanoSummary(table, total)
	summaryHTML := summary.HTML()

	tableJSON, err := report.MarshalTable(table)
	if err != nil {
		return nil, err
	}

	return &Result{
		Name:       "Population affected by volcanic hazard zone",
		Features:   outFeatures,
		Projection: req.Hazard.Projection,
		Keywords: layer.Keywords{
			KeywordImpactSummary: summaryHTML,
			KeywordImpactTable:   tableHTML,
			KeywordMapTitle:      "People affected by volcanic hazard zone",
			KeywordTargetField:   PopulationField,
			KeywordLegendNotes:   "Thousand separator is represented by ','",
			KeywordLegendUnits:   "(people)",
			KeywordLegendTitle:   "Population count",
			"impact_table_data":  tableJSON,
		},
		Style: &StyleInfo{
			TargetField:  PopulationField,
			StyleClasses: breaks.Classes,
			StyleType:    "graduatedSymbol",
		},
		Evacuated: evacuated,
		Needs:     needs,
	}, nil
}

// volcanoNames collects the distinct volcano names, preserving first-seen
// order, or a fallback note when the dataset has no name attribute.
func volcanoNames(polygons []layer.Feature, nameAttr string) string {
	seen := make(map[string]bool)
	var names []string
	for _, f := range polygons {
		raw, ok := f.Attributes[nameAttr]
		if !ok {
			continue
		}
		name := fmt.Sprint(raw)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "Not specified in data"
	}
	return strings.Join(names, ", ")
}

func volcanoTable(names, categoryHeader string, counts []CategoryCount, evacuated int, needs Needs) *report.Table {
	t := &report.Table{}
	t.AddHeader("Volcanos considered", names)
	t.AddHeader("People needing evacuation", FormatInt(evacuated))
	t.AddHeader(categoryHeader, "Total", "Cumulative")
	for _, c := range counts {
		t.Add(c.Category.String(), FormatInt(c.Population), FormatInt(c.Cumulative))
	}
	t.Add("Map shows population affected in each of the volcano hazard polygons.")
	t.AddHeader("Needs per week", "Total")
	t.Add("Rice [kg]", FormatInt(needs.RiceKg))
	t.Add("Drinking Water [l]", FormatInt(needs.DrinkingWaterL))
	t.Add("Clean Water [l]", FormatInt(needs.WaterL))
	t.Add("Family Kits", FormatInt(needs.FamilyKits))
	t.Add("Toilets", FormatInt(needs.Toilets))
	return t
}

func volcanoSummary(table *report.Table, total int) *report.Table {
	s := &report.Table{Caption: table.Caption, Rows: append([]report.Row(nil), table.Rows...)}
	s.AddHeader("Notes")
	s.Add(fmt.Sprintf("Total population %s in the exposure layer", FormatInt(total)))
	s.Add("People need evacuation if they are within the volcanic hazard zones.")
	return s
}
