package impact

import (
	"github.com/rotisserie/eris"

	"github.com/geosafe/impact-engine/internal/layer"
)

// RoundThousand rounds a count half-up to the nearest thousand. Counts of a
// thousand or less pass through unchanged so small numbers keep their
// digits in reports.
func RoundThousand(v int) int {
	if v <= 1000 {
		return v
	}
	return (v + 500) / 1000 * 1000
}

// Aggregate holds per-polygon and per-category population totals from a
// spatial join.
type Aggregate struct {
	// PerPolygon is the accumulated exposure per hazard polygon, indexed
	// like the hazard feature list.
	PerPolygon []float64
	// Totals maps each category to its accumulated exposure. Every declared
	// category has an entry, zero when nothing matched.
	Totals map[Category]float64
}

// AggregateSamples accumulates joined samples into per-polygon and
// per-category totals. polyCats gives the category of each hazard polygon;
// declared lists every category that must appear in the result.
func AggregateSamples(samples []JoinedSample, polyCats []Category, declared []Category) *Aggregate {
	agg := &Aggregate{
		PerPolygon: make([]float64, len(polyCats)),
		Totals:     make(map[Category]float64, len(declared)),
	}
	for _, c := range declared {
		agg.Totals[c] = 0
	}
	for _, s := range samples {
		agg.PerPolygon[s.PolygonIndex] += s.Value
		agg.Totals[polyCats[s.PolygonIndex]] += s.Value
	}
	return agg
}

// CategoryCount is one row of the severity table: a category's rounded
// population and the running cumulative up to and including it.
type CategoryCount struct {
	Category   Category
	Population int
	Cumulative int
}

// CumulativeBySeverity walks the categories in severity order and produces
// rounded per-category and cumulative counts. Each per-category total is
// rounded to the nearest thousand before being added, and the running sum is
// re-rounded after each addition; reports display rounded rows, so rounding
// after summing would make the table inconsistent with its own total.
func CumulativeBySeverity(totals map[Category]float64, order []Category) []CategoryCount {
	out := make([]CategoryCount, 0, len(order))
	cum := 0
	for _, cat := range order {
		pop := RoundThousand(int(totals[cat]))
		cum = RoundThousand(cum + pop)
		out = append(out, CategoryCount{Category: cat, Population: pop, Cumulative: cum})
	}
	return out
}

// Evacuated returns the final cumulative count: the population needing
// evacuation across all categories.
func Evacuated(counts []CategoryCount) int {
	if len(counts) == 0 {
		return 0
	}
	return counts[len(counts)-1].Cumulative
}

// OverlayParams controls the raster-on-raster flood overlay.
type OverlayParams struct {
	// DepthThresholdM is the flood depth above which people count as affected.
	DepthThresholdM float64
	// Scaling says how exposure cell values are interpreted.
	Scaling layer.ScalingMode
	// PixelAreaM2 and DensityDivisor convert legacy density values to
	// counts; both are historical dataset constants kept configurable.
	PixelAreaM2    float64
	DensityDivisor float64
}

// OverlayDepth computes the affected-population grid: for each cell whose
// hazard depth exceeds the threshold, the (scaled) population of that cell;
// zero elsewhere. Both rasters must share the same grid.
func OverlayDepth(depth, population *layer.Raster, p OverlayParams) ([]float64, error) {
	if !depth.SameShape(population) {
		return nil, eris.Errorf("impact: depth grid %dx%d and population grid %dx%d differ",
			depth.Cols, depth.Rows, population.Cols, population.Rows)
	}

	d := depth.DataWithFill(0)
	pop := population.DataWithFill(0)

	out := make([]float64, len(pop))
	for i := range pop {
		if d[i] <= p.DepthThresholdM {
			continue
		}
		if p.Scaling == layer.ScalingDensity {
			out[i] = pop[i] / p.DensityDivisor * p.PixelAreaM2
		} else {
			out[i] = pop[i]
		}
	}
	return out, nil
}

// GenderSplit is the female/male breakdown of total and affected population.
type GenderSplit struct {
	FemalePopulation float64
	MalePopulation   float64
	FemaleAffected   float64
	MaleAffected     float64
}

// SplitByGender derives the gender breakdown from a ratio raster. The
// layer's "unit" keyword must be "percent" (values 0-100) or "ratio"
// (values 0-1); anything else fails with ErrInvalidUnit.
func SplitByGender(population *layer.Raster, affected []float64, ratio *layer.Raster) (*GenderSplit, error) {
	unit := ratio.Keywords.Get("unit")
	var scale float64
	switch unit {
	case "percent":
		scale = 1.0 / 100
	case "ratio":
		scale = 1
	default:
		return nil, eris.Wrapf(ErrInvalidUnit,
			"layer %q: gender ratio unit must be \"percent\" or \"ratio\", got %q",
			ratio.Name, unit)
	}

	if !population.SameShape(ratio) {
		return nil, eris.Errorf("impact: population grid %dx%d and ratio grid %dx%d differ",
			population.Cols, population.Rows, ratio.Cols, ratio.Rows)
	}

	pop := population.DataWithFill(0)
	g := ratio.DataWithFill(0)

	var split GenderSplit
	for i := range pop {
		r := g[i] * scale
		female := pop[i] * r
		split.FemalePopulation += female
		split.MalePopulation += pop[i] - female

		fa := affected[i] * r
		split.FemaleAffected += fa
		split.MaleAffected += affected[i] - fa
	}
	return &split, nil
}
