package impact

import (
	"github.com/geosafe/impact-engine/internal/layer"
)

// Keyword keys attached to every result layer.
const (
	KeywordImpactSummary = "impact_summary"
	KeywordImpactTable   = "impact_table"
	KeywordMapTitle      = "map_title"
	KeywordTargetField   = "target_field"
	KeywordLegendNotes   = "legend_notes"
	KeywordLegendUnits   = "legend_units"
	KeywordLegendTitle   = "legend_title"
)

// StyleInfo describes how a vector result layer is to be rendered.
type StyleInfo struct {
	TargetField  string       `json:"target_field"`
	StyleClasses []StyleClass `json:"style_classes"`
	StyleType    string       `json:"style_type"`
}

// Result is the output of an impact function: either a raster grid or a
// vector feature set, with report keywords attached. A fresh Result is
// built per invocation; nothing is shared across calls.
type Result struct {
	Name       string
	Raster     *layer.Raster
	Features   []layer.Feature
	Projection string
	Keywords   layer.Keywords
	Style      *StyleInfo

	// Evacuated and Needs summarize the run for callers that do not parse
	// the report keywords.
	Evacuated int
	Needs     Needs
}

// IsVector reports whether the result carries features rather than a grid.
func (r *Result) IsVector() bool {
	return r.Raster == nil
}
