// Package layer holds the in-memory raster and vector layers the impact
// engine computes over, plus the loaders that build them from files.
package layer

import (
	"math"

	"github.com/rotisserie/eris"
)

// ScalingMode says how population values in an exposure raster are to be
// interpreted. It is decided once, when the layer is loaded, and passed into
// the aggregation code as a parameter.
type ScalingMode int

const (
	// ScalingPreScaled means cell values are population counts usable as-is.
	ScalingPreScaled ScalingMode = iota
	// ScalingDensity means cell values are legacy densities that must be
	// multiplied by the pixel area and divided by the density divisor.
	ScalingDensity
)

func (m ScalingMode) String() string {
	if m == ScalingDensity {
		return "density"
	}
	return "prescaled"
}

// ScalingFor picks the scaling mode for an exposure raster from its native
// resolution. Datasets finer than the cutoff predate the generic scaling
// convention and carry densities.
func ScalingFor(resolutionDeg, cutoffDeg float64) ScalingMode {
	if resolutionDeg < cutoffDeg {
		return ScalingDensity
	}
	return ScalingPreScaled
}

// Raster is a single-band numeric grid with a GDAL-style geotransform.
// Data is row-major, Rows*Cols long, with NoData marking missing cells.
type Raster struct {
	Name         string
	Data         []float64
	Cols         int
	Rows         int
	GeoTransform [6]float64
	NoData       float64
	Projection   string
	Keywords     Keywords
}

// NewRaster builds a raster and validates the grid shape.
func NewRaster(name string, data []float64, cols, rows int, gt [6]float64) (*Raster, error) {
	if cols <= 0 || rows <= 0 {
		return nil, eris.Errorf("layer: raster %q has invalid shape %dx%d", name, cols, rows)
	}
	if len(data) != cols*rows {
		return nil, eris.Errorf("layer: raster %q has %d values, want %d", name, len(data), cols*rows)
	}
	return &Raster{
		Name:         name,
		Data:         data,
		Cols:         cols,
		Rows:         rows,
		GeoTransform: gt,
		NoData:       math.NaN(),
		Keywords:     Keywords{},
	}, nil
}

// DataWithFill returns a copy of the grid with missing values replaced by fill.
func (r *Raster) DataWithFill(fill float64) []float64 {
	out := make([]float64, len(r.Data))
	for i, v := range r.Data {
		if r.isNoData(v) {
			out[i] = fill
		} else {
			out[i] = v
		}
	}
	return out
}

func (r *Raster) isNoData(v float64) bool {
	if math.IsNaN(v) {
		return true
	}
	return !math.IsNaN(r.NoData) && v == r.NoData
}

// Value returns the cell value at (row, col) with missing values as fill.
func (r *Raster) Value(row, col int, fill float64) float64 {
	v := r.Data[row*r.Cols+col]
	if r.isNoData(v) {
		return fill
	}
	return v
}

// CellCenter returns the geographic coordinates of the center of cell (row, col).
func (r *Raster) CellCenter(row, col int) (x, y float64) {
	gt := r.GeoTransform
	x = gt[0] + (float64(col)+0.5)*gt[1] + (float64(row)+0.5)*gt[2]
	y = gt[3] + (float64(col)+0.5)*gt[4] + (float64(row)+0.5)*gt[5]
	return x, y
}

// Resolution returns the native isotropic resolution in map units. For
// slightly anisotropic grids the mean of the two pixel sizes is used.
func (r *Raster) Resolution() float64 {
	dx := math.Abs(r.GeoTransform[1])
	dy := math.Abs(r.GeoTransform[5])
	return (dx + dy) / 2
}

// Sum returns the total of all cell values, treating missing values as zero.
func (r *Raster) Sum() float64 {
	var total float64
	for _, v := range r.Data {
		if !r.isNoData(v) {
			total += v
		}
	}
	return total
}

// SameShape reports whether two rasters cover the same grid.
func (r *Raster) SameShape(o *Raster) bool {
	return r.Cols == o.Cols && r.Rows == o.Rows
}
