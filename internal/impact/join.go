package impact

import (
	"context"
	"math"
	"runtime"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"golang.org/x/sync/errgroup"

	"github.com/geosafe/impact-engine/internal/layer"
)

// JoinedSample is one exposure sample assigned to the hazard polygon that
// contains it. Samples outside every polygon are not emitted at all:
// absence means "outside all hazard zones", not zero.
type JoinedSample struct {
	PolygonIndex int
	Value        float64
}

// indexGridSize is the number of buckets per axis in the bbox grid index.
const indexGridSize = 64

type polyEntry struct {
	minX, minY, maxX, maxY float64
	// rings holds flat XY coordinates; within each member polygon the first
	// ring is the exterior, the rest are holes.
	polys [][][]float64
}

// PolygonIndex is a bounding-box grid index over hazard polygons. Lookups
// return the first polygon, in input order, that contains a point; when
// polygons overlap the first match wins and no correction is attempted.
type PolygonIndex struct {
	entries []polyEntry
	buckets map[[2]int][]int
	minX    float64
	minY    float64
	cellW   float64
	cellH   float64
}

// NewPolygonIndex builds the index over the hazard features.
// Non-polygon geometries fail with ErrUnsupportedGeometry.
func NewPolygonIndex(features []layer.Feature) (*PolygonIndex, error) {
	idx := &PolygonIndex{buckets: make(map[[2]int][]int)}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	for i, f := range features {
		entry, err := newPolyEntry(f.Geometry)
		if err != nil {
			return nil, eris.Wrapf(err, "feature %d", i)
		}
		idx.entries = append(idx.entries, entry)
		minX = math.Min(minX, entry.minX)
		minY = math.Min(minY, entry.minY)
		maxX = math.Max(maxX, entry.maxX)
		maxY = math.Max(maxY, entry.maxY)
	}

	if len(idx.entries) == 0 {
		return idx, nil
	}

	idx.minX, idx.minY = minX, minY
	idx.cellW = (maxX - minX) / indexGridSize
	idx.cellH = (maxY - minY) / indexGridSize
	if idx.cellW <= 0 {
		idx.cellW = 1
	}
	if idx.cellH <= 0 {
		idx.cellH = 1
	}

	// Insert in input order so every bucket's candidate list stays sorted by
	// feature index, preserving first-match-wins.
	for i, e := range idx.entries {
		c0, r0 := idx.bucketOf(e.minX, e.minY)
		c1, r1 := idx.bucketOf(e.maxX, e.maxY)
		for c := c0; c <= c1; c++ {
			for r := r0; r <= r1; r++ {
				key := [2]int{c, r}
				idx.buckets[key] = append(idx.buckets[key], i)
			}
		}
	}

	return idx, nil
}

func newPolyEntry(g geom.T) (polyEntry, error) {
	var polys [][][]float64

	switch t := g.(type) {
	case *geom.Polygon:
		polys = append(polys, polygonRings(t))
	case *geom.MultiPolygon:
		for i := 0; i < t.NumPolygons(); i++ {
			polys = append(polys, polygonRings(t.Polygon(i)))
		}
	default:
		return polyEntry{}, eris.Wrapf(ErrUnsupportedGeometry, "got %T", g)
	}

	b := g.Bounds()
	return polyEntry{
		minX:  b.Min(0),
		minY:  b.Min(1),
		maxX:  b.Max(0),
		maxY:  b.Max(1),
		polys: polys,
	}, nil
}

func polygonRings(p *geom.Polygon) [][]float64 {
	rings := make([][]float64, 0, p.NumLinearRings())
	for i := 0; i < p.NumLinearRings(); i++ {
		rings = append(rings, p.LinearRing(i).FlatCoords())
	}
	return rings
}

func (idx *PolygonIndex) bucketOf(x, y float64) (int, int) {
	c := int((x - idx.minX) / idx.cellW)
	r := int((y - idx.minY) / idx.cellH)
	if c < 0 {
		c = 0
	}
	if c >= indexGridSize {
		c = indexGridSize - 1
	}
	if r < 0 {
		r = 0
	}
	if r >= indexGridSize {
		r = indexGridSize - 1
	}
	return c, r
}

// Locate returns the index of the first polygon containing (x, y),
// or -1 when no polygon does.
func (idx *PolygonIndex) Locate(x, y float64) int {
	if len(idx.entries) == 0 {
		return -1
	}
	c, r := idx.bucketOf(x, y)
	for _, i := range idx.buckets[[2]int{c, r}] {
		e := idx.entries[i]
		if x < e.minX || x > e.maxX || y < e.minY || y > e.maxY {
			continue
		}
		if entryContains(e, x, y) {
			return i
		}
	}
	return -1
}

func entryContains(e polyEntry, x, y float64) bool {
	for _, rings := range e.polys {
		if len(rings) == 0 || !pointInRing(x, y, rings[0]) {
			continue
		}
		inHole := false
		for _, hole := range rings[1:] {
			if pointInRing(x, y, hole) {
				inHole = true
				break
			}
		}
		if !inHole {
			return true
		}
	}
	return false
}

// pointInRing is the even-odd ray cast over a flat XY coordinate ring.
func pointInRing(x, y float64, flat []float64) bool {
	n := len(flat) / 2
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := flat[2*i], flat[2*i+1]
		xj, yj := flat[2*j], flat[2*j+1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// AssignRaster joins every exposure cell to the hazard polygon containing
// its center. Cells outside all polygons are excluded. Rows are processed in
// parallel; the output order is deterministic (row-major).
func AssignRaster(ctx context.Context, idx *PolygonIndex, exposure *layer.Raster) ([]JoinedSample, error) {
	rowSamples := make([][]JoinedSample, exposure.Rows)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for row := 0; row < exposure.Rows; row++ {
		row := row
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var samples []JoinedSample
			for col := 0; col < exposure.Cols; col++ {
				x, y := exposure.CellCenter(row, col)
				i := idx.Locate(x, y)
				if i < 0 {
					continue
				}
				samples = append(samples, JoinedSample{
					PolygonIndex: i,
					Value:        exposure.Value(row, col, 0),
				})
			}
			rowSamples[row] = samples
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "impact: raster join")
	}

	var out []JoinedSample
	for _, samples := range rowSamples {
		out = append(out, samples...)
	}
	return out, nil
}

// AssignPoints joins point exposure features to containing hazard polygons.
// The named attribute supplies each point's exposure value; points without
// it count as zero.
func AssignPoints(idx *PolygonIndex, points []layer.Feature, attribute string) ([]JoinedSample, error) {
	var out []JoinedSample
	for n, f := range points {
		pt, ok := f.Geometry.(*geom.Point)
		if !ok {
			return nil, eris.Wrapf(ErrUnsupportedGeometry,
				"exposure feature %d: expected point, got %T", n, f.Geometry)
		}
		i := idx.Locate(pt.X(), pt.Y())
		if i < 0 {
			continue
		}
		value, _ := f.Attributes[attribute].(float64)
		out = append(out, JoinedSample{PolygonIndex: i, Value: value})
	}
	return out, nil
}
