package layer

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

// LoadShapefile reads a shapefile into a vector layer. DBF attributes are
// attached per feature, numeric-looking values parsed as float64. A keywords
// sidecar named <base>.keywords is picked up when present.
func LoadShapefile(path string) (*Vector, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "layer: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = strings.TrimRight(f.String(), "\x00")
	}

	var features []Feature
	var skipped int

	for reader.Next() {
		_, shape := reader.Shape()

		g := shapeToGeom(shape)
		if g == nil {
			skipped++
			continue
		}

		attrs := make(map[string]any, len(names))
		for i, name := range names {
			val := strings.TrimSpace(strings.TrimRight(reader.Attribute(i), "\x00"))
			if val == "" {
				continue
			}
			if f, convErr := strconv.ParseFloat(val, 64); convErr == nil {
				attrs[name] = f
			} else {
				attrs[name] = val
			}
		}

		features = append(features, Feature{Geometry: g, Attributes: attrs})
	}

	if skipped > 0 {
		zap.L().Debug("layer: skipped shapefile records",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}

	base := strings.TrimSuffix(path, filepath.Ext(path))
	kw, err := LoadKeywords(base + ".keywords")
	if err != nil {
		return nil, err
	}

	name := filepath.Base(base)
	if title := kw.Get("title"); title != "" {
		name = title
	}

	return &Vector{
		Name:       name,
		Features:   features,
		Projection: "EPSG:4326",
		Keywords:   kw,
	}, nil
}

// shapeToGeom converts a go-shp shape to a go-geom geometry.
// Unsupported or empty shapes map to nil.
func shapeToGeom(shape shp.Shape) geom.T {
	switch s := shape.(type) {
	case *shp.Point:
		return geom.NewPointFlat(geom.XY, []float64{s.X, s.Y}).SetSRID(4326)

	case *shp.Polygon:
		return polygonToMultiPolygon(s)
	}
	return nil
}

// polygonToMultiPolygon converts a shapefile Polygon to a geom.MultiPolygon.
// Ring winding follows the shapefile convention: clockwise parts are exterior
// rings, counter-clockwise parts are holes of the preceding exterior.
func polygonToMultiPolygon(p *shp.Polygon) geom.T {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	var polys []*geom.Polygon

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		var end int32
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		} else {
			end = int32(len(p.Points))
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}

		ring := geom.NewLinearRingFlat(geom.XY, flat)

		// A hole before any exterior is malformed; promote it.
		if ringSignedArea(flat) <= 0 || len(polys) == 0 {
			poly := geom.NewPolygon(geom.XY)
			if err := poly.Push(ring); err != nil {
				zap.L().Debug("layer: skipping malformed polygon ring", zap.Int32("part", i), zap.Error(err))
				continue
			}
			polys = append(polys, poly)
			continue
		}

		if err := polys[len(polys)-1].Push(ring); err != nil {
			zap.L().Debug("layer: skipping malformed hole ring", zap.Int32("part", i), zap.Error(err))
		}
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)
	for _, poly := range polys {
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("layer: skipping malformed polygon part", zap.Error(err))
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}

// ringSignedArea is the shoelace sum over a flat XY ring: negative for
// clockwise winding, positive for counter-clockwise.
func ringSignedArea(flat []float64) float64 {
	n := len(flat) / 2
	var sum float64
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		sum += flat[2*j]*flat[2*i+1] - flat[2*i]*flat[2*j+1]
	}
	return sum / 2
}
