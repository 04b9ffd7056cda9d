package impact

import (
	"math"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/geosafe/impact-engine/internal/layer"
)

// RadiusAttribute is the attribute under which synthesized ring polygons
// carry their radius in meters.
const RadiusAttribute = "Radius"

// metersPerDegree is the length of one degree of latitude at the equator.
const metersPerDegree = 111320.0

// MakeCircularPolygons builds one circular polygon per (center, radius)
// pair, approximated with the given number of segments. Radii must be in
// ascending order in meters; polygons for the innermost radius come first so
// a first-match spatial join attributes each sample to the most severe ring
// containing it. Each polygon inherits its center point's attributes plus
// the radius under RadiusAttribute.
func MakeCircularPolygons(centers []layer.Feature, radiiM []float64, segments int) ([]layer.Feature, error) {
	if segments < 3 {
		return nil, eris.Errorf("impact: circle needs at least 3 segments, got %d", segments)
	}
	for i := 1; i < len(radiiM); i++ {
		if radiiM[i] < radiiM[i-1] {
			return nil, eris.Errorf("impact: radii must be ascending, got %v", radiiM)
		}
	}

	var out []layer.Feature
	for _, radius := range radiiM {
		for _, center := range centers {
			pt, ok := center.Geometry.(*geom.Point)
			if !ok {
				return nil, eris.Wrapf(ErrUnsupportedGeometry,
					"expected point center, got %T", center.Geometry)
			}

			attrs := make(map[string]any, len(center.Attributes)+1)
			for k, v := range center.Attributes {
				attrs[k] = v
			}
			attrs[RadiusAttribute] = radius

			out = append(out, layer.Feature{
				Geometry:   circle(pt.X(), pt.Y(), radius, segments),
				Attributes: attrs,
			})
		}
	}
	return out, nil
}

// circle approximates a circle of the given radius in meters around a
// WGS84 center, scaling the longitude offset by the center's latitude.
func circle(lon, lat, radiusM float64, segments int) *geom.Polygon {
	dLat := radiusM / metersPerDegree
	dLon := dLat / math.Cos(lat*math.Pi/180)

	flat := make([]float64, 0, (segments+1)*2)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		flat = append(flat, lon+dLon*math.Cos(theta), lat+dLat*math.Sin(theta))
	}
	// Close the ring.
	flat = append(flat, flat[0], flat[1])

	return geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)}).SetSRID(4326)
}
