package layer

import (
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

// shpPolygon builds a shapefile polygon from closed rings.
func shpPolygon(rings ...[]shp.Point) *shp.Polygon {
	p := &shp.Polygon{}
	for _, ring := range rings {
		p.Parts = append(p.Parts, int32(len(p.Points)))
		p.Points = append(p.Points, ring...)
	}
	p.NumParts = int32(len(rings))
	p.NumPoints = int32(len(p.Points))
	return p
}

// Clockwise ring: shapefile exterior winding.
func cwSquare(minX, minY, maxX, maxY float64) []shp.Point {
	return []shp.Point{
		{X: minX, Y: minY},
		{X: minX, Y: maxY},
		{X: maxX, Y: maxY},
		{X: maxX, Y: minY},
		{X: minX, Y: minY},
	}
}

// Counter-clockwise ring: shapefile hole winding.
func ccwSquare(minX, minY, maxX, maxY float64) []shp.Point {
	return []shp.Point{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
		{X: minX, Y: minY},
	}
}

func TestShapeToGeom_Point(t *testing.T) {
	g := shapeToGeom(&shp.Point{X: 110.4, Y: -7.5})
	pt, ok := g.(*geom.Point)
	require.True(t, ok)
	assert.Equal(t, 110.4, pt.X())
	assert.Equal(t, -7.5, pt.Y())
}

func TestShapeToGeom_DonutPolygon(t *testing.T) {
	donut := shpPolygon(cwSquare(0, 0, 4, 4), ccwSquare(1, 1, 3, 3))

	g := shapeToGeom(donut)
	mp, ok := g.(*geom.MultiPolygon)
	require.True(t, ok)

	// One polygon with the hole attached as its interior ring, not two
	// exteriors.
	require.Equal(t, 1, mp.NumPolygons())
	require.Equal(t, 2, mp.Polygon(0).NumLinearRings())

	assert.Negative(t, ringSignedArea(mp.Polygon(0).LinearRing(0).FlatCoords()))
	assert.Positive(t, ringSignedArea(mp.Polygon(0).LinearRing(1).FlatCoords()))
}

func TestShapeToGeom_MultipleExteriors(t *testing.T) {
	two := shpPolygon(cwSquare(0, 0, 1, 1), cwSquare(5, 5, 6, 6))

	mp, ok := shapeToGeom(two).(*geom.MultiPolygon)
	require.True(t, ok)
	require.Equal(t, 2, mp.NumPolygons())
	assert.Equal(t, 1, mp.Polygon(0).NumLinearRings())
	assert.Equal(t, 1, mp.Polygon(1).NumLinearRings())
}

func TestShapeToGeom_HoleFirstPromoted(t *testing.T) {
	// A lone counter-clockwise part has no exterior to belong to; it still
	// must yield a usable polygon rather than be dropped.
	mp, ok := shapeToGeom(shpPolygon(ccwSquare(0, 0, 2, 2))).(*geom.MultiPolygon)
	require.True(t, ok)
	require.Equal(t, 1, mp.NumPolygons())
	assert.Equal(t, 1, mp.Polygon(0).NumLinearRings())
}

func TestRingSignedArea(t *testing.T) {
	cw := []float64{0, 0, 0, 4, 4, 4, 4, 0, 0, 0}
	ccw := []float64{0, 0, 4, 0, 4, 4, 0, 4, 0, 0}

	assert.Equal(t, -16.0, ringSignedArea(cw))
	assert.Equal(t, 16.0, ringSignedArea(ccw))
}
