package layer

import (
	"github.com/twpayne/go-geom"
)

// Feature is a single vector feature: a geometry plus its attribute record.
type Feature struct {
	Geometry   geom.T
	Attributes map[string]any
}

// Vector is an in-memory vector layer.
type Vector struct {
	Name       string
	Features   []Feature
	Projection string
	Keywords   Keywords
}

// IsPolygon reports whether the layer's features are polygons. Mixed-geometry
// layers are not supported; the first feature decides.
func (v *Vector) IsPolygon() bool {
	if len(v.Features) == 0 {
		return false
	}
	switch v.Features[0].Geometry.(type) {
	case *geom.Polygon, *geom.MultiPolygon:
		return true
	}
	return false
}

// IsPoint reports whether the layer's features are points.
func (v *Vector) IsPoint() bool {
	if len(v.Features) == 0 {
		return false
	}
	_, ok := v.Features[0].Geometry.(*geom.Point)
	return ok
}

// AttributeNames returns the set of attribute names present on any feature.
func (v *Vector) AttributeNames() map[string]bool {
	names := make(map[string]bool)
	for _, f := range v.Features {
		for k := range f.Attributes {
			names[k] = true
		}
	}
	return names
}

// HasAttribute reports whether any feature carries the named attribute.
func (v *Vector) HasAttribute(name string) bool {
	for _, f := range v.Features {
		if _, ok := f.Attributes[name]; ok {
			return true
		}
	}
	return false
}
