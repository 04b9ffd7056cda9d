package impact

import (
	"fmt"
	"strconv"
)

// CategoryKind distinguishes named hazard zones from distance rings.
type CategoryKind int

const (
	// CategoryLabel is a named hazard-zone class, e.g. a KRB zone.
	CategoryLabel CategoryKind = iota
	// CategoryDistance is a ring defined by a radius around a point hazard.
	CategoryDistance
)

// Category is a hazard severity class: either a string label carried by a
// polygon attribute, or a distance radius in meters for synthesized rings.
// The struct is comparable and used directly as an aggregation map key.
type Category struct {
	Kind      CategoryKind
	Label     string
	DistanceM float64
}

// LabelCategory returns a named category.
func LabelCategory(label string) Category {
	return Category{Kind: CategoryLabel, Label: label}
}

// DistanceCategory returns a radius category. The radius is in meters.
func DistanceCategory(meters float64) Category {
	return Category{Kind: CategoryDistance, DistanceM: meters}
}

// String renders the category for reports: the label itself, or the radius
// in kilometers for distance rings.
func (c Category) String() string {
	if c.Kind == CategoryDistance {
		return strconv.FormatFloat(c.DistanceM/1000, 'f', -1, 64) + " km"
	}
	return c.Label
}

// CategoryOf converts a raw attribute value to the category it names.
// Numeric values become distance categories (meters), strings become labels.
func CategoryOf(value any) Category {
	switch v := value.(type) {
	case float64:
		return DistanceCategory(v)
	case int:
		return DistanceCategory(float64(v))
	case string:
		return LabelCategory(v)
	default:
		return LabelCategory(fmt.Sprint(v))
	}
}

// KRBCategories is the severity ordering for Indonesian volcanic hazard
// maps, most severe first.
var KRBCategories = []Category{
	LabelCategory("Kawasan Rawan Bencana III"),
	LabelCategory("Kawasan Rawan Bencana II"),
	LabelCategory("Kawasan Rawan Bencana I"),
}

// RadiiCategories converts ascending radii in kilometers to distance
// categories in meters. The innermost radius is the most severe, so the
// ascending input order is already the severity order.
func RadiiCategories(radiiKM []float64) []Category {
	cats := make([]Category, len(radiiKM))
	for i, r := range radiiKM {
		cats[i] = DistanceCategory(r * 1000)
	}
	return cats
}
