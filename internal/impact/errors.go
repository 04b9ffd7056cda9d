// Package impact computes the effect of a natural hazard layer on a
// population exposure layer: spatial join, category aggregation, display
// classification and derived relief-supply estimates.
package impact

import "github.com/rotisserie/eris"

// Sentinel errors for contract violations. All are fail-fast: no partial
// results are returned. Callers classify with eris.Is; the wrapped message
// carries the layer name and the expected vs. found detail.
var (
	// ErrMissingLayer means a required hazard or exposure layer was absent
	// from the request.
	ErrMissingLayer = eris.New("impact: required layer missing")

	// ErrUnsupportedGeometry means the hazard geometry is neither polygon
	// nor point where a spatial join is required.
	ErrUnsupportedGeometry = eris.New("impact: unsupported hazard geometry")

	// ErrMissingAttribute means the hazard layer lacks a required category
	// or name attribute.
	ErrMissingAttribute = eris.New("impact: required attribute missing")

	// ErrInvalidUnit means an auxiliary layer declares an unsupported unit.
	ErrInvalidUnit = eris.New("impact: invalid unit")

	// ErrEmptyDistribution means classification received an empty or
	// all-zero value set.
	ErrEmptyDistribution = eris.New("impact: empty value distribution")
)
