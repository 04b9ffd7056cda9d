package impact

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geosafe/impact-engine/internal/layer"
)

func TestRunFlood_MissingLayers(t *testing.T) {
	pop := newTestRaster(t, []float64{10}, 1, 1)

	tests := []struct {
		name string
		req  FloodRequest
	}{
		{name: "no depth", req: FloodRequest{Population: pop}},
		{name: "no population", req: FloodRequest{Depth: pop}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RunFlood(context.Background(), tt.req, OverlayParams{})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingLayer)
		})
	}
}

func TestRunFlood_DensityScaling(t *testing.T) {
	depth := newTestRaster(t, []float64{0.15, 0.05}, 2, 1)
	depth.Name = "Jakarta flood"
	pop := newTestRaster(t, []float64{50, 50}, 2, 1)
	pop.Name = "Population density"

	res, err := RunFlood(context.Background(), FloodRequest{Depth: depth, Population: pop}, OverlayParams{
		DepthThresholdM: 0.1,
		Scaling:         layer.ScalingDensity,
		PixelAreaM2:     2500,
		DensityDivisor:  100000,
	})
	require.NoError(t, err)

	require.NotNil(t, res.Raster)
	assert.False(t, res.IsVector())
	assert.InDelta(t, 1.25, res.Raster.Data[0], 1e-9)
	assert.Equal(t, 0.0, res.Raster.Data[1])

	// The input rasters are left untouched.
	assert.Equal(t, []float64{50, 50}, pop.Data)

	assert.NotEmpty(t, res.Keywords[KeywordImpactSummary])
	assert.NotEmpty(t, res.Keywords[KeywordImpactTable])
	assert.Contains(t, res.Keywords[KeywordImpactSummary], "Jakarta flood")
}

func TestRunFlood_Evacuated(t *testing.T) {
	depth := newTestRaster(t, []float64{1.0, 1.0, 0.0}, 3, 1)
	pop := newTestRaster(t, []float64{800, 700, 9999}, 3, 1)

	res, err := RunFlood(context.Background(), FloodRequest{Depth: depth, Population: pop}, OverlayParams{
		DepthThresholdM: 0.1,
		Scaling:         layer.ScalingPreScaled,
	})
	require.NoError(t, err)

	// 1500 affected rounds half up to the nearest thousand.
	assert.Equal(t, 2000, res.Evacuated)

	// Summary rows share the thousands scale: 1500 affected and 11499 total.
	summary := res.Keywords[KeywordImpactSummary]
	assert.Contains(t, summary, "<th>Affected (x 1000)</th><th>1</th>")
	assert.Contains(t, summary, "Total population in the exposure layer (x 1000): 11")
}

func TestRunFlood_GenderBreakdown(t *testing.T) {
	depth := newTestRaster(t, []float64{0.5}, 1, 1)
	pop := newTestRaster(t, []float64{100}, 1, 1)
	ratio := newTestRaster(t, []float64{52}, 1, 1)
	ratio.Keywords = layer.Keywords{"unit": "percent"}

	res, err := RunFlood(context.Background(), FloodRequest{
		Depth:       depth,
		Population:  pop,
		GenderRatio: ratio,
	}, OverlayParams{DepthThresholdM: 0.1, Scaling: layer.ScalingPreScaled})
	require.NoError(t, err)

	table := res.Keywords[KeywordImpactTable]
	assert.True(t, strings.Contains(table, "Female"))
	assert.True(t, strings.Contains(table, "Male"))
}

func TestRunFlood_InvalidGenderUnit(t *testing.T) {
	depth := newTestRaster(t, []float64{0.5}, 1, 1)
	pop := newTestRaster(t, []float64{100}, 1, 1)
	ratio := newTestRaster(t, []float64{0.5}, 1, 1)
	ratio.Keywords = layer.Keywords{"unit": "fraction"}

	_, err := RunFlood(context.Background(), FloodRequest{
		Depth:       depth,
		Population:  pop,
		GenderRatio: ratio,
	}, OverlayParams{DepthThresholdM: 0.1, Scaling: layer.ScalingPreScaled})
	assert.ErrorIs(t, err, ErrInvalidUnit)
}
