package impact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	values := []float64{0, 250, 1000, 4000, 8000}

	breaks, err := Classify(values, 8)
	require.NoError(t, err)

	require.Len(t, breaks.Classes, 8)
	require.Len(t, breaks.Breaks, 8)

	// First class starts at zero and is fully transparent.
	assert.Equal(t, 0.0, breaks.Classes[0].Min)
	assert.Equal(t, 100, breaks.Classes[0].Transparency)

	// Later classes carry the visible transparency and chain min to the
	// previous max.
	for i := 1; i < len(breaks.Classes); i++ {
		assert.Equal(t, 30, breaks.Classes[i].Transparency)
		assert.Equal(t, breaks.Classes[i-1].Max, breaks.Classes[i].Min)
	}

	// Breaks are non-decreasing and end at the observed maximum.
	for i := 1; i < len(breaks.Breaks); i++ {
		assert.GreaterOrEqual(t, breaks.Breaks[i], breaks.Breaks[i-1])
	}
	assert.Equal(t, 8000.0, breaks.Breaks[len(breaks.Breaks)-1])
	assert.Equal(t, 8000.0, breaks.Classes[len(breaks.Classes)-1].Max)
}

func TestClassify_Labels(t *testing.T) {
	breaks, err := Classify([]float64{0, 7000}, 2)
	require.NoError(t, err)

	assert.Equal(t, "0 - 0", breaks.Classes[0].Label)
	assert.Equal(t, "0 - 7,000", breaks.Classes[1].Label)
}

func TestClassify_EmptyDistribution(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
	}{
		{name: "no values", values: nil},
		{name: "all zero", values: []float64{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.values, 8)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrEmptyDistribution)
		})
	}
}

func TestClassify_SingleClass(t *testing.T) {
	breaks, err := Classify([]float64{100, 500}, 1)
	require.NoError(t, err)
	require.Len(t, breaks.Classes, 1)
	assert.Equal(t, 500.0, breaks.Classes[0].Max)
	assert.Equal(t, 0.0, breaks.Classes[0].Min)
}

func TestPlaceholderClasses(t *testing.T) {
	breaks := PlaceholderClasses()
	require.Len(t, breaks.Classes, 1)
	assert.Equal(t, 100, breaks.Classes[0].Transparency)
	assert.Equal(t, 0.0, breaks.Classes[0].Max)
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "1,000", FormatInt(1000))
	assert.Equal(t, "123,456,789", FormatInt(123456789))
	assert.Equal(t, "42", FormatInt(42))
}
