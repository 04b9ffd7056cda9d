package layer

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadASCIIGrid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "depth.asc")
	grid := "ncols 3\n" +
		"nrows 2\n" +
		"xllcorner 100.0\n" +
		"yllcorner -8.0\n" +
		"cellsize 0.5\n" +
		"NODATA_value -9999\n" +
		"0.1 0.2 0.3\n" +
		"-9999 1.5 2.0\n"
	require.NoError(t, os.WriteFile(path, []byte(grid), 0o644))

	r, err := LoadASCIIGrid(path)
	require.NoError(t, err)

	assert.Equal(t, "depth", r.Name)
	assert.Equal(t, 3, r.Cols)
	assert.Equal(t, 2, r.Rows)
	assert.Equal(t, -9999.0, r.NoData)
	assert.Equal(t, []float64{0.1, 0.2, 0.3, -9999, 1.5, 2.0}, r.Data)
	assert.Equal(t, "EPSG:4326", r.Projection)

	// Origin is the top-left corner: yll plus the grid height.
	assert.Equal(t, [6]float64{100, 0.5, 0, -7, 0, -0.5}, r.GeoTransform)

	// First data row is the top row.
	x, y := r.CellCenter(0, 0)
	assert.Equal(t, 100.25, x)
	assert.Equal(t, -7.25, y)
}

func TestLoadASCIIGrid_CenterRegistration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.asc")
	grid := "NCOLS 2\n" +
		"NROWS 1\n" +
		"XLLCENTER 0.5\n" +
		"YLLCENTER 0.5\n" +
		"CELLSIZE 1\n" +
		"7 8\n"
	require.NoError(t, os.WriteFile(path, []byte(grid), 0o644))

	r, err := LoadASCIIGrid(path)
	require.NoError(t, err)
	assert.Equal(t, [6]float64{0, 1, 0, 1, 0, -1}, r.GeoTransform)
}

func TestLoadASCIIGrid_KeywordsSidecar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pop.asc")
	grid := "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n42\n"
	require.NoError(t, os.WriteFile(path, []byte(grid), 0o644))
	sidecar := "title: Population Jakarta\ncategory: exposure\nunit: count\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pop.keywords"), []byte(sidecar), 0o644))

	r, err := LoadASCIIGrid(path)
	require.NoError(t, err)
	assert.Equal(t, "Population Jakarta", r.Name, "title keyword overrides the file name")
	assert.Equal(t, "exposure", r.Keywords.Get("category"))
	assert.Equal(t, "count", r.Keywords.Get("unit"))
}

func TestLoadASCIIGrid_MissingHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.asc")
	require.NoError(t, os.WriteFile(path, []byte("1 2 3\n"), 0o644))

	_, err := LoadASCIIGrid(path)
	assert.Error(t, err)
}

func TestWriteASCIIGrid_RoundTrip(t *testing.T) {
	r, err := NewRaster("out", []float64{1.5, math.NaN(), 3, 4}, 2, 2, [6]float64{10, 0.25, 0, 5, 0, -0.25})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.asc")
	require.NoError(t, WriteASCIIGrid(path, r))

	got, err := LoadASCIIGrid(path)
	require.NoError(t, err)
	assert.Equal(t, r.Cols, got.Cols)
	assert.Equal(t, r.Rows, got.Rows)
	assert.Equal(t, r.GeoTransform, got.GeoTransform)

	// NaN cells come back as the written nodata value.
	assert.Equal(t, -9999.0, got.NoData)
	assert.Equal(t, []float64{1.5, -9999, 3, 4}, got.Data)
	assert.Equal(t, 8.5, got.Sum())
}
