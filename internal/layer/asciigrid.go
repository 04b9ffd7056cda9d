package layer

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// LoadASCIIGrid reads an ESRI ASCII grid (.asc) into a raster layer.
// Header keys are case-insensitive; either cellsize or dx/dy is accepted.
// A keywords sidecar named <base>.keywords is picked up when present.
func LoadASCIIGrid(path string) (*Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "layer: open grid %s", path)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)

	header := map[string]float64{}
	var values []float64

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		// Header lines are "key value" pairs until the first data row.
		if len(values) == 0 && len(fields) == 2 {
			if v, convErr := strconv.ParseFloat(fields[1], 64); convErr == nil {
				key := strings.ToLower(fields[0])
				if _, isNum := strconv.ParseFloat(fields[0], 64); isNum != nil {
					header[key] = v
					continue
				}
			}
		}

		for _, field := range fields {
			v, convErr := strconv.ParseFloat(field, 64)
			if convErr != nil {
				return nil, eris.Wrapf(convErr, "layer: parse grid value %q in %s", field, path)
			}
			values = append(values, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrapf(err, "layer: read grid %s", path)
	}

	cols := int(header["ncols"])
	rows := int(header["nrows"])
	if cols <= 0 || rows <= 0 {
		return nil, eris.Errorf("layer: grid %s missing ncols/nrows header", path)
	}

	cellsize, ok := header["cellsize"]
	if !ok {
		cellsize = header["dx"]
	}
	if cellsize == 0 {
		return nil, eris.Errorf("layer: grid %s missing cellsize header", path)
	}

	// Corner registration; xllcenter/yllcenter shift by half a cell.
	xll, xok := header["xllcorner"]
	if !xok {
		xll = header["xllcenter"] - cellsize/2
	}
	yll, yok := header["yllcorner"]
	if !yok {
		yll = header["yllcenter"] - cellsize/2
	}

	gt := [6]float64{xll, cellsize, 0, yll + float64(rows)*cellsize, 0, -cellsize}

	base := strings.TrimSuffix(path, filepath.Ext(path))
	name := filepath.Base(base)

	r, err := NewRaster(name, values, cols, rows, gt)
	if err != nil {
		return nil, err
	}

	if nodata, ok := header["nodata_value"]; ok {
		r.NoData = nodata
	}
	r.Projection = "EPSG:4326"

	kw, err := LoadKeywords(base + ".keywords")
	if err != nil {
		return nil, err
	}
	r.Keywords = kw
	if title := kw.Get("title"); title != "" {
		r.Name = title
	}

	return r, nil
}

// WriteASCIIGrid writes a raster to an ESRI ASCII grid file. Missing cells
// are written as the nodata value.
func WriteASCIIGrid(path string, r *Raster) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "layer: create grid %s", path)
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	nodata := r.NoData
	if math.IsNaN(nodata) {
		nodata = -9999
	}

	gt := r.GeoTransform
	fmt.Fprintf(w, "ncols %d\n", r.Cols)
	fmt.Fprintf(w, "nrows %d\n", r.Rows)
	fmt.Fprintf(w, "xllcorner %g\n", gt[0])
	fmt.Fprintf(w, "yllcorner %g\n", gt[3]+float64(r.Rows)*gt[5])
	fmt.Fprintf(w, "cellsize %g\n", math.Abs(gt[1]))
	fmt.Fprintf(w, "NODATA_value %g\n", nodata)

	for row := 0; row < r.Rows; row++ {
		for col := 0; col < r.Cols; col++ {
			if col > 0 {
				if err := w.WriteByte(' '); err != nil {
					return eris.Wrapf(err, "layer: write grid %s", path)
				}
			}
			v := r.Data[row*r.Cols+col]
			if math.IsNaN(v) {
				v = nodata
			}
			if _, err := w.WriteString(strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
				return eris.Wrapf(err, "layer: write grid %s", path)
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return eris.Wrapf(err, "layer: write grid %s", path)
		}
	}

	if err := w.Flush(); err != nil {
		return eris.Wrapf(err, "layer: flush grid %s", path)
	}
	return nil
}
