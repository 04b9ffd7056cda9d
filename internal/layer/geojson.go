package layer

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// WriteGeoJSON writes a vector layer as a GeoJSON FeatureCollection.
func WriteGeoJSON(path string, features []Feature) error {
	fc := geojson.FeatureCollection{}
	for i, f := range features {
		props := make(map[string]any, len(f.Attributes))
		for k, v := range f.Attributes {
			props[k] = v
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         strconv.Itoa(i),
			Geometry:   f.Geometry,
			Properties: props,
		})
	}

	data, err := json.Marshal(&fc)
	if err != nil {
		return eris.Wrapf(err, "layer: marshal geojson %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "layer: write geojson %s", path)
	}
	return nil
}
