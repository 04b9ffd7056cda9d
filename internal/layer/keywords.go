package layer

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Keywords is the free-form metadata mapping attached to a layer. Well-known
// keys include "category" (hazard/exposure), "subcategory", "unit" and
// "datatype".
type Keywords map[string]string

// Get returns the keyword value or "" when absent.
func (k Keywords) Get(key string) string {
	if k == nil {
		return ""
	}
	return k[key]
}

// LoadKeywords reads a YAML keywords sidecar file. A missing file yields an
// empty mapping, not an error: layers without metadata are legal.
func LoadKeywords(path string) (Keywords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Keywords{}, nil
		}
		return nil, eris.Wrapf(err, "layer: read keywords %s", path)
	}

	kw := Keywords{}
	if err := yaml.Unmarshal(data, &kw); err != nil {
		return nil, eris.Wrapf(err, "layer: parse keywords %s", path)
	}
	return kw, nil
}
