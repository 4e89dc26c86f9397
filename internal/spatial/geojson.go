package spatial

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// WriteGeoJSON persists the merged dataset as a GeoJSON FeatureCollection,
// creating parent directories. Boundary attributes and table columns become
// feature properties; table columns of unmatched features are null.
func WriteGeoJSON(path string, res *MergeResult) error {
	fc := &geojson.FeatureCollection{}

	for _, f := range res.Features {
		props := make(map[string]any, len(f.Attrs)+len(res.TableColumns))
		for k, v := range f.Attrs {
			props[k] = v
		}
		for _, col := range res.TableColumns {
			if f.Data == nil {
				props[col] = nil
				continue
			}
			props[col] = f.Data[col]
		}

		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry:   f.Geom,
			Properties: props,
		})
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return eris.Wrap(err, "spatial: marshal geojson")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "spatial: create dir for %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "spatial: write %s", path)
	}

	return nil
}
