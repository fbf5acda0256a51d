package sentinel

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadAOI reads an area of interest from a GeoJSON file holding a
// feature collection, a single feature, or a bare geometry. For a
// collection the first feature's geometry is used.
func LoadAOI(path string) (orb.Geometry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read AOI file %s: %v", path, err)
	}

	if fc, err := geojson.UnmarshalFeatureCollection(data); err == nil && len(fc.Features) > 0 {
		return fc.Features[0].Geometry, nil
	}
	if f, err := geojson.UnmarshalFeature(data); err == nil {
		return f.Geometry, nil
	}
	if g, err := geojson.UnmarshalGeometry(data); err == nil {
		return g.Geometry(), nil
	}

	return nil, fmt.Errorf("no usable GeoJSON geometry in %s", path)
}
