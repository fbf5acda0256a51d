package index

import (
	"fmt"
	"math"
	"sort"
)

// Raster holds a set of co-registered band planes over a single grid.
// Band data is row-major with length Width*Height. Rasters are treated
// as immutable inputs once populated; evaluation never writes to them.
type Raster struct {
	Width, Height int
	NoData        float64
	bands         map[string][]float64
}

func NewRaster(width, height int, noData float64) *Raster {
	return &Raster{
		Width:  width,
		Height: height,
		NoData: noData,
		bands:  make(map[string][]float64),
	}
}

// AddBand registers a band plane under the given name. The plane must
// match the raster grid exactly.
func (r *Raster) AddBand(name string, data []float64) error {
	if len(data) != r.Width*r.Height {
		return fmt.Errorf("band %s has %d samples, grid is %dx%d", name, len(data), r.Width, r.Height)
	}
	r.bands[name] = data
	return nil
}

func (r *Raster) Band(name string) ([]float64, bool) {
	data, ok := r.bands[name]
	return data, ok
}

func (r *Raster) HasBand(name string) bool {
	_, ok := r.bands[name]
	return ok
}

func (r *Raster) BandNames() []string {
	names := make([]string, 0, len(r.bands))
	for name := range r.bands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsNoData reports whether a sample equals the raster's no-data value.
// A NaN no-data value matches NaN samples.
func (r *Raster) IsNoData(v float64) bool {
	if math.IsNaN(r.NoData) {
		return math.IsNaN(v)
	}
	return v == r.NoData
}

// IndexRaster is the single-band output of one index evaluation. Data
// shares the input grid dimensions; pixels where the expression could
// not be computed hold Fill.
type IndexRaster struct {
	Name          string
	Width, Height int
	Fill          float64
	Data          []float64
}
