package processor

import (
	"context"
	"fmt"
	"math"

	"github.com/airbusgeo/godal"

	"github.com/geoglyph/spectra/index"
)

// SceneBandNames is the band order of the GeoTIFFs produced by the
// fetcher's evalscript. Readers rely on this order since GeoTIFF band
// descriptions are not always preserved by the processing API.
var SceneBandNames = []string{"B2", "B3", "B4", "B5", "B8", "B11", "B12"}

// Scene is one downloaded multi-band acquisition materialised as a
// raster, along with its affine geotransform.
type Scene struct {
	Path         string
	Raster       *index.Raster
	GeoTransform [6]float64
	NumScenes    int
}

// LoadScene reads a scene GeoTIFF into a raster with named band planes.
func LoadScene(path string) (*Scene, error) {
	ds, err := godal.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene %s: %v", path, err)
	}
	defer ds.Close()

	bands := ds.Bands()
	if len(bands) < len(SceneBandNames) {
		return nil, fmt.Errorf("scene %s has %d bands, expecting %d", path, len(bands), len(SceneBandNames))
	}

	xSize := ds.Structure().SizeX
	ySize := ds.Structure().SizeY

	noData := math.NaN()
	if nd, ok := bands[0].NoData(); ok {
		noData = nd
	}

	raster := index.NewRaster(xSize, ySize, noData)
	for i, name := range SceneBandNames {
		data := make([]float64, xSize*ySize)
		if err := bands[i].Read(0, 0, data, xSize, ySize); err != nil {
			return nil, fmt.Errorf("failed to read band %s of %s: %v", name, path, err)
		}
		if err := raster.AddBand(name, data); err != nil {
			return nil, fmt.Errorf("scene %s: %v", path, err)
		}
	}

	scene := &Scene{Path: path, Raster: raster}
	if gt, err := ds.GeoTransform(); err == nil {
		scene.GeoTransform = gt
	}

	return scene, nil
}

// SceneLoader reads scene files concurrently. Paths are consumed from
// In; loaded scenes are emitted on Out in completion order.
type SceneLoader struct {
	Context context.Context
	In      chan string
	Out     chan *Scene
	Error   chan error
}

func NewSceneLoader(ctx context.Context, errChan chan error) *SceneLoader {
	return &SceneLoader{
		Context: ctx,
		In:      make(chan string, 100),
		Out:     make(chan *Scene, 100),
		Error:   errChan,
	}
}

func (sl *SceneLoader) Run(concLimit int) {
	defer close(sl.Out)

	cLimiter := NewConcLimiter(concLimit)
	for path := range sl.In {
		cLimiter.Increase()
		go func(path string) {
			defer cLimiter.Decrease()

			scene, err := LoadScene(path)
			if err != nil {
				sl.Error <- err
				return
			}

			select {
			case sl.Out <- scene:
			case <-sl.Context.Done():
			}
		}(path)
	}
	cLimiter.Wait()
}
