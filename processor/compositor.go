package processor

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/geoglyph/spectra/index"
)

// MedianComposite reduces a stack of co-registered rasters into a
// single representative raster by taking the per-pixel median of each
// band. No-data samples are excluded; pixels with no valid sample in
// any input stay no-data.
func MedianComposite(rasters []*index.Raster, concLimit int) (*index.Raster, error) {
	if len(rasters) == 0 {
		return nil, fmt.Errorf("no rasters to composite")
	}
	if len(rasters) == 1 {
		return rasters[0], nil
	}

	first := rasters[0]
	for _, r := range rasters[1:] {
		if r.Width != first.Width || r.Height != first.Height {
			return nil, fmt.Errorf("inconsistent grid dimensions: %dx%d vs %dx%d", r.Width, r.Height, first.Width, first.Height)
		}
	}

	out := index.NewRaster(first.Width, first.Height, first.NoData)

	for _, name := range first.BandNames() {
		planes := make([][]float64, 0, len(rasters))
		for _, r := range rasters {
			data, ok := r.Band(name)
			if !ok {
				return nil, fmt.Errorf("band %s missing from raster stack", name)
			}
			planes = append(planes, data)
		}

		median := make([]float64, first.Width*first.Height)
		cLimiter := NewConcLimiter(concLimit)
		for row := 0; row < first.Height; row++ {
			cLimiter.Increase()
			go func(row int) {
				defer cLimiter.Decrease()

				values := make([]float64, 0, len(planes))
				for ip := row * first.Width; ip < (row+1)*first.Width; ip++ {
					values = values[:0]
					for ir, plane := range planes {
						v := plane[ip]
						if rasters[ir].IsNoData(v) || math.IsNaN(v) {
							continue
						}
						values = append(values, v)
					}

					if len(values) == 0 {
						median[ip] = first.NoData
						continue
					}

					sort.Float64s(values)
					mid := len(values) / 2
					if len(values)%2 == 1 {
						median[ip] = values[mid]
					} else {
						median[ip] = 0.5 * (values[mid-1] + values[mid])
					}
				}
			}(row)
		}
		cLimiter.Wait()

		out.AddBand(name, median)
	}

	return out, nil
}

// Compositor collects scenes from In and emits one median composite
// on Out, keeping the first scene's geotransform for georeferencing.
type Compositor struct {
	Context   context.Context
	In        chan *Scene
	Out       chan *Scene
	Error     chan error
	ConcLimit int
}

func NewCompositor(ctx context.Context, concLimit int, errChan chan error) *Compositor {
	return &Compositor{
		Context:   ctx,
		In:        make(chan *Scene, 100),
		Out:       make(chan *Scene),
		Error:     errChan,
		ConcLimit: concLimit,
	}
}

func (c *Compositor) Run() {
	defer close(c.Out)

	var scenes []*Scene
	for scene := range c.In {
		scenes = append(scenes, scene)
	}
	if len(scenes) == 0 {
		return
	}

	rasters := make([]*index.Raster, len(scenes))
	for i, scene := range scenes {
		rasters[i] = scene.Raster
	}

	composite, err := MedianComposite(rasters, c.ConcLimit)
	if err != nil {
		c.Error <- err
		return
	}

	out := &Scene{Raster: composite, GeoTransform: scenes[0].GeoTransform, NumScenes: len(scenes)}

	select {
	case c.Out <- out:
	case <-c.Context.Done():
	}
}
