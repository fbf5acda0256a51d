package processor

import (
	"math"
	"testing"

	"github.com/geoglyph/spectra/index"
)

func stackRaster(noData float64, b4 []float64) *index.Raster {
	r := index.NewRaster(2, 1, noData)
	r.AddBand("B4", b4)
	return r
}

func TestMedianCompositeOdd(t *testing.T) {
	rasters := []*index.Raster{
		stackRaster(math.NaN(), []float64{100, 10}),
		stackRaster(math.NaN(), []float64{300, 30}),
		stackRaster(math.NaN(), []float64{200, 20}),
	}

	out, err := MedianComposite(rasters, 2)
	if err != nil {
		t.Fatalf("composite failed: %v", err)
	}
	b4, _ := out.Band("B4")
	if b4[0] != 200 || b4[1] != 20 {
		t.Errorf("expecting median [200 20], actual %v", b4)
	}
}

func TestMedianCompositeEven(t *testing.T) {
	rasters := []*index.Raster{
		stackRaster(math.NaN(), []float64{100, 10}),
		stackRaster(math.NaN(), []float64{400, 40}),
		stackRaster(math.NaN(), []float64{200, 20}),
		stackRaster(math.NaN(), []float64{300, 30}),
	}

	out, err := MedianComposite(rasters, 2)
	if err != nil {
		t.Fatalf("composite failed: %v", err)
	}
	b4, _ := out.Band("B4")
	if b4[0] != 250 || b4[1] != 25 {
		t.Errorf("expecting median [250 25], actual %v", b4)
	}
}

func TestMedianCompositeNoData(t *testing.T) {
	rasters := []*index.Raster{
		stackRaster(-10000, []float64{-10000, -10000}),
		stackRaster(-10000, []float64{300, -10000}),
		stackRaster(-10000, []float64{100, -10000}),
	}

	out, err := MedianComposite(rasters, 1)
	if err != nil {
		t.Fatalf("composite failed: %v", err)
	}
	b4, _ := out.Band("B4")
	if b4[0] != 200 {
		t.Errorf("expecting no-data samples excluded from median, actual %v", b4[0])
	}
	if b4[1] != -10000 {
		t.Errorf("expecting all-no-data pixel to stay no-data, actual %v", b4[1])
	}
}

func TestMedianCompositeSingle(t *testing.T) {
	r := stackRaster(math.NaN(), []float64{1, 2})
	out, err := MedianComposite([]*index.Raster{r}, 1)
	if err != nil {
		t.Fatalf("composite failed: %v", err)
	}
	if out != r {
		t.Error("expecting single-raster stack to pass through")
	}
}

func TestMedianCompositeDimensionMismatch(t *testing.T) {
	a := index.NewRaster(2, 1, math.NaN())
	a.AddBand("B4", []float64{1, 2})
	b := index.NewRaster(1, 1, math.NaN())
	b.AddBand("B4", []float64{1})

	if _, err := MedianComposite([]*index.Raster{a, b}, 1); err == nil {
		t.Error("expecting error for inconsistent grid dimensions")
	}
}

func TestMedianCompositeMissingBand(t *testing.T) {
	a := index.NewRaster(1, 1, math.NaN())
	a.AddBand("B4", []float64{1})
	b := index.NewRaster(1, 1, math.NaN())
	b.AddBand("B8", []float64{1})

	if _, err := MedianComposite([]*index.Raster{a, b}, 1); err == nil {
		t.Error("expecting error for band missing from stack")
	}
}

func TestMedianCompositeEmpty(t *testing.T) {
	if _, err := MedianComposite(nil, 1); err == nil {
		t.Error("expecting error for empty stack")
	}
}
