package main

import (
	"encoding/json"
	"math"
	"testing"

	geo "github.com/nci/geometry"

	"github.com/geoglyph/spectra/index"
	proc "github.com/geoglyph/spectra/processor"
	"github.com/geoglyph/spectra/utils"
)

func TestSummariseIndex(t *testing.T) {
	ir := &index.IndexRaster{
		Name:   "ndvi",
		Width:  2,
		Height: 2,
		Fill:   math.NaN(),
		Data:   []float64{0.2, 0.4, 0.6, math.NaN()},
	}

	stats := summariseIndex(ir, 3)
	if stats.Count != 3 {
		t.Errorf("expected 3 valid pixels, got %d", stats.Count)
	}
	if math.Abs(stats.Mean-0.4) > 1e-9 {
		t.Errorf("expected mean 0.4, got %v", stats.Mean)
	}
	if stats.Min != 0.2 || stats.Max != 0.6 {
		t.Errorf("expected range [0.2, 0.6], got [%v, %v]", stats.Min, stats.Max)
	}
	if stats.NumScenes != 3 {
		t.Errorf("expected num_scenes 3, got %d", stats.NumScenes)
	}
}

func TestSummariseIndexAllInvalid(t *testing.T) {
	ir := &index.IndexRaster{
		Name:   "ndvi",
		Width:  1,
		Height: 2,
		Fill:   math.NaN(),
		Data:   []float64{math.NaN(), math.NaN()},
	}

	stats := summariseIndex(ir, 1)
	if stats.Count != 0 {
		t.Errorf("expected no valid pixels, got %d", stats.Count)
	}
	if stats.Min != 0 || stats.Max != 0 {
		t.Errorf("expected zeroed range for empty raster, got [%v, %v]", stats.Min, stats.Max)
	}
}

func testComposite(t *testing.T) *proc.Scene {
	r := index.NewRaster(1, 1, math.NaN())
	for band, value := range map[string]float64{"B4": 600, "B8": 3000} {
		if err := r.AddBand(band, []float64{value}); err != nil {
			t.Fatal(err)
		}
	}
	return &proc.Scene{Raster: r, NumScenes: 1}
}

func TestComputeIndexSymbolicBands(t *testing.T) {
	bandExpr, err := index.ParseBandExpressions([]string{"(NIR - RED) / (NIR + RED)"})
	if err != nil {
		t.Fatal(err)
	}
	params := utils.SpectraParams{BandExpr: bandExpr}

	ir, err := computeIndex(params, &utils.Product{}, testComposite(t))
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	if math.Abs(ir.Data[0]-0.8) > 1e-4 {
		t.Errorf("expected 0.8, got %v", ir.Data[0])
	}
}

func TestComputeIndexRawBands(t *testing.T) {
	bandExpr, err := index.ParseBandExpressions([]string{"(B8 - B4) / (B8 + B4)"})
	if err != nil {
		t.Fatal(err)
	}
	params := utils.SpectraParams{BandExpr: bandExpr}

	ir, err := computeIndex(params, &utils.Product{}, testComposite(t))
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	if math.Abs(ir.Data[0]-0.8) > 1e-4 {
		t.Errorf("expected 0.8, got %v", ir.Data[0])
	}
}

func TestStyleForPrecedence(t *testing.T) {
	def, err := index.Lookup("ndvi")
	if err != nil {
		t.Fatal(err)
	}

	product := &utils.Product{}
	min, max, palette := styleFor(utils.SpectraParams{}, product, def)
	if min != -1 || max != 1 || palette != "vegetation" {
		t.Errorf("expected catalog defaults, got min=%v max=%v palette=%v", min, max, palette)
	}

	styleMin := 0.0
	product.IndexStyles = []utils.IndexStyle{{Name: "ndvi", Palette: "greyscale", Min: &styleMin}}
	min, max, palette = styleFor(utils.SpectraParams{}, product, def)
	if min != 0 || max != 1 || palette != "greyscale" {
		t.Errorf("expected product override, got min=%v max=%v palette=%v", min, max, palette)
	}

	reqMax := 0.5
	reqPalette := "water"
	params := utils.SpectraParams{Max: &reqMax, Palette: &reqPalette}
	min, max, palette = styleFor(params, product, def)
	if min != 0 || max != 0.5 || palette != "water" {
		t.Errorf("expected request override, got min=%v max=%v palette=%v", min, max, palette)
	}
}

func TestClipToGeometry(t *testing.T) {
	featColJSON := `{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"Polygon","coordinates":[[[1,1],[3,1],[3,3],[1,3],[1,1]]]}}]}`

	var featCol geo.FeatureCollection
	if err := json.Unmarshal([]byte(featColJSON), &featCol); err != nil {
		t.Fatal(err)
	}
	params := utils.SpectraParams{FeatCol: featCol}

	// 4x4 grid over [0,4]x[0,4], origin at the top left
	gt := [6]float64{0, 1, 0, 4, 0, -1}
	ir := &index.IndexRaster{
		Name:   "ndvi",
		Width:  4,
		Height: 4,
		Fill:   math.NaN(),
		Data:   make([]float64, 16),
	}
	for i := range ir.Data {
		ir.Data[i] = 1
	}

	if err := clipToGeometry(ir, gt, params); err != nil {
		t.Fatal(err)
	}

	nKept := 0
	for _, v := range ir.Data {
		if !math.IsNaN(v) {
			nKept++
		}
	}
	if nKept != 4 {
		t.Errorf("expected 4 pixels inside the clip bounds, got %d", nKept)
	}

	// the centre 2x2 block covers [1,3]x[1,3]
	for _, i := range []int{5, 6, 9, 10} {
		if math.IsNaN(ir.Data[i]) {
			t.Errorf("pixel %d should survive the clip", i)
		}
	}
}

func TestClipToGeometryNoFeatures(t *testing.T) {
	ir := &index.IndexRaster{Name: "ndvi", Width: 1, Height: 1, Data: []float64{1}}
	if err := clipToGeometry(ir, [6]float64{}, utils.SpectraParams{}); err != nil {
		t.Errorf("empty feature collection should be a no-op, got %v", err)
	}
}

func TestClipToGeometryNoGeoTransform(t *testing.T) {
	featColJSON := `{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"Point","coordinates":[1,1]}}]}`

	var featCol geo.FeatureCollection
	if err := json.Unmarshal([]byte(featColJSON), &featCol); err != nil {
		t.Fatal(err)
	}

	ir := &index.IndexRaster{Name: "ndvi", Width: 1, Height: 1, Data: []float64{1}}
	err := clipToGeometry(ir, [6]float64{}, utils.SpectraParams{FeatCol: featCol})
	if err == nil {
		t.Error("expected an error for a composite without a geotransform")
	}
}
