package index

import (
	"math"
	"testing"
)

// Raw Sentinel-2 surface reflectance samples, scaled by 10000.
func singlePixelRaster() *Raster {
	r := NewRaster(1, 1, math.NaN())
	r.AddBand("B2", []float64{500})
	r.AddBand("B3", []float64{800})
	r.AddBand("B4", []float64{600})
	r.AddBand("B5", []float64{1000})
	r.AddBand("B8", []float64{3000})
	r.AddBand("B11", []float64{1200})
	r.AddBand("B12", []float64{900})
	return r
}

func TestEvaluateKnownValues(t *testing.T) {
	r := singlePixelRaster()

	cases := []struct {
		name     string
		expected float64
		eps      float64
	}{
		{"ndvi", 0.8, 1e-4},
		{"ndvire", 0.25, 1e-4},
		{"evi", 0.466926, 1e-4},
		{"savi", 0.418605, 1e-4},
		{"ndwi", 0.428571, 1e-4},
		{"mndwi", -0.2, 1e-4},
		{"awei_sh", -4025, 1e-2},
		{"ndbi", -0.428571, 1e-4},
		{"bui", -1.228571, 1e-4},
		{"ndti", 0.142857, 1e-4},
		{"bsi", 3499.055556, 1e-2},
	}

	for _, c := range cases {
		out, err := Evaluate(c.name, r, nil)
		if err != nil {
			t.Errorf("%s evaluation failed: %v", c.name, err)
			continue
		}
		if math.Abs(out.Data[0]-c.expected) > c.eps {
			t.Errorf("%s: expecting %v, actual %v", c.name, c.expected, out.Data[0])
		}
	}
}

func TestEvaluatePreservesGrid(t *testing.T) {
	r := NewRaster(3, 2, math.NaN())
	r.AddBand("B4", []float64{100, 200, 300, 400, 500, 600})
	r.AddBand("B8", []float64{600, 500, 400, 300, 200, 100})

	out, err := Evaluate("NDVI", r, nil)
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	if out.Name != "ndvi" {
		t.Errorf("expecting output band ndvi, actual %s", out.Name)
	}
	if out.Width != r.Width || out.Height != r.Height {
		t.Errorf("expecting %dx%d output, actual %dx%d", r.Width, r.Height, out.Width, out.Height)
	}
	if len(out.Data) != r.Width*r.Height {
		t.Errorf("expecting %d samples, actual %d", r.Width*r.Height, len(out.Data))
	}

	if math.Abs(out.Data[0]-5.0/7.0) > 1e-9 {
		t.Errorf("expecting %v at pixel 0, actual %v", 5.0/7.0, out.Data[0])
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	width, height := 17, 11
	r := NewRaster(width, height, math.NaN())
	red := make([]float64, width*height)
	nir := make([]float64, width*height)
	for i := range red {
		red[i] = float64((i*37)%5000) + 1
		nir[i] = float64((i*91)%8000) + 1
	}
	r.AddBand("B4", red)
	r.AddBand("B8", nir)

	serial, err := EvaluateWith("ndvi", r, nil, Options{Fill: math.NaN(), Workers: 1})
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	parallel, err := EvaluateWith("ndvi", r, nil, Options{Fill: math.NaN(), Workers: 4})
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	repeat, err := EvaluateWith("ndvi", r, nil, Options{Fill: math.NaN(), Workers: 4})
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}

	for i := range serial.Data {
		if math.Float64bits(serial.Data[i]) != math.Float64bits(parallel.Data[i]) {
			t.Fatalf("serial and parallel outputs differ at pixel %d: %v vs %v", i, serial.Data[i], parallel.Data[i])
		}
		if math.Float64bits(parallel.Data[i]) != math.Float64bits(repeat.Data[i]) {
			t.Fatalf("repeated evaluations differ at pixel %d: %v vs %v", i, parallel.Data[i], repeat.Data[i])
		}
	}
}

func TestDivisionByZeroSentinel(t *testing.T) {
	r := NewRaster(2, 1, math.NaN())
	r.AddBand("B4", []float64{0, 600})
	r.AddBand("B8", []float64{0, 3000})

	out, err := Evaluate("ndvi", r, nil)
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	if !math.IsNaN(out.Data[0]) {
		t.Errorf("expecting NaN at zero-denominator pixel, actual %v", out.Data[0])
	}
	if math.Abs(out.Data[1]-0.8) > 1e-4 {
		t.Errorf("expecting 0.8 at valid pixel, actual %v", out.Data[1])
	}

	out, err = EvaluateWith("ndvi", r, nil, Options{Fill: -9999, Workers: 1})
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	if out.Data[0] != -9999 {
		t.Errorf("expecting fill value -9999 at zero-denominator pixel, actual %v", out.Data[0])
	}
}

func TestNoDataMasked(t *testing.T) {
	r := NewRaster(2, 1, -10000)
	r.AddBand("B4", []float64{-10000, 600})
	r.AddBand("B8", []float64{3000, 3000})

	out, err := EvaluateWith("ndvi", r, nil, Options{Fill: math.NaN(), Workers: 1})
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	if !math.IsNaN(out.Data[0]) {
		t.Errorf("expecting fill at no-data pixel, actual %v", out.Data[0])
	}
	if math.Abs(out.Data[1]-0.8) > 1e-4 {
		t.Errorf("expecting 0.8 at valid pixel, actual %v", out.Data[1])
	}
}

func TestUnknownIndex(t *testing.T) {
	r := singlePixelRaster()
	out, err := Evaluate("nosuchindex", r, nil)
	if err == nil {
		t.Fatalf("expecting error for unknown index, got output %v", out)
	}
	if _, ok := err.(*UnknownIndexError); !ok {
		t.Errorf("expecting UnknownIndexError, actual %T: %v", err, err)
	}
	if out != nil {
		t.Errorf("expecting no output for unknown index, actual %v", out)
	}
}

func TestMissingBand(t *testing.T) {
	r := NewRaster(1, 1, math.NaN())
	r.AddBand("B8", []float64{3000})

	_, err := Evaluate("ndvi", r, nil)
	if err == nil {
		t.Fatal("expecting error for missing band")
	}
	if _, ok := err.(*MissingBandError); !ok {
		t.Errorf("expecting MissingBandError, actual %T: %v", err, err)
	}
}

func TestUnboundSymbol(t *testing.T) {
	r := singlePixelRaster()
	_, err := EvaluateExpr("(NIR - RED) / (NIR + RED)", r, BandBinding{"NIR": {Band: "B8"}})
	if err == nil {
		t.Fatal("expecting error for unbound symbol")
	}
	e, ok := err.(*UnboundSymbolError)
	if !ok {
		t.Fatalf("expecting UnboundSymbolError, actual %T: %v", err, err)
	}
	if e.Symbol != "RED" {
		t.Errorf("expecting unbound symbol RED, actual %s", e.Symbol)
	}
}

func TestDimensionMismatch(t *testing.T) {
	r := NewRaster(2, 2, math.NaN())
	r.AddBand("B8", []float64{1, 2, 3, 4})
	// bypass AddBand to model a foreign band plane of the wrong size
	r.bands["B4"] = []float64{1, 2}

	_, err := Evaluate("ndvi", r, nil)
	if err == nil {
		t.Fatal("expecting error for dimension mismatch")
	}
	if _, ok := err.(*EvaluationError); !ok {
		t.Errorf("expecting EvaluationError, actual %T: %v", err, err)
	}
}

func TestBindingOverride(t *testing.T) {
	r := singlePixelRaster()
	out, err := Evaluate("ndvi", r, BandBinding{"RED": {Band: "B3"}})
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	expected := (3000.0 - 800.0) / (3000.0 + 800.0)
	if math.Abs(out.Data[0]-expected) > 1e-4 {
		t.Errorf("expecting %v with overridden binding, actual %v", expected, out.Data[0])
	}
}

func TestEvaluateExprNamed(t *testing.T) {
	r := singlePixelRaster()
	out, err := EvaluateExpr("diff = NIR - RED", r, BandBinding{
		"NIR": {Band: "B8"},
		"RED": {Band: "B4"},
	})
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	if out.Name != "diff" {
		t.Errorf("expecting output band diff, actual %s", out.Name)
	}
	if math.Abs(out.Data[0]-2400) > 1e-6 {
		t.Errorf("expecting 2400, actual %v", out.Data[0])
	}
}
