package index

import (
	"sort"
	"strings"

	"github.com/edisonguo/govaluate"
)

// BandRef binds a symbolic band name to a physical raster band,
// optionally pre-scaling each sample before evaluation. A zero Scale
// means no scaling.
type BandRef struct {
	Band  string
	Scale float64
}

func (b BandRef) scale() float64 {
	if b.Scale == 0 {
		return 1
	}
	return b.Scale
}

// BandBinding maps the symbolic names used in a formula to raster bands.
type BandBinding map[string]BandRef

// DisplayHint is the recommended value range and colour ramp for
// rendering an index. The renderer is free to override it.
type DisplayHint struct {
	Min, Max float64
	Palette  string
}

// Definition is one catalog entry. Entries are compiled once at package
// init and never mutated afterwards.
type Definition struct {
	Name     string
	Title    string
	ExprText string
	Binding  BandBinding
	Display  DisplayHint

	expr *govaluate.EvaluableExpression
	vars []string
}

// Vars returns the symbolic band names referenced by the formula.
func (d *Definition) Vars() []string {
	return d.vars
}

// Sentinel-2 surface reflectance bands, values scaled by 10000.
var sentinel2Binding = BandBinding{
	"BLUE":     {Band: "B2"},
	"GREEN":    {Band: "B3"},
	"RED":      {Band: "B4"},
	"RedEdge1": {Band: "B5"},
	"NIR":      {Band: "B8"},
	"SWIR":     {Band: "B11"},
	"SWIR1":    {Band: "B11"},
	"SWIR2":    {Band: "B12"},
}

// DefaultBinding returns a copy of the full Sentinel-2 symbol table.
// Callers may mutate the copy to rebind symbols for other sensors.
func DefaultBinding() BandBinding {
	binding := BandBinding{}
	for sym, ref := range sentinel2Binding {
		binding[sym] = ref
	}
	return binding
}

func s2Binding(symbols ...string) BandBinding {
	binding := BandBinding{}
	for _, sym := range symbols {
		binding[sym] = sentinel2Binding[sym]
	}
	return binding
}

var definitions = []*Definition{
	{
		Name:     "ndvi",
		Title:    "Normalised Difference Vegetation Index",
		ExprText: "(NIR - RED) / (NIR + RED)",
		Binding:  s2Binding("NIR", "RED"),
		Display:  DisplayHint{Min: -1, Max: 1, Palette: "vegetation"},
	},
	{
		Name:     "ndvire",
		Title:    "Red-Edge Normalised Difference Vegetation Index",
		ExprText: "(RedEdge1 - RED) / (RedEdge1 + RED)",
		Binding:  s2Binding("RedEdge1", "RED"),
		Display:  DisplayHint{Min: -1, Max: 1, Palette: "vegetation"},
	},
	{
		Name:     "evi",
		Title:    "Enhanced Vegetation Index",
		ExprText: "2.5 * (NIR - RED) / (NIR + 6 * RED - 7.5 * BLUE + 10000)",
		Binding:  s2Binding("NIR", "RED", "BLUE"),
		Display:  DisplayHint{Min: -1, Max: 1, Palette: "vegetation"},
	},
	{
		Name:     "savi",
		Title:    "Soil Adjusted Vegetation Index",
		ExprText: "1.5 * ((NIR - RED) / (NIR + RED + 0.5))",
		Binding: BandBinding{
			"NIR": {Band: "B8", Scale: 0.0001},
			"RED": {Band: "B4", Scale: 0.0001},
		},
		Display: DisplayHint{Min: -1, Max: 1, Palette: "vegetation"},
	},
	{
		Name:     "ndwi",
		Title:    "Normalised Difference Water Index",
		ExprText: "(NIR - SWIR) / (NIR + SWIR)",
		Binding:  s2Binding("NIR", "SWIR"),
		Display:  DisplayHint{Min: -1, Max: 1, Palette: "water"},
	},
	{
		Name:     "mndwi",
		Title:    "Modified Normalised Difference Water Index",
		ExprText: "(GREEN - SWIR1) / (GREEN + SWIR1)",
		Binding:  s2Binding("GREEN", "SWIR1"),
		Display:  DisplayHint{Min: -1, Max: 1, Palette: "water"},
	},
	{
		Name:     "awei_sh",
		Title:    "Automated Water Extraction Index (shadow)",
		ExprText: "BLUE + 2.5 * GREEN - 1.5 * (NIR + SWIR1) - 0.25 * SWIR2",
		Binding:  s2Binding("BLUE", "GREEN", "NIR", "SWIR1", "SWIR2"),
		Display:  DisplayHint{Min: -5000, Max: 5000, Palette: "water"},
	},
	{
		Name:     "ndbi",
		Title:    "Normalised Difference Built-up Index",
		ExprText: "(SWIR1 - NIR) / (SWIR1 + NIR)",
		Binding:  s2Binding("SWIR1", "NIR"),
		Display:  DisplayHint{Min: -1, Max: 1, Palette: "builtup"},
	},
	{
		// BUI is the difference of NDBI and NDVI over the same band set.
		Name:     "bui",
		Title:    "Built-up Index",
		ExprText: "((SWIR1 - NIR) / (SWIR1 + NIR)) - ((NIR - RED) / (NIR + RED))",
		Binding:  s2Binding("SWIR1", "NIR", "RED"),
		Display:  DisplayHint{Min: -2, Max: 2, Palette: "builtup"},
	},
	{
		Name:     "ndti",
		Title:    "Normalised Difference Tillage Index",
		ExprText: "(SWIR1 - SWIR2) / (SWIR1 + SWIR2)",
		Binding:  s2Binding("SWIR1", "SWIR2"),
		Display:  DisplayHint{Min: -1, Max: 1, Palette: "soil"},
	},
	{
		// This BSI formulation adds (NIR + BLUE) outside the division
		// instead of normalising by it. It differs from the usual
		// literature definition but is kept as published by the upstream
		// product so outputs stay comparable.
		Name:     "bsi",
		Title:    "Bare Soil Index",
		ExprText: "(((SWIR1 + RED) - (NIR + BLUE)) / (SWIR1 + RED)) + (NIR + BLUE)",
		Binding:  s2Binding("SWIR1", "RED", "NIR", "BLUE"),
		Display:  DisplayHint{Min: 0, Max: 20000, Palette: "soil"},
	},
}

var catalog map[string]*Definition

func init() {
	catalog = make(map[string]*Definition)
	for _, def := range definitions {
		bandExpr, err := ParseBandExpressions([]string{def.ExprText})
		if err != nil {
			panic(err)
		}
		def.expr = bandExpr.Expressions[0]
		def.vars = bandExpr.ExprVarRef[0]
		catalog[def.Name] = def
	}
}

// Lookup returns the catalog definition for an index name. The catalog
// is a closed table; names are matched case-insensitively.
func Lookup(name string) (*Definition, error) {
	def, ok := catalog[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, &UnknownIndexError{Name: name}
	}
	return def, nil
}

// Names lists the registered index names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
