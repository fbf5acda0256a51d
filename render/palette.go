package render

import (
	"fmt"
	"image/color"
	"sort"
)

// Palette is a list of control colours, optionally interpolated into a
// 256-colour ramp.
type Palette struct {
	Interpolate bool         `json:"interpolate"`
	Colours     []color.RGBA `json:"colours"`
}

// InterpolateUint8 interpolates the value of a byte between two numbers
// 'a' and 'b' by specifying a length and a position 'i' along that
// length.
func InterpolateUint8(a, b uint8, i, sectionLength int) uint8 {
	return a + uint8((i * (int(b) - int(a)) / sectionLength))
}

// InterpolateColor returns an RGBA color where the R, G, B, and A
// components have been interpolated from the 'a' and 'b' colors.
func InterpolateColor(a, b color.RGBA, i, sectionLength int) color.RGBA {
	return color.RGBA{InterpolateUint8(a.R, b.R, i, sectionLength),
		InterpolateUint8(a.G, b.G, i, sectionLength),
		InterpolateUint8(a.B, b.B, i, sectionLength),
		255}
}

// Ramp expands the palette into 256 colours, either as an interpolated
// gradient through the control colours or as discrete bins.
func (p *Palette) Ramp() ([]color.RGBA, error) {
	if len(p.Colours) < 2 {
		return nil, fmt.Errorf("the colour palette must contain at least 2 colours")
	}

	ramp := make([]color.RGBA, 256)

	if p.Interpolate {
		bins := len(p.Colours) - 1
		sectionLength := 256 / bins
		bonus := 256 - (sectionLength * bins)
		bonusArr := make([]int, bins)
		for i := 0; i < bonus; i++ {
			bonusArr[i] = 1
		}

		index := 0
		for section, upperColour := range p.Colours[1:] {
			for i := 0; i < sectionLength+bonusArr[section]; i++ {
				ramp[index] = InterpolateColor(p.Colours[section], upperColour, i, sectionLength)
				index++
			}
		}
	} else {
		bins := len(p.Colours)
		sectionLength := 256 / bins
		bonus := 256 - (sectionLength * bins)
		bonusArr := make([]int, bins)
		for i := 0; i < bonus; i++ {
			bonusArr[i] = 1
		}

		index := 0
		for section, colour := range p.Colours {
			for i := 0; i < sectionLength+bonusArr[section]; i++ {
				ramp[index] = colour
				index++
			}
		}
	}

	return ramp, nil
}

// Default colour ramps for the index families served by the catalog.
var defaultPalettes = map[string]*Palette{
	"vegetation": {
		Interpolate: true,
		Colours: []color.RGBA{
			{165, 0, 38, 255},
			{215, 48, 39, 255},
			{254, 224, 139, 255},
			{166, 217, 106, 255},
			{26, 152, 80, 255},
			{0, 104, 55, 255},
		},
	},
	"water": {
		Interpolate: true,
		Colours: []color.RGBA{
			{140, 81, 10, 255},
			{246, 232, 195, 255},
			{199, 234, 229, 255},
			{90, 180, 172, 255},
			{1, 102, 94, 255},
		},
	},
	"builtup": {
		Interpolate: true,
		Colours: []color.RGBA{
			{255, 255, 204, 255},
			{254, 217, 118, 255},
			{253, 141, 60, 255},
			{227, 26, 28, 255},
			{128, 0, 38, 255},
		},
	},
	"soil": {
		Interpolate: true,
		Colours: []color.RGBA{
			{255, 255, 229, 255},
			{247, 252, 185, 255},
			{217, 182, 107, 255},
			{164, 112, 54, 255},
			{102, 60, 20, 255},
		},
	},
	"greyscale": {
		Interpolate: true,
		Colours: []color.RGBA{
			{0, 0, 0, 255},
			{255, 255, 255, 255},
		},
	},
}

// LookupPalette returns a named default colour ramp.
func LookupPalette(name string) (*Palette, error) {
	palette, ok := defaultPalettes[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette: %s", name)
	}
	return palette, nil
}

// PaletteNames lists the available default palettes.
func PaletteNames() []string {
	names := make([]string, 0, len(defaultPalettes))
	for name := range defaultPalettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
