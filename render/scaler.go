package render

import (
	"fmt"
	"math"

	"github.com/geoglyph/spectra/index"
)

// ByteRaster holds index values scaled into the 0-254 display range.
// 0xFF marks pixels with no computable value.
type ByteRaster struct {
	NameSpace     string
	Data          []uint8
	Height, Width int
}

const noDataByte = uint8(0xFF)

// ScaleIndex maps an index raster linearly onto 0-254 between min and
// max, clamping values outside the range. Fill pixels (and any other
// non-finite values) become the no-data byte.
func ScaleIndex(ir *index.IndexRaster, min, max float64) (*ByteRaster, error) {
	if max <= min {
		return nil, fmt.Errorf("invalid display range [%v, %v]", min, max)
	}

	out := &ByteRaster{
		NameSpace: ir.Name,
		Data:      make([]uint8, ir.Width*ir.Height),
		Width:     ir.Width,
		Height:    ir.Height,
	}

	fill := ir.Fill
	scale := 254.0 / (max - min)
	for i, value := range ir.Data {
		if math.IsNaN(value) || math.IsInf(value, 0) || value == fill {
			out.Data[i] = noDataByte
			continue
		}
		if value < min {
			value = min
		}
		if value > max {
			value = max
		}
		out.Data[i] = uint8((value - min) * scale)
	}

	return out, nil
}

// Resample resizes a byte raster to the requested grid by nearest
// neighbour. Values are palette indices with a no-data sentinel, so
// they must be copied, never interpolated.
func Resample(br *ByteRaster, width, height int) (*ByteRaster, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid output size %dx%d", width, height)
	}
	if width == br.Width && height == br.Height {
		return br, nil
	}

	out := &ByteRaster{
		NameSpace: br.NameSpace,
		Data:      make([]uint8, width*height),
		Width:     width,
		Height:    height,
	}
	for y := 0; y < height; y++ {
		srcY := y * br.Height / height
		for x := 0; x < width; x++ {
			srcX := x * br.Width / width
			out.Data[y*width+x] = br.Data[srcY*br.Width+srcX]
		}
	}

	return out, nil
}
