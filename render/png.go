package render

import (
	"bytes"
	"image"
	"image/png"
)

// EncodePNG renders a scaled byte raster through a colour ramp into a
// PNG. No-data pixels stay fully transparent.
func EncodePNG(br *ByteRaster, palette *Palette) ([]byte, error) {
	ramp, err := palette.Ramp()
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, br.Width, br.Height))
	for y := 0; y < br.Height; y++ {
		for x := 0; x < br.Width; x++ {
			value := br.Data[y*br.Width+x]
			if value != noDataByte {
				dst.Set(x, y, ramp[value])
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, dst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
