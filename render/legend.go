package render

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"
)

const (
	legendWidth   = 320
	legendHeight  = 64
	legendBarTop  = 8
	legendBarSize = 24
	legendMargin  = 10
)

// Legend draws a horizontal colour-bar legend for an index, labelled
// with its name and display range, and returns it as a PNG.
func Legend(title string, palette *Palette, min, max float64) ([]byte, error) {
	ramp, err := palette.Ramp()
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(legendWidth, legendHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	barWidth := float64(legendWidth - 2*legendMargin)
	for i := 0; i < len(ramp); i++ {
		colour := ramp[i]
		x0 := float64(legendMargin) + barWidth*float64(i)/float64(len(ramp))
		x1 := float64(legendMargin) + barWidth*float64(i+1)/float64(len(ramp))
		dc.SetRGB255(int(colour.R), int(colour.G), int(colour.B))
		dc.DrawRectangle(x0, legendBarTop, x1-x0+1, legendBarSize)
		dc.Fill()
	}

	dc.SetRGB(0, 0, 0)
	dc.DrawRectangle(legendMargin, legendBarTop, barWidth, legendBarSize)
	dc.Stroke()

	labelY := float64(legendBarTop + legendBarSize + 14)
	dc.DrawStringAnchored(fmt.Sprintf("%g", min), legendMargin, labelY, 0, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%g", max), float64(legendWidth-legendMargin), labelY, 1, 0.5)
	dc.DrawStringAnchored(title, legendWidth/2, labelY, 0.5, 0.5)

	buf := new(bytes.Buffer)
	if err := dc.EncodePNG(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
