// Package render draws a finished sweep: the classified truth/model grid at
// the display fraction and the F1 and nMCC curves against truth fraction.
// PNG output goes through gonum/plot; the interactive HTML page uses
// go-echarts.
package render

import (
	"fmt"
	"image/color"

	"github.com/banshee-data/synthetic-bedrock/internal/bedrock"
)

// classHex holds one viridis sample per class, in class-code order
// (TN, FP, FN, TP).
var classHex = []string{"#440154", "#31688e", "#35b779", "#fde725"}

// classPalette implements palette.Palette for the four cell classes.
type classPalette struct{}

func (classPalette) Colors() []color.Color {
	out := make([]color.Color, len(classHex))
	for i, h := range classHex {
		out[i] = mustHex(h)
	}
	return out
}

// classColor returns the colour used for class c.
func classColor(c bedrock.Class) color.Color {
	return mustHex(classHex[int(c)-1])
}

func mustHex(s string) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		panic(fmt.Sprintf("render: bad colour %q", s))
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
