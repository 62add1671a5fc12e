package fractal

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette maps a smoothed escape value onto a hue. Saturation and Brightness are in [0, 1].
type Palette struct {
	BaseHue    float64
	HueSpread  float64
	Saturation float64
	Brightness float64
}

var (
	MandelbrotPalette = Palette{BaseHue: 0.65, HueSpread: 5, Saturation: 0.6, Brightness: 1.0}
	JuliaPalette      = Palette{BaseHue: 0.95, HueSpread: 10, Saturation: 0.6, Brightness: 1.0}
)

func (p Palette) String() string {
	return fmt.Sprintf("{Palette BaseHue: %g HueSpread: %g Saturation: %g Brightness: %g}", p.BaseHue, p.HueSpread, p.Saturation, p.Brightness)
}

// Hue returns BaseHue + HueSpread*nsmooth wrapped into [0, 1).
func (p Palette) Hue(nsmooth float64) float64 {
	hue := p.BaseHue + p.HueSpread*nsmooth
	hue -= math.Floor(hue)
	if hue >= 1 {
		// tiny negative hues round up to exactly 1
		hue = 0
	}
	return hue
}

func (p Palette) Color(nsmooth float64) color.RGBA {
	r, g, b := colorful.Hsv(p.Hue(nsmooth)*360, p.Saturation, p.Brightness).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
