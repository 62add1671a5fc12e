package gallery

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"FractalExplorer/misc"
)

const captionPadding = 4

var (
	captionShade = color.RGBA{A: 255}
	captionText  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Caption returns a copy of img with text drawn over a darkened band along the bottom edge.
func Caption(img image.Image, text string) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)

	face := basicfont.Face7x13
	metrics := face.Metrics()
	bandHeight := (metrics.Ascent + metrics.Descent).Ceil() + 2*captionPadding
	band := image.Rect(bounds.Min.X, bounds.Max.Y-bandHeight, bounds.Max.X, bounds.Max.Y).Intersect(bounds)
	for y := band.Min.Y; y < band.Max.Y; y++ {
		for x := band.Min.X; x < band.Max.X; x++ {
			out.SetRGBA(x, y, misc.LinearInterpolationRGB(out.RGBAAt(x, y), captionShade, 0.6))
		}
	}

	drawer := &font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(captionText),
		Face: face,
		Dot:  fixed.P(bounds.Min.X+captionPadding, bounds.Max.Y-captionPadding-metrics.Descent.Ceil()),
	}
	drawer.DrawString(text)
	return out
}

// Thumbnail scales img so its longer side is maxSide pixels, keeping the aspect ratio.
func Thumbnail(img image.Image, maxSide int) *image.RGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxSide <= 0 || w == 0 || h == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	tw, th := maxSide, maxSide
	if w > h {
		th = max(1, h*maxSide/w)
	} else {
		tw = max(1, w*maxSide/h)
	}

	thumbnail := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(thumbnail, thumbnail.Bounds(), img, bounds, draw.Src, nil)
	return thumbnail
}
