package plane

import (
	"errors"
	"fmt"
	"image"
)

var ErrInvalidArgument = errors.New("invalid argument")

// AxisRange is the visible interval along one axis of the complex plane. Lower < Upper is up to the caller.
type AxisRange struct {
	Lower float64
	Upper float64
}

func (a AxisRange) Span() float64 {
	return a.Upper - a.Lower
}

// ConversionRatio is the size of a single pixel in complex plane units along each axis.
type ConversionRatio struct {
	XRatio float64
	YRatio float64
}

// View is the window onto the complex plane. X runs along the real axis and Y along the imaginary axis.
type View struct {
	X AxisRange
	Y AxisRange
}

var DefaultView = View{
	X: AxisRange{Lower: -2.0, Upper: 2.0},
	Y: AxisRange{Lower: -1.6, Upper: 1.6},
}

func (v View) Validate() error {
	if !(v.X.Lower < v.X.Upper) {
		return fmt.Errorf("%w: real axis [%g, %g] is empty", ErrInvalidArgument, v.X.Lower, v.X.Upper)
	}
	if !(v.Y.Lower < v.Y.Upper) {
		return fmt.Errorf("%w: imaginary axis [%g, %g] is empty", ErrInvalidArgument, v.Y.Lower, v.Y.Upper)
	}
	return nil
}

func (v View) Ratio(width int, height int) ConversionRatio {
	return ComputeConversionRatio(width, height, v.X, v.Y)
}

func (v View) PixelToComplex(pixelX int, pixelY int, width int, height int) ComplexNumber {
	return PixelToComplex(pixelX, pixelY, v.Ratio(width, height), v.X, v.Y)
}

/*
 * Zoom turns a selection rectangle drawn on a width x height frame into the new view.
 *
 * - Both corners of the selection are pushed through PixelToComplex against the current view, the top left corner
 *   becomes the lower bounds and the bottom right corner the upper bounds.
 * - A selection without area cannot describe a window so it is rejected.
 */
func (v View) Zoom(selection image.Rectangle, width int, height int) (View, error) {
	if width <= 0 || height <= 0 {
		return v, fmt.Errorf("%w: frame %dx%d", ErrInvalidArgument, width, height)
	}
	selection = selection.Canon()
	if selection.Empty() {
		return v, fmt.Errorf("%w: selection %s has no area", ErrInvalidArgument, selection)
	}

	ratio := v.Ratio(width, height)
	lower := PixelToComplex(selection.Min.X, selection.Min.Y, ratio, v.X, v.Y)
	upper := PixelToComplex(selection.Max.X, selection.Max.Y, ratio, v.X, v.Y)
	return View{
		X: AxisRange{Lower: lower.Real, Upper: upper.Real},
		Y: AxisRange{Lower: lower.Imaginary, Upper: upper.Imaginary},
	}, nil
}

// ComputeConversionRatio requires width and height to be positive, zero yields infinities.
func ComputeConversionRatio(width int, height int, xAxis AxisRange, yAxis AxisRange) ConversionRatio {
	return ConversionRatio{
		XRatio: xAxis.Span() / float64(width),
		YRatio: yAxis.Span() / float64(height),
	}
}

// PixelToComplex maps a pixel onto the plane. The y axis is not inverted: moving down the screen increases the
// imaginary part.
func PixelToComplex(pixelX int, pixelY int, ratio ConversionRatio, xAxis AxisRange, yAxis AxisRange) ComplexNumber {
	return ComplexNumber{
		Real:      float64(pixelX)*ratio.XRatio + xAxis.Lower,
		Imaginary: float64(pixelY)*ratio.YRatio + yAxis.Lower,
	}
}

// ComplexToPixel is the inverse of PixelToComplex. The results are not rounded.
func ComplexToPixel(z ComplexNumber, ratio ConversionRatio, xAxis AxisRange, yAxis AxisRange) (float64, float64) {
	return (z.Real - xAxis.Lower) / ratio.XRatio, (z.Imaginary - yAxis.Lower) / ratio.YRatio
}
