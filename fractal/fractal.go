package fractal

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"FractalExplorer/plane"
)

const (
	Mandelbrot Kind = iota
	Julia
)

type Kind int

func (k Kind) String() string {
	return []string{
		"Mandelbrot", "Julia",
	}[k]
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "mandelbrot":
		return Mandelbrot, nil
	case "julia":
		return Julia, nil
	}
	return Mandelbrot, fmt.Errorf("%w: unknown fractal kind %q", ErrInvalidArgument, s)
}

var ErrInvalidArgument = errors.New("invalid argument")

// The smoothing formula below is derived for this exact threshold, it must stay fixed at |z| > 2
const escapeModulusSquared = 4.0

var (
	InSetColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	mathLog2   = math.Log(2)
)

// Escape describes the orbit of a single point.
type Escape struct {
	Escaped    bool
	Iterations int
	// Smooth is the normalised escape speed, roughly in [0, 1]. Zero when the point never escaped.
	Smooth float64
}

// https://en.wikipedia.org/wiki/Plotting_algorithms_for_the_Mandelbrot_set#Continuous_(smooth)_coloring
func EscapeTime(z plane.ComplexNumber, seed plane.ComplexNumber, maxIterations int) (Escape, error) {
	if maxIterations < 1 {
		return Escape{}, fmt.Errorf("%w: maxIterations %d < 1", ErrInvalidArgument, maxIterations)
	}

	for i := 0; i < maxIterations; i++ {
		z = z.Square().Add(seed)
		if modulusSquared := z.ModulusSquared(); modulusSquared > escapeModulusSquared {
			nsmooth := float64(i) + 1 - math.Log(math.Log(modulusSquared))/mathLog2
			return Escape{
				Escaped:    true,
				Iterations: i,
				Smooth:     nsmooth / float64(maxIterations),
			}, nil
		}
	}

	return Escape{Iterations: maxIterations}, nil
}

// Colorizer binds a palette to each fractal kind. The zero value is not usable, start from NewColorizer.
type Colorizer struct {
	Mandelbrot Palette
	Julia      Palette
}

func NewColorizer() Colorizer {
	return Colorizer{
		Mandelbrot: MandelbrotPalette,
		Julia:      JuliaPalette,
	}
}

// MandelbrotColor iterates z = z^2 + c starting from z = c.
func (c Colorizer) MandelbrotColor(point plane.ComplexNumber, maxIterations int) (color.RGBA, error) {
	return c.color(c.Mandelbrot, point, point, maxIterations)
}

// JuliaColor iterates z = z^2 + seed starting from the pixel coordinate z0.
func (c Colorizer) JuliaColor(seed plane.ComplexNumber, z0 plane.ComplexNumber, maxIterations int) (color.RGBA, error) {
	return c.color(c.Julia, z0, seed, maxIterations)
}

// Color dispatches on kind, seed is ignored for the Mandelbrot set.
func (c Colorizer) Color(kind Kind, seed plane.ComplexNumber, point plane.ComplexNumber, maxIterations int) (color.RGBA, error) {
	if kind == Julia {
		return c.JuliaColor(seed, point, maxIterations)
	}
	return c.MandelbrotColor(point, maxIterations)
}

func (c Colorizer) color(palette Palette, z0 plane.ComplexNumber, seed plane.ComplexNumber, maxIterations int) (color.RGBA, error) {
	escape, err := EscapeTime(z0, seed, maxIterations)
	if err != nil {
		return InSetColor, err
	}
	if !escape.Escaped {
		return InSetColor, nil
	}
	return palette.Color(escape.Smooth), nil
}

func MandelbrotColor(c plane.ComplexNumber, maxIterations int) (color.RGBA, error) {
	return NewColorizer().MandelbrotColor(c, maxIterations)
}

func JuliaColor(seed plane.ComplexNumber, z0 plane.ComplexNumber, maxIterations int) (color.RGBA, error) {
	return NewColorizer().JuliaColor(seed, z0, maxIterations)
}
