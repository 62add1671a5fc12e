package render

import (
	"context"
	"errors"
	"testing"

	"FractalExplorer/fractal"
	"FractalExplorer/plane"
)

func testParams(kind fractal.Kind, w, h int) Params {
	return Params{
		Colorizer:     fractal.NewColorizer(),
		Height:        h,
		Kind:          kind,
		MaxIterations: 50,
		Seed:          plane.ComplexNumber{Real: -0.8, Imaginary: 0.156},
		View:          plane.DefaultView,
		Width:         w,
	}
}

func TestRender_MatchesColorizer(t *testing.T) {
	for _, kind := range []fractal.Kind{fractal.Mandelbrot, fractal.Julia} {
		t.Run(kind.String(), func(t *testing.T) {
			p := testParams(kind, 40, 30)
			img, err := Render(context.Background(), p, 3)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
				t.Fatalf("Render() bounds = %s", img.Bounds())
			}

			ratio := p.View.Ratio(p.Width, p.Height)
			for y := 0; y < p.Height; y++ {
				for x := 0; x < p.Width; x++ {
					point := plane.PixelToComplex(x, y, ratio, p.View.X, p.View.Y)
					want, _ := p.Colorizer.Color(kind, p.Seed, point, p.MaxIterations)
					if got := img.RGBAAt(x, y); got != want {
						t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestRender_WorkerCountDoesNotChangeOutput(t *testing.T) {
	p := testParams(fractal.Mandelbrot, 64, 48)
	single, err := Render(context.Background(), p, 1)
	if err != nil {
		t.Fatal(err)
	}
	many, err := Render(context.Background(), p, 8)
	if err != nil {
		t.Fatal(err)
	}
	defaulted, err := Render(context.Background(), p, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := range single.Pix {
		if single.Pix[i] != many.Pix[i] || single.Pix[i] != defaulted.Pix[i] {
			t.Fatalf("byte %d differs between worker counts", i)
		}
	}
}

func TestRender_ZeroColorizerUsesDefaults(t *testing.T) {
	p := testParams(fractal.Mandelbrot, 16, 16)
	withDefaults, _ := Render(context.Background(), p, 2)
	p.Colorizer = fractal.Colorizer{}
	zero, err := Render(context.Background(), p, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i := range zero.Pix {
		if zero.Pix[i] != withDefaults.Pix[i] {
			t.Fatalf("byte %d differs", i)
		}
	}
}

func TestRender_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero width", func(p *Params) { p.Width = 0 }},
		{"negative height", func(p *Params) { p.Height = -3 }},
		{"zero iterations", func(p *Params) { p.MaxIterations = 0 }},
		{"empty view", func(p *Params) { p.View.X = plane.AxisRange{Lower: 1, Upper: 1} }},
		{"unknown kind", func(p *Params) { p.Kind = fractal.Kind(7) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams(fractal.Mandelbrot, 10, 10)
			tt.mutate(&p)
			if _, err := Render(context.Background(), p, 1); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Render() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestRender_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := testParams(fractal.Mandelbrot, 200, 200)
	if _, err := Render(ctx, p, 2); !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
}

func TestParams_String(t *testing.T) {
	p := testParams(fractal.Julia, 4, 3)
	want := "{Params Kind: Julia Size: 4x3 View: [-2, 2]x[-1.6, 1.6] Seed: z = -0.8 + 0.16i MaxIterations: 50}"
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
