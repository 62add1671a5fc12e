package fractal

import (
	"testing"
)

func TestPalette_Hue(t *testing.T) {
	tests := []struct {
		name    string
		palette Palette
		nsmooth float64
		want    float64
	}{
		{"base only", MandelbrotPalette, 0, 0.65},
		{"wraps above one", JuliaPalette, 0.01, 0.05},
		{"wraps below zero", Palette{BaseHue: 0.1, HueSpread: 1}, -0.3, 0.8},
		{"tiny negative", Palette{}, -1e-18, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.palette.Hue(tt.nsmooth)
			if got < 0 || got >= 1 {
				t.Fatalf("Hue() = %g, want a value in [0, 1)", got)
			}
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Hue() = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestPalette_Color(t *testing.T) {
	p := Palette{Saturation: 1, Brightness: 1}
	tests := []struct {
		hue     float64
		r, g, b uint8
	}{
		{0, 255, 0, 0},
		{1.0 / 3, 0, 255, 0},
		{2.0 / 3, 0, 0, 255},
	}

	for _, tt := range tests {
		p.BaseHue = tt.hue
		got := p.Color(0)
		if channelDiff(got.R, tt.r) > 1 || channelDiff(got.G, tt.g) > 1 || channelDiff(got.B, tt.b) > 1 || got.A != 255 {
			t.Errorf("hue %g: Color() = %v, want (%d, %d, %d)", tt.hue, got, tt.r, tt.g, tt.b)
		}
	}
}

func TestSettings_Verify(t *testing.T) {
	s := Settings{
		MaxIterations:     0,
		MandelbrotPalette: Palette{BaseHue: 0.2, HueSpread: 3, Saturation: 4, Brightness: 0.5},
	}
	if err := s.Verify(); err != nil {
		t.Fatal(err)
	}

	if s.MaxIterations != DefaultMaxIterations {
		t.Errorf("MaxIterations = %d, want %d", s.MaxIterations, DefaultMaxIterations)
	}
	if s.JuliaPalette != JuliaPalette {
		t.Errorf("JuliaPalette = %v, want default", s.JuliaPalette)
	}
	want := Palette{BaseHue: 0.2, HueSpread: 3, Saturation: 0.6, Brightness: 0.5}
	if s.MandelbrotPalette != want {
		t.Errorf("MandelbrotPalette = %v, want %v", s.MandelbrotPalette, want)
	}
	if c := s.Colorizer(); c.Mandelbrot != want || c.Julia != JuliaPalette {
		t.Errorf("Colorizer() = %+v", c)
	}
}
