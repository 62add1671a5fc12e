package fractal

import (
	"fmt"

	"github.com/BrugadaSyndrome/bslogger"
)

const DefaultMaxIterations = 100

type Settings struct {
	logger bslogger.Logger

	JuliaPalette      Palette
	MandelbrotPalette Palette
	MaxIterations     int
}

func (s *Settings) String() string {
	output := "{FractalSettings "
	output += fmt.Sprintf("JuliaPalette: %s ", s.JuliaPalette)
	output += fmt.Sprintf("MandelbrotPalette: %s ", s.MandelbrotPalette)
	output += fmt.Sprintf("MaxIterations: %d}", s.MaxIterations)
	return output
}

// Verify replaces unusable values with defaults rather than rejecting the settings
func (s *Settings) Verify() error {
	s.logger = bslogger.NewLogger("FractalSettings", bslogger.Normal, nil)

	if s.MaxIterations < 1 {
		s.MaxIterations = DefaultMaxIterations
	}
	s.JuliaPalette = s.verifyPalette("JuliaPalette", s.JuliaPalette, JuliaPalette)
	s.MandelbrotPalette = s.verifyPalette("MandelbrotPalette", s.MandelbrotPalette, MandelbrotPalette)

	return nil
}

func (s *Settings) verifyPalette(name string, p Palette, fallback Palette) Palette {
	if p == (Palette{}) {
		return fallback
	}
	if p.Saturation <= 0 || p.Saturation > 1 {
		s.logger.Infof("%s saturation %g is out of range, using %g", name, p.Saturation, fallback.Saturation)
		p.Saturation = fallback.Saturation
	}
	if p.Brightness <= 0 || p.Brightness > 1 {
		s.logger.Infof("%s brightness %g is out of range, using %g", name, p.Brightness, fallback.Brightness)
		p.Brightness = fallback.Brightness
	}
	return p
}

func (s *Settings) Colorizer() Colorizer {
	return Colorizer{
		Mandelbrot: s.MandelbrotPalette,
		Julia:      s.JuliaPalette,
	}
}
