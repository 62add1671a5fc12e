package explorer

import (
	"fmt"

	"github.com/BrugadaSyndrome/bslogger"

	"FractalExplorer/fractal"
	"FractalExplorer/plane"
	"FractalExplorer/ring"
)

type Settings struct {
	logger bslogger.Logger

	FractalSettings fractal.Settings
	Height          int
	HistoryCapacity int
	View            plane.View
	Width           int
	Workers         int
}

func (s *Settings) String() string {
	output := "{ExplorerSettings "
	output += fmt.Sprintf("FractalSettings: %s ", s.FractalSettings.String())
	output += fmt.Sprintf("Height: %d ", s.Height)
	output += fmt.Sprintf("HistoryCapacity: %d ", s.HistoryCapacity)
	output += fmt.Sprintf("View: [%g, %g]x[%g, %g] ", s.View.X.Lower, s.View.X.Upper, s.View.Y.Lower, s.View.Y.Upper)
	output += fmt.Sprintf("Width: %d ", s.Width)
	output += fmt.Sprintf("Workers: %d}", s.Workers)
	return output
}

func (s *Settings) Verify() error {
	s.logger = bslogger.NewLogger("ExplorerSettings", bslogger.Normal, nil)

	if err := s.FractalSettings.Verify(); err != nil {
		return err
	}
	if s.Height <= 0 {
		s.Height = 600
	}
	if s.HistoryCapacity <= 0 {
		s.HistoryCapacity = ring.DefaultCapacity
	}
	if s.View == (plane.View{}) {
		s.View = plane.DefaultView
	} else if err := s.View.Validate(); err != nil {
		s.logger.Infof("Replacing view: %s", err)
		s.View = plane.DefaultView
	}
	if s.Width <= 0 {
		s.Width = 800
	}
	// Workers < 1 lets each render use every CPU

	return nil
}
