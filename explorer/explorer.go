package explorer

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/BrugadaSyndrome/bslogger"

	"FractalExplorer/fractal"
	"FractalExplorer/gallery"
	"FractalExplorer/plane"
	"FractalExplorer/render"
	"FractalExplorer/ring"
)

var (
	ErrNoSeed    = errors.New("no point selected")
	ErrNoFrame   = errors.New("no julia frame rendered yet")
	ErrNoGallery = errors.New("no gallery configured")
)

// State is the shared view state. It is replaced wholesale on every change and never mutated in place.
type State struct {
	HasSeed       bool
	Height        int
	MaxIterations int
	Seed          plane.ComplexNumber
	View          plane.View
	Width         int
}

// Explorer drives a Mandelbrot view and the Julia view seeded from it. Interaction methods publish a new State and
// request recomputes, the renderers read the State snapshot they were handed.
type Explorer struct {
	colorizer fractal.Colorizer
	gallery   *gallery.Gallery
	logger    bslogger.Logger
	mutex     sync.Mutex
	settings  Settings
	state     atomic.Pointer[State]

	// guarded by mutex
	history     *ring.Ring[plane.ComplexNumber]
	recentJulia *ring.Ring[*render.Frame]

	Julia      *render.Renderer
	Mandelbrot *render.Renderer
}

// New starts both renderers and requests the first Mandelbrot frame. g may be nil when saving is not needed.
func New(settings Settings, g *gallery.Gallery) (*Explorer, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}

	history, err := ring.New[plane.ComplexNumber](settings.HistoryCapacity)
	if err != nil {
		return nil, err
	}
	recentJulia, err := ring.New[*render.Frame](settings.HistoryCapacity)
	if err != nil {
		return nil, err
	}

	e := &Explorer{
		colorizer:   settings.FractalSettings.Colorizer(),
		gallery:     g,
		history:     history,
		logger:      bslogger.NewLogger("Explorer", bslogger.Normal, nil),
		recentJulia: recentJulia,
		settings:    settings,
		Julia:       render.NewRenderer(fractal.Julia.String(), settings.Workers),
		Mandelbrot:  render.NewRenderer(fractal.Mandelbrot.String(), settings.Workers),
	}
	e.state.Store(&State{
		Height:        settings.Height,
		MaxIterations: settings.FractalSettings.MaxIterations,
		View:          settings.View,
		Width:         settings.Width,
	})

	frames, _ := e.Julia.Subscribe()
	go e.collectJulia(frames)

	if _, err := e.Mandelbrot.Request(e.params(fractal.Mandelbrot, e.State())); err != nil {
		e.Close()
		return nil, err
	}
	e.logger.Infof("Exploring %s", settings.String())
	return e, nil
}

func (e *Explorer) State() State {
	return *e.state.Load()
}

// params builds the render snapshot for kind. Julia frames always cover the default view.
func (e *Explorer) params(kind fractal.Kind, s State) render.Params {
	p := render.Params{
		Colorizer:     e.colorizer,
		Height:        s.Height,
		Kind:          kind,
		MaxIterations: s.MaxIterations,
		View:          s.View,
		Width:         s.Width,
	}
	if kind == fractal.Julia {
		p.Seed = s.Seed
		p.View = plane.DefaultView
	}
	return p
}

// update applies change to a copy of the current state, publishes it and triggers the affected renderers
func (e *Explorer) update(change func(s *State) error, mandelbrot bool, julia bool) (State, error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	next := *e.state.Load()
	if err := change(&next); err != nil {
		return next, err
	}
	e.state.Store(&next)

	if mandelbrot {
		if _, err := e.Mandelbrot.Request(e.params(fractal.Mandelbrot, next)); err != nil {
			return next, err
		}
	}
	if julia && next.HasSeed {
		if _, err := e.Julia.Request(e.params(fractal.Julia, next)); err != nil {
			return next, err
		}
	}
	return next, nil
}

func (e *Explorer) Resize(width int, height int) (State, error) {
	return e.update(func(s *State) error {
		if width <= 0 || height <= 0 {
			return fmt.Errorf("%w: resolution %dx%d", render.ErrInvalidArgument, width, height)
		}
		s.Width, s.Height = width, height
		return nil
	}, true, true)
}

func (e *Explorer) SetView(view plane.View) (State, error) {
	return e.update(func(s *State) error {
		if err := view.Validate(); err != nil {
			return err
		}
		s.View = view
		return nil
	}, true, false)
}

// Zoom narrows the Mandelbrot view to a selection rectangle drawn on the current frame
func (e *Explorer) Zoom(selection image.Rectangle) (State, error) {
	return e.update(func(s *State) error {
		view, err := s.View.Zoom(selection, s.Width, s.Height)
		if err != nil {
			return err
		}
		s.View = view
		return nil
	}, true, false)
}

func (e *Explorer) SetIterations(maxIterations int) (State, error) {
	return e.update(func(s *State) error {
		if maxIterations < 1 {
			return fmt.Errorf("%w: maxIterations %d < 1", fractal.ErrInvalidArgument, maxIterations)
		}
		s.MaxIterations = maxIterations
		return nil
	}, true, true)
}

// Select picks the Julia seed from a pixel of the Mandelbrot frame and remembers it in the history.
func (e *Explorer) Select(pixelX int, pixelY int) (plane.ComplexNumber, error) {
	var seed plane.ComplexNumber
	_, err := e.update(func(s *State) error {
		seed = s.View.PixelToComplex(pixelX, pixelY, s.Width, s.Height)
		s.Seed = seed
		s.HasSeed = true
		e.history.Add(seed)
		e.logger.Infof("Selected point: %s [History: %d/%d]", seed, e.history.Size(), e.history.Capacity())
		return nil
	}, false, true)
	return seed, err
}

// Reset restores the configured view and iteration budget, the seed and history are kept
func (e *Explorer) Reset() (State, error) {
	return e.update(func(s *State) error {
		s.View = e.settings.View
		s.MaxIterations = e.settings.FractalSettings.MaxIterations
		return nil
	}, true, true)
}

// History returns the selected points, newest first
func (e *Explorer) History() []plane.ComplexNumber {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.history.Slice()
}

// RecentJulia returns the last published Julia frames, newest first
func (e *Explorer) RecentJulia() []*render.Frame {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.recentJulia.Slice()
}

// SaveJulia stores the latest Julia frame in the gallery and returns the file name
func (e *Explorer) SaveJulia() (string, error) {
	if e.gallery == nil {
		return "", ErrNoGallery
	}
	frame := e.Julia.Latest()
	if frame == nil {
		if !e.State().HasSeed {
			return "", ErrNoSeed
		}
		return "", ErrNoFrame
	}
	return e.gallery.Save(frame.Image, frame.Params.Seed)
}

func (e *Explorer) Favourites() ([]string, error) {
	if e.gallery == nil {
		return nil, ErrNoGallery
	}
	return e.gallery.List()
}

// Thumbnail loads a saved favourite scaled so its longer side is maxSide pixels
func (e *Explorer) Thumbnail(name string, maxSide int) (*image.RGBA, error) {
	if e.gallery == nil {
		return nil, ErrNoGallery
	}
	if maxSide < 1 {
		return nil, fmt.Errorf("%w: thumbnail side %d", render.ErrInvalidArgument, maxSide)
	}
	img, err := e.gallery.Load(name)
	if err != nil {
		return nil, err
	}
	return gallery.Thumbnail(img, maxSide), nil
}

func (e *Explorer) Gallery() *gallery.Gallery {
	return e.gallery
}

func (e *Explorer) Close() error {
	return errors.Join(e.Mandelbrot.Close(), e.Julia.Close())
}

func (e *Explorer) collectJulia(frames <-chan *render.Frame) {
	for frame := range frames {
		e.mutex.Lock()
		if e.recentJulia.CapacityLeft() == 0 {
			e.logger.Debugf("Dropping oldest recent julia frame for frame %d", frame.Sequence)
		}
		e.recentJulia.Add(frame)
		e.mutex.Unlock()
	}
}
