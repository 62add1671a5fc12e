package rpc

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"FractalExplorer/explorer"
	"FractalExplorer/fractal"
	"FractalExplorer/plane"
	"FractalExplorer/render"
)

var ErrNoFrame = errors.New("no frame rendered yet")

// Nothing is the argument of methods that do not need one. gob refuses empty structs so it is a bool.
type Nothing bool

type FrameReply struct {
	Kind          fractal.Kind
	MaxIterations int
	PNG           []byte
	Seed          plane.ComplexNumber
	Sequence      uint64
	View          plane.View
}

type PixelArgs struct {
	X int
	Y int
}

type ResizeArgs struct {
	Height int
	Width  int
}

// Explorer exposes an explorer session to rpc clients. Methods are called as "Explorer.<Method>".
type Explorer struct {
	explorer *explorer.Explorer
}

func NewExplorer(e *explorer.Explorer) *Explorer {
	return &Explorer{explorer: e}
}

// Render replies with the latest published frame of the requested kind encoded as png.
func (s *Explorer) Render(kind fractal.Kind, reply *FrameReply) error {
	var frame *render.Frame
	switch kind {
	case fractal.Mandelbrot:
		frame = s.explorer.Mandelbrot.Latest()
	case fractal.Julia:
		frame = s.explorer.Julia.Latest()
	default:
		return fmt.Errorf("%w: kind %d", fractal.ErrInvalidArgument, kind)
	}
	if frame == nil {
		return fmt.Errorf("%w: %s", ErrNoFrame, kind)
	}

	var buffer bytes.Buffer
	if err := png.Encode(&buffer, frame.Image); err != nil {
		return err
	}
	*reply = FrameReply{
		Kind:          frame.Params.Kind,
		MaxIterations: frame.Params.MaxIterations,
		PNG:           buffer.Bytes(),
		Seed:          frame.Params.Seed,
		Sequence:      frame.Sequence,
		View:          frame.Params.View,
	}
	return nil
}

func (s *Explorer) Select(pixel PixelArgs, seed *plane.ComplexNumber) error {
	selected, err := s.explorer.Select(pixel.X, pixel.Y)
	if err != nil {
		return err
	}
	*seed = selected
	return nil
}

func (s *Explorer) Zoom(selection image.Rectangle, state *explorer.State) error {
	return reply(s.explorer.Zoom(selection))(state)
}

func (s *Explorer) SetView(view plane.View, state *explorer.State) error {
	return reply(s.explorer.SetView(view))(state)
}

func (s *Explorer) SetIterations(maxIterations int, state *explorer.State) error {
	return reply(s.explorer.SetIterations(maxIterations))(state)
}

func (s *Explorer) Resize(size ResizeArgs, state *explorer.State) error {
	return reply(s.explorer.Resize(size.Width, size.Height))(state)
}

func (s *Explorer) Reset(_ Nothing, state *explorer.State) error {
	return reply(s.explorer.Reset())(state)
}

func (s *Explorer) State(_ Nothing, state *explorer.State) error {
	*state = s.explorer.State()
	return nil
}

func (s *Explorer) History(_ Nothing, history *[]plane.ComplexNumber) error {
	*history = s.explorer.History()
	return nil
}

// PixelToComplex maps a pixel of the current Mandelbrot frame without selecting it
func (s *Explorer) PixelToComplex(pixel PixelArgs, z *plane.ComplexNumber) error {
	state := s.explorer.State()
	*z = state.View.PixelToComplex(pixel.X, pixel.Y, state.Width, state.Height)
	return nil
}

func (s *Explorer) SaveJulia(_ Nothing, name *string) error {
	saved, err := s.explorer.SaveJulia()
	if err != nil {
		return err
	}
	*name = saved
	return nil
}

func (s *Explorer) Favourites(_ Nothing, names *[]string) error {
	favourites, err := s.explorer.Favourites()
	if err != nil {
		return err
	}
	*names = favourites
	return nil
}

func reply(state explorer.State, err error) func(*explorer.State) error {
	return func(out *explorer.State) error {
		if err != nil {
			return err
		}
		*out = state
		return nil
	}
}

type ThumbnailArgs struct {
	MaxSide int
	Name    string
}

// Thumbnail replies with a saved favourite scaled down and encoded as png
func (s *Explorer) Thumbnail(args ThumbnailArgs, thumbnail *[]byte) error {
	img, err := s.explorer.Thumbnail(args.Name, args.MaxSide)
	if err != nil {
		return err
	}
	var buffer bytes.Buffer
	if err := png.Encode(&buffer, img); err != nil {
		return err
	}
	*thumbnail = buffer.Bytes()
	return nil
}
