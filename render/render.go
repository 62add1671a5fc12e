package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync"

	"FractalExplorer/fractal"
	"FractalExplorer/plane"
	"FractalExplorer/task"
)

var ErrInvalidArgument = errors.New("invalid argument")

// Params is an immutable snapshot of everything a frame depends on. Seed is only read for Julia frames and a zero
// Colorizer means the default palettes.
type Params struct {
	Colorizer     fractal.Colorizer
	Height        int
	Kind          fractal.Kind
	MaxIterations int
	Seed          plane.ComplexNumber
	View          plane.View
	Width         int
}

func (p Params) String() string {
	output := "{Params "
	output += fmt.Sprintf("Kind: %s ", p.Kind)
	output += fmt.Sprintf("Size: %dx%d ", p.Width, p.Height)
	output += fmt.Sprintf("View: [%g, %g]x[%g, %g] ", p.View.X.Lower, p.View.X.Upper, p.View.Y.Lower, p.View.Y.Upper)
	if p.Kind == fractal.Julia {
		output += fmt.Sprintf("Seed: %s ", p.Seed)
	}
	output += fmt.Sprintf("MaxIterations: %d}", p.MaxIterations)
	return output
}

func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalidArgument, p.Width, p.Height)
	}
	if p.MaxIterations < 1 {
		return fmt.Errorf("%w: maxIterations %d < 1", ErrInvalidArgument, p.MaxIterations)
	}
	if p.Kind != fractal.Mandelbrot && p.Kind != fractal.Julia {
		return fmt.Errorf("%w: unknown fractal kind %d", ErrInvalidArgument, p.Kind)
	}
	if err := p.View.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return nil
}

// Render colors every pixel of a Width x Height frame. Rows are handed out to workers goroutines (NumCPU when
// workers < 1) and all of them read the same Params value, so the frame is always internally consistent.
func Render(ctx context.Context, p Params, workers int) (*image.RGBA, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	tasks, err := task.Split(p.Width, p.Height, task.Row, 0)
	if err != nil {
		return nil, err
	}

	if p.Colorizer == (fractal.Colorizer{}) {
		p.Colorizer = fractal.NewColorizer()
	}
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	ratio := p.View.Ratio(p.Width, p.Height)

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	todo := make(chan task.Task)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range todo {
				if ctx.Err() != nil {
					continue
				}
				if err := colorTask(img, t, p, ratio); err != nil {
					cancel(err)
				}
			}
		}()
	}

feed:
	for _, t := range tasks {
		select {
		case todo <- t:
		case <-ctx.Done():
			break feed
		}
	}
	close(todo)
	wg.Wait()

	if ctx.Err() != nil {
		return nil, context.Cause(ctx)
	}
	return img, nil
}

func colorTask(img *image.RGBA, t task.Task, p Params, ratio plane.ConversionRatio) error {
	for y := t.Bounds.Min.Y; y < t.Bounds.Max.Y; y++ {
		for x := t.Bounds.Min.X; x < t.Bounds.Max.X; x++ {
			point := plane.PixelToComplex(x, y, ratio, p.View.X, p.View.Y)
			c, err := p.Colorizer.Color(p.Kind, p.Seed, point, p.MaxIterations)
			if err != nil {
				return err
			}
			img.SetRGBA(x, y, c)
		}
	}
	return nil
}
