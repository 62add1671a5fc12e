package task

import (
	"errors"
	"fmt"
	"image"
)

const (
	Row Generation = iota
	Column
	Tile
)

// Generation decides how a frame is cut into tasks
type Generation int

func (g Generation) String() string {
	return []string{
		"Row", "Column", "Tile",
	}[g]
}

var ErrInvalidArgument = errors.New("invalid argument")

const DefaultTileSize = 64

// Task is one rectangle of a frame that is colored as a unit of work.
type Task struct {
	Bounds image.Rectangle
	ID     uint
}

func (t *Task) String() string {
	output := "{Task "
	output += fmt.Sprintf("ID: %d ", t.ID)
	output += fmt.Sprintf("Bounds: %s}", t.Bounds)
	return output
}

func (t *Task) PixelCount() int {
	return t.Bounds.Dx() * t.Bounds.Dy()
}

// Split cuts a width x height frame into tasks that cover every pixel exactly once. tileSize is only used by Tile.
func Split(width int, height int, generation Generation, tileSize int) ([]Task, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: frame %dx%d", ErrInvalidArgument, width, height)
	}

	frame := image.Rect(0, 0, width, height)
	switch generation {
	case Row:
		return splitRect(frame, width, 1), nil
	case Column:
		return splitRect(frame, 1, height), nil
	case Tile:
		if tileSize <= 0 {
			return nil, fmt.Errorf("%w: tile size %d", ErrInvalidArgument, tileSize)
		}
		return splitRect(frame, tileSize, tileSize), nil
	}
	return nil, fmt.Errorf("%w: unknown generation type %d", ErrInvalidArgument, generation)
}

// splitRect walks r in tileW x tileH steps, tiles on the right and bottom edges shrink to fit
func splitRect(r image.Rectangle, tileW int, tileH int) []Task {
	var tasks []Task
	var id uint
	for y := r.Min.Y; y < r.Max.Y; y += tileH {
		for x := r.Min.X; x < r.Max.X; x += tileW {
			bounds := image.Rect(x, y, min(x+tileW, r.Max.X), min(y+tileH, r.Max.Y))
			tasks = append(tasks, Task{Bounds: bounds, ID: id})
			id++
		}
	}
	return tasks
}
