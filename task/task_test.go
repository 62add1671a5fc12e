package task

import (
	"errors"
	"image"
	"testing"
)

func TestSplit_Covers(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		generation Generation
		tileSize   int
		wantTasks  int
	}{
		{"rows", 7, 5, Row, 0, 5},
		{"columns", 7, 5, Column, 0, 7},
		{"exact tiles", 128, 64, Tile, 64, 2},
		{"ragged tiles", 130, 65, Tile, 64, 6},
		{"single pixel", 1, 1, Tile, 64, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := Split(tt.w, tt.h, tt.generation, tt.tileSize)
			if err != nil {
				t.Fatalf("Split() error = %v", err)
			}
			if len(tasks) != tt.wantTasks {
				t.Errorf("Split() gave %d tasks, want %d", len(tasks), tt.wantTasks)
			}

			seen := make(map[image.Point]int)
			frame := image.Rect(0, 0, tt.w, tt.h)
			for i, task := range tasks {
				if task.ID != uint(i) {
					t.Errorf("task %d has ID %d", i, task.ID)
				}
				if !task.Bounds.In(frame) {
					t.Errorf("%s is outside the frame", task.String())
				}
				for y := task.Bounds.Min.Y; y < task.Bounds.Max.Y; y++ {
					for x := task.Bounds.Min.X; x < task.Bounds.Max.X; x++ {
						seen[image.Pt(x, y)]++
					}
				}
			}
			if len(seen) != tt.w*tt.h {
				t.Errorf("tasks cover %d pixels, want %d", len(seen), tt.w*tt.h)
			}
			for p, n := range seen {
				if n != 1 {
					t.Errorf("pixel %v covered %d times", p, n)
				}
			}
		})
	}
}

func TestSplit_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		generation Generation
		tileSize   int
	}{
		{"zero width", 0, 10, Row, 0},
		{"negative height", 10, -1, Column, 0},
		{"zero tile", 10, 10, Tile, 0},
		{"unknown generation", 10, 10, Generation(9), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Split(tt.w, tt.h, tt.generation, tt.tileSize); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Split() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestTask_PixelCount(t *testing.T) {
	task := Task{Bounds: image.Rect(10, 20, 14, 23)}
	if task.PixelCount() != 12 {
		t.Errorf("PixelCount() = %d, want 12", task.PixelCount())
	}
}
