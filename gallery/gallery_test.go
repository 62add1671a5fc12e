package gallery

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"FractalExplorer/plane"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestOpen_CreatesFolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "images", "julia")
	g, err := Open(path, PNG)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		t.Fatalf("gallery folder not created: %v", err)
	}
	if g.Path() != path {
		t.Errorf("Path() = %q, want %q", g.Path(), path)
	}
	if _, err := Open("", PNG); err == nil {
		t.Error("Open(\"\") should fail")
	}
}

func TestGallery_SaveNumbersAndLoads(t *testing.T) {
	for _, format := range []Format{PNG, BMP, TIFF} {
		t.Run(format.String(), func(t *testing.T) {
			g, err := Open(t.TempDir(), format)
			if err != nil {
				t.Fatal(err)
			}

			seed := plane.ComplexNumber{Real: -0.8, Imaginary: 0.156}
			img := solidImage(120, 40, color.RGBA{R: 10, G: 200, B: 30, A: 255})
			for i := 1; i <= 3; i++ {
				name, err := g.Save(img, seed)
				if err != nil {
					t.Fatalf("Save() error = %v", err)
				}
				want := "julia" + string(rune('0'+i)) + "." + format.String()
				if name != want {
					t.Errorf("Save() #%d = %q, want %q", i, name, want)
				}
			}
			if img.RGBAAt(5, 39) != (color.RGBA{R: 10, G: 200, B: 30, A: 255}) {
				t.Error("Save() modified the source image")
			}

			loaded, err := g.Load("julia2." + format.String())
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if loaded.Bounds().Dx() != 120 || loaded.Bounds().Dy() != 40 {
				t.Errorf("loaded bounds = %s", loaded.Bounds())
			}
			r, g2, b, _ := loaded.At(60, 2).RGBA()
			if r>>8 != 10 || g2>>8 != 200 || b>>8 != 30 {
				t.Errorf("pixel above the caption = (%d, %d, %d)", r>>8, g2>>8, b>>8)
			}
		})
	}
}

func TestGallery_ListIsNumberAware(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"julia10.png", "julia2.png", "julia1.png", "notes.txt", "julia11.bmp", "julia3.tiff"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "julia4.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	g, err := Open(dir, PNG)
	if err != nil {
		t.Fatal(err)
	}
	got, err := g.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"julia1.png", "julia2.png", "julia3.tiff", "julia10.png", "julia11.bmp"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestGallery_SaveSkipsTakenNames(t *testing.T) {
	dir := t.TempDir()
	// one image exists but it is called julia2, so the next free number is 3
	if err := os.WriteFile(filepath.Join(dir, "julia2.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	g, _ := Open(dir, PNG)
	name, err := g.Save(solidImage(8, 8, color.RGBA{A: 255}), plane.ComplexNumber{})
	if err != nil {
		t.Fatal(err)
	}
	if name != "julia3.png" {
		t.Errorf("Save() = %q, want julia3.png", name)
	}
}

func TestGallery_LoadErrors(t *testing.T) {
	g, _ := Open(t.TempDir(), PNG)

	tests := []struct {
		name string
		want error
	}{
		{"", ErrInvalidName},
		{"../secret.png", ErrInvalidName},
		{"julia1.txt", ErrInvalidName},
		{"julia9.png", ErrNotFound},
	}
	for _, tt := range tests {
		if _, err := g.Load(tt.name); !errors.Is(err, tt.want) {
			t.Errorf("Load(%q) error = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", PNG}, {"png", PNG}, {".BMP", BMP}, {"tif", TIFF}, {"tiff", TIFF},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, %v", tt.in, got, err)
		}
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Error("ParseFormat(gif) should fail")
	}
}
