package gallery

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BrugadaSyndrome/bslogger"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"FractalExplorer/misc"
	"FractalExplorer/plane"
)

const (
	PNG Format = iota
	BMP
	TIFF
)

type Format int

func (f Format) String() string {
	return []string{
		"png", "bmp", "tiff",
	}[f]
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "", "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	}
	return PNG, fmt.Errorf("unknown image format %q", s)
}

var (
	ErrNotFound    = errors.New("image not found")
	ErrInvalidName = errors.New("invalid image name")

	extensions = map[string]bool{".png": true, ".bmp": true, ".tif": true, ".tiff": true}
)

// Gallery stores saved Julia images as julia<N>.<format> inside one directory.
type Gallery struct {
	collator *collate.Collator
	format   Format
	logger   bslogger.Logger
	mutex    sync.Mutex
	path     string
}

// Open creates path when it does not exist yet
func Open(path string, format Format) (*Gallery, error) {
	if path == "" {
		return nil, errors.New("no gallery path supplied")
	}
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return nil, fmt.Errorf("unable to create gallery folder %s - %w", path, err)
	}
	return &Gallery{
		collator: collate.New(language.Und, collate.Numeric),
		format:   format,
		logger:   bslogger.NewLogger("Gallery", bslogger.Normal, nil),
		path:     path,
	}, nil
}

func (g *Gallery) Path() string {
	return g.path
}

/*
 * Save writes img as the next julia<N>.<format> file and returns its name.
 *
 * - N is one more than the number of images already stored, skipping forward if that name is taken
 * - The seed is captioned into the bottom left corner of a copy, img itself is not modified
 */
func (g *Gallery) Save(img image.Image, seed plane.ComplexNumber) (string, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	names, err := g.list()
	if err != nil {
		return "", err
	}

	var name string
	for n := len(names) + 1; ; n++ {
		name = fmt.Sprintf("julia%d.%s", n, g.format)
		if _, err := os.Stat(filepath.Join(g.path, name)); err != nil {
			break
		}
	}

	captioned := Caption(img, seed.String())
	var buffer bytes.Buffer
	if err := Encode(&buffer, captioned, g.format); err != nil {
		return "", fmt.Errorf("unable to encode %s - %w", name, err)
	}
	if _, err := misc.WriteFile(filepath.Join(g.path, name), buffer.Bytes()); err != nil {
		return "", err
	}

	g.logger.Infof("Saved image to %s", filepath.Join(g.path, name))
	return name, nil
}

// List returns stored image names in number aware order, julia2 sorts before julia10.
func (g *Gallery) List() ([]string, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.list()
}

func (g *Gallery) list() ([]string, error) {
	entries, err := os.ReadDir(g.path)
	if err != nil {
		return nil, fmt.Errorf("unable to read gallery folder %s - %w", g.path, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !extensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		names = append(names, entry.Name())
	}
	g.collator.SortStrings(names)
	return names, nil
}

func (g *Gallery) Load(name string) (image.Image, error) {
	if name == "" || filepath.Base(name) != name || !extensions[strings.ToLower(filepath.Ext(name))] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	fileBytes, err := misc.ReadFile(filepath.Join(g.path, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, fmt.Errorf("unable to decode %s - %w", name, err)
	}
	return img, nil
}

func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return png.Encode(w, img)
	}
}
