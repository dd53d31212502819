// Package fonts supplies the typeface used for page text.
//
// The Go Regular font ships with golang.org/x/image, so raster output
// renders the same on every machine. SVG output names it first in its
// font-family list and falls back to common sans-serif faces.
package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Family is the CSS font-family list for SVG text.
const Family = `'Go', Helvetica, Arial, sans-serif`

// DefaultSize is the text size in points at zoom 1.
const DefaultSize = 10

// TTF returns the Go Regular font file.
func TTF() []byte {
	return goregular.TTF
}

// Parsed once on first use.
var (
	regular     *opentype.Font
	regularErr  error
	regularOnce sync.Once
)

func parsed() (*opentype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = opentype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// Face returns a Go Regular face of the given size in points at 72 dpi, so
// one point is one pixel.
func Face(size float64) (font.Face, error) {
	f, err := parsed()
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultSize
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
