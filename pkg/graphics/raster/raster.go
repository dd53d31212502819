// Package raster renders scene output to bitmap images using fogleman/gg.
package raster

import (
	"bytes"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/corescene/pkg/geom"
	"github.com/matzehuels/corescene/pkg/graphics"
)

// Option configures a Canvas.
type Option func(*Canvas)

// WithBackground sets the colour the image is cleared to (default white).
func WithBackground(c color.Color) Option { return func(cv *Canvas) { cv.background = c } }

// WithFontFace sets the face used by DrawString (default basicfont 7x13).
func WithFontFace(f font.Face) Option { return func(cv *Canvas) { cv.face = f } }

// Canvas is a Graphics backed by a gg.Context. All geometry is mapped to
// device space before it reaches gg, so the gg matrix stays at identity.
type Canvas struct {
	graphics.Stacks

	dc         *gg.Context
	background color.Color
	face       font.Face
}

// New returns a canvas of w×h pixels cleared to the background colour.
func New(w, h int, opts ...Option) *Canvas {
	c := &Canvas{
		Stacks:     graphics.NewStacks(),
		dc:         gg.NewContext(w, h),
		background: graphics.White,
		face:       basicfont.Face7x13,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.dc.SetColor(c.background)
	c.dc.Clear()
	c.dc.SetFontFace(c.face)
	return c
}

func (c *Canvas) SetClip(r *geom.Rect) {
	c.Stacks.SetClip(r)
	c.dc.ResetClip()
	if dev := c.Clip(); dev != nil {
		c.dc.DrawRectangle(dev.X, dev.Y, dev.W, dev.H)
		c.dc.Clip()
	}
}

func (c *Canvas) DrawRectangle(r geom.Rect) {
	d := c.CTM().ApplyRect(r)
	st := c.Current()
	c.dc.SetColor(st.Line)
	c.dc.SetLineWidth(st.LineWidth)
	// Offset by half a pixel so 1px strokes land on pixel centres.
	c.dc.DrawRectangle(d.X+0.5, d.Y+0.5, d.W, d.H)
	c.dc.Stroke()
}

func (c *Canvas) FillRectangle(r geom.Rect) {
	d := c.CTM().ApplyRect(r)
	c.dc.SetColor(c.Current().Fill)
	c.dc.DrawRectangle(d.X, d.Y, d.W, d.H)
	c.dc.Fill()
}

func (c *Canvas) DrawLine(x1, y1, x2, y2 float64) {
	m := c.CTM()
	p1, p2 := m.Apply(geom.Pt(x1, y1)), m.Apply(geom.Pt(x2, y2))
	st := c.Current()
	c.dc.SetColor(st.Line)
	c.dc.SetLineWidth(st.LineWidth)
	c.dc.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
	c.dc.Stroke()
}

func (c *Canvas) DrawString(x, y float64, s string) {
	p := c.CTM().Apply(geom.Pt(x, y))
	c.dc.SetColor(c.Current().Fill)
	c.dc.DrawString(s, math.Round(p.X), math.Round(p.Y))
}

// Image returns the rendered image.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// EncodePNG writes the image as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error { return c.dc.EncodePNG(w) }

// PNG returns the image encoded as PNG.
func (c *Canvas) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ graphics.Graphics = (*Canvas)(nil)
