// Package svg renders scene output as an SVG document.
package svg

import (
	"bytes"
	"fmt"
	"html"
	"image/color"

	"github.com/matzehuels/corescene/pkg/fonts"
	"github.com/matzehuels/corescene/pkg/geom"
	"github.com/matzehuels/corescene/pkg/graphics"
)

// Option configures a Canvas.
type Option func(*Canvas)

// WithFontSize sets the text size in pixels (default 10).
func WithFontSize(px float64) Option { return func(c *Canvas) { c.fontSize = px } }

// WithBackground fills the page with col before any drawing.
func WithBackground(col color.Color) Option { return func(c *Canvas) { c.background = col } }

// Canvas is a Graphics that accumulates SVG elements. Coordinates are written
// in device space, so the document does not depend on group nesting.
type Canvas struct {
	graphics.Stacks

	width, height float64
	fontSize      float64
	background    color.Color

	body     bytes.Buffer
	clipSeq  int
	clipOpen bool
}

// New returns an empty canvas of the given size in pixels.
func New(width, height float64, opts ...Option) *Canvas {
	c := &Canvas{
		Stacks:   graphics.NewStacks(),
		width:    width,
		height:   height,
		fontSize: fonts.DefaultSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Canvas) SetClip(r *geom.Rect) {
	c.Stacks.SetClip(r)
	if c.clipOpen {
		c.body.WriteString("</g>\n")
		c.clipOpen = false
	}
	dev := c.Clip()
	if dev == nil {
		return
	}
	c.clipSeq++
	fmt.Fprintf(&c.body, `<clipPath id="clip%d"><rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/></clipPath>`+"\n",
		c.clipSeq, dev.X, dev.Y, dev.W, dev.H)
	fmt.Fprintf(&c.body, `<g clip-path="url(#clip%d)">`+"\n", c.clipSeq)
	c.clipOpen = true
}

func (c *Canvas) DrawRectangle(r geom.Rect) {
	d := c.CTM().ApplyRect(r)
	st := c.Current()
	fmt.Fprintf(&c.body, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s"%s stroke-width="%.2f"/>`+"\n",
		d.X, d.Y, d.W, d.H, rgb(st.Line), opacity("stroke-opacity", st.Line), st.LineWidth)
}

func (c *Canvas) FillRectangle(r geom.Rect) {
	d := c.CTM().ApplyRect(r)
	st := c.Current()
	fmt.Fprintf(&c.body, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"%s/>`+"\n",
		d.X, d.Y, d.W, d.H, rgb(st.Fill), opacity("fill-opacity", st.Fill))
}

func (c *Canvas) DrawLine(x1, y1, x2, y2 float64) {
	m := c.CTM()
	p1, p2 := m.Apply(geom.Pt(x1, y1)), m.Apply(geom.Pt(x2, y2))
	st := c.Current()
	fmt.Fprintf(&c.body, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s"%s stroke-width="%.2f"/>`+"\n",
		p1.X, p1.Y, p2.X, p2.Y, rgb(st.Line), opacity("stroke-opacity", st.Line), st.LineWidth)
}

func (c *Canvas) DrawString(x, y float64, s string) {
	m := c.CTM()
	p := m.Apply(geom.Pt(x, y))
	st := c.Current()
	fmt.Fprintf(&c.body, `<text x="%.2f" y="%.2f" font-family="%s" font-size="%.1f" fill="%s">%s</text>`+"\n",
		p.X, p.Y, fonts.Family, c.fontSize*m.ScaleY(), rgb(st.Fill), html.EscapeString(s))
}

// Bytes returns the complete SVG document.
func (c *Canvas) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		c.width, c.height, c.width, c.height)
	if c.background != nil {
		fmt.Fprintf(&buf, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", rgb(c.background))
	}
	buf.Write(c.body.Bytes())
	if c.clipOpen {
		buf.WriteString("</g>\n")
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func rgb(col color.Color) string {
	if col == nil {
		return "none"
	}
	r, g, b, _ := col.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

func opacity(attr string, col color.Color) string {
	if col == nil {
		return ""
	}
	_, _, _, a := col.RGBA()
	if a == 0xffff {
		return ""
	}
	return fmt.Sprintf(` %s="%.3f"`, attr, float64(a)/0xffff)
}

var _ graphics.Graphics = (*Canvas)(nil)
