// Package render exports paged scenes.
//
// # Overview
//
// Every page is drawn by [DrawPage] onto any graphics.Graphics: the
// optional section label, then the header band, the slice of content that
// belongs to the page and the footer band, stacked from the top of the
// paper's printable area:
//
//	section   SectionNameHeight
//	header    headerHeight - 1
//	contents  perPage * scale - 1
//	footer
//
// # Formats
//
//   - svg: one SVG document per page (graphics/svg)
//   - png: one image per page (graphics/raster, fogleman/gg)
//   - pdf: a single multi-page document converted from the SVG pages
//
// PDF conversion shells out to rsvg-convert from librsvg:
//
//	brew install librsvg        # macOS
//	apt install librsvg2-bin    # Linux
//
// # Usage
//
//	pg := doc.Pageable(built.Scene, paper.A4)
//	arts, err := render.All(ctx, pg, render.Options{Format: render.FormatPNG})
package render
