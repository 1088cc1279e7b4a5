package layout

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/jmylchreest/imagepalette/internal/colour"
)

const (
	// DefaultStripWidth and DefaultStripHeight size a standalone strip.
	DefaultStripWidth  = 1000
	DefaultStripHeight = 200
)

// Compose draws src and the palette strip onto a new canvas laid out by Compute.
func Compose(src image.Image, palette *colour.Palette, cfg Config) (*image.RGBA, Geometry, error) {
	if src == nil {
		return nil, Geometry{}, fmt.Errorf("source image cannot be nil")
	}
	if palette == nil {
		return nil, Geometry{}, fmt.Errorf("%w: palette cannot be nil", colour.ErrConfiguration)
	}

	bounds := src.Bounds()
	g, err := Compute(bounds.Dx(), bounds.Dy(), palette.Len(), cfg)
	if err != nil {
		return nil, Geometry{}, err
	}

	canvas := image.NewRGBA(g.Canvas)
	fill(canvas, g.Canvas, cfg.Background)
	draw.Draw(canvas, g.Source, src, bounds.Min, draw.Src)

	outline, hasOutline := cfg.OutlineColour()
	for i, c := range palette.Colours {
		fill(canvas, g.Bars[i], c)
		if hasOutline {
			stroke(canvas, g.Bars[i], outline, cfg.OutlineWidth)
		}
	}
	return canvas, g, nil
}

// Strip renders the palette as width x height of adjacent vertical bars.
// The last bar absorbs any remainder of width / palette length.
func Strip(palette *colour.Palette, width, height int) (*image.RGBA, error) {
	if palette == nil || palette.Len() == 0 {
		return nil, fmt.Errorf("%w: palette must not be empty", colour.ErrConfiguration)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: strip size must be positive, got %dx%d", colour.ErrConfiguration, width, height)
	}

	barWidth := width / palette.Len()
	if barWidth == 0 {
		return nil, fmt.Errorf("%w: %dpx strip cannot hold %d bars", ErrDegenerate, width, palette.Len())
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, c := range palette.Colours {
		x0 := i * barWidth
		x1 := x0 + barWidth
		if i == palette.Len()-1 {
			x1 = width
		}
		fill(img, image.Rect(x0, 0, x1, height), c)
	}
	return img, nil
}

func fill(dst draw.Image, r image.Rectangle, c colour.Colour) {
	draw.Draw(dst, r, image.NewUniform(c.NRGBA()), image.Point{}, draw.Src)
}

// stroke draws a border of the given width inside r. The width is clamped
// so opposite edges never cross.
func stroke(dst draw.Image, r image.Rectangle, c colour.Colour, width int) {
	width = min(width, (r.Dx()+1)/2, (r.Dy()+1)/2)
	if width <= 0 {
		return
	}
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), c)
	fill(dst, image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), c)
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y), c)
	fill(dst, image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y), c)
}
