// Package layout computes and renders palette strips, either standalone or
// attached to one side of a source image.
package layout

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/jmylchreest/imagepalette/internal/colour"
)

var (
	// ErrDegenerate is returned when the configured ratios leave a strip,
	// slot or bar with zero or negative extent.
	ErrDegenerate = errors.New("degenerate layout")

	// ErrInvalidOrientation is returned for unknown orientation tokens.
	ErrInvalidOrientation = fmt.Errorf("%w: invalid orientation", colour.ErrConfiguration)
)

// Orientation is the side of the source image the palette strip is attached to.
type Orientation int

// Orientations. Right is the zero value.
const (
	Right Orientation = iota
	Left
	Top
	Bottom
)

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// Horizontal reports whether the strip extends the canvas width.
func (o Orientation) Horizontal() bool {
	return o == Left || o == Right
}

func (o Orientation) valid() bool {
	return o >= Right && o <= Bottom
}

// ParseOrientation accepts l, r, t, b or the full names, in any case.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "left":
		return Left, nil
	case "r", "right":
		return Right, nil
	case "t", "top":
		return Top, nil
	case "b", "bottom":
		return Bottom, nil
	default:
		return 0, fmt.Errorf("%w: %q (valid: l, r, t, b)", ErrInvalidOrientation, s)
	}
}

// Config controls how a palette is attached to an image.
type Config struct {
	// OutputScale is the fraction of the extended axis taken by the source image.
	OutputScale float64
	// BarWidthScale is the fraction of a slot's width filled by its bar.
	BarWidthScale float64
	// BarHeightScale is the fraction of a slot's height filled by its bar.
	BarHeightScale float64
	Orientation    Orientation
	Background     colour.Colour
	// Outline is the bar outline colour. Nil uses Background.
	Outline      *colour.Colour
	OutlineWidth int
	// NoOutline disables bar outlines regardless of Outline and OutlineWidth.
	NoOutline bool
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() Config {
	return Config{
		OutputScale:    0.9,
		BarWidthScale:  0.75,
		BarHeightScale: 0.75,
		Orientation:    Right,
		Background:     colour.MustColour(220, 220, 220),
		OutlineWidth:   1,
	}
}

// Validate checks every ratio lies in the open interval (0, 1).
func (c Config) Validate() error {
	ratios := []struct {
		name  string
		value float64
	}{
		{"output scale", c.OutputScale},
		{"bar width scale", c.BarWidthScale},
		{"bar height scale", c.BarHeightScale},
	}
	for _, r := range ratios {
		if !(r.value > 0 && r.value < 1) {
			return fmt.Errorf("%w: %s must be in (0, 1), got %v", colour.ErrConfiguration, r.name, r.value)
		}
	}
	if !c.Orientation.valid() {
		return fmt.Errorf("%w: %v", ErrInvalidOrientation, c.Orientation)
	}
	if c.OutlineWidth < 0 {
		return fmt.Errorf("%w: outline width must not be negative, got %d", colour.ErrConfiguration, c.OutlineWidth)
	}
	return nil
}

// OutlineColour returns the effective outline colour and whether outlines
// are drawn at all.
func (c Config) OutlineColour() (colour.Colour, bool) {
	if c.NoOutline || c.OutlineWidth == 0 {
		return colour.Colour{}, false
	}
	if c.Outline != nil {
		return *c.Outline, true
	}
	return c.Background, true
}

// Geometry is the pixel layout of one composite, in canvas coordinates.
type Geometry struct {
	Canvas image.Rectangle
	Source image.Rectangle
	Strip  image.Rectangle
	// Slots divide the strip into one equal cell per palette entry.
	Slots []image.Rectangle
	// Bars are the filled swatches, each centred in its slot.
	Bars []image.Rectangle
}

// Compute lays out a width x height source and n palette entries.
func Compute(width, height, n int, cfg Config) (Geometry, error) {
	if err := cfg.Validate(); err != nil {
		return Geometry{}, err
	}
	if width <= 0 || height <= 0 {
		return Geometry{}, fmt.Errorf("%w: source size must be positive, got %dx%d", colour.ErrConfiguration, width, height)
	}
	if n <= 0 {
		return Geometry{}, fmt.Errorf("%w: palette must not be empty", colour.ErrConfiguration)
	}

	var g Geometry
	if cfg.Orientation.Horizontal() {
		canvasW := int(math.Round(float64(width) / cfg.OutputScale))
		stripW := canvasW - width
		if stripW <= 0 {
			return Geometry{}, fmt.Errorf("%w: output scale %v leaves no room for a strip beside a %dpx wide image", ErrDegenerate, cfg.OutputScale, width)
		}
		g.Canvas = image.Rect(0, 0, canvasW, height)
		if cfg.Orientation == Right {
			g.Source = image.Rect(0, 0, width, height)
			g.Strip = image.Rect(width, 0, canvasW, height)
		} else {
			g.Source = image.Rect(stripW, 0, canvasW, height)
			g.Strip = image.Rect(0, 0, stripW, height)
		}
	} else {
		canvasH := int(math.Round(float64(height) / cfg.OutputScale))
		stripH := canvasH - height
		if stripH <= 0 {
			return Geometry{}, fmt.Errorf("%w: output scale %v leaves no room for a strip beside a %dpx high image", ErrDegenerate, cfg.OutputScale, height)
		}
		g.Canvas = image.Rect(0, 0, width, canvasH)
		if cfg.Orientation == Bottom {
			g.Source = image.Rect(0, 0, width, height)
			g.Strip = image.Rect(0, height, width, canvasH)
		} else {
			g.Source = image.Rect(0, stripH, width, canvasH)
			g.Strip = image.Rect(0, 0, width, stripH)
		}
	}

	slots, err := divide(g.Strip, n, !cfg.Orientation.Horizontal())
	if err != nil {
		return Geometry{}, err
	}
	g.Slots = slots

	g.Bars = make([]image.Rectangle, n)
	for i, slot := range slots {
		bar, err := inset(slot, cfg.BarWidthScale, cfg.BarHeightScale)
		if err != nil {
			return Geometry{}, fmt.Errorf("bar %d: %w", i, err)
		}
		g.Bars[i] = bar
	}
	return g, nil
}

// divide splits r into n equal slots, side by side when alongX is true and
// stacked otherwise. Leftover pixels are split evenly before and after the run.
func divide(r image.Rectangle, n int, alongX bool) ([]image.Rectangle, error) {
	length := r.Dy()
	if alongX {
		length = r.Dx()
	}
	size := length / n
	if size <= 0 {
		return nil, fmt.Errorf("%w: %dpx strip cannot hold %d slots", ErrDegenerate, length, n)
	}
	offset := (length - size*n) / 2

	slots := make([]image.Rectangle, n)
	for i := range n {
		start := offset + i*size
		if alongX {
			slots[i] = image.Rect(r.Min.X+start, r.Min.Y, r.Min.X+start+size, r.Max.Y)
		} else {
			slots[i] = image.Rect(r.Min.X, r.Min.Y+start, r.Max.X, r.Min.Y+start+size)
		}
	}
	return slots, nil
}

// inset returns a rectangle of the given fractions of slot, centred in it.
func inset(slot image.Rectangle, widthScale, heightScale float64) (image.Rectangle, error) {
	w := int(float64(slot.Dx()) * widthScale)
	h := int(float64(slot.Dy()) * heightScale)
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, fmt.Errorf("%w: %dx%d slot scaled by %vx%v leaves a %dx%d bar",
			ErrDegenerate, slot.Dx(), slot.Dy(), widthScale, heightScale, w, h)
	}
	dx := (slot.Dx() - w) / 2
	dy := (slot.Dy() - h) / 2
	origin := slot.Min.Add(image.Pt(dx, dy))
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(w, h))}, nil
}
