// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSV holds hue in degrees [0, 360) and saturation/value as percentages [0, 100].
type HSV struct {
	H int `json:"h"`
	S int `json:"s"`
	V int `json:"v"`
}

// Colour is an immutable RGB triple together with its HSV projection.
// The zero value is black.
type Colour struct {
	rgb RGB
	hsv HSV
}

// NewColour creates a colour from integer channels.
// Returns an error matching ErrInvalidColour if any channel is outside 0-255.
func NewColour(r, g, b int) (Colour, error) {
	for _, ch := range []struct {
		name  string
		value int
	}{{"red", r}, {"green", g}, {"blue", b}} {
		if ch.value < 0 || ch.value > 255 {
			return Colour{}, fmt.Errorf("%w: %s component must be in range 0-255, got %d", ErrInvalidColour, ch.name, ch.value)
		}
	}
	return FromRGB(RGB{R: uint8(r), G: uint8(g), B: uint8(b)}), nil
}

// MustColour is like NewColour but panics on invalid input.
// Intended for package-level constants and tests.
func MustColour(r, g, b int) Colour {
	c, err := NewColour(r, g, b)
	if err != nil {
		panic(err)
	}
	return c
}

// FromRGB creates a colour from an RGB triple.
func FromRGB(rgb RGB) Colour {
	return Colour{rgb: rgb, hsv: toHSV(rgb)}
}

// FromColor converts any color.Color, dropping alpha.
func FromColor(c color.Color) Colour {
	return FromRGB(ToRGB(c))
}

// ToRGB converts a color.Color to RGB using its straight (non-premultiplied)
// channels, so translucent pixels keep their stored colour.
func ToRGB(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// toHSV projects RGB onto HSV, truncating every component to an integer.
func toHSV(rgb RGB) HSV {
	r := float64(rgb.R) / 255
	g := float64(rgb.G) / 255
	b := float64(rgb.B) / 255

	cmax := max(r, g, b)
	cmin := min(r, g, b)
	delta := cmax - cmin

	var h float64
	switch {
	case delta == 0:
		h = 0
	case cmax == r:
		h = math.Mod(60*((g-b)/delta)+360, 360)
	case cmax == g:
		h = math.Mod(60*((b-r)/delta)+120, 360)
	default:
		h = math.Mod(60*((r-g)/delta)+240, 360)
	}

	var s float64
	if cmax != 0 {
		s = delta / cmax * 100
	}
	v := cmax * 100

	return HSV{H: int(h), S: int(s), V: int(v)}
}

// RGB returns the red, green and blue components.
func (c Colour) RGB() RGB { return c.rgb }

// HSV returns the hue, saturation and value components.
func (c Colour) HSV() HSV { return c.hsv }

// Hue returns the hue in degrees.
func (c Colour) Hue() int { return c.hsv.H }

// Saturation returns the saturation percentage.
func (c Colour) Saturation() int { return c.hsv.S }

// Value returns the value (brightness) percentage.
func (c Colour) Value() int { return c.hsv.V }

// Hex returns the colour as an upper-case "#RRGGBB" string.
func (c Colour) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.rgb.R, c.rgb.G, c.rgb.B)
}

// RGBString returns the colour formatted as "rgb(r, g, b)".
func (c Colour) RGBString() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.rgb.R, c.rgb.G, c.rgb.B)
}

// HSVString returns the colour formatted as "hsv(h°, s%, v%)".
func (c Colour) HSVString() string {
	return fmt.Sprintf("hsv(%d°, %d%%, %d%%)", c.hsv.H, c.hsv.S, c.hsv.V)
}

// String implements fmt.Stringer.
func (c Colour) String() string { return c.Hex() }

// RGBA implements color.Color. The colour is always opaque.
func (c Colour) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.rgb.R, G: c.rgb.G, B: c.rgb.B, A: 255}.RGBA()
}

// NRGBA returns the colour as an opaque color.NRGBA.
func (c Colour) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.rgb.R, G: c.rgb.G, B: c.rgb.B, A: 255}
}

// distanceSq returns the squared Euclidean distance in RGB space.
func (c Colour) distanceSq(other Colour) int {
	dr := int(c.rgb.R) - int(other.rgb.R)
	dg := int(c.rgb.G) - int(other.rgb.G)
	db := int(c.rgb.B) - int(other.rgb.B)
	return dr*dr + dg*dg + db*db
}

// ParseHex parses "#RRGGBB" or "#RGB" (the leading # is optional).
func ParseHex(s string) (Colour, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return Colour{}, fmt.Errorf("%w: %q is not a hex colour", ErrInvalidColour, s)
	}
	r, g, b := c.RGB255()
	return FromRGB(RGB{R: r, G: g, B: b}), nil
}

// Parse accepts a hex colour ("#dcdcdc", "dcdcdc", "#ddd") or a decimal
// triple separated by commas and/or spaces ("220,220,220", "220 220 220").
func Parse(s string) (Colour, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Colour{}, fmt.Errorf("%w: empty colour", ErrInvalidColour)
	}

	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 1 {
		return ParseHex(fields[0])
	}
	if len(fields) != 3 {
		return Colour{}, fmt.Errorf("%w: expected 3 components, got %d in %q", ErrInvalidColour, len(fields), s)
	}

	var ch [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Colour{}, fmt.Errorf("%w: component %q is not an integer", ErrInvalidColour, f)
		}
		ch[i] = v
	}
	return NewColour(ch[0], ch[1], ch[2])
}
