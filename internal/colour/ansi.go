// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ANSI escape codes for 24-bit terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 16
)

// Format wraps text in TrueColor escapes. Either colour may be nil.
// When both are nil, or colour output is disabled, text is returned unchanged.
func Format(text string, fore, back *Colour) string {
	if DisableColourOutput || (fore == nil && back == nil) {
		return text
	}

	var b strings.Builder
	if fore != nil {
		fmt.Fprintf(&b, "%s%d;%d;%d%s", ansiFgPrefix, fore.rgb.R, fore.rgb.G, fore.rgb.B, ansiSuffix)
	}
	if back != nil {
		fmt.Fprintf(&b, "%s%d;%d;%d%s", ansiBgPrefix, back.rgb.R, back.rgb.G, back.rgb.B, ansiSuffix)
	}
	b.WriteString(text)
	b.WriteString(ansiReset)
	return b.String()
}

// ColourPreview returns a solid block of width cells in the given colour.
func ColourPreview(c Colour, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	return Format(strings.Repeat(" ", width), nil, &c)
}

// ColourPreviewWithText returns a colour block with centred text whose
// colour contrasts with the background.
func ColourPreviewWithText(c Colour, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	fg := MustColour(255, 255, 255)
	if relativeLuminance(c) > 0.5 {
		fg = MustColour(0, 0, 0)
	}

	// Pad or truncate text to fit width.
	displayText := text
	if len(text) > width {
		displayText = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		displayText = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	return Format(displayText, &fg, &c)
}

// relativeLuminance computes luminance from linear RGB.
func relativeLuminance(c Colour) float64 {
	r, g, b := colorful.Color{
		R: float64(c.rgb.R) / 255,
		G: float64(c.rgb.G) / 255,
		B: float64(c.rgb.B) / 255,
	}.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// DisableColourOutput can be used to disable colour output.
var DisableColourOutput = false

// VisibleWidth returns the number of terminal cells s occupies, ignoring
// ANSI escape sequences.
func VisibleWidth(s string) int {
	width := 0
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\033':
			inEscape = true
		default:
			width++
		}
	}
	return width
}
