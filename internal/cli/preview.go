package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/jmylchreest/imagepalette/internal/colour"
)

const swatchWidth = 16

var ruleColour = colour.MustColour(233, 233, 233)

// isTerminal reports whether w is a terminal that can render ANSI colour.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// renderPreview prints one row per colour: a swatch followed by its rgb,
// hsv and hex forms. Swatches are labelled with the colour's share of the
// image when the palette carries weights.
func renderPreview(w io.Writer, palette *colour.Palette) error {
	table := NewTable([]string{"colour", "rgb", "hsv", "hex"})
	table.SetBorders(" │ ", "─")
	table.SetBorderStyle(func(s string) string { return colour.Format(s, &ruleColour, nil) })

	for i, c := range palette.All() {
		swatch := colour.ColourPreview(c, swatchWidth)
		if i < len(palette.Weights) {
			swatch = colour.ColourPreviewWithText(c, fmt.Sprintf("%.0f%%", palette.Weights[i]*100), swatchWidth)
		}
		table.AddRow([]string{
			swatch,
			c.RGBString(),
			c.HSVString(),
			c.Hex(),
		})
	}

	title := colour.Format("Extracted colour palette:", &ruleColour, nil)
	_, err := fmt.Fprintf(w, "\n%s\n\n%s\n", title, table.Render())
	return err
}
