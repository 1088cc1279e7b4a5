// Package colour provides colour extraction and palette generation functionality.
package colour

import "encoding/json"

// Palette represents an ordered collection of colours extracted from an image.
type Palette struct {
	Colours []Colour
	// Weights holds the relative cluster size of each colour when known.
	Weights []float64
}

// NewPalette creates a new Palette with the given colours.
func NewPalette(colours []Colour) *Palette {
	return &Palette{
		Colours: colours,
	}
}

// NewPaletteWithWeights creates a palette whose colours carry relative weights.
func NewPaletteWithWeights(colours []Colour, weights []float64) *Palette {
	return &Palette{
		Colours: colours,
		Weights: weights,
	}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colours)
}

// Sorted returns a new palette in HueOrder. Weights follow their colours.
func (p *Palette) Sorted() *Palette {
	order := HueOrder(p.Colours)
	out := NewPalette(make([]Colour, len(order)))
	if len(p.Weights) > 0 {
		out.Weights = make([]float64, len(order))
	}
	for i, j := range order {
		out.Colours[i] = p.Colours[j]
		if out.Weights != nil && j < len(p.Weights) {
			out.Weights[i] = p.Weights[j]
		}
	}
	return out
}

// ToHex converts the palette colours to hex strings.
func (p *Palette) ToHex() []string {
	hexColours := make([]string, len(p.Colours))
	for i, c := range p.Colours {
		hexColours[i] = c.Hex()
	}
	return hexColours
}

// Record is the structured form of a palette written to JSON files.
type Record struct {
	RGB [][3]int `json:"rgb"`
	HSV [][3]int `json:"hsv"`
	Hex []string `json:"hex"`
}

// Record converts the palette into its structured form, one entry per colour
// in palette order.
func (p *Palette) Record() Record {
	rec := Record{
		RGB: make([][3]int, len(p.Colours)),
		HSV: make([][3]int, len(p.Colours)),
		Hex: make([]string, len(p.Colours)),
	}
	for i, c := range p.Colours {
		rgb, hsv := c.RGB(), c.HSV()
		rec.RGB[i] = [3]int{int(rgb.R), int(rgb.G), int(rgb.B)}
		rec.HSV[i] = [3]int{hsv.H, hsv.S, hsv.V}
		rec.Hex[i] = c.Hex()
	}
	return rec
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p.Record(), "", "  ")
}

// All returns an iterator over all colours in the palette.
func (p *Palette) All() func(func(int, Colour) bool) {
	return func(yield func(int, Colour) bool) {
		for i, c := range p.Colours {
			if !yield(i, c) {
				return
			}
		}
	}
}
