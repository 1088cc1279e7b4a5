// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"fmt"
	"image"

	"github.com/cenkalti/dominantcolor"
	"github.com/hashicorp/go-hclog"
)

// DominantExtractor picks the most frequent colours by weight.
// It is deterministic and needs no seed, but may return fewer colours than
// requested for images with few distinct tones.
type DominantExtractor struct {
	logger hclog.Logger
}

// Extract returns up to count dominant colours of img.
func (e *DominantExtractor) Extract(img image.Image, count int) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if count < 1 {
		return nil, configErrorf("colour count must be at least 1, got %d", count)
	}

	found := dominantcolor.FindWeight(img, count)
	if len(found) == 0 {
		return nil, fmt.Errorf("no dominant colours found in image")
	}

	colours := make([]Colour, len(found))
	weights := make([]float64, len(found))
	for i, c := range found {
		colours[i] = FromColor(c.RGBA)
		weights[i] = c.Weight
	}
	e.logger.Info("dominant colours extracted", "requested", count, "found", len(found))

	return NewPaletteWithWeights(colours, weights).Sorted(), nil
}
