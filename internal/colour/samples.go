// Package colour provides colour extraction and palette generation functionality.
package colour

import "image"

// Samples returns one colour per pixel of img, walking columns left to right
// and each column top to bottom. Alpha is ignored.
func Samples(img image.Image) []Colour {
	bounds := img.Bounds()
	samples := make([]Colour, 0, bounds.Dx()*bounds.Dy())
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			samples = append(samples, FromColor(img.At(x, y)))
		}
	}
	return samples
}
